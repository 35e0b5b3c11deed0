package main

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

// analysisFailedMessage is the single user-visible error for any
// evaluator failure (network, credentials, malformed response).
const analysisFailedMessage = "Erro na análise. Verifique sua conexão e chave de API."

type submitPayload struct {
	Transcript  string `json:"transcript"`
	AgentName   string `json:"agentName"`
	MonitorName string `json:"monitorName"`
	Company     string `json:"company"`
	Audio       *struct {
		Data     string `json:"data"` // base64
		MimeType string `json:"mimeType"`
	} `json:"audio"`
}

// NewServer wires the JSON API consumed by the dashboard frontend.
func NewServer(app *App, hub *StatsHub) *fiber.App {
	srv := fiber.New(fiber.Config{AppName: "qualitymind"})
	srv.Use(logger.New())

	srv.Post("/api/analyses", func(c *fiber.Ctx) error {
		var payload submitPayload
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "corpo da requisição inválido"})
		}

		req := SubmitRequest{
			Transcript:  payload.Transcript,
			AgentName:   payload.AgentName,
			MonitorName: payload.MonitorName,
			Company:     payload.Company,
		}
		if payload.Audio != nil && payload.Audio.Data != "" {
			data, err := base64.StdEncoding.DecodeString(payload.Audio.Data)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "áudio inválido: base64 malformado"})
			}
			req.Audio = &AudioAttachment{Data: data, MimeType: payload.Audio.MimeType}
		}

		interaction, err := app.SubmitAnalysis(c.Context(), req)
		switch {
		case errors.Is(err, ErrEmptySubmission):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrEmptySubmission.Error()})
		case errors.Is(err, ErrAnalysisInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ErrAnalysisInFlight.Error()})
		case err != nil:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": analysisFailedMessage})
		}
		return c.Status(fiber.StatusCreated).JSON(interaction)
	})

	srv.Get("/api/interactions", func(c *fiber.Ctx) error {
		return c.JSON(app.Interactions())
	})

	srv.Get("/api/interactions/:id/criteria", func(c *fiber.Ctx) error {
		interaction, ok := app.InteractionByID(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "monitoria não encontrada"})
		}
		if interaction.Result == nil {
			return c.JSON([]ScoreGroup{})
		}
		return c.JSON(DefaultScorecard.GroupScoresByCategory(interaction.Result.CriteriaScores))
	})

	srv.Get("/api/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(app.DashboardStats())
	})

	srv.Get("/api/scorecard", func(c *fiber.Ctx) error {
		return c.JSON(app.Rubric())
	})

	srv.Get("/api/export", func(c *fiber.Ctx) error {
		path, err := ExportWorkbook(app.Interactions(), app.DashboardStats(), app.cfg.ExportDir)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "falha ao gerar a planilha"})
		}
		return c.Download(path)
	})

	srv.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	srv.Get("/ws", websocket.New(hub.Handle))

	return srv
}
