package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const historySheet = "Monitorias"
const summarySheet = "Resumo"

var historyHeader = []string{"ID", "Operador", "Data", "Avaliação", "Score", "Motivo do Contato", "Resumo"}

// ExportWorkbook writes the interaction history and the dashboard
// summary to an .xlsx workbook under outputDir and returns its path.
func ExportWorkbook(interactions []Interaction, stats DashboardStats, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return "", err
	}
	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return "", err
	}
	for i, it := range interactions {
		status := "PENDENTE"
		score := 0
		reason := ""
		summary := ""
		if it.Result != nil {
			status = string(it.Result.EvaluationStatus)
			score = it.Result.TotalScore
			reason = it.Result.ReasonForCall
			summary = it.Result.Summary
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		row := []any{it.ID, it.AgentName, it.Date, status, score, reason, summary}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return "", err
	}
	summaryRows := [][]any{
		{"Auditorias avaliadas", stats.Total},
		{"Média de score", stats.AvgScore},
		{"Nível de compliance", stats.ComplianceLevel},
		{"Conforme", stats.Conforme},
		{"Não conforme", stats.NaoConforme},
		{"Falhas graves (NCG)", stats.Ncg},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		row := row
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return "", err
		}
	}

	path := filepath.Join(outputDir, fmt.Sprintf("monitorias_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
