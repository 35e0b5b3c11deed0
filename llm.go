package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"
const defaultOpenAIModel = "gpt-4o-audio-preview"

// ErrEmptySubmission is returned when neither a transcript nor an audio
// attachment was provided; the evaluator is never invoked in that case.
var ErrEmptySubmission = errors.New("insira uma transcrição ou anexe um arquivo de áudio")

// EvaluationRequest is the evaluator input for one monitored call.
type EvaluationRequest struct {
	Transcript  string
	MonitorName string
	Company     string
	Audio       *AudioAttachment
}

// EvaluatorFunc scores one call against the rubric. Implementations
// must return a verdict already validated against the response schema.
type EvaluatorFunc func(ctx context.Context, req EvaluationRequest) (*AnalysisResult, error)

type LLMUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// AnalyzeInteraction sends the call to the configured LLM provider and
// validates the structured verdict. Transport failures are retried with
// exponential backoff; parse and schema failures are not.
func AnalyzeInteraction(ctx context.Context, cfg Config, req EvaluationRequest) (*AnalysisResult, error) {
	if strings.TrimSpace(req.Transcript) == "" && req.Audio == nil {
		return nil, ErrEmptySubmission
	}

	systemPrompt := buildEvaluationPrompt(DefaultScorecard, req.MonitorName, req.Company)
	userPrompt := "Transcrição: " + strings.TrimSpace(req.Transcript)
	if strings.TrimSpace(req.Transcript) == "" {
		userPrompt = "Avalie a ligação a partir da gravação anexada."
	}

	timeout := time.Duration(cfg.EvaluatorTimeoutSec) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var responseText string
	var usage LLMUsage

	call := func() error {
		var callErr error
		switch cfg.LLMProvider {
		case "openai":
			model := cfg.LLMModel
			if model == "" {
				model = defaultOpenAIModel
			}
			log.Printf("llm evaluate provider=openai model=%s transcript_len=%d audio=%t", model, len(req.Transcript), req.Audio != nil)
			responseText, usage, callErr = callOpenAI(ctx, cfg.OpenAIAPIKey, model, systemPrompt, userPrompt, req.Audio)
		default:
			if req.Audio != nil {
				return backoff.Permanent(fmt.Errorf("audio attachments require llm_provider=openai"))
			}
			model := cfg.LLMModel
			if model == "" {
				model = defaultAnthropicModel
			}
			log.Printf("llm evaluate provider=anthropic model=%s transcript_len=%d", model, len(req.Transcript))
			responseText, usage, callErr = callAnthropic(ctx, cfg.AnthropicAPIKey, model, systemPrompt, userPrompt)
		}
		return callErr
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.EvaluatorMaxRetries)), ctx)
	if err := backoff.Retry(call, policy); err != nil {
		return nil, err
	}
	log.Printf("llm evaluate done tokens_in=%d tokens_out=%d", usage.InputTokens, usage.OutputTokens)

	return parseAnalysisResponse(responseText, DefaultScorecard)
}

// buildEvaluationPrompt renders the monitoring instruction: the full
// rubric, the fixed policy rules, and the output templates. The prompt
// is a deterministic function of the catalog and the request context.
func buildEvaluationPrompt(catalog Scorecard, monitorName, company string) string {
	var items strings.Builder
	for _, c := range catalog {
		items.WriteString(fmt.Sprintf("- [%s] %s: %s (Valor: %d pts)\n", c.ID, c.Name, c.Description, c.Weight))
	}

	var fixed strings.Builder
	for _, c := range catalog.AutoConformeCriteria() {
		fixed.WriteString(fmt.Sprintf("   - [%s] %s (%d pts)\n", c.ID, c.Name, c.Weight))
	}

	return fmt.Sprintf(`🔒 AGENTE DE MONITORIA QUANTITATIVA v1.2025
Monitor: %s
Empresa: %s

Você deve avaliar cada um dos itens abaixo com CONFORME ou NÃO CONFORME.

🎯 REGRAS ESPECÍFICAS DE PONTUAÇÃO (OBRIGATÓRIAS):
1. Os seguintes itens devem ser SEMPRE marcados como CONFORME, recebendo pontuação integral automaticamente:
%s
2. Para os DEMAIS itens:
   - Se CONFORME: O agente ganha a pontuação integral do item.
   - Se NÃO CONFORME: O agente ganha 0 pontos no item.

⚠️ REGRA SUPREMA NCG (FALHA GRAVE):
Se houver Falha Grave (desligamento indevido, falta de dados cadastrais em elegíveis em situações críticas, conduta inadequada ou risco à vida não orientado), o SCORE TOTAL deve ser ZERO, independente dos pontos ganhos nos itens acima.

📚 REGRAS DE NEGÓCIO - PRAZOS DE RELIGAÇÃO (CRÍTICO PARA ITEM 5.1):
Ao avaliar o item [5.1] Conhecimento Técnico em chamadas de religação, verifique se o agente informou os prazos corretamente:
- ÁREA URBANA: 24 horas úteis (Horário: 08:00 às 18:00, de Segunda a Sexta).
- ÁREA RURAL: 48 horas úteis (De Segunda a Sexta).
- EXCEÇÃO DE FIM DE SEMANA: Se solicitado na Sexta-feira ANTES das 18:00, a equipe pode realizar a visita no Sábado.
Qualquer informação divergente desses prazos deve resultar em NÃO CONFORME no item [5.1].

📄 FORMATO DO systemReadyText (OBRIGATÓRIO):
Gere o texto final para lançamento seguindo EXATAMENTE este modelo preenchido:
ID: [Gerar um ID único ou extrair da chamada]
Empresa: %s
Data da ligação: [Extrair data da conversa ou usar data atual]
Motivo de contato: [Motivo detectado]
Protocolo: [Extrair da conversa ou informar 'Não informado']

* PONTOS POSITIVOS:
[Listar todos os nomes dos itens que foram CONFORME]

* OBSERVAÇÕES DESPONTUADAS:
[Listar ID, nome e observação de cada item NÃO CONFORME]

💬 FORMATO DO operatorFeedback:
Crie uma mensagem motivadora e construtiva para o operador, estruturada assim:
"Olá [Nome do Operador], aqui está o feedback da sua última monitoria:
✅ O que você mandou bem: [Resumo elogioso dos pontos positivos]
💡 Oportunidade de melhoria: [Explicação clara e gentil sobre o que foi despontuado, especialmente se errou prazos de religação]
🚀 Dica de Ouro: [Uma dica prática para as próximas chamadas]
Seguimos juntos pela qualidade!"

ITENS PARA AVALIAÇÃO:
%s
Responda somente com JSON (sem markdown) neste formato:
{"evaluationStatus": "CONFORME" | "NÃO CONFORME" | "FALHA GRAVE (NCG)", "totalScore": 0-100, "reasonForCall": "...", "isNcgDetected": false, "criteriaScores": [{"criterionId": "1.1", "status": "CONFORME", "pointsEarned": 3, "maxPoints": 3, "observation": "..."}], "summary": "...", "systemReadyText": "...", "operatorFeedback": "..."}`,
		monitorName, company, fixed.String(), company, items.String())
}

// --- Anthropic ---

func callAnthropic(ctx context.Context, apiKey, model, systemPrompt, userPrompt string) (string, LLMUsage, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		log.Printf("llm anthropic error: %v", err)
		return "", LLMUsage{}, fmt.Errorf("Anthropic API error: %w", err)
	}
	usage := LLMUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, usage, nil
		}
	}
	return "", usage, fmt.Errorf("no text content in Anthropic response")
}

// --- OpenAI ---

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []openAIContentPart
}

type openAIContentPart struct {
	Type       string            `json:"type"`
	Text       string            `json:"text,omitempty"`
	InputAudio *openAIInputAudio `json:"input_audio,omitempty"`
}

type openAIInputAudio struct {
	Data   string `json:"data"` // base64
	Format string `json:"format"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func callOpenAI(ctx context.Context, apiKey, model, systemPrompt, userPrompt string, audio *AudioAttachment) (string, LLMUsage, error) {
	var content any = userPrompt
	if audio != nil {
		content = []openAIContentPart{
			{Type: "text", Text: userPrompt},
			{Type: "input_audio", InputAudio: &openAIInputAudio{
				Data:   base64.StdEncoding.EncodeToString(audio.Data),
				Format: audioFormat(audio.MimeType),
			}},
		}
	}
	reqBody := openAIRequest{
		Model: model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("llm openai error: %v", err)
		return "", LLMUsage{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("reading response: %w", err)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(respBody, &openAIResp); err != nil {
		return "", LLMUsage{}, fmt.Errorf("parsing OpenAI response: %w", err)
	}

	if openAIResp.Error != nil {
		log.Printf("llm openai api error: %s", openAIResp.Error.Message)
		return "", LLMUsage{}, fmt.Errorf("OpenAI API error: %s", openAIResp.Error.Message)
	}

	if len(openAIResp.Choices) == 0 {
		return "", LLMUsage{}, fmt.Errorf("no choices in OpenAI response")
	}
	usage := LLMUsage{}
	if openAIResp.Usage != nil {
		usage.InputTokens = openAIResp.Usage.PromptTokens
		usage.OutputTokens = openAIResp.Usage.CompletionTokens
	}
	return openAIResp.Choices[0].Message.Content, usage, nil
}

func audioFormat(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "audio/mpeg", "audio/mp3", "":
		return "mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return "wav"
	default:
		return strings.TrimPrefix(strings.ToLower(mimeType), "audio/")
	}
}

// --- Response parsing ---

type wireCriterionScore struct {
	CriterionID  *string  `json:"criterionId"`
	Status       *string  `json:"status"`
	PointsEarned *float64 `json:"pointsEarned"`
	MaxPoints    *float64 `json:"maxPoints"`
	Observation  *string  `json:"observation"`
}

type wireAnalysisResult struct {
	EvaluationStatus *string              `json:"evaluationStatus"`
	TotalScore       *float64             `json:"totalScore"`
	ReasonForCall    *string              `json:"reasonForCall"`
	IsNcgDetected    *bool                `json:"isNcgDetected"`
	CriteriaScores   []wireCriterionScore `json:"criteriaScores"`
	Summary          *string              `json:"summary"`
	SystemReadyText  *string              `json:"systemReadyText"`
	OperatorFeedback *string              `json:"operatorFeedback"`
}

// parseAnalysisResponse decodes and validates the evaluator's verdict.
// Violations are rejected rather than coerced; NCG zeroing and the
// auto-conforme guarantee are applied later by Scorecard.EnforcePolicy.
func parseAnalysisResponse(responseText string, catalog Scorecard) (*AnalysisResult, error) {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var wire wireAnalysisResult
	if err := json.Unmarshal([]byte(responseText), &wire); err != nil {
		truncated := responseText
		if len(truncated) > 512 {
			truncated = truncated[:512] + "..."
		}
		return nil, fmt.Errorf("parsing evaluator response: %w (response: %s)", err, truncated)
	}

	missing := func(field string) error {
		return fmt.Errorf("evaluator response missing required field %s", field)
	}
	switch {
	case wire.EvaluationStatus == nil:
		return nil, missing("evaluationStatus")
	case wire.TotalScore == nil:
		return nil, missing("totalScore")
	case wire.ReasonForCall == nil:
		return nil, missing("reasonForCall")
	case wire.IsNcgDetected == nil:
		return nil, missing("isNcgDetected")
	case wire.Summary == nil:
		return nil, missing("summary")
	case wire.SystemReadyText == nil:
		return nil, missing("systemReadyText")
	case wire.OperatorFeedback == nil:
		return nil, missing("operatorFeedback")
	}

	status := Status(strings.TrimSpace(*wire.EvaluationStatus))
	if !status.Valid() {
		return nil, fmt.Errorf("evaluator response has unknown evaluationStatus %q", *wire.EvaluationStatus)
	}
	totalScore, ok := asInt(*wire.TotalScore)
	if !ok || totalScore < 0 {
		return nil, fmt.Errorf("evaluator response has invalid totalScore %v", *wire.TotalScore)
	}

	result := &AnalysisResult{
		EvaluationStatus: status,
		TotalScore:       totalScore,
		ReasonForCall:    *wire.ReasonForCall,
		Summary:          *wire.Summary,
		SystemReadyText:  *wire.SystemReadyText,
		OperatorFeedback: *wire.OperatorFeedback,
		IsNcgDetected:    *wire.IsNcgDetected,
	}

	for i, ws := range wire.CriteriaScores {
		if ws.CriterionID == nil || ws.Status == nil || ws.PointsEarned == nil || ws.MaxPoints == nil || ws.Observation == nil {
			return nil, fmt.Errorf("evaluator response criteriaScores[%d] is missing required fields", i)
		}
		id := strings.TrimSpace(*ws.CriterionID)
		criterion, known := catalog.ByID(id)
		if !known {
			return nil, fmt.Errorf("evaluator response references unknown criterion %q", id)
		}
		itemStatus := Status(strings.TrimSpace(*ws.Status))
		if !itemStatus.Valid() {
			return nil, fmt.Errorf("evaluator response has unknown status %q for criterion %s", *ws.Status, id)
		}
		earned, ok := asInt(*ws.PointsEarned)
		if !ok {
			return nil, fmt.Errorf("evaluator response has non-integer pointsEarned %v for criterion %s", *ws.PointsEarned, id)
		}
		max, ok := asInt(*ws.MaxPoints)
		if !ok || max != criterion.Weight {
			return nil, fmt.Errorf("evaluator response has maxPoints %v for criterion %s, rubric weight is %d", *ws.MaxPoints, id, criterion.Weight)
		}
		if earned != 0 && earned != max {
			return nil, fmt.Errorf("evaluator response has partial credit %d/%d for criterion %s", earned, max, id)
		}
		result.CriteriaScores = append(result.CriteriaScores, CriterionScore{
			CriterionID:  id,
			Status:       itemStatus,
			PointsEarned: earned,
			MaxPoints:    max,
			Observation:  *ws.Observation,
		})
	}

	return result, nil
}

func asInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
