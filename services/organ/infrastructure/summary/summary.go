// Package summary produces natural-language maintenance reports. The OpenAI
// summarizer calls a chat completion model; the static summarizer is used when
// no API key is configured.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/services/organ/domain/models"
	"github.com/ghuser/organcare/services/organ/domain/repositories"
)

// Fixed texts returned without a model answer.
const (
	NoHistoryText   = "Nenhuma manutenção registrada para análise."
	UnavailableText = "Não foi possível gerar a análise inteligente no momento."
)

const systemPrompt = "Você é um técnico especialista em manutenção de órgãos eletrônicos."

// New returns the OpenAI summarizer when cfg carries an API key and the
// static one otherwise.
func New(cfg *config.Config, log logger.Logger) repositories.Summarizer {
	if cfg.OpenAIAPIKey == "" {
		return Static{}
	}
	oc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}
	return NewOpenAI(openai.NewClientWithConfig(oc), cfg.OpenAIModel, log)
}

// Static never calls a model.
type Static struct{}

// Summarize implements repositories.Summarizer.
func (Static) Summarize(_ context.Context, _ models.Organ, history []models.Maintenance) string {
	if len(history) == 0 {
		return NoHistoryText
	}
	return UnavailableText
}

// OpenAI asks a chat completion model for the summary.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

// NewOpenAI wraps client. An empty model defaults to gpt-4o-mini.
func NewOpenAI(client *openai.Client, model string, log logger.Logger) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: client, model: model, timeout: 30 * time.Second, log: log}
}

// Summarize implements repositories.Summarizer. Empty history never reaches
// the model; any failure yields UnavailableText.
func (o *OpenAI) Summarize(ctx context.Context, organ models.Organ, history []models.Maintenance) string {
	if len(history) == 0 {
		return NoHistoryText
	}

	prompt, err := Prompt(organ, history)
	if err != nil {
		o.log.ErrorContext(ctx, "summary: build prompt", "organ_id", organ.ID, "error", err)
		return UnavailableText
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		o.log.WarnContext(ctx, "summary: chat completion failed", "organ_id", organ.ID, "model", o.model, "error", err)
		return UnavailableText
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		o.log.WarnContext(ctx, "summary: empty completion", "organ_id", organ.ID, "model", o.model)
		return UnavailableText
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

type promptEntry struct {
	Date       string               `json:"date"`
	Occurrence string               `json:"occurrence"`
	Parts      *models.PartExchange `json:"parts,omitempty"`
}

// Prompt renders the user message sent to the model. Photos are left out.
func Prompt(organ models.Organ, history []models.Maintenance) (string, error) {
	entries := make([]promptEntry, 0, len(history))
	for _, m := range history {
		entries = append(entries, promptEntry{
			Date:       m.Date.Format(time.DateOnly),
			Occurrence: m.Occurrence,
			Parts:      m.PartExchangeDetails,
		})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analise o seguinte histórico de manutenção para o órgão eletrônico:\n")
	fmt.Fprintf(&b, "Modelo: %s\n", organ.Model)
	fmt.Fprintf(&b, "Patrimônio: %s\n", organ.PatrimonyNumber)
	fmt.Fprintf(&b, "Histórico: %s\n\n", data)
	b.WriteString("Por favor, forneça um resumo profissional em português do estado do instrumento e sugestões preventivas.")
	return b.String(), nil
}
