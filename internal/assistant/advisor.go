package assistant

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

const systemInstruction = "You are CashFlow AI, a deep financial analysis expert. " +
	"Use Taka (৳) symbols when talking about money. Analyze the user's financial " +
	"context and answer with specific, actionable advice grounded in their actual " +
	"numbers. Keep answers concise."

// FallbackAnswer is returned to the user when the completion call fails.
// The real error is logged, never surfaced.
const FallbackAnswer = "Connection error. Please try again."

// Config carries the completion client settings. An empty APIKey disables
// the assistant entirely.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Advisor answers financial questions against a serialized Context.
type Advisor struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// New builds an Advisor, or nil when cfg carries no credential. Callers
// treat a nil Advisor as "feature off".
func New(cfg Config, logger *slog.Logger) *Advisor {
	if cfg.APIKey == "" {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Advisor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: logger,
	}
}

// Enabled reports whether the assistant can answer questions.
func (a *Advisor) Enabled() bool {
	return a != nil
}

// Ask sends the question plus the financial context to the model. A failed
// call degrades to FallbackAnswer instead of an error so the endpoint
// always has something to show.
func (a *Advisor) Ask(ctx context.Context, question string, finCtx Context) string {
	payload, err := finCtx.JSON()
	if err != nil {
		a.logger.ErrorContext(ctx, "serialize assistant context", "error", err)
		return FallbackAnswer
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.8,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Financial context:\n%s\n\nQuestion: %s", payload, question)},
		},
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "chat completion failed", "error", err)
		return FallbackAnswer
	}
	if len(resp.Choices) == 0 {
		a.logger.WarnContext(ctx, "chat completion returned no choices")
		return FallbackAnswer
	}
	return resp.Choices[0].Message.Content
}

// MonthlyInsight produces the one-sentence dashboard summary for the
// current month's context. Errors degrade to an empty string so the
// dashboard renders without the insight card.
func (a *Advisor) MonthlyInsight(ctx context.Context, finCtx Context) string {
	payload, err := finCtx.JSON()
	if err != nil {
		a.logger.ErrorContext(ctx, "serialize assistant context", "error", err)
		return ""
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.8,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Financial context:\n%s\n\nGive one short sentence summarizing this month's spending.", payload)},
		},
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "insight completion failed", "error", err)
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
