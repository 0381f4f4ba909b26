// Package llm implements the execution gateway: it forwards compiled
// prompts to the OpenAI API and translates the outcomes the rest of
// the application branches on.
package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"promptflow-backend/application/ports"
	"promptflow-backend/infrastructure/config"
	pkgerrors "promptflow-backend/pkg/errors"
)

const (
	systemPrompt = "You are a helpful assistant that follows instructions precisely."

	temperature = 0.7
	maxTokens   = 1500
)

// OpenAIExecutor calls the OpenAI chat completions API through
// langchaingo. When no API key is configured the executor still
// constructs; every Execute call then reports the distinguished
// missing-credential condition instead of a transport failure.
type OpenAIExecutor struct {
	client *openai.LLM
}

// NewOpenAIExecutor builds an executor from configuration. A missing
// key is not a construction error: the service runs without a
// credential and surfaces the condition at execution time.
func NewOpenAIExecutor(cfg *config.Config) (*OpenAIExecutor, error) {
	if cfg.OpenAIAPIKey == "" {
		return &OpenAIExecutor{}, nil
	}

	opts := []openai.Option{
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.OpenAIModel),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, pkgerrors.NewExternalError("openai", err)
	}
	return &OpenAIExecutor{client: client}, nil
}

// Execute sends the prompt in a single attempt. Failures are reported
// verbatim; no retry policy applies.
func (e *OpenAIExecutor) Execute(ctx context.Context, promptText, model string) (*ports.ExecutionResult, error) {
	if e.client == nil {
		return nil, ports.ErrMissingAPIKey
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, promptText),
	}

	resp, err := e.client.GenerateContent(ctx, messages,
		llms.WithModel(model),
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return nil, pkgerrors.NewExternalError("openai", err)
	}
	if len(resp.Choices) == 0 {
		return nil, pkgerrors.NewExternalError("openai", nil).WithCode("EMPTY_RESPONSE")
	}

	choice := resp.Choices[0]
	return &ports.ExecutionResult{
		Result: choice.Content,
		Usage: ports.Usage{
			PromptTokens:     generationInfoInt(choice.GenerationInfo, "PromptTokens"),
			CompletionTokens: generationInfoInt(choice.GenerationInfo, "CompletionTokens"),
			TotalTokens:      generationInfoInt(choice.GenerationInfo, "TotalTokens"),
		},
	}, nil
}

func generationInfoInt(info map[string]any, key string) int {
	if info == nil {
		return 0
	}
	if v, ok := info[key].(int); ok {
		return v
	}
	return 0
}
