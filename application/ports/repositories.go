// Package ports defines the interfaces the application layer depends
// on. Infrastructure provides the implementations; handlers and
// services only ever see these contracts.
package ports

import (
	"context"
	"errors"

	"promptflow-backend/domain/prompt"
)

// PromptRepository persists named prompts. Implementations must treat
// stored values as immutable: reads hand out copies and last write
// wins on concurrent updates.
type PromptRepository interface {
	Create(ctx context.Context, p prompt.Prompt) (prompt.Prompt, error)
	GetByID(ctx context.Context, id string) (prompt.Prompt, error)
	List(ctx context.Context) ([]prompt.Prompt, error)
	ListByCategory(ctx context.Context, category string) ([]prompt.Prompt, error)
	Update(ctx context.Context, id string, upd prompt.Update) (prompt.Prompt, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ErrMissingAPIKey is the distinguished missing-credential condition.
// Callers branch on it to prompt for a key instead of reporting a
// generic failure.
var ErrMissingAPIKey = errors.New("language model API key not configured")

// Usage carries token accounting returned by the model API.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ExecutionResult is the successful outcome of a model call.
type ExecutionResult struct {
	Result string
	Usage  Usage
}

// PromptExecutor sends a compiled prompt to the language-model API.
// A single attempt is made; transport and API failures are reported
// verbatim.
type PromptExecutor interface {
	Execute(ctx context.Context, promptText, model string) (*ExecutionResult, error)
}
