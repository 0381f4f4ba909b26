package di

import (
	"context"

	"go.uber.org/zap"

	"promptflow-backend/application/ports"
	"promptflow-backend/application/services"
	"promptflow-backend/infrastructure/config"
	"promptflow-backend/infrastructure/llm"
	"promptflow-backend/infrastructure/persistence/memory"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	PromptRepo ports.PromptRepository
	Executor   ports.PromptExecutor
	Prompts    *services.PromptService
	Execution  *services.ExecutionService
}

// ProvideLogger creates the application logger
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvidePromptRepository creates the prompt store, seeded with the
// starter flows.
func ProvidePromptRepository(ctx context.Context, cfg *config.Config) (ports.PromptRepository, error) {
	store := memory.NewPromptStore()
	if err := store.Seed(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideExecutor creates the language-model gateway behind its
// circuit breaker.
func ProvideExecutor(cfg *config.Config) (ports.PromptExecutor, error) {
	executor, err := llm.NewOpenAIExecutor(cfg)
	if err != nil {
		return nil, err
	}
	return llm.NewBreakerExecutor(executor), nil
}

// ProvidePromptService creates the prompt CRUD service
func ProvidePromptService(repo ports.PromptRepository, logger *zap.Logger) *services.PromptService {
	return services.NewPromptService(repo, logger)
}

// ProvideExecutionService creates the execution service
func ProvideExecutionService(executor ports.PromptExecutor, cfg *config.Config, logger *zap.Logger) *services.ExecutionService {
	return services.NewExecutionService(executor, cfg.OpenAIModel, logger)
}
