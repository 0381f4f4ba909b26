package services

import (
	"context"

	"go.uber.org/zap"

	"promptflow-backend/application/compiler"
	"promptflow-backend/application/ports"
	"promptflow-backend/domain/flow"
)

// ExecutionService compiles a flow and forwards the prompt to the
// language-model gateway. Compilation is pure; the gateway call is the
// only suspension point and is attempted exactly once.
type ExecutionService struct {
	executor     ports.PromptExecutor
	defaultModel string
	logger       *zap.Logger
}

// NewExecutionService creates a new execution service
func NewExecutionService(executor ports.PromptExecutor, defaultModel string, logger *zap.Logger) *ExecutionService {
	return &ExecutionService{
		executor:     executor,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// ExecutionOutcome is the result of one run. Prompt is always
// populated, including on failure, so callers can show what would
// have been sent.
type ExecutionOutcome struct {
	Result string
	Prompt string
	Model  string
	Usage  ports.Usage
}

// Execute compiles the elements, substitutes the supplied variable
// values, and runs the prompt. Unfilled variables stay literal; a
// missing credential surfaces as ports.ErrMissingAPIKey alongside the
// compiled prompt.
func (s *ExecutionService) Execute(ctx context.Context, elements flow.Elements, userInputs map[string]string, model string) (ExecutionOutcome, error) {
	promptText := compiler.Substitute(compiler.Compile(elements), userInputs)

	if model == "" {
		model = s.defaultModel
	}

	outcome := ExecutionOutcome{Prompt: promptText, Model: model}

	result, err := s.executor.Execute(ctx, promptText, model)
	if err != nil {
		s.logger.Warn("prompt execution failed",
			zap.String("model", model),
			zap.Error(err),
		)
		return outcome, err
	}

	outcome.Result = result.Result
	outcome.Usage = result.Usage

	s.logger.Info("prompt executed",
		zap.String("model", model),
		zap.Int("promptTokens", result.Usage.PromptTokens),
		zap.Int("completionTokens", result.Usage.CompletionTokens),
	)
	return outcome, nil
}

// Variables lists the unresolved variable names a flow references, in
// first-seen order. Used to prompt the caller for values before a run.
func (s *ExecutionService) Variables(elements flow.Elements) []string {
	return compiler.ExtractVariables(elements)
}
