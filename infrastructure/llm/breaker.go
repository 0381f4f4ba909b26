package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"promptflow-backend/application/ports"
	pkgerrors "promptflow-backend/pkg/errors"
)

// BreakerExecutor wraps an executor with a circuit breaker so a
// misbehaving model API fails fast instead of queueing up requests.
// The missing-credential condition does not count as a failure: it is
// a configuration state, not an upstream fault.
type BreakerExecutor struct {
	inner   ports.PromptExecutor
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerExecutor wraps inner with default breaker settings.
func NewBreakerExecutor(inner ports.PromptExecutor) *BreakerExecutor {
	settings := gobreaker.Settings{
		Name:    "openai",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ports.ErrMissingAPIKey)
		},
	}
	return &BreakerExecutor{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Execute runs the inner executor through the breaker.
func (b *BreakerExecutor) Execute(ctx context.Context, promptText, model string) (*ports.ExecutionResult, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Execute(ctx, promptText, model)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, pkgerrors.NewExternalError("openai", err).WithCode("CIRCUIT_OPEN")
		}
		return nil, err
	}
	return result.(*ports.ExecutionResult), nil
}
