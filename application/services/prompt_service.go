// Package services holds the application services sitting between the
// REST handlers and the ports. They validate, orchestrate, and log;
// domain rules live in the domain packages.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptflow-backend/application/ports"
	"promptflow-backend/domain/flow"
	"promptflow-backend/domain/prompt"
)

// PromptService provides CRUD over named prompts.
type PromptService struct {
	repo   ports.PromptRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewPromptService creates a new prompt service
func NewPromptService(repo ports.PromptRepository, logger *zap.Logger) *PromptService {
	return &PromptService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and stores a new named prompt.
func (s *PromptService) Create(ctx context.Context, name, description, category string, elements flow.Elements) (prompt.Prompt, error) {
	p, err := prompt.New(uuid.New().String(), name, description, category, elements, s.now())
	if err != nil {
		return prompt.Prompt{}, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return prompt.Prompt{}, err
	}

	s.logger.Info("prompt created",
		zap.String("promptID", created.ID),
		zap.String("name", created.Name),
		zap.Int("nodes", len(created.Elements.Nodes)),
	)
	return created, nil
}

// Get fetches a prompt by id. Unknown ids surface as not-found,
// distinct from validation failures.
func (s *PromptService) Get(ctx context.Context, id string) (prompt.Prompt, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all stored prompts. Ordering is unspecified.
func (s *PromptService) List(ctx context.Context) ([]prompt.Prompt, error) {
	return s.repo.List(ctx)
}

// ListByCategory returns the prompts filed under a category.
func (s *PromptService) ListByCategory(ctx context.Context, category string) ([]prompt.Prompt, error) {
	return s.repo.ListByCategory(ctx, category)
}

// Update applies a partial update. Validation happens before any
// mutation; concurrent updates are last-write-wins.
func (s *PromptService) Update(ctx context.Context, id string, upd prompt.Update) (prompt.Prompt, error) {
	if err := upd.Validate(); err != nil {
		return prompt.Prompt{}, err
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return prompt.Prompt{}, err
	}

	s.logger.Info("prompt updated", zap.String("promptID", id))
	return updated, nil
}

// Delete removes a prompt, reporting whether it existed.
func (s *PromptService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("prompt deleted", zap.String("promptID", id))
	}
	return deleted, nil
}
