// Package memory provides the in-memory PromptRepository. A
// mutex-guarded map is the designated persistence for this service;
// stored values are deep-copied on the way in and out so callers never
// alias store state.
package memory

import (
	"context"
	"sync"
	"time"

	"promptflow-backend/domain/flow"
	"promptflow-backend/domain/prompt"
	pkgerrors "promptflow-backend/pkg/errors"
)

// PromptStore is an in-memory implementation of ports.PromptRepository.
type PromptStore struct {
	mu      sync.RWMutex
	prompts map[string]prompt.Prompt
	order   []string // insertion order for stable listings
	now     func() time.Time
}

// NewPromptStore creates an empty store.
func NewPromptStore() *PromptStore {
	return &PromptStore{
		prompts: make(map[string]prompt.Prompt),
		now:     time.Now,
	}
}

// Create stores a new prompt.
func (s *PromptStore) Create(ctx context.Context, p prompt.Prompt) (prompt.Prompt, error) {
	if p.ID == "" {
		return prompt.Prompt{}, pkgerrors.NewValidationError("prompt id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	return p.Clone(), nil
}

// GetByID retrieves a prompt by id.
func (s *PromptStore) GetByID(ctx context.Context, id string) (prompt.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.prompts[id]
	if !exists {
		return prompt.Prompt{}, pkgerrors.NewNotFoundError("prompt")
	}
	return p.Clone(), nil
}

// List returns all prompts in insertion order.
func (s *PromptStore) List(ctx context.Context) ([]prompt.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]prompt.Prompt, 0, len(s.order))
	for _, id := range s.order {
		if p, exists := s.prompts[id]; exists {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// ListByCategory returns the prompts filed under a category.
func (s *PromptStore) ListByCategory(ctx context.Context, category string) ([]prompt.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []prompt.Prompt
	for _, id := range s.order {
		if p, exists := s.prompts[id]; exists && p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Update applies a partial update, bumping updatedAt. Concurrent
// updates are last-write-wins; no conflict detection.
func (s *PromptStore) Update(ctx context.Context, id string, upd prompt.Update) (prompt.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.prompts[id]
	if !exists {
		return prompt.Prompt{}, pkgerrors.NewNotFoundError("prompt")
	}

	updated := existing.Clone()
	if upd.Name != nil {
		updated.Name = *upd.Name
	}
	if upd.Description != nil {
		updated.Description = *upd.Description
	}
	if upd.Category != nil {
		updated.Category = *upd.Category
	}
	if upd.Elements != nil {
		updated.Elements = upd.Elements.Clone()
	}
	updated.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	s.prompts[id] = updated
	return updated.Clone(), nil
}

// Delete removes a prompt, reporting whether it existed.
func (s *PromptStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.prompts[id]; !exists {
		return false, nil
	}
	delete(s.prompts, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Seed installs the starter prompts shipped with a fresh instance.
func (s *PromptStore) Seed(ctx context.Context) error {
	for _, seed := range seedPrompts() {
		p, err := prompt.New(seed.id, seed.name, seed.description, seed.category, seed.elements, s.now())
		if err != nil {
			return err
		}
		if _, err := s.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

type seedPrompt struct {
	id          string
	name        string
	description string
	category    string
	elements    flow.Elements
}

func seedPrompts() []seedPrompt {
	return []seedPrompt{
		{
			id:          "seed-text-summarization",
			name:        "Text Summarization Flow",
			description: "Summarizes text content efficiently",
			category:    "Creative Writing",
			elements: flow.Elements{
				Nodes: []flow.Node{
					{
						ID:       "1",
						Type:     flow.KindInput,
						Position: flow.Position{X: 100, Y: 100},
						Data: flow.NodeData{
							Label:       "User Input",
							Description: "Provide a text to summarize",
						},
					},
					{
						ID:       "2",
						Type:     flow.KindProcess,
						Position: flow.Position{X: 400, Y: 100},
						Data: flow.NodeData{
							Label:       "Text Analysis",
							Description: "Extract key information",
						},
					},
					{
						ID:       "3",
						Type:     flow.KindProcess,
						Position: flow.Position{X: 400, Y: 250},
						Data: flow.NodeData{
							Label:       "Summarization",
							Description: "Create concise summary",
							Parameters: map[string]string{
								"max_length": "100",
								"min_length": "30",
							},
							Template: "Summarize the following text in {{max_length}} words or less, but not less than {{min_length}} words:\n\n{{input}}",
						},
					},
					{
						ID:       "4",
						Type:     flow.KindOutput,
						Position: flow.Position{X: 100, Y: 250},
						Data: flow.NodeData{
							Label:       "Final Output",
							Description: "Return summarized text",
						},
					},
				},
				Edges: []flow.Edge{
					{ID: "e1-2", Source: "1", Target: "2"},
					{ID: "e2-3", Source: "2", Target: "3"},
					{ID: "e3-4", Source: "3", Target: "4"},
				},
			},
		},
		{
			id:          "seed-customer-support",
			name:        "Customer Support Assistant",
			description: "Helps with customer inquiries",
			category:    "Customer Support",
			elements:    flow.Elements{Nodes: []flow.Node{}, Edges: []flow.Edge{}},
		},
		{
			id:          "seed-image-description",
			name:        "Image Description Generator",
			description: "Generates detailed image descriptions",
			category:    "Creative Writing",
			elements:    flow.Elements{Nodes: []flow.Node{}, Edges: []flow.Edge{}},
		},
	}
}
