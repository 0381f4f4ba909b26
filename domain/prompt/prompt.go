// Package prompt holds the Named Prompt entity: a stored, named flow
// graph with its catalogue metadata.
package prompt

import (
	"strings"
	"time"

	"promptflow-backend/domain/flow"
	pkgerrors "promptflow-backend/pkg/errors"
)

// Prompt is a named flow persisted by the storage layer.
type Prompt struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	Elements    flow.Elements `json:"elements"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

// Clone returns a deep copy, detached from any stored state.
func (p Prompt) Clone() Prompt {
	out := p
	out.Elements = p.Elements.Clone()
	return out
}

// Update describes a partial update. Nil fields are left untouched.
type Update struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Elements    *flow.Elements `json:"elements,omitempty"`
}

// Validate checks the update payload before any mutation is applied.
func (u Update) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return pkgerrors.NewValidationError("name cannot be empty")
	}
	if u.Elements != nil {
		if err := u.Elements.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// New assembles a prompt with validated fields and fresh timestamps.
func New(id, name, description, category string, elements flow.Elements, now time.Time) (Prompt, error) {
	if strings.TrimSpace(name) == "" {
		return Prompt{}, pkgerrors.NewValidationError("name cannot be empty")
	}
	if err := elements.Validate(); err != nil {
		return Prompt{}, err
	}
	ts := now.UTC().Format(time.RFC3339)
	return Prompt{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Elements:    elements.Clone(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}
