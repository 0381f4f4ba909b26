package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptflow-backend/domain/flow"
	"promptflow-backend/domain/prompt"
	pkgerrors "promptflow-backend/pkg/errors"
)

func newTestPrompt(t *testing.T, id, name, category string) prompt.Prompt {
	t.Helper()
	elements := flow.Elements{
		Nodes: []flow.Node{{ID: "1", Type: flow.KindInput, Data: flow.NodeData{Label: "In"}}},
		Edges: []flow.Edge{},
	}
	p, err := prompt.New(id, name, "desc", category, elements, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestPromptStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewPromptStore()

	created, err := store.Create(ctx, newTestPrompt(t, "p1", "First", "General"))
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)

	got, err := store.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)

	_, err = store.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	deleted, err := store.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, deleted, "deleting a missing prompt is not an error")
}

func TestPromptStore_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewPromptStore()

	for _, id := range []string{"c", "a", "b"} {
		_, err := store.Create(ctx, newTestPrompt(t, id, "Prompt "+id, "General"))
		require.NoError(t, err)
	}

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "b", all[2].ID)
}

func TestPromptStore_ListByCategory(t *testing.T) {
	ctx := context.Background()
	store := NewPromptStore()

	_, err := store.Create(ctx, newTestPrompt(t, "p1", "One", "Writing"))
	require.NoError(t, err)
	_, err = store.Create(ctx, newTestPrompt(t, "p2", "Two", "Support"))
	require.NoError(t, err)
	_, err = store.Create(ctx, newTestPrompt(t, "p3", "Three", "Writing"))
	require.NoError(t, err)

	writing, err := store.ListByCategory(ctx, "Writing")
	require.NoError(t, err)
	require.Len(t, writing, 2)
	assert.Equal(t, "p1", writing[0].ID)
	assert.Equal(t, "p3", writing[1].ID)

	none, err := store.ListByCategory(ctx, "Empty")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPromptStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewPromptStore()
	store.now = func() time.Time {
		return time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	}

	_, err := store.Create(ctx, newTestPrompt(t, "p1", "Before", "General"))
	require.NoError(t, err)

	name := "After"
	updated, err := store.Update(ctx, "p1", prompt.Update{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "desc", updated.Description, "unspecified fields survive")
	assert.Equal(t, "2026-01-01T00:00:00Z", updated.CreatedAt, "createdAt is immutable")
	assert.Equal(t, "2026-02-02T12:00:00Z", updated.UpdatedAt)

	_, err = store.Update(ctx, "missing", prompt.Update{Name: &name})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestPromptStore_NoAliasing(t *testing.T) {
	ctx := context.Background()
	store := NewPromptStore()

	original := newTestPrompt(t, "p1", "First", "General")
	_, err := store.Create(ctx, original)
	require.NoError(t, err)

	// Mutating the caller's copy must not leak into the store.
	original.Elements.Nodes[0].Data.Label = "tampered"

	got, err := store.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "In", got.Elements.Nodes[0].Data.Label)

	// Mutating a read result must not leak either.
	got.Elements.Nodes[0].Data.Label = "tampered again"
	again, err := store.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "In", again.Elements.Nodes[0].Data.Label)
}

func TestPromptStore_Seed(t *testing.T) {
	ctx := context.Background()
	store := NewPromptStore()

	require.NoError(t, store.Seed(ctx))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Text Summarization Flow", all[0].Name)

	summarization := all[0]
	require.Len(t, summarization.Elements.Nodes, 4)
	require.Len(t, summarization.Elements.Edges, 3)
	assert.NoError(t, summarization.Elements.Validate())

	writing, err := store.ListByCategory(ctx, "Creative Writing")
	require.NoError(t, err)
	assert.Len(t, writing, 2)
}

func TestPromptStore_CreateRequiresID(t *testing.T) {
	store := NewPromptStore()

	_, err := store.Create(context.Background(), prompt.Prompt{Name: "no id"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}
