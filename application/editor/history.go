package editor

import "promptflow-backend/domain/flow"

// DefaultHistoryLimit bounds the past stack. Beyond the limit the
// oldest entry is dropped, keeping memory proportional to the limit
// rather than to session length.
const DefaultHistoryLimit = 100

// History is a snapshot-based undo/redo store over flow elements.
// Entries are deep copies taken before a mutation commits (pre-image
// semantics). State is scoped to one editor instance; there is no
// shared singleton.
type History struct {
	past   []flow.Elements // older -> newer
	future []flow.Elements // nearer -> farther
	limit  int
}

// NewHistory creates a history bounded to limit past entries.
// Non-positive limits fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Snapshot stores a deep copy of the pre-mutation state and clears the
// redo stack: branching history is not supported, so any fresh edit
// invalidates the redo chain.
//
// Snapshot is only called by forward-editing operations, never from
// inside Undo or Redo.
func (h *History) Snapshot(current flow.Elements) {
	h.past = append(h.past, current.Clone())
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.future = nil
}

// Undo pops the most recent past entry, parking the current live state
// at the front of the redo stack. The popped entry transfers ownership
// to the caller. Returns false when there is nothing to undo.
func (h *History) Undo(current flow.Elements) (flow.Elements, bool) {
	if len(h.past) == 0 {
		return flow.Elements{}, false
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]flow.Elements{current.Clone()}, h.future...)
	return previous, true
}

// Redo is the mirror of Undo using the future stack.
func (h *History) Redo(current flow.Elements) (flow.Elements, bool) {
	if len(h.future) == 0 {
		return flow.Elements{}, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, current.Clone())
	return next, true
}

// CanUndo reports whether the past stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether the future stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}
