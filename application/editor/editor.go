// Package editor implements the flow-graph editing core: the single
// mutator of a flow's elements, coordinated with snapshot undo/redo
// history. The rendering client calls these operations and reads the
// elements back; it never mutates them directly.
//
// Editor operations are synchronous and run to completion, so no
// caller can observe a partially mutated graph. Benign UI races
// (acting on a node that was already deleted, connecting to a missing
// endpoint, moving a locked node) are silent no-ops rather than
// errors.
package editor

import (
	"github.com/google/uuid"

	"promptflow-backend/domain/flow"
	pkgerrors "promptflow-backend/pkg/errors"
)

// moveStep is the fixed vertical distance used by the move up / move
// down actions.
const moveStep = 100

// duplicateOffset displaces a duplicated node from its source.
const duplicateOffset = 20

// Editor owns one flow graph and its history. Not safe for concurrent
// use; the editing model is single-threaded and event-driven.
type Editor struct {
	elements flow.Elements
	history  *History
	selected string // selected node id, "" when nothing is selected
}

// New creates an editor over an initial graph with default history
// bounds. The initial elements are cloned in.
func New(initial flow.Elements) *Editor {
	return NewWithHistory(initial, DefaultHistoryLimit)
}

// NewWithHistory creates an editor with an explicit history cap.
func NewWithHistory(initial flow.Elements, historyLimit int) *Editor {
	return &Editor{
		elements: initial.Clone(),
		history:  NewHistory(historyLimit),
	}
}

// Elements returns a deep copy of the current graph.
func (ed *Editor) Elements() flow.Elements {
	return ed.elements.Clone()
}

// SelectedNode returns the currently selected node, if any.
func (ed *Editor) SelectedNode() (flow.Node, bool) {
	if ed.selected == "" {
		return flow.Node{}, false
	}
	return ed.elements.NodeByID(ed.selected)
}

// CanUndo reports whether an undo step is available.
func (ed *Editor) CanUndo() bool { return ed.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (ed *Editor) CanRedo() bool { return ed.history.CanRedo() }

// ApplyNodeChanges bulk-applies canvas deltas to the node sequence.
// The whole batch is one history step regardless of how many deltas it
// bundles; a batch where nothing applies takes no step at all.
// Position and removal deltas targeting locked nodes are skipped;
// removal cascades incident edges.
func (ed *Editor) ApplyNodeChanges(changes []NodeChange) {
	if !ed.anyNodeChangeApplies(changes) {
		return
	}
	ed.history.Snapshot(ed.elements)
	for _, change := range changes {
		idx := ed.nodeIndex(change.NodeID)
		if idx < 0 {
			continue
		}
		node := &ed.elements.Nodes[idx]
		switch change.Type {
		case ChangePosition:
			if node.Data.Locked || change.Position == nil {
				continue
			}
			node.Position = *change.Position
		case ChangeSelect:
			node.Selected = change.Selected
			if change.Selected {
				ed.selected = node.ID
			} else if ed.selected == node.ID {
				ed.selected = ""
			}
		case ChangeRemove:
			if node.Data.Locked {
				continue
			}
			ed.removeNodeAt(idx)
		}
	}
}

// ApplyEdgeChanges bulk-applies selection and removal deltas to the
// edge sequence as a single history step. A batch where nothing
// applies takes no step.
func (ed *Editor) ApplyEdgeChanges(changes []EdgeChange) {
	if !ed.anyEdgeChangeApplies(changes) {
		return
	}
	ed.history.Snapshot(ed.elements)
	for _, change := range changes {
		idx := ed.edgeIndex(change.EdgeID)
		if idx < 0 {
			continue
		}
		switch change.Type {
		case ChangeSelect:
			ed.elements.Edges[idx].Selected = change.Selected
		case ChangeRemove:
			ed.elements.Edges = append(ed.elements.Edges[:idx], ed.elements.Edges[idx+1:]...)
		}
	}
}

// Connect creates an edge between two existing nodes, inferring the
// semantic style from the endpoint kinds. Unknown endpoints and repeat
// connections (an edge with the same endpoints and handles already
// exists) make the call a silent no-op with no history entry.
func (ed *Editor) Connect(source, target, sourceHandle, targetHandle string) (flow.Edge, bool) {
	src, ok := ed.elements.NodeByID(source)
	if !ok {
		return flow.Edge{}, false
	}
	dst, ok := ed.elements.NodeByID(target)
	if !ok {
		return flow.Edge{}, false
	}
	for _, e := range ed.elements.Edges {
		if e.Source == source && e.Target == target &&
			e.SourceHandle == sourceHandle && e.TargetHandle == targetHandle {
			return flow.Edge{}, false
		}
	}

	ed.history.Snapshot(ed.elements)

	edge := flow.Edge{
		ID:           "e" + source + "-" + target,
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		Type:         flow.InferEdgeStyle(src.Type, dst.Type),
		Data: &flow.EdgeData{
			SourceType: src.Type,
			TargetType: dst.Type,
		},
	}
	ed.elements.Edges = append(ed.elements.Edges, edge)
	return edge.Clone(), true
}

// CreateNodeAt appends a fresh node at the given graph coordinate and
// selects it. The caller translates screen coordinates into graph
// coordinates before calling; the editor never touches the canvas.
// Invalid kinds are rejected as a no-op.
func (ed *Editor) CreateNodeAt(kind flow.NodeKind, position flow.Position, label, description string) (flow.Node, bool) {
	if !kind.Valid() {
		return flow.Node{}, false
	}

	ed.history.Snapshot(ed.elements)

	node := flow.Node{
		ID:       uuid.New().String(),
		Type:     kind,
		Position: position,
		Data: flow.NodeData{
			Label:       label,
			Description: description,
			Parameters:  map[string]string{},
		},
		Selected: true,
	}
	ed.clearNodeSelection()
	ed.elements.Nodes = append(ed.elements.Nodes, node)
	ed.selected = node.ID
	return node.Clone(), true
}

// NodeDataUpdate is a partial node-data patch. Nil fields are left
// untouched; a non-nil Parameters map replaces the whole mapping.
type NodeDataUpdate struct {
	Label       *string
	Description *string
	Template    *string
	Parameters  map[string]string
}

// UpdateNodeData merges a partial patch into a node's data. Property
// edits are allowed on locked nodes. Unknown ids are a silent no-op.
func (ed *Editor) UpdateNodeData(nodeID string, update NodeDataUpdate) {
	idx := ed.nodeIndex(nodeID)
	if idx < 0 {
		return
	}

	ed.history.Snapshot(ed.elements)

	data := &ed.elements.Nodes[idx].Data
	if update.Label != nil {
		data.Label = *update.Label
	}
	if update.Description != nil {
		data.Description = *update.Description
	}
	if update.Template != nil {
		data.Template = *update.Template
	}
	if update.Parameters != nil {
		params := make(map[string]string, len(update.Parameters))
		for k, v := range update.Parameters {
			params[k] = v
		}
		data.Parameters = params
	}
}

// SetLocked toggles the locked flag. While locked, position and
// removal mutations on the node are rejected; property edits still go
// through.
func (ed *Editor) SetLocked(nodeID string, locked bool) {
	idx := ed.nodeIndex(nodeID)
	if idx < 0 {
		return
	}
	ed.history.Snapshot(ed.elements)
	ed.elements.Nodes[idx].Data.Locked = locked
}

// DuplicateNode clones a node under a fresh id, offset by
// (+20,+20). Incident edges are not duplicated.
func (ed *Editor) DuplicateNode(nodeID string) (flow.Node, bool) {
	idx := ed.nodeIndex(nodeID)
	if idx < 0 {
		return flow.Node{}, false
	}

	ed.history.Snapshot(ed.elements)

	clone := ed.elements.Nodes[idx].Clone()
	clone.ID = uuid.New().String()
	clone.Position.X += duplicateOffset
	clone.Position.Y += duplicateOffset
	clone.Selected = false
	ed.elements.Nodes = append(ed.elements.Nodes, clone)
	return clone.Clone(), true
}

// MoveNodeRelative shifts a node vertically by dy. Locked and unknown
// nodes are a silent no-op.
func (ed *Editor) MoveNodeRelative(nodeID string, dy float64) {
	idx := ed.nodeIndex(nodeID)
	if idx < 0 || ed.elements.Nodes[idx].Data.Locked {
		return
	}
	ed.history.Snapshot(ed.elements)
	ed.elements.Nodes[idx].Position.Y += dy
}

// MoveNodeUp shifts a node up by the fixed step.
func (ed *Editor) MoveNodeUp(nodeID string) {
	ed.MoveNodeRelative(nodeID, -moveStep)
}

// MoveNodeDown shifts a node down by the fixed step.
func (ed *Editor) MoveNodeDown(nodeID string) {
	ed.MoveNodeRelative(nodeID, moveStep)
}

// DeleteNode removes a node and cascades removal of every edge whose
// source or target references it. Locked nodes are a no-op.
func (ed *Editor) DeleteNode(nodeID string) bool {
	idx := ed.nodeIndex(nodeID)
	if idx < 0 || ed.elements.Nodes[idx].Data.Locked {
		return false
	}
	ed.history.Snapshot(ed.elements)
	ed.removeNodeAt(idx)
	return true
}

// Undo restores the previous snapshot. Selection is cleared: the
// selected node may not exist in the restored state.
func (ed *Editor) Undo() bool {
	restored, ok := ed.history.Undo(ed.elements)
	if !ok {
		return false
	}
	ed.elements = restored
	ed.selected = ""
	return true
}

// Redo restores the next snapshot, mirroring Undo.
func (ed *Editor) Redo() bool {
	restored, ok := ed.history.Redo(ed.elements)
	if !ok {
		return false
	}
	ed.elements = restored
	ed.selected = ""
	return true
}

// SelectNode marks a node as the current selection. Pure UI state:
// not a history step. Unknown ids clear the selection.
func (ed *Editor) SelectNode(nodeID string) {
	if ed.elements.HasNode(nodeID) {
		ed.selected = nodeID
		return
	}
	ed.selected = ""
}

// ClearSelection drops the current selection.
func (ed *Editor) ClearSelection() {
	ed.selected = ""
}

// SetElements replaces the whole graph as one history step. Used by
// template loading and import paths.
func (ed *Editor) SetElements(elements flow.Elements) {
	ed.history.Snapshot(ed.elements)
	ed.elements = elements.Clone()
	ed.selected = ""
}

// ImportElements validates an imported graph and replaces the live one.
// Malformed payloads are rejected before any mutation: the live graph
// is left untouched and no history entry is made.
func (ed *Editor) ImportElements(elements flow.Elements) error {
	if elements.Nodes == nil || elements.Edges == nil {
		return pkgerrors.NewValidationError("import payload must contain nodes and edges arrays")
	}
	if err := elements.Validate(); err != nil {
		return err
	}
	ed.SetElements(elements)
	return nil
}

// anyNodeChangeApplies reports whether at least one delta in the batch
// would take effect, so no-op batches never push a history snapshot.
func (ed *Editor) anyNodeChangeApplies(changes []NodeChange) bool {
	for _, change := range changes {
		idx := ed.nodeIndex(change.NodeID)
		if idx < 0 {
			continue
		}
		switch change.Type {
		case ChangePosition:
			if !ed.elements.Nodes[idx].Data.Locked && change.Position != nil {
				return true
			}
		case ChangeSelect:
			return true
		case ChangeRemove:
			if !ed.elements.Nodes[idx].Data.Locked {
				return true
			}
		}
	}
	return false
}

func (ed *Editor) anyEdgeChangeApplies(changes []EdgeChange) bool {
	for _, change := range changes {
		if ed.edgeIndex(change.EdgeID) < 0 {
			continue
		}
		switch change.Type {
		case ChangeSelect, ChangeRemove:
			return true
		}
	}
	return false
}

func (ed *Editor) nodeIndex(id string) int {
	for i, n := range ed.elements.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (ed *Editor) edgeIndex(id string) int {
	for i, e := range ed.elements.Edges {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// clearNodeSelection drops the selected flag from every node.
func (ed *Editor) clearNodeSelection() {
	for i := range ed.elements.Nodes {
		ed.elements.Nodes[i].Selected = false
	}
}

// removeNodeAt removes the node at idx and every edge referencing it.
func (ed *Editor) removeNodeAt(idx int) {
	id := ed.elements.Nodes[idx].ID
	ed.elements.Nodes = append(ed.elements.Nodes[:idx], ed.elements.Nodes[idx+1:]...)

	kept := ed.elements.Edges[:0]
	for _, e := range ed.elements.Edges {
		if e.Source == id || e.Target == id {
			continue
		}
		kept = append(kept, e)
	}
	ed.elements.Edges = kept

	if ed.selected == id {
		ed.selected = ""
	}
}
