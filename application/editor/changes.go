package editor

import "promptflow-backend/domain/flow"

// ChangeType classifies a canvas interaction delta.
type ChangeType string

const (
	ChangePosition ChangeType = "position"
	ChangeSelect   ChangeType = "select"
	ChangeRemove   ChangeType = "remove"
)

// NodeChange is one delta produced by a canvas gesture. A drag emits a
// batch of position changes; the batch is applied as a single history
// step so undo granularity stays at the gesture level.
type NodeChange struct {
	Type     ChangeType
	NodeID   string
	Position *flow.Position // set for position changes
	Selected bool           // set for select changes
}

// EdgeChange is the edge counterpart: selection and removal only.
type EdgeChange struct {
	Type     ChangeType
	EdgeID   string
	Selected bool
}

// PositionChange builds a position delta.
func PositionChange(nodeID string, pos flow.Position) NodeChange {
	return NodeChange{Type: ChangePosition, NodeID: nodeID, Position: &pos}
}

// SelectChange builds a selection delta.
func SelectChange(nodeID string, selected bool) NodeChange {
	return NodeChange{Type: ChangeSelect, NodeID: nodeID, Selected: selected}
}

// RemoveChange builds a removal delta.
func RemoveChange(nodeID string) NodeChange {
	return NodeChange{Type: ChangeRemove, NodeID: nodeID}
}
