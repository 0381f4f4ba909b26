package flow

import (
	"fmt"

	pkgerrors "promptflow-backend/pkg/errors"
)

// Elements is the aggregate flow graph: ordered node and edge
// sequences. Order is insertion order; it carries no semantics but is
// preserved across persistence round-trips for UI stability.
//
// Elements is a value that is only mutated through the editor, so that
// history snapshots stay consistent with every change.
type Elements struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a structurally independent deep copy. History
// correctness depends on this: a stored snapshot must never share
// mutable substructure with the live graph.
func (e Elements) Clone() Elements {
	out := Elements{
		Nodes: make([]Node, len(e.Nodes)),
		Edges: make([]Edge, len(e.Edges)),
	}
	for i, n := range e.Nodes {
		out.Nodes[i] = n.Clone()
	}
	for i, edge := range e.Edges {
		out.Edges[i] = edge.Clone()
	}
	return out
}

// NodeByID returns a copy of the node with the given id.
func (e Elements) NodeByID(id string) (Node, bool) {
	for _, n := range e.Nodes {
		if n.ID == id {
			return n.Clone(), true
		}
	}
	return Node{}, false
}

// HasNode reports whether a node with the given id exists.
func (e Elements) HasNode(id string) bool {
	for _, n := range e.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// EdgesFrom returns the edges whose source is the given node id.
func (e Elements) EdgesFrom(source string) []Edge {
	var out []Edge
	for _, edge := range e.Edges {
		if edge.Source == source {
			out = append(out, edge.Clone())
		}
	}
	return out
}

// DanglingEdges returns edges referencing node ids that no longer
// exist. A well-formed graph has none: node deletion cascades.
func (e Elements) DanglingEdges() []Edge {
	ids := make(map[string]struct{}, len(e.Nodes))
	for _, n := range e.Nodes {
		ids[n.ID] = struct{}{}
	}
	var out []Edge
	for _, edge := range e.Edges {
		if _, ok := ids[edge.Source]; !ok {
			out = append(out, edge.Clone())
			continue
		}
		if _, ok := ids[edge.Target]; !ok {
			out = append(out, edge.Clone())
		}
	}
	return out
}

// Validate checks structural integrity: node and edge ids present and
// unique, kinds drawn from the closed set, edge endpoints resolvable.
func (e Elements) Validate() error {
	ids := make(map[string]struct{}, len(e.Nodes))
	for _, n := range e.Nodes {
		if n.ID == "" {
			return pkgerrors.NewValidationError("node id cannot be empty")
		}
		if _, dup := ids[n.ID]; dup {
			return pkgerrors.NewValidationError(fmt.Sprintf("duplicate node id %q", n.ID))
		}
		if !n.Type.Valid() {
			return pkgerrors.NewValidationError(fmt.Sprintf("node %q has unknown kind %q", n.ID, n.Type))
		}
		ids[n.ID] = struct{}{}
	}
	edgeIDs := make(map[string]struct{}, len(e.Edges))
	for _, edge := range e.Edges {
		if edge.ID == "" {
			return pkgerrors.NewValidationError("edge id cannot be empty")
		}
		if _, dup := edgeIDs[edge.ID]; dup {
			return pkgerrors.NewValidationError(fmt.Sprintf("duplicate edge id %q", edge.ID))
		}
		if _, ok := ids[edge.Source]; !ok {
			return pkgerrors.NewValidationError(fmt.Sprintf("edge %q references unknown source %q", edge.ID, edge.Source))
		}
		if _, ok := ids[edge.Target]; !ok {
			return pkgerrors.NewValidationError(fmt.Sprintf("edge %q references unknown target %q", edge.ID, edge.Target))
		}
		edgeIDs[edge.ID] = struct{}{}
	}
	return nil
}

// Equal reports structural equality of two graphs, ignoring nothing:
// order, positions and data all participate.
func (e Elements) Equal(other Elements) bool {
	if len(e.Nodes) != len(other.Nodes) || len(e.Edges) != len(other.Edges) {
		return false
	}
	for i, n := range e.Nodes {
		if !nodesEqual(n, other.Nodes[i]) {
			return false
		}
	}
	for i, edge := range e.Edges {
		if !edgesEqual(edge, other.Edges[i]) {
			return false
		}
	}
	return true
}

func nodesEqual(a, b Node) bool {
	if a.ID != b.ID || a.Type != b.Type || a.Position != b.Position || a.Selected != b.Selected {
		return false
	}
	if a.Data.Label != b.Data.Label || a.Data.Description != b.Data.Description ||
		a.Data.Template != b.Data.Template || a.Data.Locked != b.Data.Locked {
		return false
	}
	if len(a.Data.Parameters) != len(b.Data.Parameters) {
		return false
	}
	for k, v := range a.Data.Parameters {
		if b.Data.Parameters[k] != v {
			return false
		}
	}
	return true
}

func edgesEqual(a, b Edge) bool {
	if a.ID != b.ID || a.Source != b.Source || a.Target != b.Target ||
		a.SourceHandle != b.SourceHandle || a.TargetHandle != b.TargetHandle ||
		a.Type != b.Type || a.Selected != b.Selected {
		return false
	}
	if (a.Data == nil) != (b.Data == nil) {
		return false
	}
	if a.Data != nil && *a.Data != *b.Data {
		return false
	}
	return true
}
