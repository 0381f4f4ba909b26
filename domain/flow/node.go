package flow

import (
	"encoding/json"
	"strings"
)

// NodeKind is the closed set of node types a flow can contain.
// The kind decides how a node compiles and which edge style its
// connections get; it is immutable after the node is created.
type NodeKind string

const (
	KindInput     NodeKind = "input"
	KindProcess   NodeKind = "process"
	KindFilter    NodeKind = "filter"
	KindCondition NodeKind = "condition"
	KindOutput    NodeKind = "output"
)

// AllKinds lists every valid node kind.
var AllKinds = []NodeKind{KindInput, KindProcess, KindFilter, KindCondition, KindOutput}

// ParseNodeKind normalizes a kind string. Historical exports carry
// uppercase kinds ("INPUT"), so parsing is case-insensitive.
func ParseNodeKind(s string) (NodeKind, bool) {
	k := NodeKind(strings.ToLower(s))
	switch k {
	case KindInput, KindProcess, KindFilter, KindCondition, KindOutput:
		return k, true
	}
	return "", false
}

// Valid reports whether the kind is one of the closed set.
func (k NodeKind) Valid() bool {
	_, ok := ParseNodeKind(string(k))
	return ok
}

// UnmarshalJSON normalizes kinds to their canonical lowercase form.
// Unknown kinds are kept verbatim; structural validation rejects them.
func (k *NodeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, ok := ParseNodeKind(s); ok {
		*k = parsed
	} else {
		*k = NodeKind(s)
	}
	return nil
}

// Position is a 2D canvas coordinate. Purely presentational: it has no
// effect on compilation but must round-trip exactly through persistence.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData holds the editable properties of a node.
type NodeData struct {
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
	Template    string            `json:"template,omitempty"`
	Locked      bool              `json:"locked,omitempty"`
}

// Node is a vertex in the flow graph.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeKind `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
	Selected bool     `json:"selected,omitempty"`
}

// Clone returns a deep copy with no shared mutable substructure.
func (n Node) Clone() Node {
	out := n
	if n.Data.Parameters != nil {
		params := make(map[string]string, len(n.Data.Parameters))
		for k, v := range n.Data.Parameters {
			params[k] = v
		}
		out.Data.Parameters = params
	}
	return out
}
