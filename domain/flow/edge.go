package flow

// EdgeStyle selects the semantic rendering of a connection. It is
// inferred from the endpoint kinds when the edge is created.
type EdgeStyle string

const (
	StyleDefault EdgeStyle = "default"
	StyleDashed  EdgeStyle = "dashed"
	StyleWarning EdgeStyle = "warning"
	StyleSuccess EdgeStyle = "success"
)

// EdgeData carries the endpoint kinds cached at connection time.
// They are never re-validated against live node state: node kinds are
// immutable, so the cache cannot go stale.
type EdgeData struct {
	SourceType NodeKind `json:"sourceType,omitempty"`
	TargetType NodeKind `json:"targetType,omitempty"`
	Label      string   `json:"label,omitempty"`
}

// Edge is a directed connection between two nodes. SourceHandle and
// TargetHandle name sub-ports; condition nodes expose "true" and
// "false" output handles.
type Edge struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	SourceHandle string    `json:"sourceHandle,omitempty"`
	TargetHandle string    `json:"targetHandle,omitempty"`
	Type         EdgeStyle `json:"type,omitempty"`
	Data         *EdgeData `json:"data,omitempty"`
	Selected     bool      `json:"selected,omitempty"`
}

// Clone returns a deep copy of the edge.
func (e Edge) Clone() Edge {
	out := e
	if e.Data != nil {
		data := *e.Data
		out.Data = &data
	}
	return out
}

// InferEdgeStyle maps endpoint kinds onto an edge style. First match
// wins: condition sources render dashed, filter sources render as
// warnings, a process feeding an output renders as success.
func InferEdgeStyle(source, target NodeKind) EdgeStyle {
	switch {
	case source == KindCondition:
		return StyleDashed
	case source == KindFilter:
		return StyleWarning
	case source == KindProcess && target == KindOutput:
		return StyleSuccess
	default:
		return StyleDefault
	}
}
