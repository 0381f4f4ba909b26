package flow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleElements() Elements {
	return Elements{
		Nodes: []Node{
			{
				ID:       "1",
				Type:     KindInput,
				Position: Position{X: 100, Y: 100},
				Data: NodeData{
					Label:       "Topic",
					Description: "Blog subject",
					Parameters:  map[string]string{"tone": "casual"},
				},
			},
			{
				ID:       "2",
				Type:     KindProcess,
				Position: Position{X: 400, Y: 100},
				Data:     NodeData{Label: "Draft", Template: "Write about {{topic}}"},
			},
		},
		Edges: []Edge{
			{
				ID:     "e1-2",
				Source: "1",
				Target: "2",
				Type:   StyleDefault,
				Data:   &EdgeData{SourceType: KindInput, TargetType: KindProcess},
			},
		},
	}
}

func TestElementsClone_Independence(t *testing.T) {
	original := sampleElements()
	clone := original.Clone()

	// Mutate every level of the clone
	clone.Nodes[0].Position.X = 999
	clone.Nodes[0].Data.Parameters["tone"] = "formal"
	clone.Edges[0].Data.SourceType = KindFilter

	assert.Equal(t, 100.0, original.Nodes[0].Position.X)
	assert.Equal(t, "casual", original.Nodes[0].Data.Parameters["tone"])
	assert.Equal(t, KindInput, original.Edges[0].Data.SourceType)
}

func TestElementsValidate(t *testing.T) {
	t.Run("valid graph", func(t *testing.T) {
		assert.NoError(t, sampleElements().Validate())
	})

	t.Run("duplicate node id", func(t *testing.T) {
		e := sampleElements()
		e.Nodes = append(e.Nodes, Node{ID: "1", Type: KindOutput})
		assert.Error(t, e.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		e := sampleElements()
		e.Nodes[0].Type = "widget"
		assert.Error(t, e.Validate())
	})

	t.Run("duplicate edge id", func(t *testing.T) {
		e := sampleElements()
		e.Edges = append(e.Edges, Edge{ID: "e1-2", Source: "2", Target: "1"})
		assert.Error(t, e.Validate())
	})

	t.Run("edge with missing endpoint", func(t *testing.T) {
		e := sampleElements()
		e.Edges = append(e.Edges, Edge{ID: "e2-9", Source: "2", Target: "9"})
		assert.Error(t, e.Validate())
	})
}

func TestDanglingEdges(t *testing.T) {
	e := sampleElements()
	assert.Empty(t, e.DanglingEdges())

	e.Nodes = e.Nodes[:1] // drop node "2", keep the edge pointing at it
	dangling := e.DanglingEdges()
	require.Len(t, dangling, 1)
	assert.Equal(t, "e1-2", dangling[0].ID)
}

func TestInferEdgeStyle(t *testing.T) {
	tests := []struct {
		name   string
		source NodeKind
		target NodeKind
		want   EdgeStyle
	}{
		{"condition source wins", KindCondition, KindOutput, StyleDashed},
		{"filter source", KindFilter, KindProcess, StyleWarning},
		{"filter source regardless of target", KindFilter, KindOutput, StyleWarning},
		{"process to output", KindProcess, KindOutput, StyleSuccess},
		{"process to process", KindProcess, KindProcess, StyleDefault},
		{"input to process", KindInput, KindProcess, StyleDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferEdgeStyle(tt.source, tt.target))
		})
	}
}

func TestNodeKindJSON_NormalizesLegacyUppercase(t *testing.T) {
	var node Node
	err := json.Unmarshal([]byte(`{"id":"1","type":"INPUT","position":{"x":0,"y":0},"data":{"label":"","description":""}}`), &node)
	require.NoError(t, err)
	assert.Equal(t, KindInput, node.Type)
}

func TestElementsJSON_RoundTrip(t *testing.T) {
	original := sampleElements()

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Elements
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Node order and positions survive the round trip exactly.
	assert.True(t, original.Equal(decoded))
}

func TestParseNodeKind(t *testing.T) {
	k, ok := ParseNodeKind("CONDITION")
	assert.True(t, ok)
	assert.Equal(t, KindCondition, k)

	_, ok = ParseNodeKind("loop")
	assert.False(t, ok)
}
