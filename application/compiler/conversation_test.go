package compiler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptflow-backend/domain/flow"
	pkgerrors "promptflow-backend/pkg/errors"
)

func TestParseConversation(t *testing.T) {
	t.Run("chatgpt transcript", func(t *testing.T) {
		raw, _ := json.Marshal("User: hi\nAssistant: hello")

		messages, err := ParseConversation(raw, "chatgpt")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, Message{Role: "user", Content: "hi"}, messages[0])
		assert.Equal(t, Message{Role: "assistant", Content: "hello"}, messages[1])
	})

	t.Run("claude transcript", func(t *testing.T) {
		raw, _ := json.Marshal("Human: explain goroutines\nClaude: They are lightweight threads.")

		messages, err := ParseConversation(raw, "claude")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "user", messages[0].Role)
		assert.Equal(t, "explain goroutines", messages[0].Content)
		assert.Equal(t, "assistant", messages[1].Role)
	})

	t.Run("continuation lines append to the current turn", func(t *testing.T) {
		raw, _ := json.Marshal("User: first line\nsecond line\nAssistant: ok")

		messages, err := ParseConversation(raw, "chatgpt")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "first line\nsecond line", messages[0].Content)
	})

	t.Run("message array payload", func(t *testing.T) {
		raw := json.RawMessage(`[{"role":"human","content":"hi"},{"role":"assistant","content":"hello"}]`)

		messages, err := ParseConversation(raw, "claude")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "user", messages[0].Role, "human role is normalized")
	})

	t.Run("unsupported source", func(t *testing.T) {
		raw, _ := json.Marshal("User: hi")

		_, err := ParseConversation(raw, "gemini")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unsupported payload shape", func(t *testing.T) {
		_, err := ParseConversation(json.RawMessage(`{"oops":true}`), "chatgpt")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestMessagesToElements(t *testing.T) {
	t.Run("linear flow from a two-turn exchange", func(t *testing.T) {
		elements := MessagesToElements([]Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		})

		require.Len(t, elements.Nodes, 3)
		require.Len(t, elements.Edges, 2)

		input := elements.Nodes[0]
		assert.Equal(t, "1", input.ID)
		assert.Equal(t, flow.KindInput, input.Type)
		assert.Equal(t, "User Input 1", input.Data.Label)
		assert.Equal(t, "hi", input.Data.Description)

		process := elements.Nodes[1]
		assert.Equal(t, "2", process.ID)
		assert.Equal(t, flow.KindProcess, process.Type)
		assert.Equal(t, "Processing Step 1", process.Data.Label)
		assert.Equal(t, "hello", process.Data.Template)

		output := elements.Nodes[2]
		assert.Equal(t, "3", output.ID)
		assert.Equal(t, flow.KindOutput, output.Type)
		assert.Equal(t, "Final Output", output.Data.Label)

		assert.Equal(t, "e1-2", elements.Edges[0].ID)
		assert.Equal(t, "e2-3", elements.Edges[1].ID)

		assert.NoError(t, elements.Validate())
		assert.Empty(t, elements.DanglingEdges())
	})

	t.Run("long turns are truncated", func(t *testing.T) {
		long := strings.Repeat("x", 300)
		elements := MessagesToElements([]Message{
			{Role: "user", Content: long},
			{Role: "assistant", Content: long},
		})

		assert.Equal(t, strings.Repeat("x", 100)+"...", elements.Nodes[0].Data.Description)
		assert.Equal(t, strings.Repeat("x", 150)+"...", elements.Nodes[1].Data.Template)
	})

	t.Run("empty conversation still yields an output node", func(t *testing.T) {
		elements := MessagesToElements(nil)
		require.Len(t, elements.Nodes, 1)
		assert.Equal(t, flow.KindOutput, elements.Nodes[0].Type)
		assert.Empty(t, elements.Edges)
	})
}
