package compiler

import (
	"encoding/json"
	"strconv"
	"strings"

	"promptflow-backend/domain/flow"
	pkgerrors "promptflow-backend/pkg/errors"
)

// Message is one turn of an imported conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	// Truncation bounds applied when turning turns into node text.
	inputPreviewLimit    = 100
	templatePreviewLimit = 150
)

// ParseConversation decodes a conversation payload into messages. The
// payload is either a message array or a transcript string whose line
// prefixes depend on the source: "User: "/"Assistant: " for chatgpt,
// "Human: "/"Claude: " for claude. Continuation lines append to the
// current turn.
func ParseConversation(raw json.RawMessage, source string) ([]Message, error) {
	var userPrefix, assistantPrefix string
	switch source {
	case "chatgpt":
		userPrefix, assistantPrefix = "User: ", "Assistant: "
	case "claude":
		userPrefix, assistantPrefix = "Human: ", "Claude: "
	default:
		return nil, pkgerrors.NewValidationError("unsupported conversation source")
	}

	var asMessages []Message
	if err := json.Unmarshal(raw, &asMessages); err == nil {
		return normalizeRoles(asMessages), nil
	}

	var asText string
	if err := json.Unmarshal(raw, &asText); err == nil {
		return parseTranscript(asText, userPrefix, assistantPrefix), nil
	}

	return nil, pkgerrors.NewValidationError("unsupported conversation format")
}

// normalizeRoles maps claude's "human" role onto "user".
func normalizeRoles(messages []Message) []Message {
	out := make([]Message, len(messages))
	for i, m := range messages {
		role := m.Role
		if role == "human" {
			role = "user"
		}
		out[i] = Message{Role: role, Content: m.Content}
	}
	return out
}

func parseTranscript(text, userPrefix, assistantPrefix string) []Message {
	var messages []Message
	var currentRole, currentContent string

	push := func() {
		if currentRole != "" {
			messages = append(messages, Message{Role: currentRole, Content: strings.TrimSpace(currentContent)})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, userPrefix):
			push()
			currentRole = "user"
			currentContent = strings.TrimPrefix(line, userPrefix)
		case strings.HasPrefix(line, assistantPrefix):
			push()
			currentRole = "assistant"
			currentContent = strings.TrimPrefix(line, assistantPrefix)
		default:
			currentContent += "\n" + line
		}
	}
	push()

	return messages
}

// MessagesToElements converts parsed turns into a linear flow: each
// user turn becomes an input node, each assistant turn a process node
// carrying the reply as its template, terminated by a synthetic output
// node. Consecutive nodes are chained with edges in sequence order.
func MessagesToElements(messages []Message) flow.Elements {
	elements := flow.Elements{Nodes: []flow.Node{}, Edges: []flow.Edge{}}

	y := 100.0
	inputCount, processCount := 0, 0

	for _, message := range messages {
		id := strconv.Itoa(len(elements.Nodes) + 1)
		if message.Role == "user" {
			inputCount++
			elements.Nodes = append(elements.Nodes, flow.Node{
				ID:       id,
				Type:     flow.KindInput,
				Position: flow.Position{X: 100, Y: y},
				Data: flow.NodeData{
					Label:       "User Input " + strconv.Itoa(inputCount),
					Description: truncate(message.Content, inputPreviewLimit),
				},
			})
		} else {
			processCount++
			elements.Nodes = append(elements.Nodes, flow.Node{
				ID:       id,
				Type:     flow.KindProcess,
				Position: flow.Position{X: 400, Y: y - 75},
				Data: flow.NodeData{
					Label:       "Processing Step " + strconv.Itoa(processCount),
					Description: "Process the user input",
					Template:    truncate(message.Content, templatePreviewLimit),
				},
			})
		}
		y += 150
	}

	outputID := strconv.Itoa(len(elements.Nodes) + 1)
	elements.Nodes = append(elements.Nodes, flow.Node{
		ID:       outputID,
		Type:     flow.KindOutput,
		Position: flow.Position{X: 700, Y: y / 2},
		Data: flow.NodeData{
			Label:       "Final Output",
			Description: "The generated response",
		},
	})

	// Chain consecutive nodes, output terminator included.
	for i := 1; i < len(elements.Nodes); i++ {
		source := elements.Nodes[i-1].ID
		target := elements.Nodes[i].ID
		elements.Edges = append(elements.Edges, flow.Edge{
			ID:     "e" + source + "-" + target,
			Source: source,
			Target: target,
		})
	}

	return elements
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
