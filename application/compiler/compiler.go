// Package compiler turns a flow graph into executable prompt text.
// All functions are pure and never fail: missing fields degrade to
// empty strings and unresolved variables stay as literal placeholders.
package compiler

import (
	"regexp"
	"strings"

	"promptflow-backend/domain/flow"
)

const (
	promptHeader  = "# System Instructions"
	outputDefault = "Provide the final output here."
)

// variablePattern matches {{identifier}} placeholders; the identifier
// is any run of characters other than a closing brace.
var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Compile linearizes a graph into prompt text. Nodes are bucketed by
// kind: inputs first, then everything else in insertion order, then
// outputs. Edge connectivity never reorders nodes; the bucket-then-
// insertion-order walk is deliberate and must stay byte-stable for
// output compatibility.
func Compile(elements flow.Elements) string {
	var inputs, middle, outputs []flow.Node
	for _, node := range elements.Nodes {
		switch node.Type {
		case flow.KindInput:
			inputs = append(inputs, node)
		case flow.KindOutput:
			outputs = append(outputs, node)
		case flow.KindProcess, flow.KindFilter, flow.KindCondition:
			middle = append(middle, node)
		}
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\n")

	for _, node := range inputs {
		writeSection(&b, node.Data.Label, node.Data.Description)
	}
	for _, node := range middle {
		body := node.Data.Template
		if body == "" {
			body = "Process: " + node.Data.Label + "\n" + node.Data.Description
		}
		writeSection(&b, node.Data.Label, body)
	}
	for _, node := range outputs {
		body := node.Data.Description
		if body == "" {
			body = outputDefault
		}
		writeSection(&b, node.Data.Label, body)
	}

	return b.String()
}

func writeSection(b *strings.Builder, label, body string) {
	b.WriteString("## ")
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

// ExtractVariables scans every node's description and template for
// {{identifier}} placeholders, returning the deduplicated identifiers
// in first-seen order. Callers use the list to prompt for values
// before execution.
func ExtractVariables(elements flow.Elements) []string {
	seen := make(map[string]struct{})
	var out []string
	collect := func(text string) {
		for _, match := range variablePattern.FindAllStringSubmatch(text, -1) {
			name := match[1]
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	for _, node := range elements.Nodes {
		collect(node.Data.Description)
		collect(node.Data.Template)
	}
	return out
}

// Substitute replaces every literal {{key}} occurrence with its value.
// Keys absent from values stay as literal placeholders: the system
// does not require every variable to be filled before execution.
func Substitute(promptText string, values map[string]string) string {
	for key, value := range values {
		promptText = strings.ReplaceAll(promptText, "{{"+key+"}}", value)
	}
	return promptText
}
