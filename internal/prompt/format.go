// Package prompt renders a traversal result into the context string that
// precedes an AI conversation's prompt.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"lattice/loom/internal/graph"
)

// Transcripts longer than this are elided in the middle: the opening
// exchange stays, the most recent messages take the remaining slots.
const maxTranscriptMessages = 20

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatNode renders one node as a context block. The second return is
// false when the node contributes nothing: it opted out of context or
// carries no renderable content. The function never mutates the node and
// tolerates tag/payload mismatches by degrading to the generic fallback.
func FormatNode(n *graph.NodeInfo) (string, bool) {
	if n == nil || !n.IncludeInContext {
		return "", false
	}

	switch n.NodeType {
	case "note", "text":
		return formatNote(n)
	case "task":
		return formatTask(n)
	case "project":
		return formatProject(n)
	case "artifact":
		return formatArtifact(n)
	case "conversation":
		return formatConversation(n)
	default:
		return formatFallback(n)
	}
}

func formatNote(n *graph.NodeInfo) (string, bool) {
	title := deref(n.Title)
	content := deref(n.Content)
	switch {
	case title != "" && content != "":
		return title + "\n" + content, true
	case content != "":
		return content, true
	case title != "":
		return title, true
	}
	return "", false
}

func formatTask(n *graph.NodeInfo) (string, bool) {
	title := deref(n.Title)
	status := deref(n.Status)
	priority := deref(n.Priority)
	if title == "" && status == "" && priority == "" && deref(n.Description) == "" {
		return "", false
	}

	var b strings.Builder
	b.WriteString("Task: " + title)
	if status != "" {
		b.WriteString("\nStatus: " + status)
	}
	if priority != "" {
		b.WriteString("\nPriority: " + priority)
	}
	if desc := deref(n.Description); desc != "" {
		b.WriteString("\n" + desc)
	}
	return b.String(), true
}

func formatProject(n *graph.NodeInfo) (string, bool) {
	title := deref(n.Title)
	desc := deref(n.Description)
	if title == "" && desc == "" {
		return "", false
	}
	if desc == "" {
		return "Project: " + title, true
	}
	return "Project: " + title + "\n" + desc, true
}

func formatArtifact(n *graph.NodeInfo) (string, bool) {
	title := deref(n.Title)

	// reference-only artifacts expose their existence but never their body
	if deref(n.InjectionFormat) == "reference-only" {
		if title == "" {
			return "", false
		}
		return fmt.Sprintf("Artifact: %s [Reference]", title), true
	}

	content := deref(n.Content)
	if title == "" && content == "" {
		return "", false
	}
	var b strings.Builder
	b.WriteString("Artifact: " + title)
	if lang := deref(n.Language); lang != "" {
		b.WriteString(" (" + lang + ")")
	}
	if content != "" {
		b.WriteString("\n" + content)
	}
	return b.String(), true
}

func formatConversation(n *graph.NodeInfo) (string, bool) {
	title := deref(n.Title)

	var messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if raw := deref(n.Messages); raw != "" {
		if err := json.Unmarshal([]byte(raw), &messages); err != nil {
			// corrupt transcript must not blank out the whole context
			return formatFallback(n)
		}
	}

	if len(messages) == 0 {
		if title == "" {
			return "", false
		}
		return "Conversation: " + title, true
	}

	lines := make([]string, 0, len(messages)+2)
	if title != "" {
		lines = append(lines, "Conversation: "+title)
	}
	if len(messages) > maxTranscriptMessages {
		// keep the opening exchange, elide the middle, keep the tail
		head := messages[:2]
		tail := messages[len(messages)-(maxTranscriptMessages-2):]
		for _, m := range head {
			lines = append(lines, m.Role+": "+m.Content)
		}
		lines = append(lines, "[...]")
		for _, m := range tail {
			lines = append(lines, m.Role+": "+m.Content)
		}
	} else {
		for _, m := range messages {
			lines = append(lines, m.Role+": "+m.Content)
		}
	}
	return strings.Join(lines, "\n"), true
}

func formatFallback(n *graph.NodeInfo) (string, bool) {
	if title := deref(n.Title); title != "" {
		return title, true
	}
	return "", false
}
