package prompt

import (
	"fmt"
	"strings"
	"testing"

	"lattice/loom/internal/graph"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func promptNode(nodeType string) *graph.NodeInfo {
	return &graph.NodeInfo{
		ID:               "n-" + nodeType,
		NodeType:         nodeType,
		IncludeInContext: true,
	}
}

func TestFormatNote(t *testing.T) {
	n := promptNode("note")
	n.Title = strPtr("Reference Doc")
	n.Content = strPtr("Important reference material")

	text, ok := FormatNode(n)
	if !ok {
		t.Fatal("note with content should contribute")
	}
	if text != "Reference Doc\nImportant reference material" {
		t.Errorf("unexpected note rendering: %q", text)
	}
}

func TestFormatNote_ContentOnly(t *testing.T) {
	n := promptNode("note")
	n.Content = strPtr("just content")

	text, ok := FormatNode(n)
	if !ok || text != "just content" {
		t.Errorf("untitled note should render its content, got %q (%v)", text, ok)
	}
}

func TestFormatNote_Empty(t *testing.T) {
	if _, ok := FormatNode(promptNode("note")); ok {
		t.Error("empty note should not contribute")
	}
}

func TestFormatText_AliasOfNote(t *testing.T) {
	n := promptNode("text")
	n.Content = strPtr("plain text body")

	text, ok := FormatNode(n)
	if !ok || text != "plain text body" {
		t.Errorf("text node should format like a note, got %q (%v)", text, ok)
	}
}

func TestFormatTask(t *testing.T) {
	n := promptNode("task")
	n.Title = strPtr("Ship release")
	n.Status = strPtr("in_progress")
	n.Priority = strPtr("high")
	n.Description = strPtr("Cut the tag and publish")

	text, ok := FormatNode(n)
	if !ok {
		t.Fatal("task should contribute")
	}
	want := "Task: Ship release\nStatus: in_progress\nPriority: high\nCut the tag and publish"
	if text != want {
		t.Errorf("task rendering:\n got %q\nwant %q", text, want)
	}
}

func TestFormatTask_SparseFields(t *testing.T) {
	n := promptNode("task")
	n.Title = strPtr("Ship release")

	text, ok := FormatNode(n)
	if !ok || text != "Task: Ship release" {
		t.Errorf("sparse task should omit empty fields, got %q", text)
	}
}

func TestFormatProject(t *testing.T) {
	n := promptNode("project")
	n.Title = strPtr("Migration")
	n.Description = strPtr("Move everything to the new schema")

	text, ok := FormatNode(n)
	if !ok || text != "Project: Migration\nMove everything to the new schema" {
		t.Errorf("project rendering: %q", text)
	}
}

func TestFormatArtifact_Full(t *testing.T) {
	n := promptNode("artifact")
	n.Title = strPtr("parser.go")
	n.Language = strPtr("go")
	n.Content = strPtr("package parser")

	text, ok := FormatNode(n)
	if !ok || text != "Artifact: parser.go (go)\npackage parser" {
		t.Errorf("artifact rendering: %q", text)
	}
}

func TestFormatArtifact_ReferenceOnly(t *testing.T) {
	n := promptNode("artifact")
	n.Title = strPtr("Big Dataset")
	n.Content = strPtr("thousands of lines that must never leak into context")
	n.InjectionFormat = strPtr("reference-only")

	text, ok := FormatNode(n)
	if !ok {
		t.Fatal("reference-only artifact should still announce itself")
	}
	if !strings.Contains(text, "Reference") {
		t.Errorf("reference-only artifact should carry a reference marker, got %q", text)
	}
	if strings.Contains(text, "thousands of lines") {
		t.Errorf("reference-only artifact leaked its content: %q", text)
	}
}

func TestFormatConversation(t *testing.T) {
	n := promptNode("conversation")
	n.Title = strPtr("Design chat")
	n.Messages = strPtr(`[{"role":"user","content":"hello"},{"role":"assistant","content":"hi"}]`)

	text, ok := FormatNode(n)
	if !ok {
		t.Fatal("conversation should contribute")
	}
	want := "Conversation: Design chat\nuser: hello\nassistant: hi"
	if text != want {
		t.Errorf("conversation rendering:\n got %q\nwant %q", text, want)
	}
}

func TestFormatConversation_LongTranscriptElided(t *testing.T) {
	var parts []string
	for i := 0; i < 30; i++ {
		parts = append(parts, fmt.Sprintf(`{"role":"user","content":"msg-%d"}`, i))
	}
	n := promptNode("conversation")
	n.Messages = strPtr("[" + strings.Join(parts, ",") + "]")

	text, ok := FormatNode(n)
	if !ok {
		t.Fatal("long conversation should contribute")
	}
	if !strings.Contains(text, "msg-0") || !strings.Contains(text, "msg-1") {
		t.Error("opening exchange should survive elision")
	}
	if !strings.Contains(text, "msg-29") {
		t.Error("most recent messages should survive elision")
	}
	if !strings.Contains(text, "[...]") {
		t.Error("elision marker missing")
	}
	if strings.Contains(text, "msg-5") {
		t.Error("middle of a long transcript should be elided")
	}
}

func TestFormatConversation_MalformedTranscript(t *testing.T) {
	n := promptNode("conversation")
	n.Title = strPtr("Broken chat")
	n.Messages = strPtr("{not json")

	text, ok := FormatNode(n)
	if !ok || text != "Broken chat" {
		t.Errorf("corrupt transcript should fall back to the title, got %q (%v)", text, ok)
	}
}

func TestFormatUnknownType(t *testing.T) {
	n := promptNode("widget")
	n.Title = strPtr("Mystery")
	n.Content = strPtr("ignored payload")

	text, ok := FormatNode(n)
	if !ok || text != "Mystery" {
		t.Errorf("unknown type should render its title only, got %q (%v)", text, ok)
	}

	if _, ok := FormatNode(promptNode("widget")); ok {
		t.Error("untitled unknown type should not contribute")
	}
}

func TestFormatDisabledNode(t *testing.T) {
	n := promptNode("note")
	n.Title = strPtr("Secret")
	n.Content = strPtr("hidden")
	n.IncludeInContext = false

	if _, ok := FormatNode(n); ok {
		t.Error("node opted out of context must contribute nothing")
	}
}
