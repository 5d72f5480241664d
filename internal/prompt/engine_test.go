package prompt

import (
	"strings"
	"testing"

	"lattice/loom/internal/db"
	"lattice/loom/internal/graph"
)

func edge(id, source, target string) graph.EdgeInfo {
	return graph.EdgeInfo{
		ID:        id,
		Source:    source,
		Target:    target,
		Active:    true,
		Direction: "unidirectional",
	}
}

func engineSettings() db.ContextSettings {
	s := db.DefaultSettings()
	return s
}

func TestEngine_NoteFeedsConversation(t *testing.T) {
	note := contentNode("note-1", "Important reference material")
	note.Title = strPtr("Reference Doc")
	conv := &graph.NodeInfo{ID: "conv-1", NodeType: "conversation", IncludeInContext: true}

	snap := graph.NewSnapshot(
		[]*graph.NodeInfo{note, conv},
		[]graph.EdgeInfo{edge("e1", "note-1", "conv-1")},
	)
	eng := NewEngine(snap, engineSettings(), nil)

	got := eng.ContextForNode("conv-1")
	if !strings.Contains(got, "Reference Doc") || !strings.Contains(got, "Important reference material") {
		t.Errorf("conversation should receive the note's context, got %q", got)
	}

	// the edge points the other way for note-1
	if got := eng.ContextForNode("note-1"); got != "" {
		t.Errorf("note has no inbound context, got %q", got)
	}
}

func TestEngine_DepthLimitedChain(t *testing.T) {
	note := contentNode("note-1", "deep background")
	proj := &graph.NodeInfo{
		ID: "proj-1", NodeType: "project", IncludeInContext: true,
		Title: strPtr("Migration"), Description: strPtr("Move to the new schema"),
	}
	conv := &graph.NodeInfo{ID: "conv-1", NodeType: "conversation", IncludeInContext: true}

	snap := graph.NewSnapshot(
		[]*graph.NodeInfo{note, proj, conv},
		[]graph.EdgeInfo{
			edge("e1", "note-1", "proj-1"),
			edge("e2", "proj-1", "conv-1"),
		},
	)

	settings := engineSettings()
	settings.GlobalDepth = 1
	eng := NewEngine(snap, settings, nil)

	got := eng.ContextForNode("conv-1")
	if !strings.Contains(got, "Project: Migration") {
		t.Errorf("depth-1 context should include the project, got %q", got)
	}
	if strings.Contains(got, "deep background") {
		t.Errorf("the note sits at depth 2 and must be cut off, got %q", got)
	}

	settings.GlobalDepth = 2
	eng = NewEngine(snap, settings, nil)
	if got := eng.ContextForNode("conv-1"); !strings.Contains(got, "deep background") {
		t.Errorf("depth-2 context should reach the note, got %q", got)
	}
}

func TestEngine_ReferenceOnlyArtifact(t *testing.T) {
	artifact := &graph.NodeInfo{
		ID: "art-1", NodeType: "artifact", IncludeInContext: true,
		Title:           strPtr("Big Dataset"),
		Content:         strPtr("row after row of raw data"),
		InjectionFormat: strPtr("reference-only"),
	}
	conv := &graph.NodeInfo{ID: "conv-1", NodeType: "conversation", IncludeInContext: true}

	snap := graph.NewSnapshot(
		[]*graph.NodeInfo{artifact, conv},
		[]graph.EdgeInfo{edge("e1", "art-1", "conv-1")},
	)
	eng := NewEngine(snap, engineSettings(), nil)

	got := eng.ContextForNode("conv-1")
	if !strings.Contains(got, "Reference") {
		t.Errorf("reference-only artifact should announce itself, got %q", got)
	}
	if strings.Contains(got, "raw data") {
		t.Errorf("reference-only artifact leaked its content: %q", got)
	}
}

func TestEngine_NearBeforeFar(t *testing.T) {
	near := contentNode("near", "near-content")
	far := contentNode("far", "far-content")
	conv := &graph.NodeInfo{ID: "conv-1", NodeType: "conversation", IncludeInContext: true}

	snap := graph.NewSnapshot(
		[]*graph.NodeInfo{near, far, conv},
		[]graph.EdgeInfo{
			edge("e1", "far", "near"),
			edge("e2", "near", "conv-1"),
		},
	)
	eng := NewEngine(snap, engineSettings(), nil)

	got := eng.ContextForNode("conv-1")
	iNear := strings.Index(got, "near-content")
	iFar := strings.Index(got, "far-content")
	if iNear < 0 || iFar < 0 {
		t.Fatalf("both nodes should contribute, got %q", got)
	}
	if iNear > iFar {
		t.Errorf("closer context should come first, got %q", got)
	}
}

func TestEngine_BudgetEvictsFarContext(t *testing.T) {
	near := contentNode("near", "one two three")
	far := contentNode("far", "four five six seven")
	conv := &graph.NodeInfo{ID: "conv-1", NodeType: "conversation", IncludeInContext: true}

	snap := graph.NewSnapshot(
		[]*graph.NodeInfo{near, far, conv},
		[]graph.EdgeInfo{
			edge("e1", "far", "near"),
			edge("e2", "near", "conv-1"),
		},
	)

	settings := engineSettings()
	budget := 4
	settings.MaxTokens = &budget
	eng := NewEngine(snap, settings, nil)

	got := eng.ContextForNode("conv-1")
	if !strings.Contains(got, "one") {
		t.Errorf("near context should survive the budget, got %q", got)
	}
	if strings.Contains(got, "four") {
		t.Errorf("far context should be evicted under the budget, got %q", got)
	}
}

func TestEngine_DisabledNodeSilentButTraversable(t *testing.T) {
	far := contentNode("far", "far-content")
	hidden := contentNode("hidden", "never rendered")
	hidden.IncludeInContext = false
	conv := &graph.NodeInfo{ID: "conv-1", NodeType: "conversation", IncludeInContext: true}

	snap := graph.NewSnapshot(
		[]*graph.NodeInfo{far, hidden, conv},
		[]graph.EdgeInfo{
			edge("e1", "far", "hidden"),
			edge("e2", "hidden", "conv-1"),
		},
	)

	settings := engineSettings()
	settings.IncludeDisabledNodes = true
	eng := NewEngine(snap, settings, nil)

	got := eng.ContextForNode("conv-1")
	if strings.Contains(got, "never rendered") {
		t.Errorf("disabled node content must not render, got %q", got)
	}
	if !strings.Contains(got, "far-content") {
		t.Errorf("traversal should pass through the disabled node, got %q", got)
	}

	settings.IncludeDisabledNodes = false
	eng = NewEngine(snap, settings, nil)
	if got := eng.ContextForNode("conv-1"); got != "" {
		t.Errorf("blocking disabled nodes should cut off the chain, got %q", got)
	}
}

func TestEngine_UnknownNode(t *testing.T) {
	snap := graph.NewSnapshot(nil, nil)
	eng := NewEngine(snap, engineSettings(), nil)
	if got := eng.ContextForNode("ghost"); got != "" {
		t.Errorf("unknown node should yield empty context, got %q", got)
	}
}

func TestEngine_TraceMatchesContext(t *testing.T) {
	note := contentNode("note-1", "body")
	conv := &graph.NodeInfo{ID: "conv-1", NodeType: "conversation", IncludeInContext: true}

	snap := graph.NewSnapshot(
		[]*graph.NodeInfo{note, conv},
		[]graph.EdgeInfo{edge("e1", "note-1", "conv-1")},
	)
	eng := NewEngine(snap, engineSettings(), nil)

	visits := eng.Trace("conv-1")
	if len(visits) != 1 || visits[0].NodeID != "note-1" || visits[0].Depth != 1 {
		t.Errorf("trace should report the note at depth 1, got %v", visits)
	}
}
