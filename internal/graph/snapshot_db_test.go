package graph

import (
	"testing"

	"lattice/loom/internal/db"
)

func TestSnapshotFromDB(t *testing.T) {
	d, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	defer d.Close()

	note, err := d.CreateNode(db.TypeNote, db.CreateNodeOpts{Title: "Background", Content: "context body"})
	if err != nil {
		t.Fatal(err)
	}
	conv, err := d.CreateNode(db.TypeConversation, db.CreateNodeOpts{Title: "Chat"})
	if err != nil {
		t.Fatal(err)
	}
	hidden, err := d.CreateNode(db.TypeNote, db.CreateNodeOpts{Title: "Off", ExcludeFromCtx: true})
	if err != nil {
		t.Fatal(err)
	}

	depth := 2
	if _, err := d.CreateEdge(note, conv, db.CreateEdgeOpts{MaxDepth: &depth}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateEdge(hidden, conv, db.CreateEdgeOpts{Inactive: true}); err != nil {
		t.Fatal(err)
	}

	snap, err := SnapshotFromDB(d)
	if err != nil {
		t.Fatalf("SnapshotFromDB: %v", err)
	}

	if len(snap.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(snap.Nodes))
	}
	n := snap.Nodes[hidden]
	if n == nil || n.IncludeInContext {
		t.Error("opt-out flag should survive loading")
	}

	sources := snap.Sources[conv]
	if len(sources) != 1 || sources[0].NodeID != note {
		t.Fatalf("only the active edge should feed the conversation, got %v", sources)
	}
	if sources[0].MaxDepth == nil || *sources[0].MaxDepth != 2 {
		t.Errorf("edge depth override should survive loading, got %v", sources[0].MaxDepth)
	}

	visits := Traverse(snap, TraverseOptions{MaxDepth: 3, ExpandDisabled: true}, conv)
	if len(visits) != 1 || visits[0].NodeID != note {
		t.Errorf("traversal over the loaded graph: %v", visits)
	}
}
