package cmd

import (
	"strings"
	"testing"

	"lattice/loom/internal/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestResolveNode_ExactID(t *testing.T) {
	d := openTestDB(t)
	id, err := d.CreateNode(db.TypeNote, db.CreateNodeOpts{Title: "alpha"})
	if err != nil {
		t.Fatal(err)
	}

	n, err := ResolveNode(d, id)
	if err != nil {
		t.Fatalf("ResolveNode: %v", err)
	}
	if n.ID != id {
		t.Errorf("resolved %s, want %s", n.ID, id)
	}
}

func TestResolveNode_IDPrefix(t *testing.T) {
	d := openTestDB(t)
	id, err := d.CreateNode(db.TypeNote, db.CreateNodeOpts{Title: "alpha"})
	if err != nil {
		t.Fatal(err)
	}

	n, err := ResolveNode(d, id[:8])
	if err != nil {
		t.Fatalf("ResolveNode by prefix: %v", err)
	}
	if n.ID != id {
		t.Errorf("resolved %s, want %s", n.ID, id)
	}
}

func TestResolveNode_TitleSearch(t *testing.T) {
	d := openTestDB(t)
	id, err := d.CreateNode(db.TypeNote, db.CreateNodeOpts{Title: "Migration plan"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateNode(db.TypeNote, db.CreateNodeOpts{Title: "Grocery list"}); err != nil {
		t.Fatal(err)
	}

	n, err := ResolveNode(d, "migration")
	if err != nil {
		t.Fatalf("ResolveNode by title: %v", err)
	}
	if n.ID != id {
		t.Errorf("resolved %s, want %s", n.ID, id)
	}
}

func TestResolveNode_Ambiguous(t *testing.T) {
	d := openTestDB(t)
	for i := 0; i < 2; i++ {
		if _, err := d.CreateNode(db.TypeNote, db.CreateNodeOpts{Title: "duplicate title"}); err != nil {
			t.Fatal(err)
		}
	}

	_, err := ResolveNode(d, "duplicate")
	if err == nil {
		t.Fatal("ambiguous reference should fail")
	}
	if !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("error should explain the ambiguity: %v", err)
	}
}

func TestResolveNode_NotFound(t *testing.T) {
	d := openTestDB(t)
	if _, err := ResolveNode(d, "nothing matches here"); err == nil {
		t.Error("unresolvable reference should fail")
	}
}

func TestIsHexDash(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abc123", true},
		{"ABCDEF-0", true},
		{"xyz999", false},
		{"has space", false},
	}
	for _, tt := range tests {
		if got := isHexDash(tt.in); got != tt.want {
			t.Errorf("isHexDash(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTruncTitle(t *testing.T) {
	if got := truncTitle("short", 10); got != "short" {
		t.Errorf("short title should pass through, got %q", got)
	}
	got := truncTitle("a long title that needs cutting", 10)
	if !strings.HasSuffix(got, "...") || len(got) > 13 {
		t.Errorf("truncation: %q", got)
	}
	// never split a multi-byte rune
	got = truncTitle("ααααααα", 9)
	if !strings.HasPrefix(got, "αααα") || strings.ContainsRune(got, '�') {
		t.Errorf("utf-8 boundary: %q", got)
	}
}
