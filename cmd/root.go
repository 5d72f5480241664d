package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"lattice/loom/internal/db"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Context assembly and graph tooling for lattice canvas workspaces",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to .lattice.db workspace file")
}

// DiscoverDB finds the workspace path using priority: env > flag > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("LOOM_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("workspace not found at --db path: %s", dbPath)
	}

	// 3. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, ".lattice.db")
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 4. XDG fallback
	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".local", "share", "com.lattice.app", "lattice.db")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no .lattice.db found (set LOOM_DB, use --db, or run from a directory containing .lattice.db)")
}

// OpenDatabase discovers and opens the workspace
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	return db.OpenDB(path)
}

// ResolveNode finds a node by full ID, ID prefix, or title/content search.
func ResolveNode(d *db.DB, reference string) (*db.Node, error) {
	// 1. Exact ID match
	node, err := d.GetNode(reference)
	if err != nil {
		return nil, err
	}
	if node != nil {
		return node, nil
	}

	// 2. ID prefix match (>=6 hex/dash chars)
	if len(reference) >= 6 && isHexDash(reference) {
		matches, err := d.SearchByIDPrefix(reference, 10)
		if err == nil {
			switch len(matches) {
			case 1:
				return &matches[0], nil
			case 0:
				// fall through to text search
			default:
				return nil, ambiguousErr(reference, matches)
			}
		}
	}

	// 3. Title/content search
	results, err := d.SearchNodes(reference)
	if err == nil {
		switch len(results) {
		case 1:
			return &results[0], nil
		case 0:
			// fall through to not found
		default:
			if len(results) > 10 {
				results = results[:10]
			}
			return nil, ambiguousErr(reference, results)
		}
	}

	return nil, fmt.Errorf("node not found: %s", reference)
}

func ambiguousErr(reference string, matches []db.Node) error {
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("  %s %s", truncID(m.ID), nodeTitle(&m))
	}
	return fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\nUse a full node ID instead.",
		reference, len(matches), strings.Join(lines, "\n"))
}

func nodeTitle(n *db.Node) string {
	if n.Title != nil {
		return *n.Title
	}
	return "(untitled)"
}

func isHexDash(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '-') {
			return false
		}
	}
	return true
}

func truncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Find a safe UTF-8 boundary
	truncated := s[:max]
	for len(truncated) > 0 && truncated[len(truncated)-1]>>6 == 2 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
