package db

import (
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "is": true,
	"it": true, "and": true, "or": true, "with": true, "from": true,
	"by": true, "this": true, "that": true, "as": true, "be": true,
}

// SearchTerms preprocesses a natural language query into match terms.
// Splits on whitespace, removes stopwords and words < 3 chars, trims
// punctuation from both ends.
func SearchTerms(query string) []string {
	words := strings.Fields(query)
	var filtered []string
	for _, w := range words {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})
		if len(trimmed) < 3 {
			continue
		}
		if stopwords[strings.ToLower(trimmed)] {
			continue
		}
		filtered = append(filtered, trimmed)
	}
	return filtered
}

// SearchNodes finds nodes whose title or content matches any query term
// (case-insensitive substring). Returns empty slice for an empty query.
func (d *DB) SearchNodes(query string) ([]Node, error) {
	terms := SearchTerms(query)
	if len(terms) == 0 {
		return []Node{}, nil
	}

	var clauses []string
	var args []any
	for _, t := range terms {
		clauses = append(clauses, "(title LIKE ? OR content LIKE ?)")
		pattern := "%" + t + "%"
		args = append(args, pattern, pattern)
	}

	rows, err := d.conn.Query(`
		SELECT `+nodeColumns+`
		FROM nodes WHERE `+strings.Join(clauses, " OR ")+`
		ORDER BY updated_at DESC, id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}
