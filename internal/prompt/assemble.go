package prompt

import (
	"sort"
	"strings"

	"lattice/loom/internal/graph"
)

// Block is one formatted contribution, tagged with its traversal depth.
type Block struct {
	NodeID string `json:"node_id"`
	Depth  int    `json:"depth"`
	Text   string `json:"text"`
}

// BuildBlocks formats the traversal result in depth order. The sort is
// stable: within one depth, discovery order is preserved. Nodes that
// contribute nothing are dropped here.
func BuildBlocks(snap *graph.GraphSnapshot, visits []graph.Visit) []Block {
	ordered := make([]graph.Visit, len(visits))
	copy(ordered, visits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Depth < ordered[j].Depth
	})

	var blocks []Block
	for _, v := range ordered {
		node := snap.Nodes[v.NodeID]
		if node == nil {
			continue
		}
		text, ok := FormatNode(node)
		if !ok {
			continue
		}
		blocks = append(blocks, Block{NodeID: v.NodeID, Depth: v.Depth, Text: text})
	}
	return blocks
}

// Assemble joins blocks with blank-line separators, enforcing maxTokens
// when set: the deepest blocks are evicted first, and if the single
// closest block still exceeds the budget its text is truncated instead of
// dropped, so near content is never silently lost to one oversized block.
func Assemble(blocks []Block, maxTokens *int, est Estimator) string {
	if len(blocks) == 0 {
		return ""
	}
	if est == nil {
		est = WordEstimator{}
	}

	if maxTokens != nil {
		budget := *maxTokens
		for len(blocks) > 1 && est.Count(join(blocks)) > budget {
			blocks = blocks[:len(blocks)-1]
		}
		if est.Count(join(blocks)) > budget {
			blocks[0].Text = truncateToBudget(blocks[0].Text, budget, est)
		}
	}

	return join(blocks)
}

func join(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Text
	}
	return strings.Join(parts, "\n\n")
}

// truncateToBudget cuts text at word boundaries so the estimator accepts
// it, always keeping at least one word.
func truncateToBudget(text string, budget int, est Estimator) string {
	words := strings.Fields(text)
	if len(words) <= 1 {
		return text
	}

	lo, hi := 1, len(words)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if est.Count(strings.Join(words[:mid], " ")) <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return strings.Join(words[:lo], " ")
}
