package prompt

import (
	"lattice/loom/internal/db"
	"lattice/loom/internal/graph"
)

// Engine assembles the context string for a target node from an immutable
// graph snapshot. It holds no mutable state and is safe for concurrent
// use as long as the snapshot is not replaced mid-call.
type Engine struct {
	snap     *graph.GraphSnapshot
	settings db.ContextSettings
	est      Estimator
}

// NewEngine builds an engine over a snapshot. A nil estimator falls back
// to word counting.
func NewEngine(snap *graph.GraphSnapshot, settings db.ContextSettings, est Estimator) *Engine {
	if est == nil {
		est = WordEstimator{}
	}
	return &Engine{snap: snap, settings: settings, est: est}
}

// ContextForNode returns the assembled context for nodeID. The empty
// string is a valid non-error result: the node is unknown, isolated, or
// nothing upstream of it contributes content.
func (e *Engine) ContextForNode(nodeID string) string {
	visits := e.Trace(nodeID)
	blocks := BuildBlocks(e.snap, visits)
	return Assemble(blocks, e.settings.MaxTokens, e.est)
}

// Trace returns the raw traversal result for nodeID, in discovery order.
func (e *Engine) Trace(nodeID string) []graph.Visit {
	return graph.Traverse(e.snap, graph.TraverseOptions{
		MaxDepth:       e.settings.GlobalDepth,
		ExpandDisabled: e.settings.IncludeDisabledNodes,
	}, nodeID)
}
