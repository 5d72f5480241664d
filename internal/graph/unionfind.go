package graph

import "sort"

// unionFind tracks connected components of node IDs with path compression
// and union by size.
type unionFind struct {
	parent map[string]string
	size   map[string]int
}

func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		size:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
		uf.size[id] = 1
	}
	return uf
}

func (uf *unionFind) find(id string) string {
	parent, ok := uf.parent[id]
	if !ok {
		return id
	}
	if parent != id {
		root := uf.find(parent)
		uf.parent[id] = root
		return root
	}
	return id
}

// union merges the components containing a and b. Returns true if they were separate.
func (uf *unionFind) union(a, b string) bool {
	rootA := uf.find(a)
	rootB := uf.find(b)
	if rootA == rootB {
		return false
	}
	if uf.size[rootA] < uf.size[rootB] {
		rootA, rootB = rootB, rootA
	}
	uf.parent[rootB] = rootA
	uf.size[rootA] += uf.size[rootB]
	return true
}

// componentSizes returns the size of every component, largest first.
func (uf *unionFind) componentSizes() []int {
	var sizes []int
	for id, parent := range uf.parent {
		if parent == id {
			sizes = append(sizes, uf.size[id])
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}
