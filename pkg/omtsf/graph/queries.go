package graph

import (
	"context"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// Direction constrains which edges a traversal may follow.
type Direction int

const (
	Forward Direction = iota
	Backward
	Both
)

// EdgeTypeFilter optionally restricts a query to edges of a single known
// edge type. The zero value (ok=false) accepts every edge.
type EdgeTypeFilter struct {
	Type model.EdgeType
	ok   bool
}

// NewEdgeTypeFilter constructs a filter matching only t.
func NewEdgeTypeFilter(t model.EdgeType) EdgeTypeFilter { return EdgeTypeFilter{Type: t, ok: true} }

func (f EdgeTypeFilter) accepts(w EdgeWeight) bool {
	if !f.ok {
		return true
	}
	t, known := w.EdgeType.Known()
	return known && t == f.Type
}

func (g *Graph) neighbours(idx NodeIndex, dir Direction, filter EdgeTypeFilter) []NodeIndex {
	var out []NodeIndex
	seen := make(map[NodeIndex]bool)
	adj := g.adj[idx]
	visit := func(edges []EdgeIndex, endpoint func(EdgeWeight) NodeIndex) {
		for _, ei := range edges {
			w := g.edges[ei]
			if !filter.accepts(w) {
				continue
			}
			n := endpoint(w)
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	if dir == Forward || dir == Both {
		visit(adj.out, func(w EdgeWeight) NodeIndex { return w.Target })
	}
	if dir == Backward || dir == Both {
		visit(adj.in, func(w EdgeWeight) NodeIndex { return w.Source })
	}
	return out
}

// ReachableFrom performs a breadth-first search from start and returns the
// set of reachable nodes, excluding start itself.
func (g *Graph) ReachableFrom(ctx context.Context, start NodeIndex, dir Direction, filter EdgeTypeFilter) []NodeIndex {
	_, span := g.startSpan(ctx, "graph.reachable_from")
	defer span.End()

	visited := map[NodeIndex]bool{start: true}
	queue := []NodeIndex{start}
	var result []NodeIndex
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbours(cur, dir, filter) {
			if !visited[n] {
				visited[n] = true
				result = append(result, n)
				queue = append(queue, n)
			}
		}
	}
	return result
}

// ShortestPath performs a breadth-first search with a predecessor map and
// returns the ordered node list [from..to], or ok=false if to is
// unreachable from from.
func (g *Graph) ShortestPath(ctx context.Context, from, to NodeIndex, dir Direction, filter EdgeTypeFilter) ([]NodeIndex, bool) {
	_, span := g.startSpan(ctx, "graph.shortest_path")
	defer span.End()

	if from == to {
		return []NodeIndex{from}, true
	}

	pred := map[NodeIndex]NodeIndex{}
	visited := map[NodeIndex]bool{from: true}
	queue := []NodeIndex{from}
	found := false
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbours(cur, dir, filter) {
			if visited[n] {
				continue
			}
			visited[n] = true
			pred[n] = cur
			if n == to {
				found = true
				break
			}
			queue = append(queue, n)
		}
	}
	if !found {
		return nil, false
	}

	var path []NodeIndex
	for cur := to; ; {
		path = append([]NodeIndex{cur}, path...)
		if cur == from {
			break
		}
		cur = pred[cur]
	}
	return path, true
}

// DefaultMaxDepth is the default depth bound for AllPaths.
const DefaultMaxDepth = 20

// AllPaths enumerates simple paths (no node revisited) from from to to up
// to maxDepth edges, via iterative-deepening depth-first search. Results
// are deduplicated.
func (g *Graph) AllPaths(ctx context.Context, from, to NodeIndex, dir Direction, filter EdgeTypeFilter, maxDepth int) [][]NodeIndex {
	_, span := g.startSpan(ctx, "graph.all_paths")
	defer span.End()

	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	seenPaths := map[string]bool{}
	var results [][]NodeIndex

	var dfs func(cur NodeIndex, path []NodeIndex, visited map[NodeIndex]bool, limit int)
	dfs = func(cur NodeIndex, path []NodeIndex, visited map[NodeIndex]bool, limit int) {
		if cur == to {
			key := pathKey(path)
			if !seenPaths[key] {
				seenPaths[key] = true
				cp := make([]NodeIndex, len(path))
				copy(cp, path)
				results = append(results, cp)
			}
			return
		}
		if len(path)-1 >= limit {
			return
		}
		for _, n := range g.neighbours(cur, dir, filter) {
			if visited[n] {
				continue
			}
			visited[n] = true
			dfs(n, append(path, n), visited, limit)
			delete(visited, n)
		}
	}

	for depth := 1; depth <= maxDepth; depth++ {
		dfs(from, []NodeIndex{from}, map[NodeIndex]bool{from: true}, depth)
	}
	return results
}

func pathKey(path []NodeIndex) string {
	b := make([]byte, 0, len(path)*4)
	for _, n := range path {
		b = append(b, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}
	return string(b)
}
