package graph

import "context"

// DetectCycles runs Kahn's topological sort over the subgraph induced by
// filter. Nodes whose in-degree never reaches zero belong to one or more
// cycles; the residual subgraph they form is partitioned into individual
// closed simple cycles via depth-first search. Each returned cycle is
// represented as [v0, v1, ..., v(k-1), v0] — the first element repeated as
// the last, so callers never need to re-close it.
func (g *Graph) DetectCycles(ctx context.Context, filter EdgeTypeFilter) [][]NodeIndex {
	_, span := g.startSpan(ctx, "graph.detect_cycles")
	defer span.End()

	n := len(g.nodes)
	if n == 0 {
		return nil
	}

	// Build filtered successor lists and in-degrees.
	succ := make([][]NodeIndex, n)
	indeg := make([]int, n)
	for idx := range g.nodes {
		for _, ei := range g.adj[idx].out {
			w := g.edges[ei]
			if !filter.accepts(w) {
				continue
			}
			succ[idx] = append(succ[idx], w.Target)
			indeg[w.Target]++
		}
	}

	// Kahn's algorithm.
	removed := make([]bool, n)
	queue := make([]NodeIndex, 0, n)
	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			queue = append(queue, NodeIndex(i))
		}
	}
	consumed := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		removed[cur] = true
		consumed++
		for _, next := range succ[cur] {
			if removed[next] {
				continue
			}
			indeg[next]--
			if indeg[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if consumed == n {
		return nil
	}

	// Residual subgraph: nodes never consumed by Kahn's sort.
	inResidual := make([]bool, n)
	for i := 0; i < n; i++ {
		inResidual[i] = !removed[i]
	}
	residualSucc := make([][]NodeIndex, n)
	for i := 0; i < n; i++ {
		if !inResidual[i] {
			continue
		}
		for _, next := range succ[i] {
			if inResidual[next] {
				residualSucc[i] = append(residualSucc[i], next)
			}
		}
	}

	return extractCycles(n, inResidual, residualSucc)
}

// extractCycles partitions the residual subgraph into individual closed
// cycles via depth-first search: it walks the DFS stack, and whenever an
// edge points back to a node already on the stack, it reports the cycle
// formed by the stack suffix from that node onward.
func extractCycles(n int, inResidual []bool, succ [][]NodeIndex) [][]NodeIndex {
	state := make([]int, n) // 0 = unvisited, 1 = on stack, 2 = done
	onStack := make([]NodeIndex, 0, n)
	stackPos := make(map[NodeIndex]int, n)
	var cycles [][]NodeIndex
	seen := map[string]bool{}

	var dfs func(v NodeIndex)
	dfs = func(v NodeIndex) {
		state[v] = 1
		stackPos[v] = len(onStack)
		onStack = append(onStack, v)

		for _, w := range succ[v] {
			switch state[w] {
			case 0:
				dfs(w)
			case 1:
				pos := stackPos[w]
				cycle := append([]NodeIndex{}, onStack[pos:]...)
				cycle = append(cycle, w)
				key := canonicalCycleKey(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}

		onStack = onStack[:len(onStack)-1]
		delete(stackPos, v)
		state[v] = 2
	}

	for i := 0; i < n; i++ {
		if inResidual[i] && state[i] == 0 {
			dfs(NodeIndex(i))
		}
	}
	return cycles
}

// canonicalCycleKey rotates a closed cycle [v0..v(k-1), v0] so it starts at
// its minimum element, producing a stable dedup key independent of which
// element the DFS happened to detect the closure at.
func canonicalCycleKey(cycle []NodeIndex) string {
	body := cycle[:len(cycle)-1] // drop the repeated closing element
	minIdx := 0
	for i, v := range body {
		if v < body[minIdx] {
			minIdx = i
		}
	}
	b := make([]byte, 0, len(body)*4)
	for i := 0; i < len(body); i++ {
		v := body[(minIdx+i)%len(body)]
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return string(b)
}
