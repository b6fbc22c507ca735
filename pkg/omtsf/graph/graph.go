package graph

import (
	"context"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"go.opentelemetry.io/otel/trace"
)

// NodeIndex is a stable handle to a node within a Graph. Indices are never
// reused or compacted once assigned.
type NodeIndex int

// EdgeIndex is a stable handle to an edge within a Graph.
type EdgeIndex int

// NodeWeight is the non-owning payload stored per node: a copy of the local
// id, its type tag, and the index of the full record in the owning file's
// Nodes slice.
type NodeWeight struct {
	LocalId   string
	NodeType  model.NodeTypeTag
	DataIndex int
}

// EdgeWeight is the non-owning payload stored per edge.
type EdgeWeight struct {
	LocalId   string
	EdgeType  model.EdgeTypeTag
	DataIndex int
	Source    NodeIndex
	Target    NodeIndex
}

type adjacency struct {
	out []EdgeIndex
	in  []EdgeIndex
}

// Graph is a directed labeled property multigraph built from a *model.File.
// It holds no ownership over node/edge data — only indices back into the
// file — and must not outlive the file it was built from.
type Graph struct {
	file *model.File

	nodes    []NodeWeight
	edges    []EdgeWeight
	idToNode map[string]NodeIndex
	adj      []adjacency // parallel to nodes

	tracer trace.Tracer
}

// Build performs two-pass construction from file: a node pass that rejects
// duplicate local ids, then an edge pass that rejects dangling references.
func Build(file *model.File) (*Graph, error) {
	g := &Graph{
		file:     file,
		idToNode: make(map[string]NodeIndex, len(file.Nodes)),
	}

	for i, n := range file.Nodes {
		id := n.Id.String()
		if _, exists := g.idToNode[id]; exists {
			return nil, wrapDuplicate(id)
		}
		idx := NodeIndex(len(g.nodes))
		g.idToNode[id] = idx
		g.nodes = append(g.nodes, NodeWeight{LocalId: id, NodeType: n.NodeType, DataIndex: i})
		g.adj = append(g.adj, adjacency{})
	}

	for i, e := range file.Edges {
		srcIdx, ok := g.idToNode[e.Source.String()]
		if !ok {
			return nil, wrapDangling(e.Id.String(), e.Source.String())
		}
		dstIdx, ok := g.idToNode[e.Target.String()]
		if !ok {
			return nil, wrapDangling(e.Id.String(), e.Target.String())
		}
		edgeIdx := EdgeIndex(len(g.edges))
		g.edges = append(g.edges, EdgeWeight{
			LocalId: e.Id.String(), EdgeType: e.EdgeType, DataIndex: i,
			Source: srcIdx, Target: dstIdx,
		})
		g.adj[srcIdx].out = append(g.adj[srcIdx].out, edgeIdx)
		g.adj[dstIdx].in = append(g.adj[dstIdx].in, edgeIdx)
	}

	return g, nil
}

// WithTracer returns a copy of g that records a span around each query
// method when tracer is non-nil. The default (no tracer) makes query
// methods a pure in-memory computation with no observability overhead.
func (g *Graph) WithTracer(tracer trace.Tracer) *Graph {
	clone := *g
	clone.tracer = tracer
	return &clone
}

func (g *Graph) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if g.tracer == nil {
		return ctx, noopSpan{}
	}
	return g.tracer.Start(ctx, name)
}

type noopSpan struct{ trace.Span }

func (noopSpan) End(...trace.SpanEndOption) {}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodeIndexOf returns the stable index for a node's local id.
func (g *Graph) NodeIndexOf(id string) (NodeIndex, bool) {
	idx, ok := g.idToNode[id]
	return idx, ok
}

// NodeWeightAt returns the weight stored at idx.
func (g *Graph) NodeWeightAt(idx NodeIndex) NodeWeight { return g.nodes[idx] }

// EdgeWeightAt returns the weight stored at idx.
func (g *Graph) EdgeWeightAt(idx EdgeIndex) EdgeWeight { return g.edges[idx] }

// File returns the file this graph was built from.
func (g *Graph) File() *model.File { return g.file }
