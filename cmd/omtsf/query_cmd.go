package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/BayFX/omtsf/pkg/omtsf/graph"
)

// runQueryCmd implements `omtsf query <reachable|shortest-path|all-paths|cycles>`.
//
// Exit codes:
//
//	0 = query ran successfully
//	2 = runtime error (bad flags, unreadable file, unknown node id)
func runQueryCmd(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		_, _ = fmt.Fprintln(stderr, "Usage: omtsf query <reachable|shortest-path|all-paths|cycles> [flags]")
		return 2
	}

	cmd := flag.NewFlagSet("query "+args[0], flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		path     string
		from, to string
		maxDepth int
	)
	cmd.StringVar(&path, "file", "", "Path to an OMTSF file (REQUIRED)")
	cmd.StringVar(&from, "from", "", "Starting node id")
	cmd.StringVar(&to, "to", "", "Target node id")
	cmd.IntVar(&maxDepth, "max-depth", 10, "Maximum path length for all-paths")

	if err := cmd.Parse(args[1:]); err != nil {
		return 2
	}
	if path == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --file is required")
		return 2
	}

	file, err := loadFile(path)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	g, err := graph.Build(file)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	ctx := context.Background()
	switch args[0] {
	case "reachable":
		start, ok := g.NodeIndexOf(from)
		if !ok {
			_, _ = fmt.Fprintf(stderr, "Error: unknown node %q\n", from)
			return 2
		}
		nodes := g.ReachableFrom(ctx, start, graph.Forward, graph.EdgeTypeFilter{})
		for _, idx := range nodes {
			_, _ = fmt.Fprintln(stdout, g.NodeWeightAt(idx).LocalId)
		}
	case "shortest-path":
		startIdx, ok := g.NodeIndexOf(from)
		if !ok {
			_, _ = fmt.Fprintf(stderr, "Error: unknown node %q\n", from)
			return 2
		}
		endIdx, ok := g.NodeIndexOf(to)
		if !ok {
			_, _ = fmt.Fprintf(stderr, "Error: unknown node %q\n", to)
			return 2
		}
		path, found := g.ShortestPath(ctx, startIdx, endIdx, graph.Forward, graph.EdgeTypeFilter{})
		if !found {
			_, _ = fmt.Fprintln(stdout, "no path found")
			return 0
		}
		printPath(stdout, g, path)
	case "all-paths":
		startIdx, ok := g.NodeIndexOf(from)
		if !ok {
			_, _ = fmt.Fprintf(stderr, "Error: unknown node %q\n", from)
			return 2
		}
		endIdx, ok := g.NodeIndexOf(to)
		if !ok {
			_, _ = fmt.Fprintf(stderr, "Error: unknown node %q\n", to)
			return 2
		}
		for _, p := range g.AllPaths(ctx, startIdx, endIdx, graph.Forward, graph.EdgeTypeFilter{}, maxDepth) {
			printPath(stdout, g, p)
		}
	case "cycles":
		for _, c := range g.DetectCycles(ctx, graph.EdgeTypeFilter{}) {
			printPath(stdout, g, c)
		}
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown query %q\n", args[0])
		return 2
	}
	return 0
}

func printPath(w io.Writer, g *graph.Graph, path []graph.NodeIndex) {
	for i, idx := range path {
		if i > 0 {
			_, _ = fmt.Fprint(w, " -> ")
		}
		_, _ = fmt.Fprint(w, g.NodeWeightAt(idx).LocalId)
	}
	_, _ = fmt.Fprintln(w)
}
