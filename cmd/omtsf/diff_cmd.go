package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/BayFX/omtsf/pkg/omtsf/diff"
)

// runDiffCmd implements `omtsf diff`.
//
// Exit codes:
//
//	0 = files are identical
//	1 = files differ
//	2 = runtime error
func runDiffCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("diff", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		pathA, pathB string
		out          string
	)
	cmd.StringVar(&pathA, "a", "", "Path to file A (REQUIRED)")
	cmd.StringVar(&pathB, "b", "", "Path to file B (REQUIRED)")
	cmd.StringVar(&out, "out", "-", "Output path for the JSON diff result (- for stdout)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if pathA == "" || pathB == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --a and --b are required")
		return 2
	}

	a, err := loadFile(pathA)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	b, err := loadFile(pathB)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	outcome := diff.Run(a, b)
	result, ok := outcome.Result()
	if !ok {
		_, _ = fmt.Fprintln(stderr, "Error: diff produced no comparable result")
		return 2
	}

	if err := writeJSON(out, result); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if outcome.Kind() == diff.Identical {
		return 0
	}
	return 1
}
