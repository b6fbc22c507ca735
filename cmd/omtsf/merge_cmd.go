package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/BayFX/omtsf/pkg/omtsf/merge"
)

// stringList accumulates repeated -file flag occurrences.
type stringList []string

func (s *stringList) String() string  { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// runMergeCmd implements `omtsf merge`.
//
// Exit codes:
//
//	0 = merge succeeded
//	2 = runtime error (bad flags, unreadable file, post-merge validation failure)
func runMergeCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("merge", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var files stringList
	var out string
	var sameAsThreshold string
	cmd.Var(&files, "file", "Path to an input file (repeatable, at least one REQUIRED)")
	cmd.StringVar(&out, "out", "-", "Output path for the merged file (- for stdout)")
	cmd.StringVar(&sameAsThreshold, "same-as-threshold", "definite", "same_as confidence threshold: any|reported|definite")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintln(stderr, "Error: at least one --file is required")
		return 2
	}

	inputs := make([]merge.Input, 0, len(files))
	for _, path := range files {
		f, err := loadFile(path)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		inputs = append(inputs, merge.Input{File: f, Label: path})
	}

	cfg := merge.DefaultConfig()
	switch merge.SameAsThreshold(sameAsThreshold) {
	case merge.SameAsThresholdAny, merge.SameAsThresholdReported, merge.SameAsThresholdDefinite:
		cfg.SameAsThreshold = merge.SameAsThreshold(sameAsThreshold)
	default:
		_, _ = fmt.Fprintf(stderr, "Error: invalid --same-as-threshold %q (want any|reported|definite)\n", sameAsThreshold)
		return 2
	}

	result, err := merge.Run(inputs, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if err := writeJSON(out, result.File); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	for _, w := range result.Warnings {
		_, _ = fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	_, _ = fmt.Fprintf(stdout, "Merged %d files: %d nodes, %d edges, %d conflicts\n",
		len(inputs), result.Metadata.MergedNodeCount, result.Metadata.MergedEdgeCount, result.Metadata.ConflictCount)
	return 0
}
