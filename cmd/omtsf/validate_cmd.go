package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/BayFX/omtsf/pkg/omtsf/validation"
)

// runValidateCmd implements `omtsf validate`.
//
// Exit codes:
//
//	0 = file is conformant
//	1 = file failed validation (at least one error-severity diagnostic)
//	2 = runtime error (bad flags, unreadable/unparseable file)
func runValidateCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		path   string
		runL1  bool
		runL2  bool
		runL3  bool
		asJSON bool
	)
	cmd.StringVar(&path, "file", "", "Path to an OMTSF file (REQUIRED)")
	cmd.BoolVar(&runL1, "l1", true, "Run L1 structural rules")
	cmd.BoolVar(&runL2, "l2", true, "Run L2 semantic rules")
	cmd.BoolVar(&runL3, "l3", false, "Run L3 enrichment rules (no external data source is wired from the CLI, so only the legal_parentage cycle check can report)")
	cmd.BoolVar(&asJSON, "json", false, "Emit diagnostics as JSON")

	if err := cmd.Parse(args); err != nil {
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

	engine := validation.NewEngine()
	result := engine.Validate(file, validation.Config{RunL1: runL1, RunL2: runL2, RunL3: runL3}, nil)

	if asJSON {
		if err := writeJSON("", result.Diagnostics); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	} else {
		for _, d := range result.Diagnostics {
			_, _ = fmt.Fprintln(stdout, d.String())
		}
		if result.IsConformant() {
			_, _ = fmt.Fprintln(stdout, "OK: file is conformant")
		} else {
			_, _ = fmt.Fprintln(stdout, "FAIL: file is not conformant")
		}
	}

	if !result.IsConformant() {
		return 1
	}
	return 0
}
