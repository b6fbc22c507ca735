package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/redaction"
)

// runRedactCmd implements `omtsf redact`.
//
// Exit codes:
//
//	0 = redaction succeeded
//	2 = runtime error (bad flags, unreadable file, post-condition validation failure)
func runRedactCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("redact", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		path      string
		scope     string
		retainCSV string
		out       string
	)
	cmd.StringVar(&path, "file", "", "Path to an OMTSF file (REQUIRED)")
	cmd.StringVar(&scope, "scope", "", "Target disclosure scope: internal|partner|public (REQUIRED)")
	cmd.StringVar(&retainCSV, "retain-ids", "", "Comma-separated node ids to retain in full despite scope")
	cmd.StringVar(&out, "out", "-", "Output path for the redacted file (- for stdout)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if path == "" || scope == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --file and --scope are required")
		return 2
	}

	var disclosureScope model.DisclosureScope
	switch model.DisclosureScope(scope) {
	case model.DisclosureInternal, model.DisclosurePartner, model.DisclosurePublic:
		disclosureScope = model.DisclosureScope(scope)
	default:
		_, _ = fmt.Fprintf(stderr, "Error: invalid --scope %q (want internal|partner|public)\n", scope)
		return 2
	}

	retain := map[string]bool{}
	if retainCSV != "" {
		for _, id := range strings.Split(retainCSV, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				retain[id] = true
			}
		}
	}

	file, err := loadFile(path)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	out2, err := redaction.Redact(file, redaction.Config{Scope: disclosureScope, RetainIDs: retain})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if err := writeJSON(out, out2.File); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	_, _ = fmt.Fprintf(stdout, "Redacted to %s scope: %d nodes, %d edges\n", scope, len(out2.File.Nodes), len(out2.File.Edges))
	return 0
}
