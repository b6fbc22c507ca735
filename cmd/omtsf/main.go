// Command omtsf is the reference CLI over the OMTSF engines: validate,
// diff, merge, redact, and query a supply-chain graph snapshot.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the CLI entrypoint, separated from main for testability.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "validate":
		return runValidateCmd(args[2:], stdout, stderr)
	case "diff":
		return runDiffCmd(args[2:], stdout, stderr)
	case "merge":
		return runMergeCmd(args[2:], stdout, stderr)
	case "redact":
		return runRedactCmd(args[2:], stdout, stderr)
	case "query":
		return runQueryCmd(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `Usage: omtsf <command> [flags]

Commands:
  validate   Run the conformance engine against a file
  diff       Compute a structural diff between two files
  merge      Reconcile multiple files into one snapshot
  redact     Downgrade a file to a target disclosure scope
  query      Run a graph query (reachable, shortest-path, all-paths, cycles)`)
}
