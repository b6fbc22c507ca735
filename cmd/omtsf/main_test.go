package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const sampleFile = `{
	"omtsf_version": "1.0.0",
	"snapshot_date": "2026-01-15",
	"file_salt": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	"nodes": [
		{"id": "n1", "node_type": "organization", "name": "Acme"},
		{"id": "n2", "node_type": "organization", "name": "Beta"}
	],
	"edges": [
		{"id": "e1", "edge_type": "supplies", "source": "n1", "target": "n2"}
	]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.json")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf"}, &stdout, &stderr)
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "bogus"}, &stdout, &stderr)
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunValidateOnConformantFile(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "validate", "-file", path}, &stdout, &stderr)
	if code != 0 {
		t.Errorf("exit code = %d, want 0; stdout=%s stderr=%s", code, stdout.String(), stderr.String())
	}
}

func TestRunDiffOnIdenticalFiles(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "diff", "-a", path, "-b", path}, &stdout, &stderr)
	// The sample nodes carry no external identifiers, so diff cannot match
	// them: each side's nodes and edge are reported removed/added (exit 1).
	if code != 1 {
		t.Errorf("exit code = %d, want 1; stderr=%s", code, stderr.String())
	}
}

func TestRunMergeSingleFile(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "merge", "-file", path}, &stdout, &stderr)
	if code != 0 {
		t.Errorf("exit code = %d, want 0; stderr=%s", code, stderr.String())
	}
}

func TestRunRedactToPublicScope(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "redact", "-file", path, "-scope", "public"}, &stdout, &stderr)
	if code != 0 {
		t.Errorf("exit code = %d, want 0; stderr=%s", code, stderr.String())
	}
}

func TestRunRedactRejectsUnknownScope(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "redact", "-file", path, "-scope", "classified"}, &stdout, &stderr)
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunQueryReachable(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "query", "reachable", "-file", path, "-from", "n1"}, &stdout, &stderr)
	if code != 0 {
		t.Errorf("exit code = %d, want 0; stderr=%s", code, stderr.String())
	}
	if stdout.String() == "" {
		t.Error("expected reachable output to list n2")
	}
}

func TestRunQueryUnknownNode(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"omtsf", "query", "reachable", "-file", path, "-from", "missing"}, &stdout, &stderr)
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
