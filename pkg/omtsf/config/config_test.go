package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BayFX/omtsf/pkg/omtsf/merge"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MergeSection(t *testing.T) {
	path := writeConfig(t, `
merge:
  same_as_threshold: any
  group_size_limit: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mc, err := cfg.Merge.MergeConfig()
	if err != nil {
		t.Fatalf("MergeConfig: %v", err)
	}
	if mc.SameAsThreshold != merge.SameAsThresholdAny {
		t.Errorf("expected threshold any, got %q", mc.SameAsThreshold)
	}
	if mc.GroupSizeLimit != 10 {
		t.Errorf("expected group size limit 10, got %d", mc.GroupSizeLimit)
	}
}

func TestLoad_MergeSectionDefaults(t *testing.T) {
	path := writeConfig(t, "merge: {}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mc, err := cfg.Merge.MergeConfig()
	if err != nil {
		t.Fatalf("MergeConfig: %v", err)
	}
	if mc.SameAsThreshold != merge.SameAsThresholdDefinite {
		t.Errorf("expected default threshold definite, got %q", mc.SameAsThreshold)
	}
	if mc.GroupSizeLimit != 50 {
		t.Errorf("expected default group size limit 50, got %d", mc.GroupSizeLimit)
	}
}

func TestLoad_MergeSectionRejectsUnknownThreshold(t *testing.T) {
	path := writeConfig(t, "merge:\n  same_as_threshold: overwhelming\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Merge.MergeConfig(); err == nil {
		t.Error("expected an error for an unrecognised same_as_threshold")
	}
}

func TestLoad_ValidationSection(t *testing.T) {
	path := writeConfig(t, "validation:\n  run_l1: true\n  run_l3: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	vc := cfg.Validation.ValidationConfig()
	if !vc.RunL1 || vc.RunL2 || !vc.RunL3 {
		t.Errorf("unexpected validation config %+v", vc)
	}
}

func TestLoad_RedactionSection(t *testing.T) {
	path := writeConfig(t, "redaction:\n  scope: public\n  retain_ids:\n    - n1\n    - n2\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rc, err := cfg.Redaction.RedactionConfig()
	if err != nil {
		t.Fatalf("RedactionConfig: %v", err)
	}
	if rc.Scope != model.DisclosurePublic {
		t.Errorf("expected public scope, got %q", rc.Scope)
	}
	if !rc.RetainIDs["n1"] || !rc.RetainIDs["n2"] {
		t.Errorf("expected n1 and n2 retained, got %+v", rc.RetainIDs)
	}
}

func TestLoad_RedactionSectionRejectsUnknownScope(t *testing.T) {
	path := writeConfig(t, "redaction:\n  scope: classified\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Redaction.RedactionConfig(); err == nil {
		t.Error("expected an error for an unrecognised scope")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
