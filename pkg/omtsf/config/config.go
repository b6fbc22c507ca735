// Package config loads the tunable knobs of the merge, validation, and
// redaction engines from a single YAML document, the way the teacher's
// pkg/config loads a RegionalProfile.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BayFX/omtsf/pkg/omtsf/merge"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/BayFX/omtsf/pkg/omtsf/redaction"
	"github.com/BayFX/omtsf/pkg/omtsf/validation"
)

// MergeConfig is the YAML-facing form of merge.Config.
type MergeConfig struct {
	SameAsThreshold string `yaml:"same_as_threshold,omitempty" json:"same_as_threshold,omitempty"`
	GroupSizeLimit  int    `yaml:"group_size_limit,omitempty" json:"group_size_limit,omitempty"`
}

// ValidationConfig is the YAML-facing form of validation.Config.
type ValidationConfig struct {
	RunL1 bool `yaml:"run_l1" json:"run_l1"`
	RunL2 bool `yaml:"run_l2" json:"run_l2"`
	RunL3 bool `yaml:"run_l3" json:"run_l3"`
}

// RedactionConfig is the YAML-facing form of redaction.Config.
type RedactionConfig struct {
	Scope     string   `yaml:"scope" json:"scope"`
	RetainIDs []string `yaml:"retain_ids,omitempty" json:"retain_ids,omitempty"`
}

// PipelineConfig is the top-level document: any section may be omitted, in
// which case the corresponding engine's own defaults apply.
type PipelineConfig struct {
	Merge      MergeConfig      `yaml:"merge" json:"merge"`
	Validation ValidationConfig `yaml:"validation" json:"validation"`
	Redaction  RedactionConfig  `yaml:"redaction" json:"redaction"`
}

// Load reads and parses a pipeline configuration document at path.
func Load(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %q: %w", path, err)
	}
	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return &cfg, nil
}

// MergeConfig converts the YAML-facing section into merge.Config, falling
// back to merge.DefaultConfig()'s tuning for any field left at its zero
// value.
func (c MergeConfig) MergeConfig() (merge.Config, error) {
	cfg := merge.DefaultConfig()
	if c.SameAsThreshold != "" {
		threshold, err := parseSameAsThreshold(c.SameAsThreshold)
		if err != nil {
			return merge.Config{}, err
		}
		cfg.SameAsThreshold = threshold
	}
	if c.GroupSizeLimit > 0 {
		cfg.GroupSizeLimit = c.GroupSizeLimit
	}
	return cfg, nil
}

func parseSameAsThreshold(s string) (merge.SameAsThreshold, error) {
	switch merge.SameAsThreshold(s) {
	case merge.SameAsThresholdAny, merge.SameAsThresholdReported, merge.SameAsThresholdDefinite:
		return merge.SameAsThreshold(s), nil
	default:
		return "", fmt.Errorf("config: invalid same_as_threshold %q (want any|reported|definite)", s)
	}
}

// ValidationConfig converts the YAML-facing section into validation.Config.
func (c ValidationConfig) ValidationConfig() validation.Config {
	return validation.Config{RunL1: c.RunL1, RunL2: c.RunL2, RunL3: c.RunL3}
}

// RedactionConfig converts the YAML-facing section into redaction.Config.
func (c RedactionConfig) RedactionConfig() (redaction.Config, error) {
	scope, err := parseDisclosureScope(c.Scope)
	if err != nil {
		return redaction.Config{}, err
	}
	retain := make(map[string]bool, len(c.RetainIDs))
	for _, id := range c.RetainIDs {
		if _, err := primitives.NewNodeId(id); err != nil {
			return redaction.Config{}, fmt.Errorf("config: invalid retain_ids entry %q: %w", id, err)
		}
		retain[id] = true
	}
	return redaction.Config{Scope: scope, RetainIDs: retain}, nil
}

func parseDisclosureScope(s string) (model.DisclosureScope, error) {
	switch model.DisclosureScope(s) {
	case model.DisclosureInternal, model.DisclosurePartner, model.DisclosurePublic:
		return model.DisclosureScope(s), nil
	default:
		return "", fmt.Errorf("config: invalid scope %q (want internal|partner|public)", s)
	}
}
