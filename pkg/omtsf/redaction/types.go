// Package redaction implements the disclosure-scope downgrade pipeline:
// given a higher-trust file and a target scope, it produces a new file with
// sensitive nodes/edges omitted or replaced by opaque boundary references.
package redaction

import (
	"log/slog"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/validation"
)

// Config controls one redaction run.
type Config struct {
	// Scope is the target disclosure scope. Required.
	Scope model.DisclosureScope

	// RetainIDs names nodes the producer has chosen to keep in full despite
	// scope, keyed by their NodeId's string form. A nil map retains nothing
	// beyond what scope already allows.
	RetainIDs map[string]bool

	// Engine runs post-condition L1 validation. Defaults to validation.NewEngine().
	Engine *validation.Engine

	// Logger receives Debug-level internal engine steps. Defaults to
	// slog.Default() when nil.
	Logger *slog.Logger
}

func (c Config) engine() *validation.Engine {
	if c.Engine != nil {
		return c.Engine
	}
	return validation.NewEngine()
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) retains(id string) bool {
	return c.RetainIDs[id]
}

// allowedSensitivities is the per-scope allow-list from the sensitivity
// model: internal allows everything, partner drops confidential, public
// keeps only public.
var allowedSensitivities = map[model.DisclosureScope]map[model.Sensitivity]bool{
	model.DisclosureInternal: {
		model.SensitivityPublic:       true,
		model.SensitivityRestricted:   true,
		model.SensitivityConfidential: true,
	},
	model.DisclosurePartner: {
		model.SensitivityPublic:     true,
		model.SensitivityRestricted: true,
	},
	model.DisclosurePublic: {
		model.SensitivityPublic: true,
	},
}

func allowed(scope model.DisclosureScope, s model.Sensitivity) bool {
	return allowedSensitivities[scope][s]
}

// Output is the result of a successful redaction.
type Output struct {
	File *model.File
}

// InvalidOutput reports that a redacted file failed post-condition L1
// validation — the pipeline treats this as an engine bug, since a
// non-conformant output means the classification/filtering logic produced
// a broken file rather than a mere content disagreement.
type InvalidOutput struct {
	Result validation.Result
}

func (e *InvalidOutput) Error() string {
	return "redaction: output file failed post-condition L1 validation"
}
