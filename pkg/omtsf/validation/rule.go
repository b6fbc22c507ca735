package validation

import (
	"log/slog"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// Level is the validation tier a Rule belongs to.
type Level int

const (
	L1 Level = iota
	L2
	L3
)

// Rule is a stateless validation check. Implementations append zero or more
// diagnostics to diags; they never panic and never short-circuit the rest of
// the registry. external may be nil — L3 rules that depend on it must no-op
// in that case.
type Rule interface {
	ID() RuleId
	Level() Level
	Check(file *model.File, diags *[]Diagnostic, external ExternalDataSource)
}

// Config selects which validation levels run.
type Config struct {
	RunL1 bool
	RunL2 bool
	RunL3 bool

	// Logger receives Debug-level internal engine steps. Defaults to
	// slog.Default() when nil.
	Logger *slog.Logger
}

// DefaultConfig runs L1 and L2 but not L3 (whose rules, apart from the
// legal_parentage cycle check, need an external data source to produce any
// findings).
func DefaultConfig() Config { return Config{RunL1: true, RunL2: true, RunL3: false} }

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Engine runs a fixed registry of rules filtered by Config.
type Engine struct {
	rules []Rule
}

// NewEngine builds the full core rule registry.
func NewEngine() *Engine {
	return &Engine{rules: append(append(l1Rules(), l2Rules()...), l3Rules()...)}
}

// WithRules returns a copy of e with extra appended to its registry,
// running alongside the core rules subject to the same Config level
// filter. Used to register pluggable Extension rules (e.g. celrule.Rule)
// without touching the closed core catalogue.
func (e *Engine) WithRules(extra ...Rule) *Engine {
	rules := make([]Rule, len(e.rules)+len(extra))
	copy(rules, e.rules)
	copy(rules[len(e.rules):], extra)
	return &Engine{rules: rules}
}

// Validate runs every rule whose level is enabled in cfg and collects every
// diagnostic produced, in rule-registration order.
func (e *Engine) Validate(file *model.File, cfg Config, external ExternalDataSource) Result {
	var diags []Diagnostic
	for _, r := range e.rules {
		switch r.Level() {
		case L1:
			if !cfg.RunL1 {
				continue
			}
		case L2:
			if !cfg.RunL2 {
				continue
			}
		case L3:
			if !cfg.RunL3 {
				continue
			}
		}
		r.Check(file, &diags, external)
	}
	result := NewResult(diags)
	cfg.logger().Debug("validation: engine run complete",
		"rules_registered", len(e.rules), "diagnostics", len(diags), "conformant", result.IsConformant())
	return result
}
