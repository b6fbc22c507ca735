// Package celrule lets an operator add custom L3-level validation rules to
// the core engine as CEL expressions, without recompiling the validator.
// Each rule is a single boolean expression evaluated once per file; a
// result of false is reported as a diagnostic under an Extension RuleId.
package celrule

import (
	"encoding/json"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/validation"
)

// Spec describes one pluggable CEL rule: Code becomes the reverse-domain
// extension RuleId (e.g. "org.example.no-orphan-attestations"), Expression
// is a CEL boolean expression over a single `file` variable bound to the
// file's JSON representation, and Message is the diagnostic text emitted
// when Expression evaluates to false.
type Spec struct {
	Code       string
	Expression string
	Message    string
	Severity   validation.Severity
}

// Rule wraps a compiled CEL program as a validation.Rule running at L3.
type Rule struct {
	spec    Spec
	ruleID  validation.RuleId
	program cel.Program
}

// Compile parses and type-checks spec.Expression, returning a Rule ready to
// register with an Engine via validation.WithRules.
func Compile(spec Spec) (*Rule, error) {
	env, err := cel.NewEnv(cel.Variable("file", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("celrule: building CEL environment: %w", err)
	}
	ast, issues := env.Compile(spec.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("celrule: compiling %q: %w", spec.Code, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("celrule: building program for %q: %w", spec.Code, err)
	}
	severity := spec.Severity
	if severity == "" {
		severity = validation.SeverityInfo
	}
	spec.Severity = severity
	return &Rule{spec: spec, ruleID: validation.Extension(spec.Code), program: program}, nil
}

func (r *Rule) ID() validation.RuleId   { return r.ruleID }
func (r *Rule) Level() validation.Level { return validation.L3 }

// Check marshals file to its JSON form, evaluates the compiled expression
// against it, and appends a diagnostic when the expression evaluates to
// false. A non-boolean result or an evaluation error is reported as an
// Internal diagnostic rather than silently passing the file.
func (r *Rule) Check(file *model.File, diags *[]validation.Diagnostic, _ validation.ExternalDataSource) {
	raw, err := json.Marshal(file)
	if err != nil {
		*diags = append(*diags, validation.NewDiagnostic(validation.Internal, validation.SeverityError,
			validation.LocationGlobal, fmt.Sprintf("celrule %q: marshaling file: %v", r.spec.Code, err)))
		return
	}
	var fileValue interface{}
	if err := json.Unmarshal(raw, &fileValue); err != nil {
		*diags = append(*diags, validation.NewDiagnostic(validation.Internal, validation.SeverityError,
			validation.LocationGlobal, fmt.Sprintf("celrule %q: decoding file for CEL: %v", r.spec.Code, err)))
		return
	}

	out, _, err := r.program.Eval(map[string]interface{}{"file": fileValue})
	if err != nil {
		*diags = append(*diags, validation.NewDiagnostic(validation.Internal, validation.SeverityError,
			validation.LocationGlobal, fmt.Sprintf("celrule %q: evaluating: %v", r.spec.Code, err)))
		return
	}
	pass, ok := out.Value().(bool)
	if !ok {
		*diags = append(*diags, validation.NewDiagnostic(validation.Internal, validation.SeverityError,
			validation.LocationGlobal, fmt.Sprintf("celrule %q: expression did not evaluate to a bool", r.spec.Code)))
		return
	}
	if !pass {
		*diags = append(*diags, validation.NewDiagnostic(r.ruleID, r.spec.Severity, validation.LocationGlobal, r.spec.Message))
	}
}
