// Package validation implements the three-level OMTSF conformance engine:
// L1 structural rules (Severity Error, file non-conformant on violation), L2
// semantic rules (Severity Warning), and L3 enrichment rules that consult
// external registries or run graph-wide checks (Severity Info).
package validation

import "fmt"

// Severity is the level at which a diagnostic was raised.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	default:
		return string(s)
	}
}

func (s Severity) letter() byte {
	switch s {
	case SeverityError:
		return 'E'
	case SeverityWarning:
		return 'W'
	case SeverityInfo:
		return 'I'
	default:
		return '?'
	}
}

// RuleId identifies the rule that produced a Diagnostic. Known() reports
// whether it is one of the closed catalogue of spec-defined rule codes;
// Extension rules come from pluggable third-party validators and Internal
// marks a bug in the validator itself rather than a finding about the file.
type RuleId struct {
	code       string
	extension  bool
	isInternal bool
}

func known(code string) RuleId { return RuleId{code: code} }

// Extension constructs a RuleId for a third-party rule. code must not use
// the L1-*, L2-*, or L3-* prefixes reserved for the core catalogue.
func Extension(code string) RuleId { return RuleId{code: code, extension: true} }

// Internal is the RuleId used when the validator itself fails unexpectedly.
var Internal = RuleId{code: "internal", isInternal: true}

// Code returns the canonical hyphenated rule code (e.g. "L1-GDM-03").
func (r RuleId) Code() string { return r.code }

func (r RuleId) String() string { return r.code }

// IsExtension reports whether this RuleId was produced by Extension.
func (r RuleId) IsExtension() bool { return r.extension }

var (
	// L1: Graph Data Model
	L1Gdm01 = known("L1-GDM-01")
	L1Gdm02 = known("L1-GDM-02")
	L1Gdm03 = known("L1-GDM-03")
	L1Gdm04 = known("L1-GDM-04")
	L1Gdm05 = known("L1-GDM-05")
	L1Gdm06 = known("L1-GDM-06")

	// L1: Entity Identification
	L1Eid01 = known("L1-EID-01")
	L1Eid02 = known("L1-EID-02")
	L1Eid03 = known("L1-EID-03")
	L1Eid04 = known("L1-EID-04")
	L1Eid05 = known("L1-EID-05")
	L1Eid06 = known("L1-EID-06")
	L1Eid07 = known("L1-EID-07")
	L1Eid08 = known("L1-EID-08")
	L1Eid09 = known("L1-EID-09")
	L1Eid10 = known("L1-EID-10")
	L1Eid11 = known("L1-EID-11")

	// L1: Selective Disclosure
	L1Sdi01 = known("L1-SDI-01")
	L1Sdi02 = known("L1-SDI-02")

	// L2: Graph Data Model
	L2Gdm01 = known("L2-GDM-01")
	L2Gdm02 = known("L2-GDM-02")
	L2Gdm03 = known("L2-GDM-03")
	L2Gdm04 = known("L2-GDM-04")

	// L2: Entity Identification
	L2Eid01 = known("L2-EID-01")
	L2Eid02 = known("L2-EID-02")
	L2Eid03 = known("L2-EID-03")
	L2Eid04 = known("L2-EID-04")
	L2Eid05 = known("L2-EID-05")
	L2Eid06 = known("L2-EID-06")
	L2Eid07 = known("L2-EID-07")
	L2Eid08 = known("L2-EID-08")

	// L3: registry verification and merge-semantics checks
	L3Eid01 = known("L3-EID-01")
	L3Eid02 = known("L3-EID-02")
	L3Eid03 = known("L3-EID-03")
	L3Eid04 = known("L3-EID-04")
	L3Eid05 = known("L3-EID-05")
	L3Mrg01 = known("L3-MRG-01")
	L3Mrg02 = known("L3-MRG-02")
)

// Location identifies where in the graph a diagnostic was found. Exactly
// one of the accessor fields is meaningful; construct via the Location*
// helper functions rather than the struct literal.
type Location struct {
	kind      locationKind
	field     string
	hasField  bool
	nodeID    string
	edgeID    string
	index     int
}

type locationKind int

const (
	locHeader locationKind = iota
	locNode
	locEdge
	locIdentifier
	locGlobal
)

// LocationHeader points at a field in the file header.
func LocationHeader(field string) Location { return Location{kind: locHeader, field: field, hasField: true} }

// LocationNode points at a node, optionally at one of its fields.
func LocationNode(nodeID string, field string) Location {
	loc := Location{kind: locNode, nodeID: nodeID}
	if field != "" {
		loc.field, loc.hasField = field, true
	}
	return loc
}

// LocationEdge points at an edge, optionally at one of its fields.
func LocationEdge(edgeID string, field string) Location {
	loc := Location{kind: locEdge, edgeID: edgeID}
	if field != "" {
		loc.field, loc.hasField = field, true
	}
	return loc
}

// LocationIdentifier points at an entry in a node's identifiers array,
// optionally at one of that entry's fields.
func LocationIdentifier(nodeID string, index int, field string) Location {
	loc := Location{kind: locIdentifier, nodeID: nodeID, index: index}
	if field != "" {
		loc.field, loc.hasField = field, true
	}
	return loc
}

// LocationGlobal marks a file-level finding not attributable to a specific
// node or edge.
var LocationGlobal = Location{kind: locGlobal}

func (l Location) String() string {
	switch l.kind {
	case locHeader:
		return fmt.Sprintf("header.%s", l.field)
	case locNode:
		if l.hasField {
			return fmt.Sprintf("node %q field %q", l.nodeID, l.field)
		}
		return fmt.Sprintf("node %q", l.nodeID)
	case locEdge:
		if l.hasField {
			return fmt.Sprintf("edge %q field %q", l.edgeID, l.field)
		}
		return fmt.Sprintf("edge %q", l.edgeID)
	case locIdentifier:
		if l.hasField {
			return fmt.Sprintf("node %q identifiers[%d].%s", l.nodeID, l.index, l.field)
		}
		return fmt.Sprintf("node %q identifiers[%d]", l.nodeID, l.index)
	default:
		return "(global)"
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	RuleId   RuleId
	Severity Severity
	Location Location
	Message  string
}

// NewDiagnostic constructs a Diagnostic.
func NewDiagnostic(ruleID RuleId, severity Severity, location Location, message string) Diagnostic {
	return Diagnostic{RuleId: ruleID, Severity: severity, Location: location, Message: message}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%c] %s %s: %s", d.Severity.letter(), d.RuleId, d.Location, d.Message)
}

// Result is the collected output of a validation pass. It never fails fast
// — every applicable rule runs and contributes its diagnostics.
type Result struct {
	Diagnostics []Diagnostic
}

// NewResult wraps a pre-built diagnostic slice.
func NewResult(diagnostics []Diagnostic) Result { return Result{Diagnostics: diagnostics} }

// HasErrors reports whether any diagnostic has SeverityError.
func (r Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// IsConformant reports whether the file has zero SeverityError diagnostics.
// Warnings and info findings do not affect conformance.
func (r Result) IsConformant() bool { return !r.HasErrors() }

// BySeverity returns all diagnostics at the given severity.
func (r Result) BySeverity(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// ByRule returns all diagnostics produced by the given rule.
func (r Result) ByRule(rule RuleId) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.RuleId == rule {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the total diagnostic count.
func (r Result) Len() int { return len(r.Diagnostics) }

// IsEmpty reports whether there are no diagnostics at all.
func (r Result) IsEmpty() bool { return len(r.Diagnostics) == 0 }
