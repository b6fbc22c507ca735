// Package diff computes node/edge/property differences between two OMTSF
// files under the cross-file identity model (package identity), per spec
// §4.5. Matching is transitive: two files' nodes are partitioned into match
// groups by connected components of the NodesMatch relation, so a node in A
// that matches two different nodes in B (or vice versa) forms a single
// ambiguous group rather than two independent pairs.
package diff

import "github.com/BayFX/omtsf/pkg/omtsf/model"

// PropertyChange is one scalar field that differs between a matched pair,
// or nil for a side where the field is absent.
type PropertyChange struct {
	Field string      `json:"field"`
	Old   interface{} `json:"old_value"`
	New   interface{} `json:"new_value"`
}

// IdentifierSetDiff is the result of diffing two identifier sets keyed by
// canonical id (package canonicalize), excluding non-external identifiers.
type IdentifierSetDiff struct {
	Added    []model.Identifier       `json:"added"`
	Removed  []model.Identifier       `json:"removed"`
	Modified []IdentifierFieldChanges `json:"modified"`
}

// IdentifierFieldChanges names the per-field changes on an identifier kept
// across both sides (same canonical id present in A and B).
type IdentifierFieldChanges struct {
	CanonicalId string           `json:"canonical_id"`
	Changes     []PropertyChange `json:"changes"`
}

// LabelSetDiff is the result of diffing two label sets under (key, value)
// pair equality. A value change on a kept key is represented as the
// removal of the old (key, value) pair plus the addition of the new one —
// there is no "modified" bucket for labels.
type LabelSetDiff struct {
	Added   []model.Label `json:"added"`
	Removed []model.Label `json:"removed"`
}

func (d LabelSetDiff) isEmpty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

func (d IdentifierSetDiff) isEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// NodeDiff describes one matched pair of nodes (or, for an ambiguous match
// group, one matched pair drawn from it).
type NodeDiff struct {
	IdA                string            `json:"id_a"`
	IdB                string            `json:"id_b"`
	MatchedBy          []string          `json:"matched_by"`
	PropertyChanges    []PropertyChange  `json:"property_changes"`
	IdentifierChanges  IdentifierSetDiff `json:"identifier_changes"`
	LabelChanges       LabelSetDiff      `json:"label_changes"`
}

func (d NodeDiff) isUnchanged() bool {
	return len(d.PropertyChanges) == 0 && d.IdentifierChanges.isEmpty() && d.LabelChanges.isEmpty()
}

// EdgeDiff describes one matched pair of edges.
type EdgeDiff struct {
	IdA               string            `json:"id_a"`
	IdB               string            `json:"id_b"`
	PropertyChanges   []PropertyChange  `json:"property_changes"`
	IdentifierChanges IdentifierSetDiff `json:"identifier_changes"`
	LabelChanges      LabelSetDiff      `json:"label_changes"`
}

func (d EdgeDiff) isUnchanged() bool {
	return len(d.PropertyChanges) == 0 && d.IdentifierChanges.isEmpty() && d.LabelChanges.isEmpty()
}

// NodeBucket partitions A/B nodes into the four outcome buckets.
type NodeBucket struct {
	Added     []model.Node `json:"added"`
	Removed   []model.Node `json:"removed"`
	Modified  []NodeDiff   `json:"modified"`
	Unchanged []NodeDiff   `json:"unchanged"`
}

// EdgeBucket partitions A/B edges into the four outcome buckets.
type EdgeBucket struct {
	Added     []model.Edge `json:"added"`
	Removed   []model.Edge `json:"removed"`
	Modified  []EdgeDiff   `json:"modified"`
	Unchanged []EdgeDiff   `json:"unchanged"`
}

// Summary is the numeric rollup of a Result, used for CLI reporting and
// the "diff vs. identical" exit-code decision.
type Summary struct {
	NodesAdded     int `json:"nodes_added"`
	NodesRemoved   int `json:"nodes_removed"`
	NodesModified  int `json:"nodes_modified"`
	NodesUnchanged int `json:"nodes_unchanged"`
	EdgesAdded     int `json:"edges_added"`
	EdgesRemoved   int `json:"edges_removed"`
	EdgesModified  int `json:"edges_modified"`
	EdgesUnchanged int `json:"edges_unchanged"`
}

// Result is the full output of a diff run.
type Result struct {
	Nodes    NodeBucket `json:"nodes"`
	Edges    EdgeBucket `json:"edges"`
	Warnings []string   `json:"warnings"`
}

// IsEmpty reports whether the result carries no additions, removals, or
// modifications — the unchanged bucket and warnings don't count, matching
// the "different from identical" exit-code semantics (§4.5).
func (r Result) IsEmpty() bool {
	return len(r.Nodes.Added) == 0 && len(r.Nodes.Removed) == 0 && len(r.Nodes.Modified) == 0 &&
		len(r.Edges.Added) == 0 && len(r.Edges.Removed) == 0 && len(r.Edges.Modified) == 0
}

// Summary computes the numeric rollup of r.
func (r Result) Summary() Summary {
	return Summary{
		NodesAdded:     len(r.Nodes.Added),
		NodesRemoved:   len(r.Nodes.Removed),
		NodesModified:  len(r.Nodes.Modified),
		NodesUnchanged: len(r.Nodes.Unchanged),
		EdgesAdded:     len(r.Edges.Added),
		EdgesRemoved:   len(r.Edges.Removed),
		EdgesModified:  len(r.Edges.Modified),
		EdgesUnchanged: len(r.Edges.Unchanged),
	}
}

// Filter narrows which nodes/edges participate in a diff run, and which
// property-change fields are reported.
type Filter struct {
	NodeTypes    map[model.NodeType]bool
	EdgeTypes    map[model.EdgeType]bool
	IgnoreFields map[string]bool
}

func (f *Filter) includesNode(n model.Node) bool {
	if f == nil || len(f.NodeTypes) == 0 {
		return true
	}
	t, ok := n.NodeType.Known()
	return ok && f.NodeTypes[t]
}

func (f *Filter) includesEdge(e model.Edge) bool {
	if f == nil || len(f.EdgeTypes) == 0 {
		return true
	}
	t, ok := e.EdgeType.Known()
	return ok && f.EdgeTypes[t]
}

func (f *Filter) ignores(field string) bool {
	return f != nil && f.IgnoreFields[field]
}

func applyIgnore(f *Filter, changes []PropertyChange) []PropertyChange {
	if f == nil || len(f.IgnoreFields) == 0 {
		return changes
	}
	out := changes[:0:0]
	for _, c := range changes {
		if !f.ignores(c.Field) {
			out = append(out, c)
		}
	}
	return out
}

// OutcomeKind discriminates the three-way result of a Run call.
type OutcomeKind int

const (
	// Identical means the two files produced no additions, removals, or
	// modifications.
	Identical OutcomeKind = iota
	// DifferencesFound means the diff carries at least one addition,
	// removal, or modification.
	DifferencesFound
	// ParseFailed means a or b could not be compared at all (reserved for
	// CLI callers that diff from raw bytes rather than decoded *model.File
	// values; Run itself never returns this kind).
	ParseFailed
)

// Outcome is the sum-type result of Run: exactly one of a conformant
// identical/differing Result, or a parse failure, distinguished by Kind.
type Outcome struct {
	kind   OutcomeKind
	result *Result
	err    error
}

func (o Outcome) Kind() OutcomeKind { return o.kind }

// Result returns the underlying Result and true, when Kind is Identical or
// DifferencesFound.
func (o Outcome) Result() (*Result, bool) {
	if o.kind == ParseFailed {
		return nil, false
	}
	return o.result, true
}

// Err returns the underlying error and true, when Kind is ParseFailed.
func (o Outcome) Err() (error, bool) {
	if o.kind != ParseFailed {
		return nil, false
	}
	return o.err, true
}

func outcomeFromResult(r *Result) Outcome {
	if r.IsEmpty() {
		return Outcome{kind: Identical, result: r}
	}
	return Outcome{kind: DifferencesFound, result: r}
}

// OutcomeFromError builds a ParseFailed outcome, for CLI callers that need
// to fold a decode error into the same Outcome type Run returns.
func OutcomeFromError(err error) Outcome {
	return Outcome{kind: ParseFailed, err: err}
}
