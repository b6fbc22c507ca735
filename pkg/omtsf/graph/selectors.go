package graph

import (
	"strings"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"golang.org/x/text/cases"
)

// SelectorSet composes eight predicate groups with OR-within-group,
// AND-across-groups semantics. Node-only groups are ignored when evaluating
// an edge and vice versa; an empty SelectorSet matches everything.
type SelectorSet struct {
	NodeTypes              []model.NodeType
	EdgeTypes              []model.EdgeType
	LabelKeys              []string
	LabelKeyValues         []LabelKeyValue
	IdentifierSchemes      []string
	IdentifierSchemeValues []IdentifierSchemeValue
	Jurisdictions          []string
	Names                  []string // case-insensitive substring match against node.Name
}

// LabelKeyValue selects labels with an exact (key, value) pair.
type LabelKeyValue struct {
	Key   string
	Value string
}

// IdentifierSchemeValue selects identifiers with an exact (scheme, value) pair.
type IdentifierSchemeValue struct {
	Scheme string
	Value  string
}

var nameFolder = cases.Fold()

// IsEmpty reports whether every group is empty, in which case the set
// matches everything.
func (s SelectorSet) IsEmpty() bool {
	return len(s.NodeTypes) == 0 && len(s.EdgeTypes) == 0 &&
		len(s.LabelKeys) == 0 && len(s.LabelKeyValues) == 0 &&
		len(s.IdentifierSchemes) == 0 && len(s.IdentifierSchemeValues) == 0 &&
		len(s.Jurisdictions) == 0 && len(s.Names) == 0
}

// HasNodeSelectors reports whether any node-applicable group is non-empty.
func (s SelectorSet) HasNodeSelectors() bool {
	return len(s.NodeTypes) > 0 || len(s.Jurisdictions) > 0 || len(s.Names) > 0 ||
		s.hasSharedSelectors()
}

// HasEdgeSelectors reports whether any edge-applicable group is non-empty.
func (s SelectorSet) HasEdgeSelectors() bool {
	return len(s.EdgeTypes) > 0 || s.hasSharedSelectors()
}

func (s SelectorSet) hasSharedSelectors() bool {
	return len(s.LabelKeys) > 0 || len(s.LabelKeyValues) > 0 ||
		len(s.IdentifierSchemes) > 0 || len(s.IdentifierSchemeValues) > 0
}

// MatchesNode reports whether n satisfies every applicable group.
func (s SelectorSet) MatchesNode(n model.Node) bool {
	if len(s.NodeTypes) > 0 && !matchesAnyNodeType(s.NodeTypes, n.NodeType) {
		return false
	}
	if len(s.Jurisdictions) > 0 && !matchesAnyJurisdiction(s.Jurisdictions, n.Jurisdiction) {
		return false
	}
	if len(s.Names) > 0 && !matchesAnyName(s.Names, n.Name) {
		return false
	}
	if len(s.LabelKeys) > 0 && !matchesAnyLabelKey(s.LabelKeys, n.Labels) {
		return false
	}
	if len(s.LabelKeyValues) > 0 && !matchesAnyLabelKeyValue(s.LabelKeyValues, n.Labels) {
		return false
	}
	if len(s.IdentifierSchemes) > 0 && !matchesAnyIdentifierScheme(s.IdentifierSchemes, n.Identifiers) {
		return false
	}
	if len(s.IdentifierSchemeValues) > 0 && !matchesAnyIdentifierSchemeValue(s.IdentifierSchemeValues, n.Identifiers) {
		return false
	}
	return true
}

// MatchesEdge reports whether e satisfies every applicable group.
func (s SelectorSet) MatchesEdge(e model.Edge) bool {
	if len(s.EdgeTypes) > 0 && !matchesAnyEdgeType(s.EdgeTypes, e.EdgeType) {
		return false
	}
	if len(s.LabelKeys) > 0 && !matchesAnyLabelKey(s.LabelKeys, e.Properties.Labels) {
		return false
	}
	if len(s.LabelKeyValues) > 0 && !matchesAnyLabelKeyValue(s.LabelKeyValues, e.Properties.Labels) {
		return false
	}
	if len(s.IdentifierSchemes) > 0 && !matchesAnyIdentifierScheme(s.IdentifierSchemes, e.Identifiers) {
		return false
	}
	if len(s.IdentifierSchemeValues) > 0 && !matchesAnyIdentifierSchemeValue(s.IdentifierSchemeValues, e.Identifiers) {
		return false
	}
	return true
}

func matchesAnyNodeType(types []model.NodeType, tag model.NodeTypeTag) bool {
	known, ok := tag.Known()
	if !ok {
		return false
	}
	for _, t := range types {
		if t == known {
			return true
		}
	}
	return false
}

func matchesAnyEdgeType(types []model.EdgeType, tag model.EdgeTypeTag) bool {
	known, ok := tag.Known()
	if !ok {
		return false
	}
	for _, t := range types {
		if t == known {
			return true
		}
	}
	return false
}

func matchesAnyJurisdiction(values []string, j *primitives.CountryCode) bool {
	if j == nil {
		return false
	}
	for _, v := range values {
		if v == j.String() {
			return true
		}
	}
	return false
}

func matchesAnyName(needles []string, name *string) bool {
	if name == nil {
		return false
	}
	folded := nameFolder.String(*name)
	for _, needle := range needles {
		if strings.Contains(folded, nameFolder.String(needle)) {
			return true
		}
	}
	return false
}

func matchesAnyLabelKey(keys []string, labels []model.Label) bool {
	for _, l := range labels {
		for _, k := range keys {
			if l.Key == k {
				return true
			}
		}
	}
	return false
}

func matchesAnyLabelKeyValue(pairs []LabelKeyValue, labels []model.Label) bool {
	for _, l := range labels {
		if l.Value == nil {
			continue
		}
		for _, p := range pairs {
			if l.Key == p.Key && *l.Value == p.Value {
				return true
			}
		}
	}
	return false
}

func matchesAnyIdentifierScheme(schemes []string, ids []model.Identifier) bool {
	for _, id := range ids {
		for _, s := range schemes {
			if id.Scheme == s {
				return true
			}
		}
	}
	return false
}

func matchesAnyIdentifierSchemeValue(pairs []IdentifierSchemeValue, ids []model.Identifier) bool {
	for _, id := range ids {
		for _, p := range pairs {
			if id.Scheme == p.Scheme && id.Value == p.Value {
				return true
			}
		}
	}
	return false
}
