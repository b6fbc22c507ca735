package identity

import (
	"github.com/BayFX/omtsf/pkg/omtsf/canonicalize"
	"github.com/BayFX/omtsf/pkg/omtsf/equality"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// IdentifiersMatch is true iff a and b's canonical ids are equal and their
// validity windows are temporally compatible.
func IdentifiersMatch(a, b model.Identifier) bool {
	return canonicalize.ID(a) == canonicalize.ID(b) && temporallyCompatible(a, b)
}

// MatchingPair names the pair of identifiers that caused two nodes or edges
// to match, for callers (the diff engine) that report a matched_by set.
type MatchingPair struct {
	A, B model.Identifier
}

// NodesMatch is true iff a and b have the same node_type and at least one
// pair of their non-excluded identifiers matches. It also returns every
// matching identifier pair found, for diff's matched_by reporting — per the
// documented Open Question, all matching canonical ids are joined rather
// than just the first found.
func NodesMatch(a, b model.Node) (bool, []MatchingPair) {
	if a.NodeType != b.NodeType {
		return false, nil
	}
	var pairs []MatchingPair
	for _, ai := range a.Identifiers {
		if !canonicalize.IsExternal(ai) {
			continue
		}
		for _, bi := range b.Identifiers {
			if !canonicalize.IsExternal(bi) {
				continue
			}
			if IdentifiersMatch(ai, bi) {
				pairs = append(pairs, MatchingPair{A: ai, B: bi})
			}
		}
	}
	return len(pairs) > 0, pairs
}

// edgeIdentityRequiredProperties is the edge-identity property table (spec
// §4.2): when neither endpoint's edge carries an identifier, these are the
// properties that must compare equal (via the universal equality rules) in
// addition to type and endpoints. An edge type absent from this table
// requires only type + endpoints. same_as is handled separately and never
// reaches this table.
var edgeIdentityRequiredProperties = map[model.EdgeType][]string{
	model.EdgeOwnership:           {"percentage", "direct"},
	model.EdgeOperationalControl:  {"control_type"},
	model.EdgeLegalParentage:      {"consolidation_basis"},
	model.EdgeFormerIdentity:      {"event_type", "effective_date"},
	model.EdgeBeneficialOwnership: {"control_type", "percentage"},
	model.EdgeSupplies:            {"commodity", "contract_ref"},
	model.EdgeSubcontracts:        {"commodity", "contract_ref"},
	model.EdgeSellsTo:             {"commodity", "contract_ref"},
	model.EdgeTolls:               {"commodity"},
	model.EdgeBrokers:             {"commodity"},
	model.EdgeDistributes:         {"service_type"},
	model.EdgeAttestedBy:          {"scope"},
	// operates, produces, composed_of: no table entry, so none required.
}

// EdgesMatch decides whether a and b denote the same relationship, given
// that both edges already share the same resolved node representatives at
// both endpoints and the same edge_type.
//
//  1. same_as edges never match anything.
//  2. if either side carries a non-internal identifier, both must, and at
//     least one pair must match.
//  3. otherwise fall back to the edge-identity property table.
func EdgesMatch(a, b model.Edge) bool {
	aType, aKnown := a.EdgeType.Known()
	bType, bKnown := b.EdgeType.Known()
	if aKnown && aType == model.EdgeSameAs {
		return false
	}
	if bKnown && bType == model.EdgeSameAs {
		return false
	}

	aExternal := externalIdentifiers(a.Identifiers)
	bExternal := externalIdentifiers(b.Identifiers)
	if len(aExternal) > 0 || len(bExternal) > 0 {
		if len(aExternal) == 0 || len(bExternal) == 0 {
			return false
		}
		for _, ai := range aExternal {
			for _, bi := range bExternal {
				if IdentifiersMatch(ai, bi) {
					return true
				}
			}
		}
		return false
	}

	if !aKnown || !bKnown || aType != bType {
		// Extension edge types with no identifiers: per the documented
		// open question, this implementation follows the source's choice
		// that type + endpoints suffice (already guaranteed by the
		// caller), so two same-typed extension edges without identifiers
		// match.
		return aKnown == bKnown && a.EdgeType.String() == b.EdgeType.String()
	}

	required, ok := edgeIdentityRequiredProperties[aType]
	if !ok {
		return true
	}
	for _, field := range required {
		if !propertyEqual(a.Properties, b.Properties, field) {
			return false
		}
	}
	return true
}

func externalIdentifiers(ids []model.Identifier) []model.Identifier {
	var out []model.Identifier
	for _, id := range ids {
		if canonicalize.IsExternal(id) {
			out = append(out, id)
		}
	}
	return out
}

func propertyEqual(a, b model.EdgeProperties, field string) bool {
	switch field {
	case "percentage":
		return floatPtrEqual(a.Percentage, b.Percentage)
	case "direct":
		return boolPtrEqual(a.Direct, b.Direct)
	case "control_type":
		return ctrlPtrEqual(a.ControlType, b.ControlType)
	case "consolidation_basis":
		return consolidationPtrEqual(a.ConsolidationBasis, b.ConsolidationBasis)
	case "event_type":
		return eventPtrEqual(a.EventType, b.EventType)
	case "effective_date":
		return datePtrEqual(a.EffectiveDate, b.EffectiveDate)
	case "commodity":
		return stringPtrEqual(a.Commodity, b.Commodity)
	case "contract_ref":
		return stringPtrEqual(a.ContractRef, b.ContractRef)
	case "service_type":
		return servicePtrEqual(a.ServiceType, b.ServiceType)
	case "scope":
		return stringPtrEqual(a.Scope, b.Scope)
	default:
		return true
	}
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equality.Numbers(*a, *b)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equality.Strings(*a, *b)
}

func datePtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equality.Dates(*a, *b)
}

func ctrlPtrEqual(a, b *model.ControlType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func consolidationPtrEqual(a, b *model.ConsolidationBasis) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eventPtrEqual(a, b *model.EventType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func servicePtrEqual(a, b *model.ServiceType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
