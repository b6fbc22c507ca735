package validation

import (
	"context"
	"fmt"

	"github.com/BayFX/omtsf/pkg/omtsf/graph"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

func l3Rules() []Rule {
	return []Rule{l3Eid01{}, l3Mrg01{}, l3Mrg02{}}
}

// l3Eid01 — every lei-scheme identifier SHOULD resolve to an active LEI
// registration. Silent when external is nil, or when the data source has no
// record for a given LEI.
type l3Eid01 struct{}

func (l3Eid01) ID() RuleId   { return L3Eid01 }
func (l3Eid01) Level() Level { return L3 }

func (l3Eid01) Check(file *model.File, diags *[]Diagnostic, external ExternalDataSource) {
	if external == nil {
		return
	}
	for _, n := range file.Nodes {
		nodeID := n.Id.String()
		for idx, id := range n.Identifiers {
			if id.Scheme != "lei" {
				continue
			}
			record, ok := external.LeiStatus(id.Value)
			if !ok {
				continue
			}
			if !record.IsActive {
				*diags = append(*diags, NewDiagnostic(L3Eid01, SeverityInfo, LocationIdentifier(nodeID, idx, "value"),
					fmt.Sprintf("node %q identifiers[%d]: LEI %q has registration status %q in the GLEIF database (is_active=false)",
						nodeID, idx, id.Value, record.RegistrationStatus)))
			}
		}
	}
}

// l3Mrg01 — inbound ownership percentages on an organization node SHOULD NOT
// sum above 100. Silent when external is nil; the external source is
// consulted opportunistically but the percentage sum itself is purely local.
type l3Mrg01 struct{}

func (l3Mrg01) ID() RuleId   { return L3Mrg01 }
func (l3Mrg01) Level() Level { return L3 }

func (l3Mrg01) Check(file *model.File, diags *[]Diagnostic, external ExternalDataSource) {
	if external == nil {
		return
	}

	orgIDs := make(map[string]bool)
	for _, n := range file.Nodes {
		if known, ok := n.NodeType.Known(); ok && known == model.NodeOrganization {
			orgIDs[n.Id.String()] = true
		}
	}

	ownershipByTarget := make(map[string][]model.Edge)
	for _, e := range file.Edges {
		if known, ok := e.EdgeType.Known(); ok && known == model.EdgeOwnership {
			target := e.Target.String()
			ownershipByTarget[target] = append(ownershipByTarget[target], e)
		}
	}

	for _, n := range file.Nodes {
		known, ok := n.NodeType.Known()
		if !ok || known != model.NodeOrganization {
			continue
		}
		orgID := n.Id.String()

		var total float64
		hasAny := false
		for _, e := range ownershipByTarget[orgID] {
			if !orgIDs[e.Source.String()] {
				continue
			}
			if e.Properties.Percentage != nil {
				hasAny = true
				total += *e.Properties.Percentage
			}
		}

		if hasAny && total > 100.0 {
			*diags = append(*diags, NewDiagnostic(L3Mrg01, SeverityInfo, LocationNode(orgID, ""),
				fmt.Sprintf("organization %q has inbound ownership percentages summing to %.2f%%, which exceeds 100%%; verify ownership structure with external registry data",
					orgID, total)))
		}
	}
}

// l3Mrg02 — the legal_parentage subgraph SHOULD be acyclic. Unlike the other
// L3 rules this does not consult an external source at all; it is gated on
// run_l3 purely because cycle detection is heavier than an L1/L2 per-element
// check.
type l3Mrg02 struct{}

func (l3Mrg02) ID() RuleId   { return L3Mrg02 }
func (l3Mrg02) Level() Level { return L3 }

func (l3Mrg02) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	g, err := graph.Build(file)
	if err != nil {
		return
	}

	filter := graph.NewEdgeTypeFilter(model.EdgeLegalParentage)
	cycles := g.DetectCycles(context.Background(), filter)

	for _, cycle := range cycles {
		ids := make([]string, 0, len(cycle))
		for _, idx := range cycle {
			ids = append(ids, g.NodeWeightAt(idx).LocalId)
		}
		cycleStr := ""
		for i, id := range ids {
			if i > 0 {
				cycleStr += " → "
			}
			cycleStr += id
		}
		*diags = append(*diags, NewDiagnostic(L3Mrg02, SeverityInfo, LocationGlobal,
			fmt.Sprintf("legal_parentage cycle detected: %s; a subsidiary cannot be its own parent", cycleStr)))
	}
}
