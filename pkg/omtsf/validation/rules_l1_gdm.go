package validation

import (
	"fmt"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

func l1Rules() []Rule {
	return []Rule{
		l1Gdm01{}, l1Gdm02{}, l1Gdm03{}, l1Gdm04{}, l1Gdm05{}, l1Gdm06{},
		l1Eid01{}, l1Eid02{}, l1Eid03{}, l1Eid04{}, l1Eid05{}, l1Eid06{},
		l1Eid07{}, l1Eid08{}, l1Eid09{}, l1Eid10{}, l1Eid11{},
		l1Sdi01{}, l1Sdi02{},
	}
}

// l1Gdm01 — every node has a non-empty id, unique within the file.
type l1Gdm01 struct{}

func (l1Gdm01) ID() RuleId  { return L1Gdm01 }
func (l1Gdm01) Level() Level { return L1 }

func (l1Gdm01) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	seen := make(map[string]bool, len(file.Nodes))
	for _, n := range file.Nodes {
		id := n.Id.String()
		if id == "" {
			*diags = append(*diags, NewDiagnostic(L1Gdm01, SeverityError, LocationGlobal,
				"a node has an empty id"))
			continue
		}
		if seen[id] {
			*diags = append(*diags, NewDiagnostic(L1Gdm01, SeverityError, LocationNode(id, ""),
				fmt.Sprintf("duplicate node id %q", id)))
			continue
		}
		seen[id] = true
	}
}

// l1Gdm02 — every edge has a non-empty id, unique within the file.
type l1Gdm02 struct{}

func (l1Gdm02) ID() RuleId  { return L1Gdm02 }
func (l1Gdm02) Level() Level { return L1 }

func (l1Gdm02) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	seen := make(map[string]bool, len(file.Edges))
	for _, e := range file.Edges {
		id := e.Id.String()
		if id == "" {
			*diags = append(*diags, NewDiagnostic(L1Gdm02, SeverityError, LocationGlobal,
				"an edge has an empty id"))
			continue
		}
		if seen[id] {
			*diags = append(*diags, NewDiagnostic(L1Gdm02, SeverityError, LocationEdge(id, ""),
				fmt.Sprintf("duplicate edge id %q", id)))
			continue
		}
		seen[id] = true
	}
}

// l1Gdm03 — every edge source/target references an existing node id.
type l1Gdm03 struct{}

func (l1Gdm03) ID() RuleId  { return L1Gdm03 }
func (l1Gdm03) Level() Level { return L1 }

func (l1Gdm03) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	nodeIDs := nodeIDSet(file)
	for _, e := range file.Edges {
		eid := e.Id.String()
		if src := e.Source.String(); !nodeIDs[src] {
			*diags = append(*diags, NewDiagnostic(L1Gdm03, SeverityError, LocationEdge(eid, "source"),
				fmt.Sprintf("source %q does not reference an existing node", src)))
		}
		if dst := e.Target.String(); !nodeIDs[dst] {
			*diags = append(*diags, NewDiagnostic(L1Gdm03, SeverityError, LocationEdge(eid, "target"),
				fmt.Sprintf("target %q does not reference an existing node", dst)))
		}
	}
}

// l1Gdm04 — edge type is a recognised core type or reverse-domain extension.
type l1Gdm04 struct{}

func (l1Gdm04) ID() RuleId  { return L1Gdm04 }
func (l1Gdm04) Level() Level { return L1 }

func (l1Gdm04) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	for _, e := range file.Edges {
		if _, ok := e.EdgeType.Known(); ok {
			continue
		}
		ext := e.EdgeType.String()
		if !isReverseDomain(ext) {
			*diags = append(*diags, NewDiagnostic(L1Gdm04, SeverityError, LocationEdge(e.Id.String(), "type"),
				fmt.Sprintf("edge type %q is neither a core type nor a reverse-domain extension", ext)))
		}
	}
}

// l1Gdm05 — reporting_entity, if set, references an existing organization node.
type l1Gdm05 struct{}

func (l1Gdm05) ID() RuleId  { return L1Gdm05 }
func (l1Gdm05) Level() Level { return L1 }

func (l1Gdm05) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	if file.ReportingEntity == nil {
		return
	}
	re := file.ReportingEntity.String()
	node, ok := file.NodeByID(*file.ReportingEntity)
	if !ok {
		*diags = append(*diags, NewDiagnostic(L1Gdm05, SeverityError, LocationHeader("reporting_entity"),
			fmt.Sprintf("reporting_entity %q does not reference an existing node", re)))
		return
	}
	if known, isKnown := node.NodeType.Known(); !isKnown || known != model.NodeOrganization {
		*diags = append(*diags, NewDiagnostic(L1Gdm05, SeverityError, LocationHeader("reporting_entity"),
			fmt.Sprintf("reporting_entity %q does not reference an organization node", re)))
	}
}

// l1Gdm06 — edge source/target node types match the permitted-types table.
// Extension edge types, and edges with a boundary_ref endpoint, are exempt
// from this check.
type l1Gdm06 struct{}

func (l1Gdm06) ID() RuleId  { return L1Gdm06 }
func (l1Gdm06) Level() Level { return L1 }

func (l1Gdm06) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	for _, e := range file.Edges {
		edgeType, ok := e.EdgeType.Known()
		if !ok {
			continue // extension edges are exempt
		}
		srcNode, srcOK := file.NodeByID(e.Source)
		dstNode, dstOK := file.NodeByID(e.Target)
		if !srcOK || !dstOK {
			continue // L1-GDM-03 already reports the dangling reference
		}
		srcType, srcKnown := srcNode.NodeType.Known()
		dstType, dstKnown := dstNode.NodeType.Known()
		if !srcKnown || !dstKnown {
			continue // extension node types are exempt from the table
		}
		if srcType == model.NodeBoundaryRef || dstType == model.NodeBoundaryRef {
			continue // a boundary_ref stands in for a redacted node of any type
		}

		rule, ok := edgeEndpointTable[edgeType]
		if !ok {
			continue
		}
		if rule.sameType {
			if srcType != dstType {
				*diags = append(*diags, NewDiagnostic(L1Gdm06, SeverityError, LocationEdge(e.Id.String(), "type"),
					fmt.Sprintf("edge type %q requires source and target of the same node type; got %q and %q",
						edgeType, srcType, dstType)))
			}
			continue
		}
		if !rule.sources[srcType] {
			*diags = append(*diags, NewDiagnostic(L1Gdm06, SeverityError, LocationEdge(e.Id.String(), "source"),
				fmt.Sprintf("edge type %q does not permit source node type %q", edgeType, srcType)))
		}
		if !rule.targets[dstType] {
			*diags = append(*diags, NewDiagnostic(L1Gdm06, SeverityError, LocationEdge(e.Id.String(), "target"),
				fmt.Sprintf("edge type %q does not permit target node type %q", edgeType, dstType)))
		}
	}
}

type endpointRule struct {
	sources  map[model.NodeType]bool
	targets  map[model.NodeType]bool
	sameType bool // when true, sources/targets are ignored; endpoints must match
}

func types(ts ...model.NodeType) map[model.NodeType]bool {
	m := make(map[model.NodeType]bool, len(ts))
	for _, t := range ts {
		m[t] = true
	}
	return m
}

// edgeEndpointTable is the permitted source/target node-type table for each
// known edge type, per the domain model in section 3 of the specification.
// same_as is intentionally absent: any two same-typed nodes may be linked.
var edgeEndpointTable = map[model.EdgeType]endpointRule{
	model.EdgeOwnership: {
		sources: types(model.NodeOrganization),
		targets: types(model.NodeOrganization),
	},
	model.EdgeOperationalControl: {
		sources: types(model.NodeOrganization),
		targets: types(model.NodeOrganization, model.NodeFacility),
	},
	model.EdgeLegalParentage: {
		sources: types(model.NodeOrganization),
		targets: types(model.NodeOrganization),
	},
	model.EdgeFormerIdentity: {sameType: true},
	model.EdgeBeneficialOwnership: {
		sources: types(model.NodePerson),
		targets: types(model.NodeOrganization),
	},
	model.EdgeSupplies: {
		sources: types(model.NodeOrganization, model.NodeFacility),
		targets: types(model.NodeOrganization, model.NodeFacility),
	},
	model.EdgeSubcontracts: {
		sources: types(model.NodeOrganization, model.NodeFacility),
		targets: types(model.NodeOrganization, model.NodeFacility),
	},
	model.EdgeTolls: {
		sources: types(model.NodeOrganization, model.NodeFacility),
		targets: types(model.NodeOrganization, model.NodeFacility),
	},
	model.EdgeDistributes: {
		sources: types(model.NodeOrganization, model.NodeFacility),
		targets: types(model.NodeOrganization, model.NodeFacility),
	},
	model.EdgeBrokers: {
		sources: types(model.NodeOrganization),
		targets: types(model.NodeOrganization),
	},
	model.EdgeOperates: {
		sources: types(model.NodeOrganization),
		targets: types(model.NodeFacility),
	},
	model.EdgeProduces: {
		sources: types(model.NodeFacility),
		targets: types(model.NodeGood),
	},
	model.EdgeComposedOf: {
		sources: types(model.NodeGood),
		targets: types(model.NodeGood),
	},
	model.EdgeSellsTo: {
		sources: types(model.NodeOrganization, model.NodeFacility),
		targets: types(model.NodeOrganization, model.NodeFacility),
	},
	model.EdgeAttestedBy: {
		sources: types(model.NodeOrganization, model.NodeFacility, model.NodePerson, model.NodeGood, model.NodeConsignment),
		targets: types(model.NodeAttestation),
	},
}

func nodeIDSet(file *model.File) map[string]bool {
	ids := make(map[string]bool, len(file.Nodes))
	for _, n := range file.Nodes {
		ids[n.Id.String()] = true
	}
	return ids
}
