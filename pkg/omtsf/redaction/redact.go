package redaction

import (
	"fmt"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/sensitivity"
	"github.com/BayFX/omtsf/pkg/omtsf/validation"
)

// nodeDisposition is a node's classification under the target scope.
type nodeDisposition int

const (
	dispositionOmit nodeDisposition = iota
	dispositionRetain
	dispositionReplace
)

// Redact downgrades file to cfg.Scope, omitting or replacing nodes and
// edges that the scope's sensitivity allow-list excludes.
func Redact(file *model.File, cfg Config) (*Output, error) {
	if cfg.Scope == model.DisclosureInternal {
		out, err := file.Clone()
		if err != nil {
			return nil, fmt.Errorf("redaction: cloning internal-scope file: %w", err)
		}
		scope := cfg.Scope
		out.DisclosureScope = &scope
		return &Output{File: out}, nil
	}

	salt := file.FileSalt.Bytes()

	dispositions := make(map[string]nodeDisposition, len(file.Nodes))
	for _, n := range file.Nodes {
		dispositions[n.Id.String()] = classifyNode(n, cfg)
	}

	outNodes := make([]model.Node, 0, len(file.Nodes))
	for _, n := range file.Nodes {
		switch dispositions[n.Id.String()] {
		case dispositionOmit:
			continue
		case dispositionRetain:
			outNodes = append(outNodes, filterNodeIdentifiers(n, cfg.Scope))
		case dispositionReplace:
			rn, err := replacementNode(n, salt)
			if err != nil {
				return nil, err
			}
			outNodes = append(outNodes, rn)
		}
	}

	outEdges := make([]model.Edge, 0, len(file.Edges))
	for _, e := range file.Edges {
		if classifyEdge(e, dispositions, cfg.Scope) != dispositionRetain {
			continue
		}
		outEdges = append(outEdges, filterEdgeProperties(e, cfg.Scope))
	}

	cfg.logger().Debug("redaction: classified file",
		"scope", cfg.Scope, "nodes_in", len(file.Nodes), "nodes_out", len(outNodes),
		"edges_in", len(file.Edges), "edges_out", len(outEdges))

	out, err := file.Clone()
	if err != nil {
		return nil, fmt.Errorf("redaction: cloning file: %w", err)
	}
	scope := cfg.Scope
	out.DisclosureScope = &scope
	out.Nodes = outNodes
	out.Edges = outEdges

	engine := cfg.engine()
	result := engine.Validate(out, validation.Config{RunL1: true}, nil)
	if !result.IsConformant() {
		return nil, &InvalidOutput{Result: result}
	}

	return &Output{File: out}, nil
}

// classifyNode applies the §4.8 node classification order: person at public
// scope is always omitted ahead of every other rule, boundary_ref nodes
// pass through untouched, explicitly retained ids are kept in full, and
// everything else is replaced by an opaque boundary reference.
func classifyNode(n model.Node, cfg Config) nodeDisposition {
	if known, ok := n.NodeType.Known(); ok && known == model.NodePerson && cfg.Scope == model.DisclosurePublic {
		return dispositionOmit
	}
	if known, ok := n.NodeType.Known(); ok && known == model.NodeBoundaryRef {
		return dispositionRetain
	}
	if cfg.retains(n.Id.String()) {
		return dispositionRetain
	}
	return dispositionReplace
}

func filterNodeIdentifiers(n model.Node, scope model.DisclosureScope) model.Node {
	var kept []model.Identifier
	for _, id := range n.Identifiers {
		if allowed(scope, sensitivity.Identifier(id, n.NodeType)) {
			kept = append(kept, id)
		}
	}
	n.Identifiers = kept
	return n
}

// replacementNode builds the minimal boundary_ref node standing in for a
// Replace-classified node, preserving its original id so edges referencing
// it never dangle.
func replacementNode(n model.Node, salt []byte) (model.Node, error) {
	digest, err := boundaryRefDigest(salt, publicCanonicalIDs(n))
	if err != nil {
		return model.Node{}, err
	}
	return model.Node{
		Id:       n.Id,
		NodeType: model.KnownNodeType(model.NodeBoundaryRef),
		Identifiers: []model.Identifier{
			{Scheme: "opaque", Value: digest},
		},
	}, nil
}

// classifyEdge applies the §4.8 edge classification order: beneficial_
// ownership is unconditionally omitted at public scope ahead of every
// endpoint check, then either endpoint being omitted propagates, then both
// endpoints replaced collapses the edge, and anything surviving is
// retained.
func classifyEdge(e model.Edge, dispositions map[string]nodeDisposition, scope model.DisclosureScope) nodeDisposition {
	if scope == model.DisclosurePublic {
		if known, ok := e.EdgeType.Known(); ok && known == model.EdgeBeneficialOwnership {
			return dispositionOmit
		}
	}
	src, srcOK := dispositions[e.Source.String()]
	tgt, tgtOK := dispositions[e.Target.String()]
	if !srcOK || !tgtOK || src == dispositionOmit || tgt == dispositionOmit {
		return dispositionOmit
	}
	if src == dispositionReplace && tgt == dispositionReplace {
		return dispositionOmit
	}
	return dispositionRetain
}

func filterEdgeProperties(e model.Edge, scope model.DisclosureScope) model.Edge {
	out := e
	p := e.Properties

	if !allowed(scope, sensitivity.EdgeProperty(e, "percentage")) {
		p.Percentage = nil
	}
	if !allowed(scope, sensitivity.EdgeProperty(e, "contract_ref")) {
		p.ContractRef = nil
	}
	if !allowed(scope, sensitivity.EdgeProperty(e, "volume")) {
		p.Volume = nil
	}
	if !allowed(scope, sensitivity.EdgeProperty(e, "volume_unit")) {
		p.VolumeUnit = nil
	}
	if !allowed(scope, sensitivity.EdgeProperty(e, "annual_value")) {
		p.AnnualValue = nil
	}
	if !allowed(scope, sensitivity.EdgeProperty(e, "value_currency")) {
		p.ValueCurrency = nil
	}

	if scope == model.DisclosurePublic {
		p.PropertySensitivity = nil
	}

	out.Properties = p
	return out
}
