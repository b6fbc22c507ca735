package validation

import (
	"fmt"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/sensitivity"
)

// l1Sdi01 — boundary_ref nodes carry exactly one identifier, and that
// identifier's scheme must be "opaque".
type l1Sdi01 struct{}

func (l1Sdi01) ID() RuleId   { return L1Sdi01 }
func (l1Sdi01) Level() Level { return L1 }

func (l1Sdi01) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	for _, n := range file.Nodes {
		known, ok := n.NodeType.Known()
		if !ok || known != model.NodeBoundaryRef {
			continue
		}
		nodeID := n.Id.String()
		total := len(n.Identifiers)
		opaque := 0
		for _, id := range n.Identifiers {
			if id.Scheme == "opaque" {
				opaque++
			}
		}

		if total == 0 {
			*diags = append(*diags, NewDiagnostic(L1Sdi01, SeverityError, LocationNode(nodeID, "identifiers"),
				fmt.Sprintf("boundary_ref node %q has no identifiers; must have exactly one identifier with scheme \"opaque\"", nodeID)))
			continue
		}
		if opaque == 0 {
			*diags = append(*diags, NewDiagnostic(L1Sdi01, SeverityError, LocationNode(nodeID, "identifiers"),
				fmt.Sprintf("boundary_ref node %q has no identifier with scheme \"opaque\"; must have exactly one", nodeID)))
		} else if opaque > 1 {
			*diags = append(*diags, NewDiagnostic(L1Sdi01, SeverityError, LocationNode(nodeID, "identifiers"),
				fmt.Sprintf("boundary_ref node %q has %d identifiers with scheme \"opaque\"; must have exactly one", nodeID, opaque)))
		}
		if total > 1 {
			*diags = append(*diags, NewDiagnostic(L1Sdi01, SeverityError, LocationNode(nodeID, "identifiers"),
				fmt.Sprintf("boundary_ref node %q has %d identifiers; must have exactly one identifier with scheme \"opaque\"", nodeID, total)))
		}
	}
}

// l1Sdi02 — if disclosure_scope is declared, every identifier's effective
// sensitivity must not exceed what the scope permits.
type l1Sdi02 struct{}

func (l1Sdi02) ID() RuleId   { return L1Sdi02 }
func (l1Sdi02) Level() Level { return L1 }

func (l1Sdi02) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	if file.DisclosureScope == nil {
		return
	}
	scope := *file.DisclosureScope
	if scope == model.DisclosureInternal {
		return
	}

	for _, n := range file.Nodes {
		nodeID := n.Id.String()
		for idx, id := range n.Identifiers {
			eff := sensitivity.Identifier(id, n.NodeType)
			violates := false
			switch scope {
			case model.DisclosurePartner:
				violates = eff == model.SensitivityConfidential
			case model.DisclosurePublic:
				violates = eff == model.SensitivityConfidential || eff == model.SensitivityRestricted
			}
			if violates {
				*diags = append(*diags, NewDiagnostic(L1Sdi02, SeverityError, LocationIdentifier(nodeID, idx, "sensitivity"),
					fmt.Sprintf("node %q identifiers[%d] has effective sensitivity %q which violates disclosure_scope %q",
						nodeID, idx, eff, scope)))
			}
		}
	}
}
