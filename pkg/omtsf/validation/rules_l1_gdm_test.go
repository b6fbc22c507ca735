package validation

import (
	"testing"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/stretchr/testify/assert"
)

func TestL1Gdm01DuplicateNodeId(t *testing.T) {
	f := emptyFile([]model.Node{
		testNode(t, "n-1", model.NodeOrganization),
		testNode(t, "n-1", model.NodeOrganization),
	}, nil)
	diags := checkRule(l1Gdm01{}, f, nil)
	assert.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
}

func TestL1Gdm02DuplicateEdgeId(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "a", model.NodeOrganization), testNode(t, "b", model.NodeOrganization)},
		[]model.Edge{
			testEdge(t, "e-1", "a", "b", model.EdgeOwnership),
			testEdge(t, "e-1", "b", "a", model.EdgeOwnership),
		},
	)
	diags := checkRule(l1Gdm02{}, f, nil)
	assert.Len(t, diags, 1)
}

func TestL1Gdm03DanglingEndpoints(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "a", model.NodeOrganization)},
		[]model.Edge{testEdge(t, "e-1", "a", "missing", model.EdgeOwnership)},
	)
	diags := checkRule(l1Gdm03{}, f, nil)
	assert.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "target")
}

func TestL1Gdm04ExtensionEdgeTypeAllowed(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "a", model.NodeOrganization), testNode(t, "b", model.NodeOrganization)},
		[]model.Edge{{
			Id: mustNodeID(t, "e-1"), Source: mustNodeID(t, "a"), Target: mustNodeID(t, "b"),
			EdgeType: model.ExtensionEdgeType("com.acme.custom-edge"),
		}},
	)
	diags := checkRule(l1Gdm04{}, f, nil)
	assert.Empty(t, diags)
}

func TestL1Gdm04NonReverseDomainExtensionRejected(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "a", model.NodeOrganization), testNode(t, "b", model.NodeOrganization)},
		[]model.Edge{{
			Id: mustNodeID(t, "e-1"), Source: mustNodeID(t, "a"), Target: mustNodeID(t, "b"),
			EdgeType: model.ExtensionEdgeType("not-a-domain"),
		}},
	)
	diags := checkRule(l1Gdm04{}, f, nil)
	assert.Len(t, diags, 1)
}

func TestL1Gdm05ReportingEntityMustBeOrganization(t *testing.T) {
	facility := testNode(t, "f-1", model.NodeFacility)
	fid := mustNodeID(t, "f-1")
	f := &model.File{Nodes: []model.Node{facility}, ReportingEntity: &fid}
	diags := checkRule(l1Gdm05{}, f, nil)
	assert.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "organization")
}

func TestL1Gdm05ReportingEntityMissing(t *testing.T) {
	missing := mustNodeID(t, "ghost")
	f := &model.File{ReportingEntity: &missing}
	diags := checkRule(l1Gdm05{}, f, nil)
	assert.Len(t, diags, 1)
}

func TestL1Gdm06EndpointTableRejectsWrongTypes(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "p-1", model.NodePerson), testNode(t, "f-1", model.NodeFacility)},
		[]model.Edge{testEdge(t, "e-1", "p-1", "f-1", model.EdgeOwnership)},
	)
	diags := checkRule(l1Gdm06{}, f, nil)
	// ownership requires organization -> organization on both ends
	assert.Len(t, diags, 2)
}

func TestL1Gdm06BeneficialOwnershipPersonToOrg(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "p-1", model.NodePerson), testNode(t, "o-1", model.NodeOrganization)},
		[]model.Edge{testEdge(t, "e-1", "p-1", "o-1", model.EdgeBeneficialOwnership)},
	)
	diags := checkRule(l1Gdm06{}, f, nil)
	assert.Empty(t, diags)
}

func TestL1Gdm06FormerIdentityRequiresSameType(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "o-1", model.NodeOrganization), testNode(t, "f-1", model.NodeFacility)},
		[]model.Edge{testEdge(t, "e-1", "o-1", "f-1", model.EdgeFormerIdentity)},
	)
	diags := checkRule(l1Gdm06{}, f, nil)
	assert.Len(t, diags, 1)
}
