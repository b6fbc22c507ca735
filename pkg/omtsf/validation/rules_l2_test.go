package validation

import (
	"testing"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/stretchr/testify/assert"
)

func TestL2Gdm01FacilityWithNoOrgEdge(t *testing.T) {
	f := emptyFile([]model.Node{testNode(t, "f-1", model.NodeFacility)}, nil)
	assert.Len(t, checkRule(l2Gdm01{}, f, nil), 1)
}

func TestL2Gdm01FacilityConnectedToOrgIsFine(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "o-1", model.NodeOrganization), testNode(t, "f-1", model.NodeFacility)},
		[]model.Edge{testEdge(t, "e-1", "o-1", "f-1", model.EdgeOperates)},
	)
	assert.Empty(t, checkRule(l2Gdm01{}, f, nil))
}

func TestL2Gdm02OwnershipEdgeMissingValidFrom(t *testing.T) {
	f := emptyFile(
		[]model.Node{testNode(t, "a", model.NodeOrganization), testNode(t, "b", model.NodeOrganization)},
		[]model.Edge{testEdge(t, "e-1", "a", "b", model.EdgeOwnership)},
	)
	assert.Len(t, checkRule(l2Gdm02{}, f, nil), 1)
}

func TestL2Gdm02OwnershipEdgeWithValidFromIsFine(t *testing.T) {
	from := "2024-01-01"
	e := testEdge(t, "e-1", "a", "b", model.EdgeOwnership)
	e.Identifiers = []model.Identifier{{Scheme: "internal", Value: "x", ValidFrom: &from}}
	f := emptyFile(
		[]model.Node{testNode(t, "a", model.NodeOrganization), testNode(t, "b", model.NodeOrganization)},
		[]model.Edge{e},
	)
	assert.Empty(t, checkRule(l2Gdm02{}, f, nil))
}

func TestL2Eid01OrganizationWithOnlyInternalIdentifier(t *testing.T) {
	n := testNode(t, "o-1", model.NodeOrganization)
	n.Identifiers = []model.Identifier{{Scheme: "internal", Value: "x"}}
	f := emptyFile([]model.Node{n}, nil)
	assert.Len(t, checkRule(l2Eid01{}, f, nil), 1)
}

func TestL2Eid01OrganizationWithExternalIdentifierIsFine(t *testing.T) {
	n := testNode(t, "o-1", model.NodeOrganization)
	n.Identifiers = []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}}
	f := emptyFile([]model.Node{n}, nil)
	assert.Empty(t, checkRule(l2Eid01{}, f, nil))
}

func TestL2Eid04UnassignedCountryCodeFlagged(t *testing.T) {
	cc, err := newTestCountryCode(t, "ZZ")
	assert.NoError(t, err)
	n := testNode(t, "o-1", model.NodeOrganization)
	n.Jurisdiction = &cc
	f := emptyFile([]model.Node{n}, nil)
	assert.Len(t, checkRule(l2Eid04{}, f, nil), 1)
}

func TestL2Eid04AssignedCountryCodeIsFine(t *testing.T) {
	cc, err := newTestCountryCode(t, "DE")
	assert.NoError(t, err)
	n := testNode(t, "o-1", model.NodeOrganization)
	n.Jurisdiction = &cc
	f := emptyFile([]model.Node{n}, nil)
	assert.Empty(t, checkRule(l2Eid04{}, f, nil))
}
