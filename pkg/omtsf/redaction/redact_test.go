package redaction

import (
	"testing"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNodeIDT(t *testing.T, id string) primitives.NodeId {
	t.Helper()
	nid, err := primitives.NewNodeId(id)
	require.NoError(t, err)
	return nid
}

func mustEdgeIDT(t *testing.T, id string) primitives.EdgeId {
	return mustNodeIDT(t, id)
}

func testSalt(t *testing.T, hex64 string) primitives.FileSalt {
	t.Helper()
	s, err := primitives.NewFileSalt(hex64)
	require.NoError(t, err)
	return s
}

func testVersion(t *testing.T) primitives.Version {
	t.Helper()
	v, err := primitives.NewVersion("1.0.0")
	require.NoError(t, err)
	return v
}

func testDate(t *testing.T) primitives.CalendarDate {
	t.Helper()
	d, err := primitives.NewCalendarDate("2026-01-15")
	require.NoError(t, err)
	return d
}

const fixedSalt = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func orgNode(t *testing.T, id, name string) model.Node {
	n := model.Node{Id: mustNodeIDT(t, id), NodeType: model.KnownNodeType(model.NodeOrganization)}
	n.Name = &name
	n.Identifiers = []model.Identifier{{Scheme: "lei", Value: "5493001KJTIIGC8Y1R12"}}
	return n
}

func personNode(t *testing.T, id, name string) model.Node {
	n := model.Node{Id: mustNodeIDT(t, id), NodeType: model.KnownNodeType(model.NodePerson)}
	n.Name = &name
	return n
}

func makeFile(t *testing.T, nodes []model.Node, edges []model.Edge) *model.File {
	return &model.File{
		OmtsfVersion: testVersion(t),
		SnapshotDate: testDate(t),
		FileSalt:     testSalt(t, fixedSalt),
		Nodes:        nodes,
		Edges:        edges,
	}
}

func TestRedactInternalScopePassesThroughUnchanged(t *testing.T) {
	f := makeFile(t, []model.Node{orgNode(t, "n1", "Acme")}, nil)
	out, err := Redact(f, Config{Scope: model.DisclosureInternal})
	require.NoError(t, err)
	require.Len(t, out.File.Nodes, 1)
	assert.Equal(t, "Acme", *out.File.Nodes[0].Name)
	require.NotNil(t, out.File.DisclosureScope)
	assert.Equal(t, model.DisclosureInternal, *out.File.DisclosureScope)
}

func TestRedactOmitsPersonAtPublicScope(t *testing.T) {
	f := makeFile(t, []model.Node{personNode(t, "p1", "Jane Doe")}, nil)
	out, err := Redact(f, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	assert.Empty(t, out.File.Nodes)
}

func TestRedactRetainsPersonAtPartnerScope(t *testing.T) {
	f := makeFile(t, []model.Node{personNode(t, "p1", "Jane Doe")}, nil)
	out, err := Redact(f, Config{Scope: model.DisclosurePartner})
	require.NoError(t, err)
	require.Len(t, out.File.Nodes, 1)
	assert.Equal(t, "p1", out.File.Nodes[0].Id.String())
}

func TestRedactPassesThroughBoundaryRefNodeAsIs(t *testing.T) {
	bn := model.Node{
		Id:          mustNodeIDT(t, "b1"),
		NodeType:    model.KnownNodeType(model.NodeBoundaryRef),
		Identifiers: []model.Identifier{{Scheme: "opaque", Value: "deadbeef"}},
	}
	f := makeFile(t, []model.Node{bn}, nil)
	out, err := Redact(f, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	require.Len(t, out.File.Nodes, 1)
	assert.Equal(t, "deadbeef", out.File.Nodes[0].Identifiers[0].Value)
}

func TestRedactHonoursRetainIDs(t *testing.T) {
	f := makeFile(t, []model.Node{orgNode(t, "n1", "Acme")}, nil)
	out, err := Redact(f, Config{Scope: model.DisclosurePublic, RetainIDs: map[string]bool{"n1": true}})
	require.NoError(t, err)
	require.Len(t, out.File.Nodes, 1)
	assert.Equal(t, "Acme", *out.File.Nodes[0].Name)
}

func TestRedactReplacesUnretainedNodeWithBoundaryRef(t *testing.T) {
	f := makeFile(t, []model.Node{orgNode(t, "n1", "Acme")}, nil)
	out, err := Redact(f, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	require.Len(t, out.File.Nodes, 1)
	rn := out.File.Nodes[0]
	assert.Equal(t, "n1", rn.Id.String())
	known, ok := rn.NodeType.Known()
	require.True(t, ok)
	assert.Equal(t, model.NodeBoundaryRef, known)
	require.Len(t, rn.Identifiers, 1)
	assert.Equal(t, "opaque", rn.Identifiers[0].Scheme)
	assert.Len(t, rn.Identifiers[0].Value, 64)
}

func TestRedactBoundaryRefDigestIsDeterministic(t *testing.T) {
	f1 := makeFile(t, []model.Node{orgNode(t, "n1", "Acme")}, nil)
	f2 := makeFile(t, []model.Node{orgNode(t, "n1", "Acme")}, nil)
	out1, err := Redact(f1, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	out2, err := Redact(f2, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	assert.Equal(t, out1.File.Nodes[0].Identifiers[0].Value, out2.File.Nodes[0].Identifiers[0].Value)
}

func TestRedactBoundaryRefDigestDiffersAcrossSalts(t *testing.T) {
	f1 := makeFile(t, []model.Node{orgNode(t, "n1", "Acme")}, nil)
	f2 := makeFile(t, []model.Node{orgNode(t, "n1", "Acme")}, nil)
	f2.FileSalt = testSalt(t, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	out1, err := Redact(f1, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	out2, err := Redact(f2, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	assert.NotEqual(t, out1.File.Nodes[0].Identifiers[0].Value, out2.File.Nodes[0].Identifiers[0].Value)
}

func TestRedactOmitsBeneficialOwnershipAtPublicScope(t *testing.T) {
	a := orgNode(t, "n1", "Acme")
	b := orgNode(t, "n2", "Beta")
	e := model.Edge{
		Id:       mustEdgeIDT(t, "e1"),
		EdgeType: model.KnownEdgeType(model.EdgeBeneficialOwnership),
		Source:   mustNodeIDT(t, "n1"),
		Target:   mustNodeIDT(t, "n2"),
	}
	f := makeFile(t, []model.Node{a, b}, []model.Edge{e})
	out, err := Redact(f, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	assert.Empty(t, out.File.Edges)
}

func TestRedactKeepsBeneficialOwnershipAtPartnerScope(t *testing.T) {
	a := personNode(t, "p1", "Jane Doe")
	b := orgNode(t, "n2", "Beta")
	pct := 60.0
	e := model.Edge{
		Id:       mustEdgeIDT(t, "e1"),
		EdgeType: model.KnownEdgeType(model.EdgeBeneficialOwnership),
		Source:   mustNodeIDT(t, "p1"),
		Target:   mustNodeIDT(t, "n2"),
		Properties: model.EdgeProperties{
			Percentage: &pct,
		},
	}
	f := makeFile(t, []model.Node{a, b}, []model.Edge{e})
	out, err := Redact(f, Config{Scope: model.DisclosurePartner, RetainIDs: map[string]bool{"p1": true, "n2": true}})
	require.NoError(t, err)
	require.Len(t, out.File.Edges, 1)
	// percentage on beneficial_ownership defaults confidential; partner scope
	// allows only public/restricted, so it is stripped.
	assert.Nil(t, out.File.Edges[0].Properties.Percentage)
}

func TestRedactOmitsEdgeWhenBothEndpointsReplaced(t *testing.T) {
	a := orgNode(t, "n1", "Acme")
	b := orgNode(t, "n2", "Beta")
	e := model.Edge{
		Id:       mustEdgeIDT(t, "e1"),
		EdgeType: model.KnownEdgeType(model.EdgeSupplies),
		Source:   mustNodeIDT(t, "n1"),
		Target:   mustNodeIDT(t, "n2"),
	}
	f := makeFile(t, []model.Node{a, b}, []model.Edge{e})
	out, err := Redact(f, Config{Scope: model.DisclosurePublic})
	require.NoError(t, err)
	assert.Empty(t, out.File.Edges)
}

func TestRedactRetainsEdgeWhenOneEndpointRetained(t *testing.T) {
	a := orgNode(t, "n1", "Acme")
	b := orgNode(t, "n2", "Beta")
	e := model.Edge{
		Id:       mustEdgeIDT(t, "e1"),
		EdgeType: model.KnownEdgeType(model.EdgeSupplies),
		Source:   mustNodeIDT(t, "n1"),
		Target:   mustNodeIDT(t, "n2"),
	}
	f := makeFile(t, []model.Node{a, b}, []model.Edge{e})
	out, err := Redact(f, Config{Scope: model.DisclosurePublic, RetainIDs: map[string]bool{"n1": true}})
	require.NoError(t, err)
	require.Len(t, out.File.Edges, 1)
}

func TestRedactStripsPropertySensitivityMapAtPublicScope(t *testing.T) {
	a := orgNode(t, "n1", "Acme")
	b := orgNode(t, "n2", "Beta")
	e := model.Edge{
		Id:       mustEdgeIDT(t, "e1"),
		EdgeType: model.KnownEdgeType(model.EdgeSupplies),
		Source:   mustNodeIDT(t, "n1"),
		Target:   mustNodeIDT(t, "n2"),
		Properties: model.EdgeProperties{
			PropertySensitivity: map[string]model.Sensitivity{"commodity": model.SensitivityPublic},
		},
	}
	f := makeFile(t, []model.Node{a, b}, []model.Edge{e})
	out, err := Redact(f, Config{Scope: model.DisclosurePublic, RetainIDs: map[string]bool{"n1": true, "n2": true}})
	require.NoError(t, err)
	require.Len(t, out.File.Edges, 1)
	assert.Nil(t, out.File.Edges[0].Properties.PropertySensitivity)
}

func TestRedactKeepsPropertySensitivityMapAtPartnerScope(t *testing.T) {
	a := orgNode(t, "n1", "Acme")
	b := orgNode(t, "n2", "Beta")
	e := model.Edge{
		Id:       mustEdgeIDT(t, "e1"),
		EdgeType: model.KnownEdgeType(model.EdgeSupplies),
		Source:   mustNodeIDT(t, "n1"),
		Target:   mustNodeIDT(t, "n2"),
		Properties: model.EdgeProperties{
			PropertySensitivity: map[string]model.Sensitivity{"commodity": model.SensitivityPublic},
		},
	}
	f := makeFile(t, []model.Node{a, b}, []model.Edge{e})
	out, err := Redact(f, Config{Scope: model.DisclosurePartner, RetainIDs: map[string]bool{"n1": true, "n2": true}})
	require.NoError(t, err)
	require.Len(t, out.File.Edges, 1)
	assert.NotNil(t, out.File.Edges[0].Properties.PropertySensitivity)
}

func TestRedactFiltersRetainedNodeIdentifiersByScope(t *testing.T) {
	n := orgNode(t, "n1", "Acme")
	n.Identifiers = append(n.Identifiers, model.Identifier{Scheme: "internal", Value: "xyz"})
	f := makeFile(t, []model.Node{n}, nil)
	out, err := Redact(f, Config{Scope: model.DisclosurePublic, RetainIDs: map[string]bool{"n1": true}})
	require.NoError(t, err)
	require.Len(t, out.File.Nodes, 1)
	for _, id := range out.File.Nodes[0].Identifiers {
		assert.NotEqual(t, "internal", id.Scheme)
	}
}
