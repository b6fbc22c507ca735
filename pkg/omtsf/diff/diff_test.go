package diff

import (
	"testing"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNodeID(t *testing.T, id string) primitives.NodeId {
	t.Helper()
	nid, err := primitives.NewNodeId(id)
	require.NoError(t, err)
	return nid
}

func orgNode(t *testing.T, id string) model.Node {
	return model.Node{Id: mustNodeID(t, id), NodeType: model.KnownNodeType(model.NodeOrganization)}
}

func withLei(n model.Node, lei string) model.Node {
	n.Identifiers = append(n.Identifiers, model.Identifier{Scheme: "lei", Value: lei})
	return n
}

func withDuns(n model.Node, duns string) model.Node {
	n.Identifiers = append(n.Identifiers, model.Identifier{Scheme: "duns", Value: duns})
	return n
}

func testVersion(t *testing.T, v string) primitives.Version {
	t.Helper()
	ver, err := primitives.NewVersion(v)
	require.NoError(t, err)
	return ver
}

func makeFile(t *testing.T, nodes []model.Node, edges []model.Edge) *model.File {
	return &model.File{OmtsfVersion: testVersion(t, "1.0.0"), Nodes: nodes, Edges: edges}
}

func TestDiffTwoEmptyFilesIsIdentical(t *testing.T) {
	a := makeFile(t, nil, nil)
	b := makeFile(t, nil, nil)
	outcome := Run(a, b)
	assert.Equal(t, Identical, outcome.Kind())
	result, _ := outcome.Result()
	assert.Empty(t, result.Warnings)
	s := result.Summary()
	assert.Zero(t, s.NodesAdded+s.NodesRemoved+s.NodesModified+s.NodesUnchanged)
}

func TestDiffAllNodesAdded(t *testing.T) {
	a := makeFile(t, nil, nil)
	b := makeFile(t, []model.Node{orgNode(t, "org-1"), orgNode(t, "org-2")}, nil)
	result, _ := Run(a, b).Result()
	assert.Len(t, result.Nodes.Added, 2)
	assert.Empty(t, result.Nodes.Removed)
	assert.Empty(t, result.Nodes.Unchanged)
}

func TestDiffAllNodesRemoved(t *testing.T) {
	a := makeFile(t, []model.Node{orgNode(t, "org-1"), orgNode(t, "org-2")}, nil)
	b := makeFile(t, nil, nil)
	result, _ := Run(a, b).Result()
	assert.Len(t, result.Nodes.Removed, 2)
	assert.Empty(t, result.Nodes.Added)
}

func TestDiffNodesWithoutIdentifiersAreUnmatched(t *testing.T) {
	a := makeFile(t, []model.Node{orgNode(t, "org-a")}, nil)
	b := makeFile(t, []model.Node{orgNode(t, "org-b")}, nil)
	result, _ := Run(a, b).Result()
	assert.Len(t, result.Nodes.Removed, 1)
	assert.Len(t, result.Nodes.Added, 1)
	assert.Empty(t, result.Nodes.Unchanged)
}

func TestDiffNodesMatchedByLei(t *testing.T) {
	na := withLei(orgNode(t, "org-a"), "LEI0000000000000001")
	nb := withLei(orgNode(t, "org-b"), "LEI0000000000000001")
	na.Name = strp("Alpha")
	nb.Name = strp("Alpha Renamed")
	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	assert.Empty(t, result.Nodes.Removed)
	assert.Empty(t, result.Nodes.Added)
	assert.Len(t, result.Nodes.Modified, 1, "names differ (Alpha vs Alpha Renamed) so the pair is modified")

	nd := result.Nodes.Modified[0]
	assert.Equal(t, "org-a", nd.IdA)
	assert.Equal(t, "org-b", nd.IdB)
	found := false
	for _, k := range nd.MatchedBy {
		if k == "lei:LEI0000000000000001" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDiffNodeTransitiveMatchIsAmbiguous(t *testing.T) {
	na := withDuns(withLei(orgNode(t, "org-a"), "LEI_TRANS"), "DUNS_TRANS")
	nb1 := withLei(orgNode(t, "org-b1"), "LEI_TRANS")
	nb2 := withDuns(orgNode(t, "org-b2"), "DUNS_TRANS")
	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb1, nb2}, nil)
	result, _ := Run(a, b).Result()
	assert.NotEmpty(t, result.Warnings)
	assert.Len(t, result.Nodes.Modified, 2, "one A node matches both B nodes -> two pairs")
	assert.Empty(t, result.Nodes.Added)
	assert.Empty(t, result.Nodes.Removed)
}

func TestDiffAmbiguousMatchTwoANodesSameB(t *testing.T) {
	na1 := withLei(orgNode(t, "org-a1"), "LEI_SHARED")
	na2 := withLei(orgNode(t, "org-a2"), "LEI_SHARED")
	nb := withLei(orgNode(t, "org-b"), "LEI_SHARED")
	a := makeFile(t, []model.Node{na1, na2}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	assert.NotEmpty(t, result.Warnings)
	assert.Len(t, result.Nodes.Modified, 2)
	assert.Empty(t, result.Nodes.Added)
	assert.Empty(t, result.Nodes.Removed)
}

func TestDiffInternalIdentifiersDoNotCauseMatch(t *testing.T) {
	na := orgNode(t, "org-a")
	na.Identifiers = []model.Identifier{{Scheme: "internal", Value: "sap:001"}}
	nb := orgNode(t, "org-b")
	nb.Identifiers = []model.Identifier{{Scheme: "internal", Value: "sap:001"}}
	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	assert.Len(t, result.Nodes.Removed, 1)
	assert.Len(t, result.Nodes.Added, 1)
	assert.Empty(t, result.Nodes.Unchanged)
}

func identicalPair(t *testing.T, idA, idB, lei, name string) (model.Node, model.Node) {
	na := withLei(orgNode(t, idA), lei)
	na.Name = &name
	nb := withLei(orgNode(t, idB), lei)
	nameCopy := name
	nb.Name = &nameCopy
	return na, nb
}

func TestDiffIdenticalFilesIsEmpty(t *testing.T) {
	na, nb := identicalPair(t, "org-x", "org-y", "LEI_EQ", "Acme Corp")
	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	outcome := Run(a, b)
	assert.Equal(t, Identical, outcome.Kind())
	result, _ := outcome.Result()
	assert.Len(t, result.Nodes.Unchanged, 1)
}

func TestDiffNodeNameChangeIsModified(t *testing.T) {
	na := withLei(orgNode(t, "org-nm"), "LEI_NM")
	oldName := "Old Name"
	na.Name = &oldName
	nb := withLei(orgNode(t, "org-nm"), "LEI_NM")
	newName := "New Name"
	nb.Name = &newName

	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	require.Len(t, result.Nodes.Modified, 1)
	nd := result.Nodes.Modified[0]
	var found *PropertyChange
	for i := range nd.PropertyChanges {
		if nd.PropertyChanges[i].Field == "name" {
			found = &nd.PropertyChanges[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Old Name", found.Old)
	assert.Equal(t, "New Name", found.New)
}

func TestDiffNumericEpsilonComparisonIsUnchanged(t *testing.T) {
	na, nb := identicalPair(t, "org-qty", "org-qty", "LEI_QTY", "QtyOrg")
	q1 := 1000.0
	q2 := 1000.0 + 1e-10
	na.Quantity = &q1
	nb.Quantity = &q2

	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	assert.Len(t, result.Nodes.Unchanged, 1)
	assert.Empty(t, result.Nodes.Modified)
}

func TestDiffNumericChangeDetected(t *testing.T) {
	na, nb := identicalPair(t, "org-qty2", "org-qty2", "LEI_QTY2", "QtyOrg2")
	q1, q2 := 1000.0, 2000.0
	na.Quantity = &q1
	nb.Quantity = &q2

	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	require.Len(t, result.Nodes.Modified, 1)
	nd := result.Nodes.Modified[0]
	found := false
	for _, c := range nd.PropertyChanges {
		if c.Field == "quantity" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDiffIdentifierAdded(t *testing.T) {
	na, nb := identicalPair(t, "org-id", "org-id", "LEI_ID", "IdOrg")
	nb.Identifiers = append(nb.Identifiers, model.Identifier{Scheme: "duns", Value: "123456789"})

	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	require.Len(t, result.Nodes.Modified, 1)
	nd := result.Nodes.Modified[0]
	assert.Len(t, nd.IdentifierChanges.Added, 1)
	assert.Empty(t, nd.IdentifierChanges.Removed)
	assert.Equal(t, "duns", nd.IdentifierChanges.Added[0].Scheme)
}

func TestDiffIdentifierRemoved(t *testing.T) {
	na, nb := identicalPair(t, "org-idr", "org-idr", "LEI_IDR", "IdROrg")
	na.Identifiers = append(na.Identifiers, model.Identifier{Scheme: "duns", Value: "987654321"})

	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	require.Len(t, result.Nodes.Modified, 1)
	nd := result.Nodes.Modified[0]
	assert.Empty(t, nd.IdentifierChanges.Added)
	require.Len(t, nd.IdentifierChanges.Removed, 1)
	assert.Equal(t, "duns", nd.IdentifierChanges.Removed[0].Scheme)
}

func strp(s string) *string { return &s }

func TestDiffLabelValueChangeIsRemovePlusAdd(t *testing.T) {
	na, nb := identicalPair(t, "org-lbv", "org-lbv", "LEI_LBV", "LabelValOrg")
	na.Labels = []model.Label{{Key: "risk-tier", Value: strp("low")}}
	nb.Labels = []model.Label{{Key: "risk-tier", Value: strp("medium")}}

	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)
	result, _ := Run(a, b).Result()
	require.Len(t, result.Nodes.Modified, 1)
	nd := result.Nodes.Modified[0]
	require.Len(t, nd.LabelChanges.Added, 1)
	require.Len(t, nd.LabelChanges.Removed, 1)
	assert.Equal(t, "medium", *nd.LabelChanges.Added[0].Value)
	assert.Equal(t, "low", *nd.LabelChanges.Removed[0].Value)
}

func TestDiffFilterIgnoreFields(t *testing.T) {
	na, nb := identicalPair(t, "org-ign", "org-ign", "LEI_IGN", "IgnOrg")
	na.Address = strp("Old Address")

	a := makeFile(t, []model.Node{na}, nil)
	b := makeFile(t, []model.Node{nb}, nil)

	resultAll, _ := Run(a, b).Result()
	assert.Len(t, resultAll.Nodes.Modified, 1)

	filtered, _ := RunFiltered(a, b, &Filter{IgnoreFields: map[string]bool{"address": true}}).Result()
	assert.Len(t, filtered.Nodes.Unchanged, 1)
	assert.Empty(t, filtered.Nodes.Modified)
}

func TestDiffVersionMismatchWarning(t *testing.T) {
	a := makeFile(t, nil, nil)
	a.OmtsfVersion = testVersion(t, "1.0.0")
	b := makeFile(t, nil, nil)
	b.OmtsfVersion = testVersion(t, "1.1.0")
	result, _ := Run(a, b).Result()
	found := false
	for _, w := range result.Warnings {
		if w != "" && contains(w, "Version mismatch") {
			found = true
		}
	}
	assert.True(t, found)
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestDiffFilteredByNodeType(t *testing.T) {
	org := withLei(orgNode(t, "org-a"), "LEI_ORG")
	org.Name = strp("Org")
	facA := orgNode(t, "fac-a")
	facA.NodeType = model.KnownNodeType(model.NodeFacility)

	orgB := withLei(orgNode(t, "org-b"), "LEI_ORG")
	orgB.Name = strp("Org Renamed")
	facB := orgNode(t, "fac-b")
	facB.NodeType = model.KnownNodeType(model.NodeFacility)

	a := makeFile(t, []model.Node{org, facA}, nil)
	b := makeFile(t, []model.Node{orgB, facB}, nil)

	filter := &Filter{NodeTypes: map[model.NodeType]bool{model.NodeOrganization: true}}
	result, _ := RunFiltered(a, b, filter).Result()
	assert.Empty(t, result.Nodes.Added)
	assert.Empty(t, result.Nodes.Removed)
	assert.Len(t, result.Nodes.Modified, 1, "facility nodes excluded; org pair differs in name")
}

func TestDiffEdgesMatchedAndUnchanged(t *testing.T) {
	na, nb := identicalPair(t, "org-x", "org-y", "LEI_EDGE", "Acme")
	commodity := "steel"
	ea := model.Edge{
		Id: mustNodeID(t, "e-1"), EdgeType: model.KnownEdgeType(model.EdgeSupplies),
		Source: mustNodeID(t, "org-x"), Target: mustNodeID(t, "org-x"),
		Properties: model.EdgeProperties{Commodity: &commodity},
	}
	eb := ea
	eb.Id = mustNodeID(t, "e-2")
	eb.Source = mustNodeID(t, "org-y")
	eb.Target = mustNodeID(t, "org-y")

	a := makeFile(t, []model.Node{na}, []model.Edge{ea})
	b := makeFile(t, []model.Node{nb}, []model.Edge{eb})
	outcome := Run(a, b)
	assert.Equal(t, Identical, outcome.Kind())
	result, _ := outcome.Result()
	assert.Len(t, result.Edges.Unchanged, 1)
}

func TestDiffSameAsEdgesNeverMatch(t *testing.T) {
	na, nb := identicalPair(t, "org-x", "org-y", "LEI_SAME", "Acme")
	ea := model.Edge{
		Id: mustNodeID(t, "e-1"), EdgeType: model.KnownEdgeType(model.EdgeSameAs),
		Source: mustNodeID(t, "org-x"), Target: mustNodeID(t, "org-x"),
	}
	eb := ea
	eb.Id = mustNodeID(t, "e-2")
	eb.Source = mustNodeID(t, "org-y")
	eb.Target = mustNodeID(t, "org-y")

	a := makeFile(t, []model.Node{na}, []model.Edge{ea})
	b := makeFile(t, []model.Node{nb}, []model.Edge{eb})
	result, _ := Run(a, b).Result()
	assert.Len(t, result.Edges.Removed, 1)
	assert.Len(t, result.Edges.Added, 1)
	assert.Empty(t, result.Edges.Unchanged)
}
