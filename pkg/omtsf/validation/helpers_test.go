package validation

import (
	"testing"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/stretchr/testify/require"
)

func newTestCountryCode(t *testing.T, code string) (primitives.CountryCode, error) {
	t.Helper()
	return primitives.NewCountryCode(code)
}

func mustNodeID(t *testing.T, id string) primitives.NodeId {
	t.Helper()
	nid, err := primitives.NewNodeId(id)
	require.NoError(t, err)
	return nid
}

func testNode(t *testing.T, id string, nt model.NodeType) model.Node {
	t.Helper()
	return model.Node{Id: mustNodeID(t, id), NodeType: model.KnownNodeType(nt)}
}

func testEdge(t *testing.T, id, src, dst string, et model.EdgeType) model.Edge {
	t.Helper()
	return model.Edge{
		Id:       mustNodeID(t, id),
		Source:   mustNodeID(t, src),
		Target:   mustNodeID(t, dst),
		EdgeType: model.KnownEdgeType(et),
	}
}

func emptyFile(nodes []model.Node, edges []model.Edge) *model.File {
	return &model.File{Nodes: nodes, Edges: edges}
}

func checkRule(r Rule, file *model.File, external ExternalDataSource) []Diagnostic {
	var diags []Diagnostic
	r.Check(file, &diags, external)
	return diags
}

func codes(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.RuleId.Code()
	}
	return out
}
