package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVersion(t *testing.T, s string) primitives.Version {
	t.Helper()
	v, err := primitives.NewVersion(s)
	require.NoError(t, err)
	return v
}

func mustDate(t *testing.T, s string) primitives.CalendarDate {
	t.Helper()
	d, err := primitives.NewCalendarDate(s)
	require.NoError(t, err)
	return d
}

func mustSalt(t *testing.T) primitives.FileSalt {
	t.Helper()
	s, err := primitives.NewFileSalt("ab" + strings.Repeat("0", 60) + "cd")
	require.NoError(t, err)
	return s
}

func minimalFile(t *testing.T) File {
	t.Helper()
	return File{
		OmtsfVersion: mustVersion(t, "1.0.0"),
		SnapshotDate: mustDate(t, "2024-01-01"),
		FileSalt:     mustSalt(t),
		Nodes:        []Node{},
		Edges:        []Edge{},
	}
}

func TestFileOmtsfVersionIsFirstKey(t *testing.T) {
	f := minimalFile(t)
	data, err := json.Marshal(f)
	require.NoError(t, err)
	require.True(t, string(data[:len(`{"omtsf_version"`)]) == `{"omtsf_version"`, "got %s", data)
}

func TestFileRoundTripMinimal(t *testing.T) {
	f := minimalFile(t)
	data, err := json.Marshal(f)
	require.NoError(t, err)

	var back File
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f.OmtsfVersion, back.OmtsfVersion)
	assert.Equal(t, f.SnapshotDate, back.SnapshotDate)
	assert.Equal(t, f.FileSalt, back.FileSalt)
}

func TestFileUnknownTopLevelFieldPreserved(t *testing.T) {
	raw := `{
		"omtsf_version": "1.0.0",
		"snapshot_date": "2024-01-01",
		"file_salt": "` + mustSalt(t).String() + `",
		"nodes": [],
		"edges": [],
		"future_field": {"nested": [1, 2, 3]}
	}`

	var f File
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	require.Contains(t, f.Extra, "future_field")

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}

func TestNodeUnknownNestedFieldPreserved(t *testing.T) {
	raw := `{
		"id": "org-1",
		"node_type": "organization",
		"name": "Acme",
		"custom_field": "hello"
	}`
	var n Node
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	require.Contains(t, n.Extra, "custom_field")

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}

func TestNodeTypeTagExtension(t *testing.T) {
	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"id":"n1","node_type":"com.example.custom_node"}`), &n))
	assert.True(t, n.NodeType.IsExtension())
	assert.Equal(t, "com.example.custom_node", n.NodeType.String())

	data, err := json.Marshal(n.NodeType)
	require.NoError(t, err)
	assert.JSONEq(t, `"com.example.custom_node"`, string(data))
}

func TestEdgeTypeTagKnown(t *testing.T) {
	var e Edge
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e1","edge_type":"ownership","source":"a","target":"b","properties":{}}`), &e))
	typ, ok := e.EdgeType.Known()
	require.True(t, ok)
	assert.Equal(t, EdgeOwnership, typ)
}

func TestIdentifierValidToNullVsAbsent(t *testing.T) {
	var withNull Identifier
	require.NoError(t, json.Unmarshal([]byte(`{"scheme":"lei","value":"X","valid_to":null}`), &withNull))
	require.NotNil(t, withNull.ValidTo)
	assert.True(t, withNull.ValidTo.NoExpiry())

	var absent Identifier
	require.NoError(t, json.Unmarshal([]byte(`{"scheme":"lei","value":"X"}`), &absent))
	assert.Nil(t, absent.ValidTo)
}

func TestFullRoundTripWithNodesAndEdges(t *testing.T) {
	name := "Acme Corp"
	f := minimalFile(t)
	f.Nodes = []Node{
		{Id: mustNodeID(t, "org-1"), NodeType: KnownNodeType(NodeOrganization), Name: &name},
	}
	f.Edges = []Edge{
		{
			Id:       mustNodeID(t, "e-1"),
			EdgeType: KnownEdgeType(EdgeOwnership),
			Source:   mustNodeID(t, "org-1"),
			Target:   mustNodeID(t, "org-1"),
			Properties: EdgeProperties{},
		},
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var back File
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back.Nodes, 1)
	require.Len(t, back.Edges, 1)
	assert.Equal(t, "Acme Corp", *back.Nodes[0].Name)
}

func mustNodeID(t *testing.T, s string) primitives.NodeId {
	t.Helper()
	id, err := primitives.NewNodeId(s)
	require.NoError(t, err)
	return id
}
