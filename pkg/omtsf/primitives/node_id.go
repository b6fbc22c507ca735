package primitives

import "encoding/json"

// NodeId is a non-empty, file-unique string identifier for a node. No
// further shape constraint is imposed beyond non-emptiness.
type NodeId struct {
	value string
}

// NewNodeId validates that s is non-empty.
func NewNodeId(s string) (NodeId, error) {
	if s == "" {
		return NodeId{}, newInvalidFormat("NodeId", "non-empty string", s)
	}
	return NodeId{value: s}, nil
}

func (id NodeId) String() string { return id.value }

func (id NodeId) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

func (id *NodeId) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewNodeId(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// EdgeId shares NodeId's validation rules; kept as a distinct name for
// documentation clarity at call sites that refer to an edge.
type EdgeId = NodeId

// NewEdgeId validates that s is non-empty.
func NewEdgeId(s string) (EdgeId, error) { return NewNodeId(s) }
