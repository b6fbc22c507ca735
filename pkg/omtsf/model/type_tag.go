package model

import "encoding/json"

// NodeTypeTag is the `type` field on a node: either a NodeType recognized by
// this version of the package, or an extension string not yet recognized.
// Unknown strings decode successfully as extensions rather than failing —
// rejecting them is a validation-engine concern, not a decode concern.
type NodeTypeTag struct {
	known NodeType
	ext   string
	isExt bool
}

// KnownNodeType wraps a recognized NodeType.
func KnownNodeType(t NodeType) NodeTypeTag { return NodeTypeTag{known: t} }

// ExtensionNodeType wraps an unrecognized node type string.
func ExtensionNodeType(s string) NodeTypeTag { return NodeTypeTag{ext: s, isExt: true} }

// String returns the snake_case wire representation.
func (t NodeTypeTag) String() string {
	if t.isExt {
		return t.ext
	}
	return string(t.known)
}

// Known reports whether the tag is a recognized NodeType, returning it if so.
func (t NodeTypeTag) Known() (NodeType, bool) {
	if t.isExt {
		return "", false
	}
	return t.known, true
}

// IsExtension reports whether the tag is an unrecognized extension string.
func (t NodeTypeTag) IsExtension() bool { return t.isExt }

func (t NodeTypeTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *NodeTypeTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if knownNodeTypes[NodeType(s)] {
		*t = KnownNodeType(NodeType(s))
	} else {
		*t = ExtensionNodeType(s)
	}
	return nil
}

// EdgeTypeTag is the `type` field on an edge; mirrors NodeTypeTag's semantics.
type EdgeTypeTag struct {
	known EdgeType
	ext   string
	isExt bool
}

// KnownEdgeType wraps a recognized EdgeType.
func KnownEdgeType(t EdgeType) EdgeTypeTag { return EdgeTypeTag{known: t} }

// ExtensionEdgeType wraps an unrecognized edge type string.
func ExtensionEdgeType(s string) EdgeTypeTag { return EdgeTypeTag{ext: s, isExt: true} }

func (t EdgeTypeTag) String() string {
	if t.isExt {
		return t.ext
	}
	return string(t.known)
}

// Known reports whether the tag is a recognized EdgeType, returning it if so.
func (t EdgeTypeTag) Known() (EdgeType, bool) {
	if t.isExt {
		return "", false
	}
	return t.known, true
}

// IsExtension reports whether the tag is an unrecognized extension string.
func (t EdgeTypeTag) IsExtension() bool { return t.isExt }

func (t EdgeTypeTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EdgeTypeTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if knownEdgeTypes[EdgeType(s)] {
		*t = KnownEdgeType(EdgeType(s))
	} else {
		*t = ExtensionEdgeType(s)
	}
	return nil
}
