// Package graph builds an in-memory directed labeled property multigraph
// from a model.File and answers reachability, shortest-path, all-paths, and
// cycle-detection queries over it, plus property-based node/edge selectors.
//
// Graph views are non-owning: a node/edge weight carries a copy of the
// local id and an index back into the owning file's node/edge slice, so the
// graph never clones node or edge data. A Graph is built on demand from a
// *model.File and must not outlive it.
package graph

import "fmt"

// BuildError is returned by Build when a file violates a structural
// invariant the graph requires to exist.
type BuildError struct {
	err error
}

func (e *BuildError) Error() string { return e.err.Error() }
func (e *BuildError) Unwrap() error { return e.err }

// DuplicateNodeIdError reports that two nodes in the file share a local id.
type DuplicateNodeIdError struct {
	Id string
}

func (e *DuplicateNodeIdError) Error() string {
	return fmt.Sprintf("duplicate node id %q", e.Id)
}

// DanglingEdgeRefError reports that an edge references a node id that does
// not exist in the file.
type DanglingEdgeRefError struct {
	EdgeId        string
	MissingNodeId string
}

func (e *DanglingEdgeRefError) Error() string {
	return fmt.Sprintf("edge %q references missing node %q", e.EdgeId, e.MissingNodeId)
}

func wrapDuplicate(id string) error {
	return &BuildError{err: &DuplicateNodeIdError{Id: id}}
}

func wrapDangling(edgeID, missingID string) error {
	return &BuildError{err: &DanglingEdgeRefError{EdgeId: edgeID, MissingNodeId: missingID}}
}

// NodeNotFoundError describes a node id absent from the graph. The query
// methods take NodeIndex values and do not return it; NodeIndexOf reports a
// missing id through its bool result instead.
type NodeNotFoundError struct {
	Id string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found", e.Id)
}
