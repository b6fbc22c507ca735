package model

import (
	"encoding/json"

	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/BayFX/omtsf/pkg/omtsf/rawvalue"
)

// ReservedMergeMetadataKey is the extension-field key under which the merge
// engine records provenance metadata about its inputs on the output file.
const ReservedMergeMetadataKey = "merge_metadata"

// File is the aggregate root of an OMTSF snapshot: it exclusively owns its
// nodes and edges. omtsf_version must be the first key when the file is
// serialized — struct field declaration order guarantees this, since Extra
// members are always spliced in after the declared fields.
type File struct {
	OmtsfVersion primitives.Version `json:"omtsf_version"`
	SnapshotDate primitives.CalendarDate `json:"snapshot_date"`
	FileSalt     primitives.FileSalt     `json:"file_salt"`

	DisclosureScope     *DisclosureScope `json:"disclosure_scope,omitempty"`
	PreviousSnapshotRef *string          `json:"previous_snapshot_ref,omitempty"`
	SnapshotSequence    *int             `json:"snapshot_sequence,omitempty"`
	ReportingEntity     *primitives.NodeId `json:"reporting_entity,omitempty"`

	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	Extra rawvalue.Map `json:"-"`
}

var fileKnownKeys = []string{
	"omtsf_version", "snapshot_date", "file_salt",
	"disclosure_scope", "previous_snapshot_ref", "snapshot_sequence",
	"reporting_entity", "nodes", "edges",
}

func (f File) MarshalJSON() ([]byte, error) {
	type alias File
	base, err := json.Marshal(alias(f))
	if err != nil {
		return nil, err
	}
	return mergeExtraIntoObject(base, f.Extra)
}

func (f *File) UnmarshalJSON(data []byte) error {
	type alias File
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, knownSet(fileKnownKeys...))
	if err != nil {
		return err
	}
	a.Extra = extra
	*f = File(a)
	return nil
}

// NodeByID returns the node with the given id, if present.
func (f *File) NodeByID(id primitives.NodeId) (*Node, bool) {
	for i := range f.Nodes {
		if f.Nodes[i].Id == id {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}

// Clone returns a deep-enough copy of f for engines that promise never to
// mutate their inputs: a fresh File and fresh Nodes/Edges slices, produced
// via a JSON round-trip so that nested pointers and the Extra map are not
// shared with f.
func (f *File) Clone() (*File, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	var out File
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
