// Package merge implements the union-find-based node/edge deduplication
// pipeline that combines several OMTSF files into one reconciled snapshot.
package merge

import (
	"log/slog"
	"time"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/validation"
)

// SameAsThreshold is the minimum evidentiary strength a same_as edge must
// carry before its endpoints are unioned as an additional identity source,
// on top of the identifier-based matching every node pair goes through.
// This is a dedicated three-level scale — distinct from the four-level
// model.Confidence data-quality vocabulary — matching the merge pipeline's
// own {Any, Reported, Definite} threshold terminology.
type SameAsThreshold string

const (
	// SameAsThresholdAny unions on any same_as edge that carries a
	// recognised confidence value at all.
	SameAsThresholdAny SameAsThreshold = "any"
	// SameAsThresholdReported requires at least "reported" or "verified"
	// data-quality confidence.
	SameAsThresholdReported SameAsThreshold = "reported"
	// SameAsThresholdDefinite requires "verified" confidence — the
	// strongest evidence level — and is the pipeline's default.
	SameAsThresholdDefinite SameAsThreshold = "definite"
)

// confidenceRank orders model.Confidence from strongest to weakest
// provenance; higher rank means stronger evidence.
var confidenceRank = map[model.Confidence]int{
	model.ConfidenceVerified:  4,
	model.ConfidenceReported:  3,
	model.ConfidenceInferred:  2,
	model.ConfidenceEstimated: 1,
}

// Honours reports whether c meets threshold t. An unrecognised confidence
// value never honours any threshold.
func (t SameAsThreshold) Honours(c model.Confidence) bool {
	rank, ok := confidenceRank[c]
	if !ok {
		return false
	}
	switch t {
	case SameAsThresholdAny:
		return true
	case SameAsThresholdReported:
		return rank >= confidenceRank[model.ConfidenceReported]
	default: // SameAsThresholdDefinite, and any unrecognised threshold
		return rank >= confidenceRank[model.ConfidenceVerified]
	}
}

// Config controls the merge pipeline's tunable behaviour.
type Config struct {
	// SameAsThreshold is the minimum confidence a same_as edge must carry
	// for its endpoints to be additionally unioned. Defaults to "definite".
	SameAsThreshold SameAsThreshold

	// GroupSizeLimit is the node-match-group size above which a warning is
	// raised (the group is still merged; this flags a likely over-eager
	// identifier collision rather than blocking the run). Defaults to 50.
	GroupSizeLimit int

	// Clock supplies the current time for MergeMetadata.Timestamp. Defaults
	// to time.Now when nil.
	Clock func() time.Time

	// Engine runs post-merge L1 validation. Defaults to validation.NewEngine().
	Engine *validation.Engine

	// Logger receives Debug-level internal engine steps (e.g. union-find
	// group counts). Defaults to slog.Default() when nil; never used for
	// warnings or results, which are returned to the caller instead.
	Logger *slog.Logger
}

// DefaultConfig returns the pipeline's default tuning.
func DefaultConfig() Config {
	return Config{
		SameAsThreshold: SameAsThresholdDefinite,
		GroupSizeLimit:  50,
	}
}

func (c Config) clock() func() time.Time {
	if c.Clock != nil {
		return c.Clock
	}
	return time.Now
}

func (c Config) groupSizeLimit() int {
	if c.GroupSizeLimit > 0 {
		return c.GroupSizeLimit
	}
	return 50
}

func (c Config) engine() *validation.Engine {
	if c.Engine != nil {
		return c.Engine
	}
	return validation.NewEngine()
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Input is one source file contributing to a merge, labeled for provenance
// reporting (e.g. a filename or origin identifier).
type Input struct {
	File  *model.File
	Label string
}

// Metadata records provenance about a merge run, written onto the output
// file's extension map under model.ReservedMergeMetadataKey.
type Metadata struct {
	// RunID correlates this merge's warnings and output file across logs
	// and downstream systems, the way a request ID threads one HTTP call
	// through a service's logs.
	RunID             string   `json:"run_id"`
	SourceFiles       []string `json:"source_files"`
	ReportingEntities []string `json:"reporting_entities"`
	Timestamp         string   `json:"timestamp"`
	MergedNodeCount   int      `json:"merged_node_count"`
	MergedEdgeCount   int      `json:"merged_edge_count"`
	ConflictCount     int      `json:"conflict_count"`
}

// Output is the result of a successful merge.
type Output struct {
	File     *model.File
	Metadata Metadata
	Warnings []string
}

// PostMergeValidationError reports that the merged file failed L1
// structural validation — a condition the pipeline treats as fatal, since a
// non-conformant merge output means the dedup/reconciliation logic produced
// a broken file rather than a mere content disagreement.
type PostMergeValidationError struct {
	Result validation.Result
}

func (e *PostMergeValidationError) Error() string {
	return "merge: output file failed post-merge L1 validation"
}
