package redaction

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"golang.org/x/crypto/hkdf"

	"crypto/sha256"

	"github.com/BayFX/omtsf/pkg/omtsf/canonicalize"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/sensitivity"
)

// publicCanonicalIDs returns the canonical ids of n's identifiers whose
// effective sensitivity is public, sorted for deterministic digest input.
func publicCanonicalIDs(n model.Node) []string {
	var ids []string
	for _, id := range n.Identifiers {
		if sensitivity.Identifier(id, n.NodeType) != model.SensitivityPublic {
			continue
		}
		ids = append(ids, canonicalize.ID(id))
	}
	sort.Strings(ids)
	return ids
}

// boundaryRefDigest computes the deterministic opaque digest for a Replace
// node: HKDF-SHA256 with the decoded file salt as secret and the JCS
// encoding of the node's sorted public-sensitivity canonical ids as info,
// yielding 32 bytes hex-encoded to 64 characters. Identical (salt, ids)
// inputs always produce the same digest, as required by the boundary-ref
// invariants.
func boundaryRefDigest(salt []byte, publicIDs []string) (string, error) {
	info, err := canonicalize.JCS(publicIDs)
	if err != nil {
		return "", fmt.Errorf("redaction: canonicalizing boundary-ref input: %w", err)
	}
	reader := hkdf.New(sha256.New, salt, nil, info)
	out := make([]byte, 32)
	if _, err := io.ReadFull(reader, out); err != nil {
		return "", fmt.Errorf("redaction: deriving boundary-ref digest: %w", err)
	}
	return hex.EncodeToString(out), nil
}
