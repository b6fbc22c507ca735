// Package canonicalize computes stable, order-independent string keys for
// OMTSF identifiers, and provides RFC 8785 JSON Canonicalization Scheme
// (JCS) byte encoding for composite values that the merge and redaction
// engines need to hash deterministically.
package canonicalize

import (
	"fmt"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// schemesRequiringAuthority are the schemes whose canonical id includes the
// authority segment.
var schemesRequiringAuthority = map[string]bool{
	"nat-reg":  true,
	"vat":      true,
	"internal": true,
}

// ID computes the canonical identifier string for id:
//
//	scheme ∈ {nat-reg, vat, internal}: "{scheme}:{authority}:{value}"
//	otherwise:                          "{scheme}:{value}"
//
// Referentially transparent: equal inputs always produce equal output.
func ID(id model.Identifier) string {
	if schemesRequiringAuthority[id.Scheme] {
		authority := ""
		if id.Authority != nil {
			authority = *id.Authority
		}
		return fmt.Sprintf("%s:%s:%s", id.Scheme, authority, id.Value)
	}
	return fmt.Sprintf("%s:%s", id.Scheme, id.Value)
}

// IsExternal reports whether id participates in cross-file matching:
// internal-scheme identifiers are always excluded, as are lei identifiers
// whose verification_status is annulled.
func IsExternal(id model.Identifier) bool {
	if id.Scheme == "internal" {
		return false
	}
	if id.Scheme == "lei" && id.VerificationStatus != nil && *id.VerificationStatus == annulledStatus {
		return false
	}
	return true
}

// annulledStatus is not part of the core VerificationStatus vocabulary (it
// is an LEI-registry-specific lifecycle state, not a verification method),
// so it is compared as a raw string rather than a model.VerificationStatus
// constant.
const annulledStatus = model.VerificationStatus("annulled")
