// Package identity implements the cross-file identity predicates:
// identifiers_match, nodes_match, and edges_match (spec §4.2), including
// temporal compatibility of validity windows and the edge-identity
// property table used when neither side of an edge carries an identifier.
package identity

import "github.com/BayFX/omtsf/pkg/omtsf/model"

// temporallyCompatible reports whether two half-open validity intervals
// [valid_from, valid_to] overlap. They are compatible if they overlap, if
// either endpoint is absent, or if at least one side has valid_to = null
// (no expiry).
func temporallyCompatible(a, b model.Identifier) bool {
	aFrom, aHasFrom := a.ValidFrom, a.ValidFrom != nil
	bFrom, bHasFrom := b.ValidFrom, b.ValidFrom != nil

	aNoExpiry := a.ValidTo == nil || a.ValidTo.NoExpiry()
	bNoExpiry := b.ValidTo == nil || b.ValidTo.NoExpiry()
	if aNoExpiry || bNoExpiry {
		return true
	}

	aTo, aHasTo := a.ValidTo.Date()
	bTo, bHasTo := b.ValidTo.Date()

	if !aHasFrom || !bHasFrom || !aHasTo || !bHasTo {
		return true
	}

	// Both sides have a concrete [from, to] window: they are compatible
	// iff the windows overlap.
	return *aFrom <= bTo && *bFrom <= aTo
}
