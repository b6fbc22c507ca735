package diff

import (
	"github.com/BayFX/omtsf/pkg/omtsf/canonicalize"
	"github.com/BayFX/omtsf/pkg/omtsf/equality"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// compareIdentifiers diffs two identifier slices keyed by canonical id,
// excluding non-external identifiers from the comparison entirely (they
// never participate in cross-file matching, so a set diff including them
// would report spurious churn on every run).
func compareIdentifiers(a, b []model.Identifier) IdentifierSetDiff {
	am := externalByCanonicalID(a)
	bm := externalByCanonicalID(b)

	var diff IdentifierSetDiff
	for id, ai := range am {
		bi, ok := bm[id]
		if !ok {
			diff.Removed = append(diff.Removed, ai)
			continue
		}
		if changes := compareIdentifierFields(ai, bi); len(changes) > 0 {
			diff.Modified = append(diff.Modified, IdentifierFieldChanges{CanonicalId: id, Changes: changes})
		}
	}
	for id, bi := range bm {
		if _, ok := am[id]; !ok {
			diff.Added = append(diff.Added, bi)
		}
	}
	return diff
}

func externalByCanonicalID(ids []model.Identifier) map[string]model.Identifier {
	out := make(map[string]model.Identifier, len(ids))
	for _, id := range ids {
		if canonicalize.IsExternal(id) {
			out[canonicalize.ID(id)] = id
		}
	}
	return out
}

func compareIdentifierFields(a, b model.Identifier) []PropertyChange {
	var out []PropertyChange
	add := func(c *PropertyChange) {
		if c != nil {
			out = append(out, *c)
		}
	}
	add(maybeChange("authority", a.Authority, b.Authority, equality.Strings))
	add(maybeChange("valid_from", a.ValidFrom, b.ValidFrom, equality.Dates))
	add(optionalDateChange("valid_to", a.ValidTo, b.ValidTo))
	add(maybeChange("sensitivity", a.Sensitivity, b.Sensitivity, valuesEqual[model.Sensitivity]))
	add(maybeChange("verification_status", a.VerificationStatus, b.VerificationStatus, valuesEqual[model.VerificationStatus]))
	add(maybeChange("verification_date", a.VerificationDate, b.VerificationDate, equality.Dates))
	out = append(out, compareExtra(a.Extra, b.Extra)...)
	return out
}

// compareLabels diffs two label slices under (key, value) pair equality: a
// value change on a kept key is modelled as remove-old + add-new, never as
// a modification.
func compareLabels(a, b []model.Label) LabelSetDiff {
	aset := make(map[string]model.Label, len(a))
	bset := make(map[string]model.Label, len(b))
	for _, l := range a {
		aset[labelPairKey(l)] = l
	}
	for _, l := range b {
		bset[labelPairKey(l)] = l
	}

	var diff LabelSetDiff
	for k, l := range aset {
		if _, ok := bset[k]; !ok {
			diff.Removed = append(diff.Removed, l)
		}
	}
	for k, l := range bset {
		if _, ok := aset[k]; !ok {
			diff.Added = append(diff.Added, l)
		}
	}
	return diff
}

func labelPairKey(l model.Label) string {
	if l.Value == nil {
		return l.Key + "\x00"
	}
	return l.Key + "\x00" + *l.Value
}
