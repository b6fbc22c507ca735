package merge

import (
	"encoding/json"
	"sort"

	"github.com/BayFX/omtsf/pkg/omtsf/canonicalize"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// scalarSource pairs one group member's value for a field with a label
// identifying which source file it came from, for conflict reporting.
type scalarSource[T comparable] struct {
	value *T
	label string
}

// mergeScalar picks the first present value across sources as the merged
// field value, and additionally reports a FieldConflict when more than one
// distinct value is present across the group. Only a handful of node
// fields (name, jurisdiction, status) go through conflict detection at
// all; every other scalar field is copied from the first group member
// without ever consulting this helper.
func mergeScalar[T comparable](field string, sources []scalarSource[T]) (*T, *model.FieldConflict) {
	var first *T
	distinct := map[T]bool{}
	var order []T
	for _, s := range sources {
		if s.value == nil {
			continue
		}
		if first == nil {
			v := *s.value
			first = &v
		}
		if !distinct[*s.value] {
			distinct[*s.value] = true
			order = append(order, *s.value)
		}
	}
	if len(order) <= 1 {
		return first, nil
	}

	conflict := &model.FieldConflict{Field: field}
	for _, s := range sources {
		if s.value == nil {
			continue
		}
		raw, _ := json.Marshal(*s.value)
		conflict.Values = append(conflict.Values, model.FieldConflictValue{Value: raw, SourceLabel: s.label})
	}
	return first, conflict
}

// mergeIdentifiers unions identifier slices across a match group, deduping
// by canonical id and keeping the first occurrence of each.
func mergeIdentifiers(groups [][]model.Identifier) []model.Identifier {
	seen := make(map[string]bool)
	var out []model.Identifier
	for _, ids := range groups {
		for _, id := range ids {
			key := canonicalize.ID(id)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, id)
		}
	}
	return out
}

// mergeLabels unions label slices across a match group, deduping by
// (key, value) pair.
func mergeLabels(groups [][]model.Label) []model.Label {
	seen := make(map[string]bool)
	var out []model.Label
	for _, labels := range groups {
		for _, l := range labels {
			key := labelKey(l)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, l)
		}
	}
	return out
}

func labelKey(l model.Label) string {
	if l.Value == nil {
		return l.Key + "\x00"
	}
	return l.Key + "\x00" + *l.Value
}

// buildConflictsValue renders a non-empty conflict list as the _conflicts
// extension value, sorted by field name for deterministic output.
func buildConflictsValue(conflicts []model.FieldConflict) json.RawMessage {
	if len(conflicts) == 0 {
		return nil
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Field < conflicts[j].Field })
	raw, err := json.Marshal(conflicts)
	if err != nil {
		return nil
	}
	return raw
}
