// Package equality implements the universal equality rules (spec §4.6)
// shared by the identity, diff, and merge engines: numeric comparison
// within an epsilon, zero-padded date comparison, exact string comparison,
// and structural comparison of containers and extension-field subtrees.
package equality

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// NumericEpsilon is the absolute tolerance used when comparing floating
// point values.
const NumericEpsilon = 1e-9

// Numbers reports whether a and b are equal within NumericEpsilon.
func Numbers(a, b float64) bool {
	return math.Abs(a-b) <= NumericEpsilon
}

// Dates reports whether two YYYY-MM-DD date strings denote the same date
// after zero-padding month and day components.
func Dates(a, b string) bool {
	return normalizeDate(a) == normalizeDate(b)
}

func normalizeDate(s string) string {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return s
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// Strings is exact, case-sensitive string equality.
func Strings(a, b string) bool { return a == b }

// Raw reports whether two raw JSON values (e.g. extension-field subtrees)
// are structurally equal, independent of key order or insignificant
// whitespace.
func Raw(a, b json.RawMessage) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	var va, vb interface{}
	if err := json.Unmarshal(a, &va); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false
	}
	return Structural(va, vb)
}

// Structural performs a deep structural comparison of two decoded JSON
// values (as produced by encoding/json into interface{}), treating
// json.Number/float64 values via Numbers and falling back to
// reflect.DeepEqual for everything else.
func Structural(a, b interface{}) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return Numbers(af, bf)
	}

	switch av := a.(type) {
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Structural(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !Structural(v, other) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
