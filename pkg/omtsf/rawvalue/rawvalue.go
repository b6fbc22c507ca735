// Package rawvalue provides the `extra` catch-all map used by every OMTSF
// record type to preserve unknown fields verbatim across decode/re-encode,
// satisfying the forward-compatibility requirement that a file produced by a
// newer spec round-trips losslessly through an older implementation.
package rawvalue

import (
	"encoding/json"
	"sort"
)

// Map holds JSON object members not recognized by a record's declared
// schema, keyed by their original field name. Values are kept as raw JSON so
// that nested structures and number formatting survive byte-exact.
type Map map[string]json.RawMessage

// MarshalJSON writes members in sorted key order for deterministic output —
// this matches encoding/json's own map-marshaling order, but is made
// explicit here since determinism is an invariant, not an implementation
// accident.
func (m Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, m[k]...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// Clone returns a shallow copy safe to mutate independently of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a new Map containing m's entries overlaid with other's
// (other wins on key collision). Either argument may be nil.
func Merge(m, other Map) Map {
	if len(m) == 0 && len(other) == 0 {
		return nil
	}
	out := make(Map, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Get unmarshals the member named key into out, reporting whether the key
// was present.
func (m Map) Get(key string, out interface{}) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

// Set stores v under key, marshaling it to raw JSON.
func (m Map) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m[key] = raw
	return nil
}
