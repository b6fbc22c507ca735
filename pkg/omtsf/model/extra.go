package model

import (
	"encoding/json"

	"github.com/BayFX/omtsf/pkg/omtsf/rawvalue"
)

// extractExtra decodes data as a JSON object and returns every member whose
// key is not in known, so callers can populate a record's Extra field
// without hand-enumerating which keys survived into typed fields.
func extractExtra(data []byte, known map[string]bool) (rawvalue.Map, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	extra := make(rawvalue.Map, len(all))
	for k, v := range all {
		if known[k] {
			continue
		}
		extra[k] = v
	}
	if len(extra) == 0 {
		return nil, nil
	}
	return extra, nil
}

// mergeExtraIntoObject splices extra's members into the already-encoded
// JSON object base, alongside its declared fields.
func mergeExtraIntoObject(base []byte, extra rawvalue.Map) ([]byte, error) {
	if len(extra) == 0 {
		return base, nil
	}
	extraBytes, err := extra.MarshalJSON()
	if err != nil {
		return nil, err
	}
	// base is "{...}"; extraBytes is "{...}" too. Splice extra's members in
	// before base's closing brace.
	if len(base) < 2 || len(extraBytes) < 2 {
		return base, nil
	}
	inner := extraBytes[1 : len(extraBytes)-1]
	out := make([]byte, 0, len(base)+len(inner)+1)
	out = append(out, base[:len(base)-1]...)
	if len(base) > 2 { // base had at least one member already
		out = append(out, ',')
	}
	out = append(out, inner...)
	out = append(out, '}')
	return out, nil
}

func knownSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
