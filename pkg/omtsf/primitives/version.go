package primitives

import (
	"encoding/json"
	"regexp"

	mmsemver "github.com/Masterminds/semver/v3"
)

var versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Version is the `omtsf_version` shape: three dot-separated non-negative
// integers, no pre-release or build metadata. Leading zeros are permitted —
// this is a shape constraint, not strict SemVer.
type Version struct {
	value string
}

// NewVersion validates s against the version shape and returns a Version.
func NewVersion(s string) (Version, error) {
	if !versionRe.MatchString(s) {
		return Version{}, newInvalidFormat("Version", "three dot-separated non-negative integers (e.g. 1.0.0)", s)
	}
	return Version{value: s}, nil
}

func (v Version) String() string { return v.value }

// Compare orders v against other using semantic-version precedence. Both
// values have already passed the shape check at construction, so the
// underlying semver parse can never fail; ties are broken numerically field
// by field since neither value carries pre-release or build metadata.
func (v Version) Compare(other Version) int {
	sv, errV := mmsemver.NewVersion(v.value)
	so, errO := mmsemver.NewVersion(other.value)
	if errV != nil || errO != nil {
		// Unreachable for validly-constructed Versions; fall back to a
		// plain string comparison rather than panicking.
		switch {
		case v.value < other.value:
			return -1
		case v.value > other.value:
			return 1
		default:
			return 0
		}
	}
	return sv.Compare(so)
}

func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.value)
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
