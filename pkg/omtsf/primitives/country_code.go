package primitives

import (
	"encoding/json"
	"regexp"
)

var countryCodeRe = regexp.MustCompile(`^[A-Z]{2}$`)

// CountryCode is an ISO 3166-1 alpha-2 country code: exactly two uppercase
// ASCII letters. No lookup against the official country list is performed
// here — that belongs to the validation engine's L2/L3 rules.
type CountryCode struct {
	value string
}

// NewCountryCode validates s against the two-uppercase-letter shape.
func NewCountryCode(s string) (CountryCode, error) {
	if !countryCodeRe.MatchString(s) {
		return CountryCode{}, newInvalidFormat("CountryCode", "two uppercase ASCII letters (e.g. US, DE)", s)
	}
	return CountryCode{value: s}, nil
}

func (c CountryCode) String() string { return c.value }

func (c CountryCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

func (c *CountryCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewCountryCode(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
