package model

import "encoding/json"

// OptionalDate is a nullable-optional date: absent means "unknown", present
// with a null JSON value means "no expiry", present with a date means
// "expires on date". The zero value represents absence.
type OptionalDate struct {
	set     bool
	isNull  bool
	value   string // YYYY-MM-DD, already shape-validated by the caller
}

// Absent reports whether the field was not present at all.
func (d OptionalDate) Absent() bool { return !d.set }

// NoExpiry reports whether the field was present with JSON null.
func (d OptionalDate) NoExpiry() bool { return d.set && d.isNull }

// Date returns the concrete date and whether one is present (neither absent
// nor null).
func (d OptionalDate) Date() (string, bool) {
	if d.set && !d.isNull {
		return d.value, true
	}
	return "", false
}

// NewOptionalDate constructs a present-with-date value.
func NewOptionalDate(date string) OptionalDate {
	return OptionalDate{set: true, value: date}
}

// NewNoExpiry constructs a present-with-null value.
func NewNoExpiry() OptionalDate {
	return OptionalDate{set: true, isNull: true}
}

func (d OptionalDate) MarshalJSON() ([]byte, error) {
	if d.isNull {
		return []byte("null"), nil
	}
	return json.Marshal(d.value)
}

func (d *OptionalDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = OptionalDate{set: true, isNull: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = OptionalDate{set: true, value: s}
	return nil
}

// Identifier is an external (or internal) identifier attached to a node.
type Identifier struct {
	Scheme             string  `json:"scheme"`
	Value              string  `json:"value"`
	Authority          *string `json:"authority,omitempty"`
	ValidFrom          *string `json:"valid_from,omitempty"`
	ValidTo            *OptionalDate `json:"valid_to,omitempty"`
	Sensitivity        *Sensitivity `json:"sensitivity,omitempty"`
	VerificationStatus *VerificationStatus `json:"verification_status,omitempty"`
	VerificationDate   *string `json:"verification_date,omitempty"`

	Extra rawvalue.Map `json:"-"`
}

var identifierKnownKeys = []string{
	"scheme", "value", "authority", "valid_from", "valid_to",
	"sensitivity", "verification_status", "verification_date",
}

// MarshalJSON writes known fields plus Extra flattened alongside them.
func (id Identifier) MarshalJSON() ([]byte, error) {
	type alias Identifier
	base, err := json.Marshal(alias(id))
	if err != nil {
		return nil, err
	}
	return mergeExtraIntoObject(base, id.Extra)
}

func (id *Identifier) UnmarshalJSON(data []byte) error {
	type alias Identifier
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, knownSet(identifierKnownKeys...))
	if err != nil {
		return err
	}
	a.Extra = extra
	*id = Identifier(a)
	return nil
}

// Label is a free-form key/optional-value annotation.
type Label struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`

	Extra rawvalue.Map `json:"-"`
}

var labelKnownKeys = []string{"key", "value"}

func (l Label) MarshalJSON() ([]byte, error) {
	type alias Label
	base, err := json.Marshal(alias(l))
	if err != nil {
		return nil, err
	}
	return mergeExtraIntoObject(base, l.Extra)
}

func (l *Label) UnmarshalJSON(data []byte) error {
	type alias Label
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, knownSet(labelKnownKeys...))
	if err != nil {
		return err
	}
	a.Extra = extra
	*l = Label(a)
	return nil
}

// DataQuality records provenance/confidence metadata on a node or edge.
type DataQuality struct {
	Confidence   *Confidence `json:"confidence,omitempty"`
	Source       *string     `json:"source,omitempty"`
	LastVerified *string     `json:"last_verified,omitempty"`

	Extra rawvalue.Map `json:"-"`
}

var dataQualityKnownKeys = []string{"confidence", "source", "last_verified"}

func (q DataQuality) MarshalJSON() ([]byte, error) {
	type alias DataQuality
	base, err := json.Marshal(alias(q))
	if err != nil {
		return nil, err
	}
	return mergeExtraIntoObject(base, q.Extra)
}

func (q *DataQuality) UnmarshalJSON(data []byte) error {
	type alias DataQuality
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, knownSet(dataQualityKnownKeys...))
	if err != nil {
		return err
	}
	a.Extra = extra
	*q = DataQuality(a)
	return nil
}
