// Package primitives provides validated scalar types used throughout an
// OMTSF file: versions, calendar dates, file salts, node/edge identifiers,
// and country codes. Each type enforces a shape constraint at construction
// time and re-validates on JSON decode, so a value of the type is always
// known-good once constructed.
package primitives

import "fmt"

// InvalidFormatError reports that a string did not match the shape a
// primitive type requires.
type InvalidFormatError struct {
	TypeName string
	Expected string
	Got      string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: invalid format: expected %s, got %q", e.TypeName, e.Expected, e.Got)
}

func newInvalidFormat(typeName, expected, got string) error {
	return &InvalidFormatError{TypeName: typeName, Expected: expected, Got: got}
}
