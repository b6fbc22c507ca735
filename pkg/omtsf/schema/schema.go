// Package schema provides a JSON Schema defense-in-depth check run ahead of
// the typed model decoder: it catches structurally malformed input (wrong
// JSON types, missing required top-level keys) that would otherwise surface
// as a less specific json.Unmarshal error, without being the source of
// truth for any L1/L2/L3 semantic rule — those remain hand-written Go
// predicates in pkg/omtsf/validation.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed omtsf_file.schema.json
var fileSchemaJSON []byte

var compiledFileSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("omtsf_file.schema.json", bytes.NewReader(fileSchemaJSON)); err != nil {
		panic(fmt.Sprintf("schema: adding embedded schema resource: %v", err))
	}
	s, err := compiler.Compile("omtsf_file.schema.json")
	if err != nil {
		panic(fmt.Sprintf("schema: compiling embedded schema: %v", err))
	}
	compiledFileSchema = s
}

// ValidationError wraps the underlying jsonschema library error so callers
// outside this package never need to import it directly.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("schema: %v", e.err) }
func (e *ValidationError) Unwrap() error { return e.err }

// ValidateFile checks decoded (an `any` produced by json.Unmarshal into an
// empty interface — NOT a *model.File) against the embedded OMTSF file
// schema. Call this on the raw decoded document before or alongside
// json.Unmarshal into *model.File; it is a fast, shallow shape check, not a
// replacement for the typed decoder or the validation engine's L1 rules.
func ValidateFile(decoded interface{}) error {
	if err := compiledFileSchema.Validate(decoded); err != nil {
		return &ValidationError{err: err}
	}
	return nil
}
