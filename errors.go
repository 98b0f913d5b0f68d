package pvmgen

import (
	"errors"
	"fmt"
)

// ErrEmptyContractName indicates Compile was called without a contract name.
var ErrEmptyContractName = errors.New("pvmgen: contract name cannot be empty")

// MetadataError indicates the upstream ABI document is malformed or missing
// required fields. The whole parse aborts; no partial result is returned.
type MetadataError struct {
	Field string
	Err   error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pvmgen: malformed ABI metadata at %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("pvmgen: malformed ABI metadata at %q", e.Field)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// EmptyNameError indicates an ABI item with an empty name reached the
// signature builder.
type EmptyNameError struct {
	Kind string // "function", "event" or "error"
}

func (e *EmptyNameError) Error() string {
	return fmt.Sprintf("pvmgen: %s with empty name has no signature", e.Kind)
}

// UnsupportedTypeError indicates a parameter type outside the fixed-width
// subset was encountered while strict types are enabled.
type UnsupportedTypeError struct {
	Function string
	Param    string
	Type     string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("pvmgen: function %q: parameter %q has unsupported type %q",
		e.Function, e.Param, e.Type)
}

// SelectorCollisionError indicates two functions in one contract hash to the
// same 4-byte selector. Dispatch generated for such a contract would route
// one of the calls to the wrong handler.
type SelectorCollisionError struct {
	Selector   [4]byte
	Signatures [2]string
}

func (e *SelectorCollisionError) Error() string {
	return fmt.Sprintf("pvmgen: selector %x collides between %q and %q",
		e.Selector, e.Signatures[0], e.Signatures[1])
}

// IdentifierCollisionError indicates two distinct ABI names normalize to the
// same generated identifier, which would silently overwrite a constant in
// the generated source.
type IdentifierCollisionError struct {
	Identifier string
	Names      [2]string
}

func (e *IdentifierCollisionError) Error() string {
	return fmt.Sprintf("pvmgen: names %q and %q both normalize to identifier %q",
		e.Names[0], e.Names[1], e.Identifier)
}
