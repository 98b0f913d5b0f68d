package pvmgen

import "strings"

// Signature builds the canonical signature string "name(type1,type2,...)"
// for an ABI item. Input order is preserved exactly as declared: it
// determines both the hash input and the calldata word order.
//
// Precondition: types are canonical and contain no commas. Names are not
// escaped or quoted; the upstream compiler guarantees they cannot corrupt
// the signature.
func Signature(name string, inputs []Param) (string, error) {
	if name == "" {
		return "", &EmptyNameError{Kind: "item"}
	}

	types := make([]string, len(inputs))
	for i, input := range inputs {
		types[i] = input.Type
	}
	return name + "(" + strings.Join(types, ",") + ")", nil
}

// Signature returns the canonical function signature.
func (f Function) Signature() (string, error) {
	if f.Name == "" {
		return "", &EmptyNameError{Kind: "function"}
	}
	return Signature(f.Name, f.Inputs)
}

// Signature returns the canonical event signature.
func (e Event) Signature() (string, error) {
	if e.Name == "" {
		return "", &EmptyNameError{Kind: "event"}
	}
	return Signature(e.Name, e.Inputs)
}

// Signature returns the canonical error signature.
func (e ErrorDef) Signature() (string, error) {
	if e.Name == "" {
		return "", &EmptyNameError{Kind: "error"}
	}
	return Signature(e.Name, e.Inputs)
}
