package pvmgen

import (
	"encoding/json"
	"fmt"
)

// Param is a single typed parameter of a function, event or error.
// The type is the canonical ABI form (e.g. "uint256", never "uint");
// expansion of aliases is the upstream compiler's job, not ours.
type Param struct {
	Name    string // may be empty for unnamed parameters
	Type    string
	Indexed bool // events only
}

// Item represents one entry of a contract ABI.
// This is a sealed interface - only the four concrete kinds within this
// package implement it, so a switch over them is exhaustive.
type Item interface {
	// isItem is unexported to seal the interface.
	isItem()

	// Kind returns the ABI discriminant ("function", "event", "error" or
	// "constructor").
	Kind() string
}

// Function is a callable contract function.
type Function struct {
	Name            string
	Inputs          []Param
	Outputs         []Param
	StateMutability string
}

func (Function) isItem() {}

// Kind returns "function".
func (Function) Kind() string { return "function" }

// Event is an emitted contract event.
type Event struct {
	Name   string
	Inputs []Param
}

func (Event) isItem() {}

// Kind returns "event".
func (Event) Kind() string { return "event" }

// ErrorDef is a declared contract error.
type ErrorDef struct {
	Name   string
	Inputs []Param
}

func (ErrorDef) isItem() {}

// Kind returns "error".
func (ErrorDef) Kind() string { return "error" }

// Constructor is the contract constructor. It has no name and no selector.
type Constructor struct {
	Inputs []Param
}

func (Constructor) isItem() {}

// Kind returns "constructor".
func (Constructor) Kind() string { return "constructor" }

// rawParam mirrors one element of an ABI "inputs"/"outputs" array.
type rawParam struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed"`
}

// rawItem mirrors one element of the ABI array before the kind is resolved.
type rawItem struct {
	Type            string     `json:"type"`
	Name            string     `json:"name"`
	Inputs          []rawParam `json:"inputs"`
	Outputs         []rawParam `json:"outputs"`
	StateMutability string     `json:"stateMutability"`
}

// metadataDoc mirrors the relevant shape of a solc metadata blob.
type metadataDoc struct {
	Output struct {
		ABI json.RawMessage `json:"abi"`
	} `json:"output"`
}

// ParseABI parses a JSON ABI array into a list of Items.
// An unknown item kind or malformed document is a *MetadataError; no partial
// result is returned.
func ParseABI(abiJSON []byte) ([]Item, error) {
	var raw []rawItem
	if err := json.Unmarshal(abiJSON, &raw); err != nil {
		return nil, &MetadataError{Field: "abi", Err: err}
	}

	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		item, err := r.resolve()
		if err != nil {
			return nil, &MetadataError{Field: fmt.Sprintf("abi[%d]", i), Err: err}
		}
		items = append(items, item)
	}
	return items, nil
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) []Item {
	items, err := ParseABI([]byte(abiJSON))
	if err != nil {
		panic(err)
	}
	return items
}

// ParseMetadata parses a full solc metadata document of the shape
// { "output": { "abi": [...] } } into a list of Items.
func ParseMetadata(metadataJSON []byte) ([]Item, error) {
	var doc metadataDoc
	if err := json.Unmarshal(metadataJSON, &doc); err != nil {
		return nil, &MetadataError{Field: "metadata", Err: err}
	}
	if len(doc.Output.ABI) == 0 {
		return nil, &MetadataError{Field: "output.abi"}
	}
	return ParseABI(doc.Output.ABI)
}

// resolve turns a raw item into its concrete kind.
func (r rawItem) resolve() (Item, error) {
	switch r.Type {
	case "function":
		return Function{
			Name:            r.Name,
			Inputs:          convertParams(r.Inputs),
			Outputs:         convertParams(r.Outputs),
			StateMutability: r.StateMutability,
		}, nil
	case "event":
		return Event{Name: r.Name, Inputs: convertParams(r.Inputs)}, nil
	case "error":
		return ErrorDef{Name: r.Name, Inputs: convertParams(r.Inputs)}, nil
	case "constructor":
		return Constructor{Inputs: convertParams(r.Inputs)}, nil
	case "":
		return nil, fmt.Errorf("missing item type")
	default:
		return nil, fmt.Errorf("unknown item type %q", r.Type)
	}
}

func convertParams(raw []rawParam) []Param {
	if len(raw) == 0 {
		return nil
	}
	params := make([]Param, len(raw))
	for i, p := range raw {
		params[i] = Param{Name: p.Name, Type: p.Type, Indexed: p.Indexed}
	}
	return params
}

// Functions returns the function items of an ABI in declaration order.
func Functions(items []Item) []Function {
	var fns []Function
	for _, item := range items {
		if fn, ok := item.(Function); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Events returns the event items of an ABI in declaration order.
func Events(items []Item) []Event {
	var evs []Event
	for _, item := range items {
		if ev, ok := item.(Event); ok {
			evs = append(evs, ev)
		}
	}
	return evs
}

// Errors returns the error items of an ABI in declaration order.
func Errors(items []Item) []ErrorDef {
	var errs []ErrorDef
	for _, item := range items {
		if e, ok := item.(ErrorDef); ok {
			errs = append(errs, e)
		}
	}
	return errs
}
