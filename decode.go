package pvmgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Calldata layout constants.
const (
	// SelectorSize is the length of the dispatch selector prefix in bytes.
	SelectorSize = 4

	// WordSize is the width of one static calldata word in bytes.
	WordSize = 32

	// AddressSize is the width of an address within its word (the low bytes).
	AddressSize = 20

	// MaxUintBits is the widest unsigned integer decoded inline; wider
	// integers degrade to an Unsupported step.
	MaxUintBits = 128
)

// DecodeKind classifies how one calldata word is turned into a value.
type DecodeKind uint8

const (
	// DecodeAddress extracts the low 20 bytes of the word.
	DecodeAddress DecodeKind = iota

	// DecodeUint extracts an unsigned big-endian integer from the low bytes.
	DecodeUint

	// DecodeBool is true iff the last byte of the word is nonzero. The other
	// 31 bytes are never inspected.
	DecodeBool

	// DecodeBytes32 copies the raw 32-byte word unchanged.
	DecodeBytes32

	// DecodeUnsupported marks a type outside the fixed-width subset. The
	// generated code for it is a placeholder to be completed by hand.
	DecodeUnsupported
)

// String returns a short name for the kind.
func (k DecodeKind) String() string {
	switch k {
	case DecodeAddress:
		return "address"
	case DecodeUint:
		return "uint"
	case DecodeBool:
		return "bool"
	case DecodeBytes32:
		return "bytes32"
	default:
		return "unsupported"
	}
}

// DecodeStep is one per-parameter decode instruction. The byte range
// [Start, End) is always a 32-byte-aligned word offset past the selector,
// except for Unsupported steps which carry no range.
type DecodeStep struct {
	Param string
	Start int
	End   int
	Kind  DecodeKind

	// Bits is the integer width for DecodeUint steps.
	Bits int

	// TypeName is the original canonical type for DecodeUnsupported steps.
	TypeName string
}

// Supported returns false for placeholder steps.
func (s DecodeStep) Supported() bool {
	return s.Kind != DecodeUnsupported
}

// DecodePlan is the ordered decode plan for one function's calldata.
type DecodePlan struct {
	// MinCalldataLen is 4 + 32 per parameter. Note this static-word bound is
	// computed even when the plan contains Unsupported (dynamic) steps, where
	// the true ABI encoding needs more; generated dispatch checks only this.
	MinCalldataLen int

	Steps []DecodeStep
}

// BuildDecodePlan walks a function's parameters in declaration order and
// produces its decode plan. Each parameter consumes one 32-byte word
// starting at offset 4. Unnamed parameters are called param_<idx>.
func BuildDecodePlan(inputs []Param) *DecodePlan {
	plan := &DecodePlan{
		MinCalldataLen: SelectorSize + WordSize*len(inputs),
		Steps:          make([]DecodeStep, 0, len(inputs)),
	}

	offset := SelectorSize
	for i, input := range inputs {
		step := classifyParam(input, i)
		if step.Kind != DecodeUnsupported {
			step.Start = offset
			step.End = offset + WordSize
		}
		plan.Steps = append(plan.Steps, step)
		offset += WordSize
	}
	return plan
}

// classifyParam maps one canonical parameter type onto a decode strategy.
func classifyParam(input Param, idx int) DecodeStep {
	name := input.Name
	if name == "" {
		name = fmt.Sprintf("param_%d", idx)
	} else {
		name = Normalize(name, Snake)
	}

	step := DecodeStep{Param: name}
	switch {
	case input.Type == "address":
		step.Kind = DecodeAddress
	case input.Type == "bool":
		step.Kind = DecodeBool
	case input.Type == "bytes32":
		step.Kind = DecodeBytes32
	default:
		if bits, ok := uintBits(input.Type); ok {
			step.Kind = DecodeUint
			step.Bits = bits
		} else {
			step.Kind = DecodeUnsupported
			step.TypeName = input.Type
		}
	}
	return step
}

// uintBits parses "uintN" and reports whether N is a decodable width:
// a multiple of 8 between 8 and MaxUintBits. The bare alias "uint" is not
// accepted; canonicalization upstream always expands it.
func uintBits(typeName string) (int, bool) {
	digits, ok := strings.CutPrefix(typeName, "uint")
	if !ok || digits == "" {
		return 0, false
	}
	bits, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	if bits < 8 || bits > MaxUintBits || bits%8 != 0 {
		return 0, false
	}
	return bits, true
}
