package pvmgen

// Strategy selects the memory model of the generated contract source.
// The two strategies are never mixed within one contract.
type Strategy uint8

const (
	// Manual emits named selector/topic constants and inline fixed-width
	// calldata decoding with no allocator.
	Manual Strategy = iota

	// Managed maps functions to externally-defined call types and delegates
	// all decoding, including dynamic types, to an ABI library that
	// requires an allocator.
	Managed
)

// String returns the strategy name.
func (s Strategy) String() string {
	if s == Managed {
		return "managed"
	}
	return "manual"
}

// FunctionDispatch is the per-function slice of the dispatch model.
type FunctionDispatch struct {
	Name      string
	SnakeName string
	Signature string
	Selector  [4]byte

	// ConstName is the generated selector constant, e.g. "TRANSFER_SELECTOR".
	ConstName string

	// CallType is the external call type name under the managed strategy,
	// e.g. "MyToken::transferCall". Empty under the manual strategy.
	CallType string

	// Plan is the calldata decode plan under the manual strategy. Nil under
	// the managed strategy, where decoding is the call type's business.
	Plan *DecodePlan
}

// EventTopic is the per-event slice of the dispatch model.
type EventTopic struct {
	Name      string
	Signature string
	Topic     [32]byte

	// ConstName is the generated topic constant, e.g. "TRANSFER_EVENT_SIGNATURE".
	ConstName string
}

// ErrorDispatch is the per-error slice of the dispatch model.
type ErrorDispatch struct {
	Name      string
	Signature string
	Selector  [4]byte

	// ConstName is the generated selector constant, e.g. "INSUFFICIENT_BALANCE_ERROR".
	ConstName string
}

// DispatchModel is the contract-wide aggregate handed to a renderer.
// It is constructed in a single pass over the ABI and immutable afterward.
type DispatchModel struct {
	ContractName string
	PascalName   string
	SnakeName    string
	UpperName    string
	KebabName    string

	Strategy Strategy

	Functions []FunctionDispatch
	Events    []EventTopic
	Errors    []ErrorDispatch

	HasConstructor bool
}

// Compile turns a parsed ABI into the dispatch model for one contract.
//
// It is a pure function: identical inputs always yield byte-identical
// selectors, topics and signatures, and signatures/selectors do not depend
// on the chosen strategy. Fatal conditions (empty item names, selector or
// identifier collisions, unsupported types under WithStrictTypes) abort the
// whole call with a typed error; no partial model is returned.
func Compile(items []Item, contractName string, strategy Strategy, opts ...CompileOption) (*DispatchModel, error) {
	if contractName == "" {
		return nil, ErrEmptyContractName
	}

	cfg := defaultCompileConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	model := &DispatchModel{
		ContractName: contractName,
		PascalName:   Normalize(contractName, Pascal),
		SnakeName:    Normalize(contractName, Snake),
		UpperName:    Normalize(contractName, UpperSnake),
		KebabName:    Normalize(contractName, Kebab),
		Strategy:     strategy,
	}

	// Collision tracking. Selectors are checked across the contract's
	// function set; generated constant names are checked within the
	// namespace they share (functions, events and errors carry distinct
	// const suffixes, so they cannot collide across kinds).
	selectorSeen := make(map[[4]byte]string)
	fnConsts := make(map[string]string)
	eventConsts := make(map[string]string)
	errorConsts := make(map[string]string)

	for _, item := range items {
		switch it := item.(type) {
		case Function:
			fn, err := compileFunction(it, model.PascalName, strategy, cfg)
			if err != nil {
				return nil, err
			}
			if prev, dup := selectorSeen[fn.Selector]; dup {
				return nil, &SelectorCollisionError{
					Selector:   fn.Selector,
					Signatures: [2]string{prev, fn.Signature},
				}
			}
			selectorSeen[fn.Selector] = fn.Signature
			if prev, dup := fnConsts[fn.ConstName]; dup {
				return nil, &IdentifierCollisionError{
					Identifier: fn.ConstName,
					Names:      [2]string{prev, it.Name},
				}
			}
			fnConsts[fn.ConstName] = it.Name
			model.Functions = append(model.Functions, fn)

		case Event:
			sig, err := it.Signature()
			if err != nil {
				return nil, err
			}
			constName := Normalize(it.Name, UpperSnake) + "_EVENT_SIGNATURE"
			if prev, dup := eventConsts[constName]; dup {
				return nil, &IdentifierCollisionError{
					Identifier: constName,
					Names:      [2]string{prev, it.Name},
				}
			}
			eventConsts[constName] = it.Name
			model.Events = append(model.Events, EventTopic{
				Name:      it.Name,
				Signature: sig,
				Topic:     TopicOf(sig),
				ConstName: constName,
			})

		case ErrorDef:
			sig, err := it.Signature()
			if err != nil {
				return nil, err
			}
			constName := Normalize(it.Name, UpperSnake) + "_ERROR"
			if prev, dup := errorConsts[constName]; dup {
				return nil, &IdentifierCollisionError{
					Identifier: constName,
					Names:      [2]string{prev, it.Name},
				}
			}
			errorConsts[constName] = it.Name
			model.Errors = append(model.Errors, ErrorDispatch{
				Name:      it.Name,
				Signature: sig,
				Selector:  SelectorOf(sig),
				ConstName: constName,
			})

		case Constructor:
			model.HasConstructor = true
		}
	}

	return model, nil
}

// compileFunction builds the dispatch entry for one function.
func compileFunction(fn Function, contractPascal string, strategy Strategy, cfg *compileConfig) (FunctionDispatch, error) {
	sig, err := fn.Signature()
	if err != nil {
		return FunctionDispatch{}, err
	}

	dispatch := FunctionDispatch{
		Name:      fn.Name,
		SnakeName: Normalize(fn.Name, Snake),
		Signature: sig,
		Selector:  SelectorOf(sig),
		ConstName: Normalize(fn.Name, UpperSnake) + "_SELECTOR",
	}

	if strategy == Managed {
		dispatch.CallType = contractPascal + "::" + fn.Name + "Call"
		return dispatch, nil
	}

	plan := BuildDecodePlan(fn.Inputs)
	if cfg.strictTypes {
		for _, step := range plan.Steps {
			if !step.Supported() {
				return FunctionDispatch{}, &UnsupportedTypeError{
					Function: fn.Name,
					Param:    step.Param,
					Type:     step.TypeName,
				}
			}
		}
	}
	dispatch.Plan = plan
	return dispatch, nil
}
