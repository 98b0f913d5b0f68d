// Package pvmgen compiles Solidity contract interfaces (ABIs) into the
// dispatch and decoding source a PolkaVM contract entry point needs.
//
// Given the ABI of a contract - its callable functions, emitted events and
// declared errors - the compiler produces a DispatchModel: canonical
// signatures, keccak-derived 4-byte selectors and 32-byte topic hashes,
// normalized identifier names for generated constants, and (under the manual
// strategy) a per-function plan for decoding fixed-width calldata words.
//
// # Basic Usage
//
// Parse an ABI, compile it, and hand the model to a renderer:
//
//	items := pvmgen.MustParseABI(abiJSON)
//
//	model, err := pvmgen.Compile(items, "MyToken", pvmgen.Manual)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, fn := range model.Functions {
//	    fmt.Printf("%s -> %x\n", fn.Signature, fn.Selector)
//	}
//
// # Strategies
//
// Two code-generation strategies are supported, never mixed within one
// contract:
//
//   - Manual: every function, event and error gets a named selector/topic
//     constant, and each function gets a DecodePlan of fixed-width word
//     extractions. The generated code assumes no allocator.
//
//   - Managed: functions map to externally-defined call types
//     ("Contract::nameCall"), delegating all decoding - including dynamic
//     types - to an ABI library with an allocator. No per-parameter plan is
//     produced.
//
// Both strategies yield identical signatures and selectors for the same ABI.
//
// # Decode plans
//
// Calldata is assumed to be a 4-byte selector followed by one 32-byte word
// per parameter. Supported parameter types are address, bool, bytes32 and
// unsigned integers up to 128 bits; anything else (strings, dynamic bytes,
// arrays, tuples) degrades to an Unsupported placeholder step that must be
// completed by hand in the generated source. The minimum calldata length is
// always 4 + 32*n, which deliberately does not model true dynamic encoding.
//
// # Purity
//
// Compile and every helper in this package are pure, deterministic functions
// of their inputs with no filesystem or process access. The solc, render and
// scaffold packages hold the impure edges of the toolchain.
package pvmgen
