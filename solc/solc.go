// Package solc drives the external Solidity compiler to obtain contract ABI
// metadata.
//
// The compiler is treated as a black box: a standard-json request is piped
// to its stdin, its stdout is read in full, and the metadata of the first
// contract is parsed into pvmgen's ABI model. Payloads are small, so the
// exchange is fully buffered with no timeout or cancellation; a non-zero
// exit or malformed output is a hard failure.
package solc

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	pvmgen "github.com/branched-services/go-pvmgen"
)

// DefaultBinary is the compiler binary resolved from PATH when no explicit
// path is configured.
const DefaultBinary = "solc"

// ErrNoContract indicates the compiler output contained no contract for the
// requested source file.
var ErrNoContract = errors.New("solc: no contract found in compiler output")

// Contract is the result of compiling one source file: the contract's name
// as declared in Solidity and its parsed ABI items.
type Contract struct {
	Name  string
	Items []pvmgen.Item
}

// Compiler invokes the solc binary.
type Compiler struct {
	path string
	log  *zap.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithPath sets an explicit compiler binary path.
func WithPath(path string) Option {
	return func(c *Compiler) {
		c.path = path
	}
}

// WithLogger sets the logger used for compiler diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Compiler) {
		c.log = log
	}
}

// New creates a Compiler with the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		path: DefaultBinary,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// standardInput is the solc --standard-json request.
type standardInput struct {
	Language string            `json:"language"`
	Sources  map[string]source `json:"sources"`
	Settings standardSettings  `json:"settings"`
}

type source struct {
	Content string `json:"content"`
}

type standardSettings struct {
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

// standardOutput is the subset of the solc --standard-json response we read.
type standardOutput struct {
	Contracts map[string]map[string]contractInfo `json:"contracts"`
	Errors    []outputError                      `json:"errors"`
}

type contractInfo struct {
	Metadata string `json:"metadata"`
}

type outputError struct {
	Severity         string `json:"severity"`
	FormattedMessage string `json:"formattedMessage"`
}

// CompileSource compiles one Solidity source and returns the first contract
// declared in it. fileName is the name under which the source is registered
// with the compiler; it keys the compiler's output.
func (c *Compiler) CompileSource(sourceText []byte, fileName string) (*Contract, error) {
	input := standardInput{
		Language: "Solidity",
		Sources: map[string]source{
			fileName: {Content: string(sourceText)},
		},
		Settings: standardSettings{
			OutputSelection: map[string]map[string][]string{
				"*": {"*": {"metadata"}},
			},
		},
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "solc: encoding standard-json input")
	}

	c.log.Debug("invoking solc", zap.String("path", c.path), zap.String("source", fileName))

	cmd := exec.Command(c.path, "--standard-json")
	cmd.Stdin = bytes.NewReader(inputJSON)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "solc: compiler failed: %s", stderr.String())
	}

	c.log.Debug("solc output", zap.Int("bytes", stdout.Len()))

	var output standardOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, errors.Wrapf(err, "solc: parsing compiler output: %s", stdout.String())
	}

	for _, e := range output.Errors {
		if e.Severity == "error" {
			return nil, errors.Errorf("solc: %s", e.FormattedMessage)
		}
	}

	contracts, ok := output.Contracts[fileName]
	if !ok || len(contracts) == 0 {
		return nil, ErrNoContract
	}

	// Sorted for a deterministic pick when a file declares several contracts.
	names := make([]string, 0, len(contracts))
	for name := range contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	name := names[0]

	items, err := pvmgen.ParseMetadata([]byte(contracts[name].Metadata))
	if err != nil {
		return nil, errors.Wrapf(err, "solc: contract %q metadata", name)
	}

	c.log.Debug("parsed contract metadata",
		zap.String("contract", name), zap.Int("items", len(items)))

	return &Contract{Name: name, Items: items}, nil
}
