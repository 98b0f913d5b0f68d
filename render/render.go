// Package render turns dispatch models into final contract source text.
//
// The compiler core has no dependency on any templating technology; it hands
// a pvmgen.DispatchModel to a Renderer and consumes bytes. The default
// implementation here renders embedded text/template files, one per
// generation strategy, plus the scaffolding files a contract project needs.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	pvmgen "github.com/branched-services/go-pvmgen"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer produces contract source from a dispatch model. Implementations
// are swappable; the rest of the toolchain depends only on this interface.
type Renderer interface {
	RenderContract(model *pvmgen.DispatchModel, solFileName string) ([]byte, error)
}

// CargoConfig is the data for the generated Cargo.toml.
type CargoConfig struct {
	ProjectName    string
	BinSource      string
	UseAlloc       bool
	BuilderVersion string

	// BuilderPath overrides the registry dependency on the builder crate
	// with a local path. Empty means use the registry.
	BuilderPath string
}

// TemplateRenderer renders the embedded templates.
type TemplateRenderer struct {
	tmpl *template.Template
}

// contractData is the root value handed to contract templates.
type contractData struct {
	*pvmgen.DispatchModel
	SolFileName string
}

// New parses the embedded templates and returns a renderer.
func New() (*TemplateRenderer, error) {
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"selector": func(sel [4]byte) string { return pvmgen.FormatSelector(sel) },
		"topic":    func(t [32]byte) string { return pvmgen.FormatTopic(t) },
		"decode":   decodeBlock,
		"upper":    strings.ToUpper,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "render: parsing templates")
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// MustNew is like New but panics on error. The templates are embedded, so
// failure here means a broken build.
func MustNew() *TemplateRenderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// RenderContract renders the contract entry-point source for the model's
// strategy. solFileName is referenced by the managed template, which feeds
// the Solidity source to the external ABI library's codegen macro.
func (r *TemplateRenderer) RenderContract(model *pvmgen.DispatchModel, solFileName string) ([]byte, error) {
	name := "contract_manual.rs.tmpl"
	if model.Strategy == pvmgen.Managed {
		name = "contract_managed.rs.tmpl"
	}
	return r.render(name, contractData{DispatchModel: model, SolFileName: solFileName})
}

// RenderBlankContract renders the empty starter contract.
func (r *TemplateRenderer) RenderBlankContract() ([]byte, error) {
	return r.render("contract_blank.rs.tmpl", nil)
}

// RenderBuildScript renders the build.rs that delegates to the builder crate.
func (r *TemplateRenderer) RenderBuildScript() ([]byte, error) {
	return r.render("build.rs.tmpl", nil)
}

// RenderCargoToml renders the project manifest.
func (r *TemplateRenderer) RenderCargoToml(cfg CargoConfig) ([]byte, error) {
	return r.render("cargo_toml.tmpl", cfg)
}

func (r *TemplateRenderer) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, errors.Wrapf(err, "render: executing %s", name)
	}
	return buf.Bytes(), nil
}

// decodeBlock renders the Rust decode lines for one function's plan,
// indented for the dispatch match arm.
func decodeBlock(fn pvmgen.FunctionDispatch) string {
	if fn.Plan == nil {
		return ""
	}
	var lines []string
	for _, step := range fn.Plan.Steps {
		lines = append(lines, decodeStep(step)...)
	}
	const indent = "            "
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if line != "" {
			b.WriteString(indent)
		}
		b.WriteString(line)
	}
	return b.String()
}

// decodeStep renders the Rust extraction for one 32-byte calldata word.
func decodeStep(step pvmgen.DecodeStep) []string {
	switch step.Kind {
	case pvmgen.DecodeAddress:
		// Address occupies the low 20 bytes of its word.
		return []string{
			fmt.Sprintf("let mut %s = [0u8; 20];", step.Param),
			fmt.Sprintf("%s.copy_from_slice(&call_data[%d..%d]);", step.Param, step.End-pvmgen.AddressSize, step.End),
		}
	case pvmgen.DecodeBool:
		// Only the last byte of the word is inspected.
		return []string{
			fmt.Sprintf("let %s = call_data[%d] != 0;", step.Param, step.End-1),
		}
	case pvmgen.DecodeBytes32:
		return []string{
			fmt.Sprintf("let mut %s = [0u8; 32];", step.Param),
			fmt.Sprintf("%s.copy_from_slice(&call_data[%d..%d]);", step.Param, step.Start, step.End),
		}
	case pvmgen.DecodeUint:
		return decodeUintStep(step)
	default:
		return []string{
			fmt.Sprintf("// TODO: decode %s of type %s", step.Param, step.TypeName),
		}
	}
}

// decodeUintStep renders an unsigned integer extraction. The value occupies
// the low Bits/8 bytes of the word, big-endian. Widths without a native Rust
// type are widened into the next one with zero padding.
func decodeUintStep(step pvmgen.DecodeStep) []string {
	valueBytes := step.Bits / 8
	containerBits := nativeUintBits(step.Bits)
	containerBytes := containerBits / 8
	buf := step.Param + "_buf"

	if containerBytes == valueBytes {
		return []string{
			fmt.Sprintf("let mut %s = [0u8; %d];", buf, containerBytes),
			fmt.Sprintf("%s.copy_from_slice(&call_data[%d..%d]);", buf, step.End-valueBytes, step.End),
			fmt.Sprintf("let %s = u%d::from_be_bytes(%s);", step.Param, containerBits, buf),
		}
	}
	return []string{
		fmt.Sprintf("let mut %s = [0u8; %d];", buf, containerBytes),
		fmt.Sprintf("%s[%d..].copy_from_slice(&call_data[%d..%d]);", buf, containerBytes-valueBytes, step.End-valueBytes, step.End),
		fmt.Sprintf("let %s = u%d::from_be_bytes(%s);", step.Param, containerBits, buf),
	}
}

// nativeUintBits returns the smallest Rust unsigned width holding bits.
func nativeUintBits(bits int) int {
	for _, native := range []int{8, 16, 32, 64, 128} {
		if bits <= native {
			return native
		}
	}
	return 128
}
