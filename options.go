package pvmgen

// CompileOption configures the Compile() operation.
type CompileOption func(*compileConfig)

// compileConfig holds configuration for the Compile() function.
type compileConfig struct {
	strictTypes bool
}

// defaultCompileConfig returns the default compile configuration.
func defaultCompileConfig() *compileConfig {
	return &compileConfig{
		strictTypes: false,
	}
}

// WithStrictTypes controls how parameter types outside the fixed-width
// subset are handled under the manual strategy.
//
// When disabled (default), such parameters degrade to an Unsupported
// placeholder step that must be completed by hand in the generated source.
// When enabled, they abort the compile with *UnsupportedTypeError.
func WithStrictTypes(enabled bool) CompileOption {
	return func(c *compileConfig) {
		c.strictTypes = enabled
	}
}
