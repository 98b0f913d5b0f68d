// Command pvmgen initializes PolkaVM contract projects from Solidity
// interfaces.
package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	pvmgen "github.com/branched-services/go-pvmgen"
	"github.com/branched-services/go-pvmgen/render"
	"github.com/branched-services/go-pvmgen/scaffold"
	"github.com/branched-services/go-pvmgen/solc"
)

// Version is set at build time.
var Version = "0.1.0"

// MyToken.sol is embedded so "from an example" works offline.
//
//go:embed MyToken.sol
var myTokenSol []byte

const (
	solcPathF   = "solc"
	verbosityF  = "verbose"
	strictF     = "strict"
	targetJSONF = "target-json"

	solcPathUsage   = "Path to the solc binary."
	verbosityUsage  = "Enables debug logging."
	strictUsage     = "Fail on parameter types outside the fixed-width subset instead of emitting placeholders."
	targetJSONUsage = "Path to a PolkaVM target spec JSON copied into the project."

	// envPrefix maps PVM_BUILDER_PATH onto the builder-path override.
	envPrefix = "PVM"
)

// Initialization choices, mirrored by the interactive prompts.
const (
	initSolidityFile = "From a Solidity interface file (.sol)"
	initExample      = "From an example contract (MyToken)"
	initBlank        = "Blank (empty contract)"

	modelManaged = "alloy + allocator (easier API, larger binary)"
	modelManual  = "No allocator (manual decoding, smaller binary)"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pvmgen",
		Short:   "Initialize PolkaVM contract projects from Solidity ABIs.",
		Version: Version,
		RunE:    run,
	}

	cmd.Flags().String(solcPathF, solc.DefaultBinary, solcPathUsage)
	cmd.Flags().BoolP(verbosityF, "v", false, verbosityUsage)
	cmd.Flags().Bool(strictF, false, strictUsage)
	cmd.Flags().String(targetJSONF, "", targetJSONUsage)
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	log, err := newLogger(v.GetBool(verbosityF))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	initType, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{initSolidityFile, initExample, initBlank}).
		WithDefaultText("How do you want to initialize the project?").
		Show()
	if err != nil {
		return err
	}

	switch initType {
	case initBlank:
		return runBlank(v, log)
	case initExample:
		return runFromSource(v, log, myTokenSol, "MyToken.sol", "MyToken")
	default:
		return runFromFile(v, log)
	}
}

func runBlank(v *viper.Viper, log *zap.Logger) error {
	name, err := promptName("")
	if err != nil {
		return err
	}

	s, err := newScaffolder(v, log, name, pvmgen.Manual)
	if err != nil {
		return err
	}
	dir, err := s.InitBlank()
	if err != nil {
		return err
	}
	printNextSteps(dir)
	return nil
}

func runFromFile(v *viper.Viper, log *zap.Logger) error {
	solPath, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Enter path to your .sol file").
		Show()
	if err != nil {
		return err
	}
	if solPath == "" {
		return fmt.Errorf("solidity file path cannot be empty")
	}
	source, err := os.ReadFile(solPath)
	if err != nil {
		return err
	}

	defaultName := strings.TrimSuffix(filepath.Base(solPath), filepath.Ext(solPath))
	return runFromSource(v, log, source, filepath.Base(solPath), defaultName)
}

func runFromSource(v *viper.Viper, log *zap.Logger, source []byte, fileName, defaultName string) error {
	strategy, err := promptStrategy()
	if err != nil {
		return err
	}
	name, err := promptName(defaultName)
	if err != nil {
		return err
	}

	s, err := newScaffolder(v, log, name, strategy)
	if err != nil {
		return err
	}
	dir, err := s.InitFromSolidity(source, fileName)
	if err != nil {
		return err
	}
	printNextSteps(dir)
	return nil
}

func promptStrategy() (pvmgen.Strategy, error) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{modelManaged, modelManual}).
		WithDefaultText("Which memory model do you want to use?").
		Show()
	if err != nil {
		return pvmgen.Manual, err
	}
	if choice == modelManaged {
		return pvmgen.Managed, nil
	}
	return pvmgen.Manual, nil
}

func promptName(defaultName string) (string, error) {
	prompt := pterm.DefaultInteractiveTextInput.
		WithDefaultText("What is your contract name?")
	if defaultName != "" {
		prompt = prompt.WithDefaultValue(defaultName)
	}
	name, err := prompt.Show()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("contract name cannot be empty")
	}
	return name, nil
}

func newScaffolder(v *viper.Viper, log *zap.Logger, name string, strategy pvmgen.Strategy) (*scaffold.Scaffolder, error) {
	var compileOpts []pvmgen.CompileOption
	if v.GetBool(strictF) {
		compileOpts = append(compileOpts, pvmgen.WithStrictTypes(true))
	}

	compiler := solc.New(
		solc.WithPath(v.GetString(solcPathF)),
		solc.WithLogger(log),
	)

	return scaffold.New(scaffold.Config{
		ProjectName:    name,
		Strategy:       strategy,
		CompileOptions: compileOpts,
		BuilderVersion: Version,
		BuilderPath:    v.GetString("builder-path"),
		TargetJSON:     v.GetString(targetJSONF),
		Log:            log,
	}, compiler, render.MustNew())
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func printNextSteps(dir string) {
	pterm.Success.Printfln("Initialized contract project: %s", dir)
	pterm.Println()
	pterm.Println("Next steps:")
	pterm.Printfln("  cd %s", filepath.Base(dir))
	pterm.Println("  cargo build")
}
