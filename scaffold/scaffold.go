// Package scaffold writes new PolkaVM contract projects to disk.
//
// A scaffolded project is a Rust crate: the generated entry-point source,
// a Cargo.toml wired to the builder crate, the cargo/toolchain configuration
// the PolkaVM target needs, and the original Solidity interface alongside.
// All knobs are explicit Config values; nothing here reads the environment.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	pvmgen "github.com/branched-services/go-pvmgen"
	"github.com/branched-services/go-pvmgen/render"
	"github.com/branched-services/go-pvmgen/solc"
)

// DefaultBuilderVersion is the builder crate version pinned into generated
// manifests when the caller does not override it.
const DefaultBuilderVersion = "0.1.0"

// defaultTargetName is the conventional PolkaVM target spec referenced by
// the generated cargo config when no target JSON file is supplied.
const defaultTargetName = "riscv64emac-unknown-none-polkavm.json"

// Config holds every knob of project generation. The builder-path and
// target-JSON values that the original toolchain read from ambient process
// state are explicit here; the CLI resolves them and passes them down.
type Config struct {
	// Dir is the parent directory for the new project. Empty means the
	// current working directory.
	Dir string

	// ProjectName names the project directory; it is kebab-cased.
	ProjectName string

	// Strategy selects the generated memory model.
	Strategy pvmgen.Strategy

	// CompileOptions are passed through to pvmgen.Compile.
	CompileOptions []pvmgen.CompileOption

	// BuilderVersion pins the builder crate in the generated Cargo.toml.
	BuilderVersion string

	// BuilderPath, when set, replaces the registry dependency on the builder
	// crate with a local path. The path must exist.
	BuilderPath string

	// TargetJSON is an optional path to a PolkaVM target spec file copied
	// into the project. When empty the generated cargo config references the
	// conventional target name and the toolchain is expected to provide it.
	TargetJSON string

	// Log receives progress diagnostics. Nil means no logging.
	Log *zap.Logger
}

// Scaffolder creates contract projects.
type Scaffolder struct {
	cfg      Config
	compiler *solc.Compiler
	renderer *render.TemplateRenderer
	log      *zap.Logger
}

// New creates a Scaffolder. compiler may be nil if only InitBlank is used.
func New(cfg Config, compiler *solc.Compiler, renderer *render.TemplateRenderer) (*Scaffolder, error) {
	if cfg.ProjectName == "" {
		return nil, errors.New("scaffold: project name cannot be empty")
	}
	if cfg.BuilderVersion == "" {
		cfg.BuilderVersion = DefaultBuilderVersion
	}
	if cfg.BuilderPath != "" {
		if _, err := os.Stat(cfg.BuilderPath); err != nil {
			return nil, errors.Wrapf(err, "scaffold: builder path %q does not exist", cfg.BuilderPath)
		}
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Scaffolder{cfg: cfg, compiler: compiler, renderer: renderer, log: log}, nil
}

// InitFromSolidityFile creates a project from a Solidity interface file on
// disk and returns the project directory.
func (s *Scaffolder) InitFromSolidityFile(solPath string) (string, error) {
	source, err := os.ReadFile(solPath)
	if err != nil {
		return "", errors.Wrapf(err, "scaffold: reading Solidity file %q", solPath)
	}
	return s.InitFromSolidity(source, filepath.Base(solPath))
}

// InitFromSolidity creates a project from in-memory Solidity source and
// returns the project directory. fileName is the name the source is
// registered under with solc and copied into the project as.
func (s *Scaffolder) InitFromSolidity(source []byte, fileName string) (string, error) {
	s.log.Debug("extracting metadata", zap.String("source", fileName))

	contract, err := s.compiler.CompileSource(source, fileName)
	if err != nil {
		return "", err
	}

	model, err := pvmgen.Compile(contract.Items, contract.Name, s.cfg.Strategy, s.cfg.CompileOptions...)
	if err != nil {
		return "", err
	}

	contractSource, err := s.renderer.RenderContract(model, fileName)
	if err != nil {
		return "", err
	}

	projectDir, err := s.createProjectDir()
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(projectDir, fileName), source, 0o644); err != nil {
		return "", errors.Wrapf(err, "scaffold: writing %s", fileName)
	}

	if err := s.writeCommonFiles(projectDir, model.KebabName, contractSource); err != nil {
		return "", err
	}

	s.log.Info("initialized contract project",
		zap.String("dir", projectDir),
		zap.String("contract", contract.Name),
		zap.Stringer("strategy", s.cfg.Strategy))
	return projectDir, nil
}

// InitBlank creates an empty contract project and returns its directory.
func (s *Scaffolder) InitBlank() (string, error) {
	contractSource, err := s.renderer.RenderBlankContract()
	if err != nil {
		return "", err
	}

	projectDir, err := s.createProjectDir()
	if err != nil {
		return "", err
	}

	name := pvmgen.Normalize(s.cfg.ProjectName, pvmgen.Kebab)
	if err := s.writeCommonFiles(projectDir, name, contractSource); err != nil {
		return "", err
	}

	s.log.Info("initialized blank contract project", zap.String("dir", projectDir))
	return projectDir, nil
}

// createProjectDir makes the project directory, refusing to overwrite.
func (s *Scaffolder) createProjectDir() (string, error) {
	parent := s.cfg.Dir
	if parent == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "scaffold: resolving working directory")
		}
		parent = cwd
	}

	projectDir := filepath.Join(parent, pvmgen.Normalize(s.cfg.ProjectName, pvmgen.Kebab))
	if _, err := os.Stat(projectDir); err == nil {
		return "", errors.Errorf("scaffold: directory already exists: %s", projectDir)
	}
	if err := os.Mkdir(projectDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "scaffold: creating directory %s", projectDir)
	}
	return projectDir, nil
}

// writeCommonFiles writes the files every scaffolded project shares.
// binSource is the kebab-cased contract name; the entry-point source lands
// in src/<binSource>.rs.
func (s *Scaffolder) writeCommonFiles(projectDir, binSource string, contractSource []byte) error {
	targetName, err := s.placeTargetJSON(projectDir)
	if err != nil {
		return err
	}

	cargoDir := filepath.Join(projectDir, ".cargo")
	if err := os.Mkdir(cargoDir, 0o755); err != nil {
		return errors.Wrap(err, "scaffold: creating .cargo directory")
	}
	cargoConfig := fmt.Sprintf(
		"[build]\n target = %q\n\n[unstable]\n build-std = [\"core\", \"alloc\"]\n\n[env]\n RUSTC_BOOTSTRAP = \"1\"\n",
		targetName)
	if err := os.WriteFile(filepath.Join(cargoDir, "config.toml"), []byte(cargoConfig), 0o644); err != nil {
		return errors.Wrap(err, "scaffold: writing .cargo/config.toml")
	}

	if err := os.WriteFile(filepath.Join(projectDir, ".gitignore"), []byte("/target\n*.polkavm\n"), 0o644); err != nil {
		return errors.Wrap(err, "scaffold: writing .gitignore")
	}
	if err := os.WriteFile(filepath.Join(projectDir, "rust-toolchain.toml"),
		[]byte("[toolchain]\nchannel = \"nightly\"\n"), 0o644); err != nil {
		return errors.Wrap(err, "scaffold: writing rust-toolchain.toml")
	}

	srcDir := filepath.Join(projectDir, "src")
	if err := os.Mkdir(srcDir, 0o755); err != nil {
		return errors.Wrap(err, "scaffold: creating src directory")
	}
	if err := os.WriteFile(filepath.Join(srcDir, binSource+".rs"), contractSource, 0o644); err != nil {
		return errors.Wrap(err, "scaffold: writing contract source")
	}

	buildScript, err := s.renderer.RenderBuildScript()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(projectDir, "build.rs"), buildScript, 0o644); err != nil {
		return errors.Wrap(err, "scaffold: writing build.rs")
	}

	manifest, err := s.renderer.RenderCargoToml(render.CargoConfig{
		ProjectName:    pvmgen.Normalize(s.cfg.ProjectName, pvmgen.Kebab),
		BinSource:      binSource,
		UseAlloc:       s.cfg.Strategy == pvmgen.Managed,
		BuilderVersion: s.cfg.BuilderVersion,
		BuilderPath:    s.cfg.BuilderPath,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(projectDir, "Cargo.toml"), manifest, 0o644); err != nil {
		return errors.Wrap(err, "scaffold: writing Cargo.toml")
	}
	return nil
}

// placeTargetJSON copies the configured target spec into the project and
// returns the name the cargo config should reference.
func (s *Scaffolder) placeTargetJSON(projectDir string) (string, error) {
	if s.cfg.TargetJSON == "" {
		return defaultTargetName, nil
	}
	data, err := os.ReadFile(s.cfg.TargetJSON)
	if err != nil {
		return "", errors.Wrapf(err, "scaffold: reading target JSON %q", s.cfg.TargetJSON)
	}
	name := filepath.Base(s.cfg.TargetJSON)
	if err := os.WriteFile(filepath.Join(projectDir, name), data, 0o644); err != nil {
		return "", errors.Wrapf(err, "scaffold: writing target JSON %s", name)
	}
	return name, nil
}
