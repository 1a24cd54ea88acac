// Package manifest reads the project configuration file zaco.yaml, the
// single place a compilation names its entry point, output artifact, and
// extra module search paths instead of repeating them as CLI flags.
package manifest

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zacolang/zaco/internal/errs"
)

// EmitKind mirrors codegen.EmitKind at the config layer so this package
// does not need to import internal/codegen just to name the three modes.
type EmitKind string

const (
	EmitExecutable EmitKind = "exe"
	EmitObject     EmitKind = "obj"
	EmitIR         EmitKind = "ir"
)

// Config is the parsed shape of zaco.yaml.
type Config struct {
	// Entry is the path to the program's main file, relative to the
	// manifest's own directory.
	Entry string `yaml:"entry"`
	// Output is the path of the produced artifact. Defaults to "a.out".
	Output string `yaml:"output"`
	// Emit selects what Output names: an executable, an object file, or
	// (rarely persisted, usually a CLI override) a textual IR dump.
	Emit EmitKind `yaml:"emit"`
	// ModulePaths are extra roots, searched after the project root, under
	// which the resolver looks for node_modules packages.
	ModulePaths []string `yaml:"modulePaths"`
}

// defaults fills in every field a zaco.yaml is allowed to omit.
func defaults() Config {
	return Config{
		Output: "a.out",
		Emit:   EmitExecutable,
	}
}

// Load reads and parses a zaco.yaml file at path, applying defaults for
// any field it omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Newf("manifest", errs.GenericError, nil,
			"cannot read %q: %s", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.Newf("manifest", errs.GenericError, nil,
			"cannot parse %q: %s", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports whether the config is internally consistent: entry is
// required, and emit (if set) must name one of the three known modes.
func (c *Config) Validate() error {
	if c.Entry == "" {
		return errs.New("manifest", errs.GenericError, "zaco.yaml: \"entry\" is required", nil)
	}
	switch c.Emit {
	case EmitExecutable, EmitObject, EmitIR:
	default:
		return errs.Newf("manifest", errs.GenericError, nil,
			"zaco.yaml: unknown emit mode %q (want exe, obj, or ir)", c.Emit)
	}
	return nil
}
