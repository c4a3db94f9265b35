package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level typeinfer.yaml configuration.
type Config struct {
	// CompilerOptions are handed verbatim to the front-end and the
	// verification checker; the inference core never reads them.
	CompilerOptions CompilerOptions `yaml:"compilerOptions"`

	// Annotate controls how the rewritten source is produced.
	Annotate AnnotateOptions `yaml:"annotate"`
}

// CompilerOptions mirrors the option set of a TypeScript program.
type CompilerOptions struct {
	AllowJs                          bool   `yaml:"allowJs"`
	CheckJs                          bool   `yaml:"checkJs"`
	ForceConsistentCasingInFileNames bool   `yaml:"forceConsistentCasingInFileNames"`
	Module                           string `yaml:"module"`
	ModuleResolution                 string `yaml:"moduleResolution"`
	NoEmit                           bool   `yaml:"noEmit"`
	NoErrorTruncation                bool   `yaml:"noErrorTruncation"`
	NoImplicitAny                    bool   `yaml:"noImplicitAny"`
	NoImplicitReturns                bool   `yaml:"noImplicitReturns"`
	NoImplicitThis                   bool   `yaml:"noImplicitThis"`
	NoUnusedLocals                   bool   `yaml:"noUnusedLocals"`
	Strict                           bool   `yaml:"strict"`
	Target                           string `yaml:"target"`
}

// AnnotateOptions controls the annotation emitter.
type AnnotateOptions struct {
	// Unsolved is either "omit" (leave unsolved parameters bare) or
	// "unknown" (annotate them with an explicit unknown marker).
	Unsolved string `yaml:"unsolved,omitempty"`
}

// Default returns the configuration used when no typeinfer.yaml is found.
func Default() *Config {
	return &Config{
		CompilerOptions: CompilerOptions{
			AllowJs:                          true,
			CheckJs:                          true,
			ForceConsistentCasingInFileNames: true,
			Module:                           "CommonJS",
			ModuleResolution:                 "Node",
			NoEmit:                           true,
			NoErrorTruncation:                true,
			NoImplicitAny:                    true,
			NoImplicitReturns:                true,
			NoImplicitThis:                   true,
			NoUnusedLocals:                   true,
			Strict:                           true,
			Target:                           "ES5",
		},
		Annotate: AnnotateOptions{Unsolved: UnsolvedOmit},
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML configuration data. name is only used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Validate checks the settings owned by this tool. Compiler option values are
// left to the verification checker, which reports them as option diagnostics.
func (c *Config) Validate() error {
	switch c.Annotate.Unsolved {
	case "":
		c.Annotate.Unsolved = UnsolvedOmit
	case UnsolvedOmit, UnsolvedUnknown:
	default:
		return fmt.Errorf("annotate.unsolved must be %q or %q, got %q", UnsolvedOmit, UnsolvedUnknown, c.Annotate.Unsolved)
	}
	return nil
}

// Find walks up from dir looking for ConfigFileName.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
