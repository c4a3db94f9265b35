package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultMatchesStrictOptionSet(t *testing.T) {
	cfg := Default()
	opts := cfg.CompilerOptions
	if opts.Target != "ES5" || opts.Module != "CommonJS" || opts.ModuleResolution != "Node" {
		t.Errorf("unexpected target/module defaults: %+v", opts)
	}
	if !opts.NoImplicitAny || !opts.Strict || !opts.NoUnusedLocals || !opts.NoImplicitThis || !opts.NoImplicitReturns {
		t.Errorf("expected every strictness flag on, got %+v", opts)
	}
	if cfg.Annotate.Unsolved != UnsolvedOmit {
		t.Errorf("expected unsolved policy %q, got %q", UnsolvedOmit, cfg.Annotate.Unsolved)
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	data := []byte(`
compilerOptions:
  target: ES2020
  noImplicitAny: false
annotate:
  unsolved: unknown
`)
	cfg, err := Parse(data, "inline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CompilerOptions.Target != "ES2020" {
		t.Errorf("target: got %q", cfg.CompilerOptions.Target)
	}
	if cfg.CompilerOptions.NoImplicitAny {
		t.Errorf("noImplicitAny should be overridden to false")
	}
	if cfg.CompilerOptions.Module != "CommonJS" {
		t.Errorf("module should keep its default, got %q", cfg.CompilerOptions.Module)
	}
	if !cfg.CompilerOptions.Strict {
		t.Errorf("strict should keep its default")
	}
	if cfg.Annotate.Unsolved != UnsolvedUnknown {
		t.Errorf("unsolved: got %q", cfg.Annotate.Unsolved)
	}
}

func TestParseRejectsUnknownPolicy(t *testing.T) {
	_, err := Parse([]byte("annotate:\n  unsolved: guess\n"), "bad.yaml")
	if err == nil {
		t.Fatal("expected error for unknown policy")
	}
	if !strings.Contains(err.Error(), "annotate.unsolved") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("compilerOptions: [\n"), "broken.yaml"); err == nil {
		t.Fatal("expected YAML error")
	}
}

func TestLoadAndFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(path, []byte("compilerOptions:\n  target: ESNext\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok := Find(nested)
	if !ok {
		t.Fatalf("expected to find %s from %s", ConfigFileName, nested)
	}
	if found != path {
		t.Errorf("found %q, want %q", found, path)
	}

	cfg, err := Load(found)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CompilerOptions.Target != "ESNext" {
		t.Errorf("target: got %q", cfg.CompilerOptions.Target)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
