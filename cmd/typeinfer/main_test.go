package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/typeinfer/internal/report"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSolvedFileWritesAnnotatedSource(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "scale.js", "function scale(x) {\n  return x * 10;\n}\n")

	code, stdout, stderr := runCLI(t, "-w", src)
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "x: number") || !strings.Contains(stdout, "verified: no diagnostics") {
		t.Errorf("stdout = %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, "scale.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "function scale(x: number) {\n  return x * 10;\n}\n" {
		t.Errorf("annotated = %q", data)
	}
}

func TestUnsolvedFileFails(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "id.js", "function id(v) { return v }\n")

	code, _, stderr := runCLI(t, "-o", "-", src)
	if code != exitFailed {
		t.Fatalf("exit %d, want %d", code, exitFailed)
	}
	if !strings.Contains(stderr, "[A002]") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestUnsolvedPolicyFlag(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "id.js", "function id(v) { return v }\n")

	_, stdout, _ := runCLI(t, "-unsolved", "unknown", "-o", "-", src)
	if !strings.Contains(stdout, "function id(v: unknown) { return v }") {
		t.Errorf("stdout = %q", stdout)
	}

	if code, _, _ := runCLI(t, "-unsolved", "maybe", src); code != exitUsage {
		t.Errorf("bad policy: exit %d, want %d", code, exitUsage)
	}
}

func TestStdoutCarriesOnlyAnnotatedSource(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "scale.js", "function scale(x) {\n  return x * 10;\n}\n")

	code, stdout, stderr := runCLI(t, "-o", "-", src)
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if stdout != "function scale(x: number) {\n  return x * 10;\n}\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "x: number") || !strings.Contains(stderr, "verified: no diagnostics") {
		t.Errorf("report should be on stderr: %q", stderr)
	}
}

func TestConfigFileIsFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "typeinfer.yaml", "annotate:\n  unsolved: unknown\n")
	src := writeFile(t, dir, "id.js", "function id(v) { return v }\n")

	_, stdout, _ := runCLI(t, "-no-verify", "-o", "-", src)
	if !strings.Contains(stdout, "v: unknown") {
		t.Errorf("config was not applied: %q", stdout)
	}
	if strings.Contains(stdout, "verified") || strings.Contains(stdout, "unsound") {
		t.Errorf("verification should be skipped: %q", stdout)
	}
}

func TestUsageErrors(t *testing.T) {
	if code, _, stderr := runCLI(t); code != exitUsage || !strings.Contains(stderr, "usage: typeinfer") {
		t.Errorf("no args: exit %d, stderr %q", code, stderr)
	}
	if code, _, stderr := runCLI(t, filepath.Join(t.TempDir(), "nope.js")); code != exitUsage || !strings.Contains(stderr, "[R001]") {
		t.Errorf("missing file: exit %d, stderr %q", code, stderr)
	}
	if code, _, _ := runCLI(t, "-config", filepath.Join(t.TempDir(), "none.yaml"), "x.js"); code != exitUsage {
		t.Errorf("missing config: exit %d", code)
	}
}

func TestRunIsRecorded(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "scale.js", "function scale(x) { return x * 10 }\n")
	db := filepath.Join(dir, "runs.sqlite")

	if code, _, stderr := runCLI(t, "-db", db, "-v", src); code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	} else if !strings.Contains(stderr, "recorded in "+db) {
		t.Errorf("stderr = %q", stderr)
	}

	store, err := report.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	runs, err := store.Runs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || !runs[0].Passed || runs[0].Parameters != 1 {
		t.Errorf("runs = %+v", runs)
	}
}
