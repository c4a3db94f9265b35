// Package verify hands annotated source to a checker and groups what it
// reports by diagnostic category.
package verify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/funvibe/typeinfer/internal/config"
)

type Category string

const (
	CategoryDeclaration Category = "declaration"
	CategorySemantic    Category = "semantic"
	CategorySyntactic   Category = "syntactic"
	CategoryGlobal      Category = "global"
	CategoryOptions     Category = "options"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	CategoryDeclaration,
	CategorySemantic,
	CategorySyntactic,
	CategoryGlobal,
	CategoryOptions,
}

// Diagnostic is one finding of the checker. Line and Column are 1-based and
// zero when the diagnostic has no position (option errors).
type Diagnostic struct {
	Category Category
	Code     string
	File     string
	Line     int
	Column   int
	Message  string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s error %s: %s", d.Category, d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s error %s: %s", d.File, d.Line, d.Column, d.Category, d.Code, d.Message)
}

// Program is a checked source file, queried per category.
type Program interface {
	DeclarationDiagnostics() []Diagnostic
	SemanticDiagnostics() []Diagnostic
	SyntacticDiagnostics() []Diagnostic
	GlobalDiagnostics() []Diagnostic
	OptionsDiagnostics() []Diagnostic
}

// Checker type-checks a single in-memory source file.
type Checker interface {
	NewProgram(ctx context.Context, filename, source string, opts config.CompilerOptions) (Program, error)
}

type Driver struct {
	Checker Checker
}

func NewDriver(c Checker) *Driver {
	return &Driver{Checker: c}
}

// Result holds the diagnostics of one verification, per category.
type Result struct {
	File        string
	Diagnostics map[Category][]Diagnostic
}

// Passed reports whether every category came back empty.
func (r *Result) Passed() bool {
	return r.Count() == 0
}

func (r *Result) Count() int {
	n := 0
	for _, ds := range r.Diagnostics {
		n += len(ds)
	}
	return n
}

// All returns every diagnostic, categories in reporting order.
func (r *Result) All() []Diagnostic {
	var out []Diagnostic
	for _, c := range Categories {
		out = append(out, r.Diagnostics[c]...)
	}
	return out
}

// Verify checks source under filename and collects the diagnostics of every
// category.
func (d *Driver) Verify(ctx context.Context, filename, source string, opts config.CompilerOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Checker == nil {
		return nil, fmt.Errorf("verify %s: no checker configured", filename)
	}
	program, err := d.Checker.NewProgram(ctx, filename, source, opts)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", filename, err)
	}

	result := &Result{File: filename, Diagnostics: make(map[Category][]Diagnostic, len(Categories))}
	collect := func(c Category, ds []Diagnostic) {
		for _, diag := range ds {
			diag.Category = c
			if diag.File == "" && diag.Line > 0 {
				diag.File = filename
			}
			result.Diagnostics[c] = append(result.Diagnostics[c], diag)
		}
	}
	collect(CategoryDeclaration, program.DeclarationDiagnostics())
	collect(CategorySemantic, program.SemanticDiagnostics())
	collect(CategorySyntactic, program.SyntacticDiagnostics())
	collect(CategoryGlobal, program.GlobalDiagnostics())
	collect(CategoryOptions, program.OptionsDiagnostics())
	return result, nil
}

// AnnotatedName maps a JavaScript source path to the name its annotated
// rewrite is checked under: foo.js becomes foo.ts.
func AnnotatedName(path string) string {
	ext := filepath.Ext(path)
	for _, src := range config.SourceFileExtensions {
		if strings.EqualFold(ext, src) {
			return strings.TrimSuffix(path, ext) + config.AnnotatedFileExt
		}
	}
	if ext == config.AnnotatedFileExt {
		return path
	}
	return path + config.AnnotatedFileExt
}
