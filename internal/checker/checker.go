// Package checker is a small static checker for annotated sources. It knows
// the handful of rules that matter for parameter annotations and stands in
// for a full type checker behind verify.Checker.
package checker

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/funvibe/typeinfer/internal/config"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/frontend"
	"github.com/funvibe/typeinfer/internal/parser"
	"github.com/funvibe/typeinfer/internal/verify"
)

// Diagnostic codes, numbered after their TypeScript counterparts.
const (
	CodeExpressionExpected    = "V1109"
	CodeTokenExpected         = "V1005"
	CodeInvalidCharacter      = "V1127"
	CodeAnnotationInJS        = "V8010"
	CodeTooDeep               = "V2589"
	CodeInvalidOptionValue    = "V6046"
	CodeCannotFindName        = "V2304"
	CodeArithmeticLeft        = "V2362"
	CodeArithmeticRight       = "V2363"
	CodeInLeft                = "V2360"
	CodeInRight               = "V2361"
	CodeArgumentCount         = "V2554"
	CodeArgumentNotAssignable = "V2345"
	CodeImplicitAny           = "V7006"
	CodeIsUnknown             = "V18046"
	CodeNullValue             = "V18050"
)

var syntaxCodes = map[diagnostics.ErrorCode]string{
	diagnostics.ErrP001: CodeExpressionExpected,
	diagnostics.ErrP002: CodeTokenExpected,
	diagnostics.ErrP003: CodeInvalidCharacter,
	diagnostics.ErrP004: CodeTokenExpected,
	diagnostics.ErrP005: CodeAnnotationInJS,
	diagnostics.ErrP006: CodeTooDeep,
}

type Checker struct{}

func New() *Checker {
	return &Checker{}
}

// NewProgram parses and checks source. Files with the annotated extension
// may carry parameter annotations; others are checked as plain JavaScript.
func (c *Checker) NewProgram(ctx context.Context, filename, source string, opts config.CompilerOptions) (verify.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	typed := strings.EqualFold(filepath.Ext(filename), config.AnnotatedFileExt)
	var popts []parser.Option
	if typed {
		popts = append(popts, parser.WithTypeAnnotations())
	}
	front := frontend.Load(filename, source, popts...)

	p := &Program{}
	p.options = checkOptions(opts)
	for _, err := range front.Errors {
		p.syntactic = append(p.syntactic, verify.Diagnostic{
			Code:    syntaxCodes[err.Code],
			File:    filename,
			Line:    err.Token.Line,
			Column:  err.Token.Column,
			Message: err.Message,
		})
	}

	s := &semantic{
		front: front,
		opts:  opts,
		typed: typed,
		lines: newLineIndex(source),
	}
	front.AST.Accept(s)
	p.semantic = s.diags
	sortDiagnostics(p.semantic)
	return p, nil
}

// Program holds the diagnostics of one checked file.
type Program struct {
	syntactic []verify.Diagnostic
	semantic  []verify.Diagnostic
	options   []verify.Diagnostic
}

func (p *Program) DeclarationDiagnostics() []verify.Diagnostic { return nil }
func (p *Program) SemanticDiagnostics() []verify.Diagnostic    { return p.semantic }
func (p *Program) SyntacticDiagnostics() []verify.Diagnostic   { return p.syntactic }
func (p *Program) GlobalDiagnostics() []verify.Diagnostic      { return nil }
func (p *Program) OptionsDiagnostics() []verify.Diagnostic     { return p.options }

func checkOptions(opts config.CompilerOptions) []verify.Diagnostic {
	var diags []verify.Diagnostic
	check := func(flag, value string, allowed []string) {
		if value == "" {
			return
		}
		for _, a := range allowed {
			if strings.EqualFold(a, value) {
				return
			}
		}
		quoted := make([]string, len(allowed))
		for i, a := range allowed {
			quoted[i] = "'" + strings.ToLower(a) + "'"
		}
		diags = append(diags, verify.Diagnostic{
			Code:    CodeInvalidOptionValue,
			Message: fmt.Sprintf("Argument for '--%s' option must be: %s.", flag, strings.Join(quoted, ", ")),
		})
	}
	check("target", opts.Target, config.Targets)
	check("module", opts.Module, config.ModuleKinds)
	check("moduleResolution", opts.ModuleResolution, config.ModuleResolutionKinds)
	return diags
}

func sortDiagnostics(ds []verify.Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		return ds[i].Column < ds[j].Column
	})
}

// lineIndex converts byte offsets to 1-based line and column.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	starts := lineIndex{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (li lineIndex) position(offset int) (line, col int) {
	i := sort.Search(len(li), func(i int) bool { return li[i] > offset }) - 1
	return i + 1, offset - li[i] + 1
}
