package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/funvibe/typeinfer/internal/analyzer"
	"github.com/funvibe/typeinfer/internal/annotate"
	"github.com/funvibe/typeinfer/internal/config"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/frontend"
	"github.com/funvibe/typeinfer/internal/lexer"
	"github.com/funvibe/typeinfer/internal/parser"
	"github.com/funvibe/typeinfer/internal/symbols"
	"github.com/funvibe/typeinfer/internal/token"
	"github.com/funvibe/typeinfer/internal/verify"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *PipelineContext) *PipelineContext {
	ctx.TokenStream = lexer.NewTokenStream(lexer.New(ctx.SourceCode))
	return ctx
}

// ParserProcessor builds the syntax tree. Files with the annotated extension
// may carry parameter annotations.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.TokenStream == nil {
		ctx.addError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	opts := []parser.Option{parser.WithFile(ctx.FilePath)}
	if strings.EqualFold(filepath.Ext(ctx.FilePath), config.AnnotatedFileExt) {
		opts = append(opts, parser.WithTypeAnnotations())
	}
	p := parser.New(ctx.TokenStream, opts...)
	ctx.AstRoot = p.ParseProgram()
	ctx.AstRoot.End = len(ctx.SourceCode)

	for _, err := range p.Errors() {
		ctx.addError(err)
	}
	return ctx
}

// BinderProcessor resolves identifiers and wraps the result as the
// front-end the analyses query.
type BinderProcessor struct{}

func (bp *BinderProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	ctx.Bindings = symbols.Bind(ctx.AstRoot)
	ctx.Front = frontend.New(ctx.FilePath, ctx.SourceCode, ctx.AstRoot, ctx.Bindings)
	for _, err := range ctx.Errors {
		if strings.HasPrefix(string(err.Code), "P") {
			ctx.Front.Errors = append(ctx.Front.Errors, err)
		}
	}
	return ctx
}

// InferenceProcessor runs parameter inference over every function
// declaration. Unsolved parameters become analyzer diagnostics.
type InferenceProcessor struct {
	// Operators overrides the table built from the front-end.
	Operators *analyzer.OperatorTable
}

func (ip *InferenceProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Front == nil {
		return ctx
	}

	opts := []analyzer.Option{analyzer.WithLogger(ctx.Logger)}
	if ip.Operators != nil {
		opts = append(opts, analyzer.WithOperators(ip.Operators))
	}
	a, err := analyzer.New(ctx.Front, opts...)
	if err != nil {
		ctx.addError(diagnostics.NewError(diagnostics.ErrR003, token.Token{}, err.Error()))
		return ctx
	}

	ctx.Report = a.Infer(ctx.AstRoot)
	for _, err := range ctx.Report.Failures() {
		ctx.addError(err)
	}
	return ctx
}

// AnnotateProcessor rewrites the source with the inferred types.
type AnnotateProcessor struct{}

func (ap *AnnotateProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Report == nil {
		return ctx
	}
	policy, err := annotate.ParsePolicy(ctx.Config.Annotate.Unsolved)
	if err != nil {
		ctx.addError(diagnostics.NewError(diagnostics.ErrC001, token.Token{}, err.Error()))
		return ctx
	}
	ctx.Annotated = annotate.Emit(ctx.SourceCode, ctx.Report, policy)
	ctx.Logger.Printf("%s: %d annotation(s) inserted", ctx.FilePath, len(ctx.Annotated.Edits))
	return ctx
}

// VerifyProcessor checks the annotated source under its annotated file name.
type VerifyProcessor struct {
	Driver *verify.Driver
}

func (vp *VerifyProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Annotated == nil {
		return ctx
	}
	name := verify.AnnotatedName(ctx.FilePath)
	res, err := vp.Driver.Verify(ctx.Context, name, ctx.Annotated.Source, ctx.Config.CompilerOptions)
	if err != nil {
		ctx.addError(diagnostics.NewError(diagnostics.ErrR002, token.Token{}, err.Error()))
		return ctx
	}
	ctx.Verification = res
	return ctx
}
