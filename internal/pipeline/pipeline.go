// Package pipeline chains the stages that take a source file from text to a
// verified, annotated rewrite.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/funvibe/typeinfer/internal/checker"
	"github.com/funvibe/typeinfer/internal/config"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/token"
	"github.com/funvibe/typeinfer/internal/verify"
)

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors so every stage gets to report.
	}
	return ctx
}

type settings struct {
	logger  *log.Logger
	checker verify.Checker
	verify  bool
}

type Option func(*settings)

// WithLogger routes traversal and stage logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithChecker replaces the built-in checker used for verification.
func WithChecker(c verify.Checker) Option {
	return func(s *settings) { s.checker = c }
}

// WithoutVerification stops after the annotated source is produced.
func WithoutVerification() Option {
	return func(s *settings) { s.verify = false }
}

func newSettings(opts []Option) *settings {
	s := &settings{checker: checker.New(), verify: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Default returns the full pipeline: lex, parse, bind, infer, annotate and,
// unless disabled, verify.
func Default(opts ...Option) *Pipeline {
	return build(newSettings(opts))
}

func build(s *settings) *Pipeline {
	processors := []Processor{
		&LexerProcessor{},
		&ParserProcessor{},
		&BinderProcessor{},
		&InferenceProcessor{},
		&AnnotateProcessor{},
	}
	if s.verify {
		processors = append(processors, &VerifyProcessor{Driver: verify.NewDriver(s.checker)})
	}
	return New(processors...)
}

// RunSource runs the pipeline over in-memory source. path names the file in
// diagnostics and decides whether annotations are accepted.
func RunSource(ctx context.Context, path, source string, cfg *config.Config, opts ...Option) *PipelineContext {
	s := newSettings(opts)
	pctx := NewPipelineContext(ctx, path, source, cfg)
	if s.logger != nil {
		pctx.Logger = s.logger
	}
	pctx = build(s).Run(pctx)
	diagnostics.Sort(pctx.Errors)
	pctx.Errors = diagnostics.Dedupe(pctx.Errors)
	return pctx
}

// RunFile reads path and runs the pipeline over its contents.
func RunFile(ctx context.Context, path string, cfg *config.Config, opts ...Option) *PipelineContext {
	data, err := os.ReadFile(path)
	if err != nil {
		pctx := NewPipelineContext(ctx, path, "", cfg)
		pctx.addError(diagnostics.NewError(diagnostics.ErrR001, token.Token{}, fmt.Sprintf("read source: %v", err)))
		return pctx
	}
	return RunSource(ctx, path, string(data), cfg, opts...)
}
