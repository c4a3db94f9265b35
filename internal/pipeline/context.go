package pipeline

import (
	"context"
	"io"
	"log"

	"github.com/funvibe/typeinfer/internal/analyzer"
	"github.com/funvibe/typeinfer/internal/annotate"
	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/config"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/frontend"
	"github.com/funvibe/typeinfer/internal/lexer"
	"github.com/funvibe/typeinfer/internal/symbols"
	"github.com/funvibe/typeinfer/internal/verify"
)

// PipelineContext carries one source file through the stages. Each
// processor reads what earlier ones produced and fills in its own field.
type PipelineContext struct {
	Context    context.Context
	SourceCode string
	FilePath   string
	Config     *config.Config
	Logger     *log.Logger

	TokenStream  *lexer.TokenStream
	AstRoot      *ast.Program
	Bindings     *symbols.Bindings
	Front        *frontend.Program
	Report       *analyzer.Report
	Annotated    *annotate.Result
	Verification *verify.Result

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(ctx context.Context, path, source string, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineContext{
		Context:    ctx,
		SourceCode: source,
		FilePath:   path,
		Config:     cfg,
		Logger:     log.New(io.Discard, "", 0),
	}
}

func (c *PipelineContext) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Errors = append(c.Errors, err)
}

// HasCode reports whether any collected error carries code.
func (c *PipelineContext) HasCode(code diagnostics.ErrorCode) bool {
	for _, err := range c.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Succeeded reports whether every parameter was solved, no stage failed and
// verification, if it ran, found nothing.
func (c *PipelineContext) Succeeded() bool {
	if len(c.Errors) > 0 || c.Report == nil || !c.Report.Solved() {
		return false
	}
	return c.Verification == nil || c.Verification.Passed()
}
