package analyzer

import (
	"io"
	"log"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/symbols"
	"github.com/funvibe/typeinfer/internal/typesystem"
)

// TypeService is what the analysis needs from the front-end. All methods are
// pure queries.
type TypeService interface {
	// Resolve returns the symbol bound to node, or nil.
	Resolve(node ast.Node) *symbols.Symbol
	// ContextualType returns the static type of expr, or nil.
	ContextualType(expr ast.Expression) typesystem.Type
	// SameType reports whether two handles denote one type.
	SameType(a, b typesystem.Type) bool
}

// Analyzer infers parameter types from how parameters are used.
type Analyzer struct {
	svc       TypeService
	operators *OperatorTable
	logger    *log.Logger
}

type Option func(*Analyzer)

// WithLogger sends non-fatal traversal notes (skipped constructs, aborted
// functions) to l.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithOperators replaces the operator table built from the service.
func WithOperators(t *OperatorTable) Option {
	return func(a *Analyzer) { a.operators = t }
}

func New(svc TypeService, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{svc: svc}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard, "", 0)
	}
	if a.operators == nil {
		table, err := BuildOperatorTable(svc)
		if err != nil {
			return nil, err
		}
		a.operators = table
	}
	return a, nil
}

// Operators returns the table the analyzer consults.
func (a *Analyzer) Operators() *OperatorTable {
	return a.operators
}

// Infer walks program and resolves the parameters of every function
// declaration it contains.
func (a *Analyzer) Infer(program *ast.Program) *Report {
	w := &walker{
		svc:       a.svc,
		operators: a.operators,
		logger:    a.logger,
		file:      program.File,
		report:    &Report{File: program.File},
	}
	program.Accept(w)
	return w.report
}
