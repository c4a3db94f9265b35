// Package frontend bundles a parsed and bound source file behind the queries
// the analyses ask of it: symbol resolution and contextual types.
package frontend

import (
	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/parser"
	"github.com/funvibe/typeinfer/internal/symbols"
	"github.com/funvibe/typeinfer/internal/typesystem"
)

// Program is one source file after parsing and binding. It is read-only once
// built.
type Program struct {
	File     string
	Source   string
	AST      *ast.Program
	Bindings *symbols.Bindings
	Errors   []*diagnostics.DiagnosticError // Parse errors
}

// New wraps an already parsed and bound file.
func New(file, source string, program *ast.Program, bindings *symbols.Bindings) *Program {
	return &Program{File: file, Source: source, AST: program, Bindings: bindings}
}

// Load parses and binds source in one step.
func Load(file, source string, opts ...parser.Option) *Program {
	program, errs := parser.Parse(file, source, opts...)
	p := New(file, source, program, symbols.Bind(program))
	p.Errors = errs
	return p
}

// Resolve returns the symbol an identifier is bound to. Any other node, and
// an identifier naming an undeclared global, has no symbol.
func (p *Program) Resolve(node ast.Node) *symbols.Symbol {
	id, ok := node.(*ast.Identifier)
	if !ok {
		return nil
	}
	return p.Bindings.Resolve(id)
}

// ContextualType returns the static type expr has where it appears: the type
// of a primitive or object literal, or the annotated type of a parameter.
// It returns nil when nothing is known statically.
func (p *Program) ContextualType(expr ast.Expression) typesystem.Type {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return typesystem.Number
	case *ast.StringLiteral:
		return typesystem.String
	case *ast.BooleanLiteral:
		return typesystem.Boolean
	case *ast.NullLiteral:
		return typesystem.Null
	case *ast.ObjectLiteral:
		return typesystem.Object
	case *ast.Identifier:
		if param := p.Parameter(e); param != nil && param.TypeAnnotation != nil {
			if t, ok := typesystem.Lookup(param.TypeAnnotation.Type.Value); ok {
				return t
			}
		}
	}
	return nil
}

// Parameter returns the parameter declaration id resolves to, if any.
func (p *Program) Parameter(id *ast.Identifier) *ast.Parameter {
	sym := p.Bindings.Resolve(id)
	if sym == nil || sym.Kind != symbols.ParameterSymbol {
		return nil
	}
	for _, param := range sym.Function.Parameters {
		if param.Name == sym.DefinitionNode {
			return param
		}
	}
	return nil
}

func (p *Program) SameType(a, b typesystem.Type) bool {
	return typesystem.Identical(a, b)
}
