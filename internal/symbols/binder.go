package symbols

import (
	"github.com/funvibe/typeinfer/internal/ast"
)

// Bindings maps identifier occurrences to the symbols they refer to.
type Bindings struct {
	Global *SymbolTable

	refs   map[*ast.Identifier]*Symbol
	scopes map[ast.Node]*SymbolTable
}

// Resolve returns the symbol id is bound to, or nil for globals that the file
// never declares (console, Math, ...).
func (b *Bindings) Resolve(id *ast.Identifier) *Symbol {
	if b == nil {
		return nil
	}
	return b.refs[id]
}

// ScopeOf returns the scope created for a program or function declaration.
func (b *Bindings) ScopeOf(node ast.Node) *SymbolTable {
	if b == nil {
		return nil
	}
	return b.scopes[node]
}

// Bind resolves every identifier of program. Function declarations and
// var/let/const names are hoisted to the enclosing function scope before its
// body is resolved, so a use may precede its declaration.
func Bind(program *ast.Program) *Bindings {
	b := &binder{
		bindings: &Bindings{
			refs:   make(map[*ast.Identifier]*Symbol),
			scopes: make(map[ast.Node]*SymbolTable),
		},
	}
	program.Accept(b)
	return b.bindings
}

type binder struct {
	bindings *Bindings
	current  *SymbolTable
}

func (b *binder) bind(id *ast.Identifier, sym *Symbol) {
	b.bindings.refs[id] = sym
}

// hoist declares the names statements introduce into the current scope. It
// descends into blocks but not into nested functions.
func (b *binder) hoist(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDeclaration:
			sym := b.current.Define(&Symbol{Name: s.Name.Value, Kind: FunctionSymbol, DefinitionNode: s.Name, Function: s})
			b.bind(s.Name, sym)
		case *ast.UnknownNode:
			for _, id := range s.Declares {
				if existing, ok := b.current.FindLocal(id.Value); ok && existing.Kind != VariableSymbol {
					// var x; after function x() {} or a parameter x does not rebind
					b.bind(id, existing)
					continue
				}
				sym := b.current.Define(&Symbol{Name: id.Value, Kind: VariableSymbol, DefinitionNode: id})
				b.bind(id, sym)
			}
		case *ast.BlockStatement:
			b.hoist(s.Statements)
		}
	}
}

func (b *binder) VisitProgram(program *ast.Program) {
	b.current = NewEmptySymbolTable(program)
	b.bindings.Global = b.current
	b.bindings.scopes[program] = b.current

	b.hoist(program.Statements)
	for _, stmt := range program.Statements {
		stmt.Accept(b)
	}
}

func (b *binder) VisitFunctionDeclaration(fn *ast.FunctionDeclaration) {
	outer := b.current
	b.current = NewEnclosedSymbolTable(outer, fn)
	b.bindings.scopes[fn] = b.current
	defer func() { b.current = outer }()

	for _, param := range fn.Parameters {
		sym := b.current.Define(&Symbol{Name: param.Name.Value, Kind: ParameterSymbol, DefinitionNode: param.Name, Function: fn})
		b.bind(param.Name, sym)
	}
	if fn.Body != nil {
		b.hoist(fn.Body.Statements)
		for _, stmt := range fn.Body.Statements {
			stmt.Accept(b)
		}
	}
}

func (b *binder) VisitIdentifier(id *ast.Identifier) {
	if _, done := b.bindings.refs[id]; done {
		return
	}
	if sym, ok := b.current.Find(id.Value); ok {
		b.bind(id, sym)
	}
}

func (b *binder) VisitExpressionStatement(es *ast.ExpressionStatement) {
	if es.Expression != nil {
		es.Expression.Accept(b)
	}
}

func (b *binder) VisitBlockStatement(bs *ast.BlockStatement) {
	for _, stmt := range bs.Statements {
		stmt.Accept(b)
	}
}

func (b *binder) VisitReturnStatement(rs *ast.ReturnStatement) {
	if rs.Argument != nil {
		rs.Argument.Accept(b)
	}
}

func (b *binder) VisitBinaryExpression(be *ast.BinaryExpression) {
	be.Left.Accept(b)
	be.Right.Accept(b)
}

func (b *binder) VisitCallExpression(ce *ast.CallExpression) {
	ce.Callee.Accept(b)
	for _, arg := range ce.Arguments {
		arg.Accept(b)
	}
}

func (b *binder) VisitObjectLiteral(ol *ast.ObjectLiteral) {
	for _, prop := range ol.Properties {
		// Keys are property names, not references; shorthand values are.
		if prop.Value != ast.Expression(prop.Key) {
			prop.Value.Accept(b)
		} else {
			b.VisitIdentifier(prop.Key)
		}
	}
}

func (b *binder) VisitUnknownNode(un *ast.UnknownNode) {}

func (b *binder) VisitStringLiteral(sl *ast.StringLiteral)   {}
func (b *binder) VisitNumberLiteral(nl *ast.NumberLiteral)   {}
func (b *binder) VisitBooleanLiteral(bl *ast.BooleanLiteral) {}
func (b *binder) VisitNullLiteral(nl *ast.NullLiteral)       {}
