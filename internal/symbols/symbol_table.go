package symbols

import (
	"github.com/funvibe/typeinfer/internal/ast"
)

type SymbolKind int

type ScopeType int

const (
	ScopeGlobal   ScopeType = iota // Top level of the file
	ScopeFunction                  // Body of a function declaration
)

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	ParameterSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case FunctionSymbol:
		return "function"
	case ParameterSymbol:
		return "parameter"
	}
	return "symbol"
}

// Symbol is the binding an identifier occurrence resolves to. Symbols are
// compared by pointer identity.
type Symbol struct {
	Name           string
	Kind           SymbolKind
	DefinitionNode *ast.Identifier // The declaring identifier

	// Function is the declaration a parameter belongs to, or the declaration
	// a function symbol names.
	Function *ast.FunctionDeclaration
}

// SymbolTable is one lexical scope. Lookups fall through to the outer scope.
type SymbolTable struct {
	store     map[string]*Symbol
	outer     *SymbolTable
	scopeType ScopeType
	node      ast.Node // Program or FunctionDeclaration owning the scope
}

func NewEmptySymbolTable(node ast.Node) *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]*Symbol),
		scopeType: ScopeGlobal,
		node:      node,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, node ast.Node) *SymbolTable {
	st := NewEmptySymbolTable(node)
	st.outer = outer
	st.scopeType = ScopeFunction
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

func (s *SymbolTable) IsFunctionScope() bool {
	return s.scopeType == ScopeFunction
}

func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

// Node returns the program or function declaration that owns the scope.
func (s *SymbolTable) Node() ast.Node {
	return s.node
}

// Define binds sym in this scope, replacing any earlier binding of the same
// name. JavaScript allows redeclaration, and the last one wins.
func (s *SymbolTable) Define(sym *Symbol) *Symbol {
	s.store[sym.Name] = sym
	return sym
}

// Find looks name up in this scope and its outer scopes.
func (s *SymbolTable) Find(name string) (*Symbol, bool) {
	for st := s; st != nil; st = st.outer {
		if sym, ok := st.store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// FindLocal looks name up in this scope only.
func (s *SymbolTable) FindLocal(name string) (*Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}
