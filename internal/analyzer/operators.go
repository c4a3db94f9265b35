package analyzer

import (
	"fmt"
	"sort"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/token"
	"github.com/funvibe/typeinfer/internal/typesystem"
)

// OperatorSignature gives the operand types a binary operator demands:
// ParameterTypes[0] for the left operand, ParameterTypes[1] for the right.
type OperatorSignature struct {
	Operator       token.TokenType
	ParameterTypes [2]typesystem.Type
}

// OperatorTable maps operators to the single signature they imply. Operators
// that accept several operand types ('+', '<', '==', ...) have no row, since
// no single type can be derived from them.
//
// The table is not modified after it is handed to an Analyzer, so one table
// may serve any number of analyses.
type OperatorTable struct {
	rows map[token.TokenType]OperatorSignature
}

var (
	numericOperators = []token.TokenType{
		token.ASTERISK, token.SLASH, token.PERCENT, token.MINUS, token.POWER,
	}
	bitwiseOperators = []token.TokenType{
		token.AMPERSAND, token.PIPE, token.CARET, token.LSHIFT, token.RSHIFT, token.URSHIFT,
	}
)

// BuildOperatorTable derives the operand types from the contextual types the
// service assigns to representative literals, so the table always speaks in
// the service's own type handles.
func BuildOperatorTable(svc TypeService) (*OperatorTable, error) {
	number := svc.ContextualType(&ast.NumberLiteral{Token: token.Token{Type: token.NUMBER, Lexeme: "0", Literal: float64(0)}})
	str := svc.ContextualType(&ast.StringLiteral{Token: token.Token{Type: token.STRING, Lexeme: `""`, Literal: ""}})
	object := svc.ContextualType(&ast.ObjectLiteral{Token: token.Token{Type: token.LBRACE, Lexeme: "{"}})
	for name, t := range map[string]typesystem.Type{"number": number, "string": str, "object": object} {
		if t == nil {
			return nil, fmt.Errorf("operator table: no contextual type for %s literal", name)
		}
	}

	table := NewOperatorTable()
	for _, op := range numericOperators {
		table.Register(op, OperatorSignature{Operator: op, ParameterTypes: [2]typesystem.Type{number, number}})
	}
	for _, op := range bitwiseOperators {
		table.Register(op, OperatorSignature{Operator: op, ParameterTypes: [2]typesystem.Type{number, number}})
	}
	table.Register(token.IN, OperatorSignature{Operator: token.IN, ParameterTypes: [2]typesystem.Type{str, object}})
	return table, nil
}

// NewOperatorTable returns an empty table.
func NewOperatorTable() *OperatorTable {
	return &OperatorTable{rows: make(map[token.TokenType]OperatorSignature)}
}

// Register adds or replaces the row for op.
func (t *OperatorTable) Register(op token.TokenType, sig OperatorSignature) {
	sig.Operator = op
	t.rows[op] = sig
}

func (t *OperatorTable) Lookup(op token.TokenType) (OperatorSignature, bool) {
	sig, ok := t.rows[op]
	return sig, ok
}

// Operators lists the operators with a row, sorted.
func (t *OperatorTable) Operators() []token.TokenType {
	ops := make([]token.TokenType, 0, len(t.rows))
	for op := range t.rows {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
