package ast

import (
	"github.com/funvibe/typeinfer/internal/token"
)

// Identifier is a name occurrence: a reference, a declared name, or a type
// name inside an annotation.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) Kind() Kind            { return KindIdentifier }
func (i *Identifier) Span() Span            { return Span{Start: i.Token.Offset, End: i.Token.End()} }
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) Kind() Kind            { return KindStringLiteral }
func (sl *StringLiteral) Span() Span            { return Span{Start: sl.Token.Offset, End: sl.Token.End()} }
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) Accept(v Visitor)      { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) Kind() Kind            { return KindNumberLiteral }
func (nl *NumberLiteral) Span() Span            { return Span{Start: nl.Token.Offset, End: nl.Token.End()} }
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) Kind() Kind            { return KindBooleanLiteral }
func (bl *BooleanLiteral) Span() Span            { return Span{Start: bl.Token.Offset, End: bl.Token.End()} }
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) Accept(v Visitor)      { v.VisitNullLiteral(nl) }
func (nl *NullLiteral) expressionNode()       {}
func (nl *NullLiteral) Kind() Kind            { return KindNullLiteral }
func (nl *NullLiteral) Span() Span            { return Span{Start: nl.Token.Offset, End: nl.Token.End()} }
func (nl *NullLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NullLiteral) GetToken() token.Token { return nl.Token }

// ObjectLiteral represents `{ key: value, ... }`.
type ObjectLiteral struct {
	Token      token.Token // The '{' token
	Properties []*Property
	RBrace     token.Token
}

// Property is a `key: value` pair; shorthand `{ a }` has Value == Key.
type Property struct {
	Key   *Identifier
	Value Expression
}

func (ol *ObjectLiteral) Accept(v Visitor)      { v.VisitObjectLiteral(ol) }
func (ol *ObjectLiteral) expressionNode()       {}
func (ol *ObjectLiteral) Kind() Kind            { return KindObjectLiteral }
func (ol *ObjectLiteral) Span() Span            { return Span{Start: ol.Token.Offset, End: ol.RBrace.End()} }
func (ol *ObjectLiteral) TokenLiteral() string  { return ol.Token.Lexeme }
func (ol *ObjectLiteral) GetToken() token.Token { return ol.Token }

// BinaryExpression represents `left <op> right`, including assignments,
// which share the node shape.
type BinaryExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (be *BinaryExpression) Accept(v Visitor)      { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) Kind() Kind            { return KindBinaryExpression }
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }
func (be *BinaryExpression) Span() Span {
	return Span{Start: be.Left.Span().Start, End: be.Right.Span().End}
}

// CallExpression represents `callee(arguments...)`.
type CallExpression struct {
	Token     token.Token // The '(' token
	Callee    Expression
	Arguments []Expression
	RParen    token.Token
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) Kind() Kind            { return KindCallExpression }
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
func (ce *CallExpression) Span() Span {
	return Span{Start: ce.Callee.Span().Start, End: ce.RParen.End()}
}
