package ast

import (
	"github.com/funvibe/typeinfer/internal/token"
)

// ExpressionStatement is a statement that consists of a single expression.
// A directive prologue such as 'use strict' is an ExpressionStatement over a
// StringLiteral.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)      { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) Kind() Kind            { return KindExpressionStatement }
func (es *ExpressionStatement) Span() Span            { return es.Expression.Span() }
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// BlockStatement represents a list of statements within curly braces.
type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
	RBrace     token.Token
}

func (bs *BlockStatement) Accept(v Visitor)      { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) Kind() Kind            { return KindBlockStatement }
func (bs *BlockStatement) Span() Span            { return Span{Start: bs.Token.Offset, End: bs.RBrace.End()} }
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// ReturnStatement represents `return` with an optional argument.
type ReturnStatement struct {
	Token    token.Token // The 'return' token
	Argument Expression  // nil for a bare return
}

func (rs *ReturnStatement) Accept(v Visitor)      { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) Kind() Kind            { return KindReturnStatement }
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }
func (rs *ReturnStatement) Span() Span {
	if rs.Argument != nil {
		return Span{Start: rs.Token.Offset, End: rs.Argument.Span().End}
	}
	return Span{Start: rs.Token.Offset, End: rs.Token.End()}
}

// FunctionDeclaration represents `function name(params) { body }`.
type FunctionDeclaration struct {
	Token      token.Token // The 'function' token
	Name       *Identifier
	LParen     token.Token
	Parameters []*Parameter
	RParen     token.Token
	Body       *BlockStatement
}

func (fd *FunctionDeclaration) Accept(v Visitor)      { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) statementNode()        {}
func (fd *FunctionDeclaration) Kind() Kind            { return KindFunctionDeclaration }
func (fd *FunctionDeclaration) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token { return fd.Token }
func (fd *FunctionDeclaration) Span() Span {
	return Span{Start: fd.Token.Offset, End: fd.Body.Span().End}
}

// Parameter is one entry of a function's parameter list. It is not visited on
// its own; walkers reach it through FunctionDeclaration.Parameters.
type Parameter struct {
	Name           *Identifier
	TypeAnnotation *TypeAnnotation // Only present in annotated sources
	HasDefault     bool            // Declared as `name = value`; the value is not kept
}

func (p *Parameter) Span() Span {
	if p.TypeAnnotation != nil {
		return Span{Start: p.Name.Token.Offset, End: p.TypeAnnotation.Type.Token.End()}
	}
	return p.Name.Span()
}

// TypeAnnotation is the `: type` suffix of an annotated parameter.
type TypeAnnotation struct {
	Token token.Token // The ':' token
	Type  *Identifier
}
