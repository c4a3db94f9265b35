package ast

import (
	"github.com/funvibe/typeinfer/internal/token"
)

// Kind tags every node with the syntactic construct it represents.
type Kind int

const (
	KindProgram Kind = iota
	KindExpressionStatement
	KindStringLiteral
	KindNumberLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindObjectLiteral
	KindIdentifier
	KindFunctionDeclaration
	KindBlockStatement
	KindReturnStatement
	KindBinaryExpression
	KindCallExpression
	KindUnknown
)

var kindNames = [...]string{
	KindProgram:             "Program",
	KindExpressionStatement: "ExpressionStatement",
	KindStringLiteral:       "StringLiteral",
	KindNumberLiteral:       "NumberLiteral",
	KindBooleanLiteral:      "BooleanLiteral",
	KindNullLiteral:         "NullLiteral",
	KindObjectLiteral:       "ObjectLiteral",
	KindIdentifier:          "Identifier",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindBlockStatement:      "BlockStatement",
	KindReturnStatement:     "ReturnStatement",
	KindBinaryExpression:    "BinaryExpression",
	KindCallExpression:      "CallExpression",
	KindUnknown:             "Unknown",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int
	End   int
}

// Node is the base interface for all AST nodes. Nodes are immutable once the
// parser returns them.
type Node interface {
	Kind() Kind
	Span() Span
	TokenLiteral() string
	GetToken() token.Token
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
	End        int // Length of the source text
}

func (p *Program) Accept(v Visitor)      { v.VisitProgram(p) }
func (p *Program) Kind() Kind            { return KindProgram }
func (p *Program) Span() Span            { return Span{Start: 0, End: p.End} }
func (p *Program) GetToken() token.Token { return token.Token{Line: 1, Column: 1} }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// UnknownNode stands in for every construct the analyses do not model
// (variable statements, conditionals, unary and member expressions, ...).
// It keeps enough to report and skip the construct.
type UnknownNode struct {
	Token token.Token // First token of the construct
	Name  string      // Construct name, e.g. "IfStatement"
	End   int         // Byte offset just past the construct

	// Declares lists the names a variable statement introduces, so that
	// scoping stays correct even though the statement itself is opaque.
	Declares []*Identifier
}

func (un *UnknownNode) Accept(v Visitor)      { v.VisitUnknownNode(un) }
func (un *UnknownNode) Kind() Kind            { return KindUnknown }
func (un *UnknownNode) Span() Span            { return Span{Start: un.Token.Offset, End: un.End} }
func (un *UnknownNode) TokenLiteral() string  { return un.Token.Lexeme }
func (un *UnknownNode) GetToken() token.Token { return un.Token }
func (un *UnknownNode) statementNode()        {}
func (un *UnknownNode) expressionNode()       {}

// Construct names carried by UnknownNode.
const (
	VariableStatementName     = "VariableStatement"
	IfStatementName           = "IfStatement"
	WhileStatementName        = "WhileStatement"
	EmptyStatementName        = "EmptyStatement"
	UnaryExpressionName       = "UnaryExpression"
	PostfixExpressionName     = "PostfixExpression"
	MemberExpressionName      = "MemberExpression"
	ConditionalExpressionName = "ConditionalExpression"
	ArrayLiteralName          = "ArrayLiteral"
	FunctionExpressionName    = "FunctionExpression"
	NewExpressionName         = "NewExpression"
	ThisExpressionName        = "ThisExpression"
	ForStatementName          = "ForStatement"
	DoWhileStatementName      = "DoWhileStatement"
	SwitchStatementName       = "SwitchStatement"
	TryStatementName          = "TryStatement"
	ThrowStatementName        = "ThrowStatement"
	BreakStatementName        = "BreakStatement"
	ContinueStatementName     = "ContinueStatement"
	LabeledStatementName      = "LabeledStatement"
	ArrowFunctionName         = "ArrowFunction"
	SequenceExpressionName    = "SequenceExpression"
	SpreadElementName         = "SpreadElement"
	TemplateLiteralName       = "TemplateLiteral"
	TaggedTemplateName        = "TaggedTemplateExpression"
	RegExpLiteralName         = "RegularExpressionLiteral"
)
