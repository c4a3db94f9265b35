package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/parser"
	"github.com/funvibe/typeinfer/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders a syntax tree back to source in a canonical layout.
// Constructs the tree keeps only as UnknownNode are copied verbatim from the
// source they were parsed from.
type CodePrinter struct {
	buf    bytes.Buffer
	source string
	indent int
}

func NewCodePrinter(source string) *CodePrinter {
	return &CodePrinter{source: source}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
}

// Print renders program parsed from source.
func Print(program *ast.Program, source string) string {
	p := NewCodePrinter(source)
	program.Accept(p)
	return p.String()
}

// Signature renders the header of fn. Parameters without an annotation of
// their own take their type text from types, if present there.
func Signature(fn *ast.FunctionDeclaration, types map[string]string) string {
	p := NewCodePrinter("")
	p.printHeader(fn, types)
	return p.String()
}

func (p *CodePrinter) VisitProgram(program *ast.Program) {
	for _, stmt := range program.Statements {
		p.printStatement(stmt)
	}
}

func (p *CodePrinter) printStatement(stmt ast.Statement) {
	p.writeIndent()
	stmt.Accept(p)
	p.write("\n")
}

func (p *CodePrinter) VisitExpressionStatement(es *ast.ExpressionStatement) {
	// A leading '{' or 'function' would start a block or a declaration.
	switch leadingToken(es.Expression).Type {
	case token.LBRACE, token.FUNCTION:
		p.write("(")
		es.Expression.Accept(p)
		p.write(")")
	default:
		es.Expression.Accept(p)
	}
	p.write(";")
}

func (p *CodePrinter) VisitBlockStatement(bs *ast.BlockStatement) {
	if len(bs.Statements) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.indent++
	for _, stmt := range bs.Statements {
		p.printStatement(stmt)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitReturnStatement(rs *ast.ReturnStatement) {
	if rs.Argument == nil {
		p.write("return;")
		return
	}
	p.write("return ")
	rs.Argument.Accept(p)
	p.write(";")
}

func (p *CodePrinter) VisitFunctionDeclaration(fn *ast.FunctionDeclaration) {
	p.printHeader(fn, nil)
	p.write(" ")
	if fn.Body == nil {
		p.write("{}")
		return
	}
	fn.Body.Accept(p)
}

func (p *CodePrinter) printHeader(fn *ast.FunctionDeclaration, types map[string]string) {
	p.write("function ")
	p.write(fn.Name.Value)
	p.write("(")
	for i, param := range fn.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name.Value)
		switch {
		case param.TypeAnnotation != nil:
			p.write(": " + param.TypeAnnotation.Type.Value)
		case types[param.Name.Value] != "":
			p.write(": " + types[param.Name.Value])
		}
		if param.HasDefault {
			// The parser does not keep default values.
			p.write(" = undefined")
		}
	}
	p.write(")")
}

func (p *CodePrinter) VisitBinaryExpression(be *ast.BinaryExpression) {
	prec := parser.Precedence(be.Operator)
	right := parser.RightAssociative(be.Operator)

	p.printOperand(be.Left, prec, right)
	p.write(" " + be.Token.Lexeme + " ")
	p.printOperand(be.Right, prec, !right)
}

// printOperand wraps operand in parentheses when printing it bare would
// regroup it. tight is set on the side where an equal precedence operator
// still needs parentheses.
func (p *CodePrinter) printOperand(operand ast.Expression, parent int, tight bool) {
	wrap := false
	switch e := operand.(type) {
	case *ast.BinaryExpression:
		prec := parser.Precedence(e.Operator)
		wrap = prec < parent || (prec == parent && tight)
	case *ast.UnknownNode:
		wrap = !selfDelimited(e)
	}
	if wrap {
		p.write("(")
		operand.Accept(p)
		p.write(")")
		return
	}
	operand.Accept(p)
}

func (p *CodePrinter) VisitCallExpression(ce *ast.CallExpression) {
	switch callee := ce.Callee.(type) {
	case *ast.Identifier, *ast.CallExpression:
		callee.Accept(p)
	case *ast.UnknownNode:
		p.printOperand(callee, parser.CALL, false)
	default:
		p.write("(")
		callee.Accept(p)
		p.write(")")
	}
	p.write("(")
	for i, arg := range ce.Arguments {
		if i > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitObjectLiteral(ol *ast.ObjectLiteral) {
	if len(ol.Properties) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, prop := range ol.Properties {
		if i > 0 {
			p.write(", ")
		}
		p.write(prop.Key.Token.Lexeme)
		if prop.Value == ast.Expression(prop.Key) {
			continue
		}
		p.write(": ")
		prop.Value.Accept(p)
	}
	p.write(" }")
}

func (p *CodePrinter) VisitUnknownNode(un *ast.UnknownNode) {
	start, end := un.Token.Offset, un.End
	if start < 0 || end > len(p.source) || start >= end {
		p.write("/* " + un.Name + " */")
		return
	}
	p.write(p.source[start:end])
}

func (p *CodePrinter) VisitIdentifier(id *ast.Identifier)         { p.write(id.Value) }
func (p *CodePrinter) VisitStringLiteral(sl *ast.StringLiteral)   { p.write(sl.Token.Lexeme) }
func (p *CodePrinter) VisitNumberLiteral(nl *ast.NumberLiteral)   { p.write(nl.Token.Lexeme) }
func (p *CodePrinter) VisitBooleanLiteral(bl *ast.BooleanLiteral) { p.write(bl.Token.Lexeme) }
func (p *CodePrinter) VisitNullLiteral(nl *ast.NullLiteral)       { p.write("null") }

// selfDelimited reports whether an opaque construct binds at least as tightly
// as a call, so it can stand as an operand without parentheses.
func selfDelimited(un *ast.UnknownNode) bool {
	switch un.Name {
	case ast.MemberExpressionName, ast.ThisExpressionName, ast.ArrayLiteralName,
		ast.TemplateLiteralName, ast.TaggedTemplateName, ast.RegExpLiteralName, ast.SequenceExpressionName:
		return true
	}
	return false
}

func leadingToken(expr ast.Expression) token.Token {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		return leadingToken(e.Left)
	case *ast.CallExpression:
		return leadingToken(e.Callee)
	}
	return expr.GetToken()
}
