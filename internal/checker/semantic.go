package checker

import (
	"fmt"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/config"
	"github.com/funvibe/typeinfer/internal/frontend"
	"github.com/funvibe/typeinfer/internal/symbols"
	"github.com/funvibe/typeinfer/internal/token"
	"github.com/funvibe/typeinfer/internal/typesystem"
	"github.com/funvibe/typeinfer/internal/verify"
)

var arithmeticOperators = map[token.TokenType]bool{
	token.ASTERISK: true, token.SLASH: true, token.PERCENT: true, token.MINUS: true, token.POWER: true,
	token.AMPERSAND: true, token.PIPE: true, token.CARET: true,
	token.LSHIFT: true, token.RSHIFT: true, token.URSHIFT: true,
	token.MINUS_ASSIGN: true, token.ASTERISK_ASSIGN: true, token.SLASH_ASSIGN: true,
	token.PERCENT_ASSIGN: true, token.POWER_ASSIGN: true,
}

// semantic walks the whole tree and reports type errors. Only types that are
// statically evident count: literal types and annotated parameters.
type semantic struct {
	front *frontend.Program
	opts  config.CompilerOptions
	typed bool
	lines lineIndex
	diags []verify.Diagnostic
}

func (s *semantic) report(node ast.Node, code, format string, args ...interface{}) {
	line, col := s.lines.position(node.Span().Start)
	s.diags = append(s.diags, verify.Diagnostic{
		Code:    code,
		File:    s.front.File,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *semantic) strictNulls() bool {
	return s.opts.Strict
}

func (s *semantic) VisitProgram(program *ast.Program) {
	for _, stmt := range program.Statements {
		stmt.Accept(s)
	}
}

func (s *semantic) VisitFunctionDeclaration(fn *ast.FunctionDeclaration) {
	for _, param := range fn.Parameters {
		if param.TypeAnnotation != nil {
			name := param.TypeAnnotation.Type
			if _, ok := typesystem.Lookup(name.Value); !ok {
				s.report(name, CodeCannotFindName, "Cannot find name '%s'.", name.Value)
			}
			continue
		}
		if s.typed && s.opts.NoImplicitAny && !param.HasDefault {
			s.report(param.Name, CodeImplicitAny, "Parameter '%s' implicitly has an 'any' type.", param.Name.Value)
		}
	}
	if fn.Body != nil {
		fn.Body.Accept(s)
	}
}

func (s *semantic) VisitBlockStatement(bs *ast.BlockStatement) {
	for _, stmt := range bs.Statements {
		stmt.Accept(s)
	}
}

func (s *semantic) VisitExpressionStatement(es *ast.ExpressionStatement) {
	if es.Expression != nil {
		es.Expression.Accept(s)
	}
}

func (s *semantic) VisitReturnStatement(rs *ast.ReturnStatement) {
	if rs.Argument != nil {
		rs.Argument.Accept(s)
	}
}

func (s *semantic) VisitBinaryExpression(be *ast.BinaryExpression) {
	be.Left.Accept(s)
	be.Right.Accept(s)

	switch {
	case arithmeticOperators[be.Operator]:
		s.checkArithmeticOperand(be.Left, CodeArithmeticLeft, "left")
		s.checkArithmeticOperand(be.Right, CodeArithmeticRight, "right")
	case be.Operator == token.IN:
		s.checkInOperands(be)
	}
}

func (s *semantic) checkArithmeticOperand(operand ast.Expression, code, side string) {
	t := s.front.ContextualType(operand)
	if t == nil || typesystem.Identical(t, typesystem.Number) || typesystem.Identical(t, typesystem.Any) {
		return
	}
	if s.reportUnusable(operand, t) || typesystem.Identical(t, typesystem.Null) {
		return
	}
	s.report(operand, code, "The %s-hand side of an arithmetic operation must be of type 'any', 'number', 'bigint' or an enum type.", side)
}

func (s *semantic) checkInOperands(be *ast.BinaryExpression) {
	if t := s.front.ContextualType(be.Left); t != nil && !s.reportUnusable(be.Left, t) {
		if !typesystem.Identical(t, typesystem.String) && !typesystem.Identical(t, typesystem.Number) && !typesystem.Identical(t, typesystem.Any) {
			s.report(be.Left, CodeInLeft, "The left-hand side of an 'in' expression must be a private identifier or of type 'any', 'string', 'number', or 'symbol'.")
		}
	}
	if t := s.front.ContextualType(be.Right); t != nil && !s.reportUnusable(be.Right, t) {
		if typesystem.IsPrimitive(t) {
			s.report(be.Right, CodeInRight, "The right-hand side of an 'in' expression must not be a primitive.")
		}
	}
}

// reportUnusable reports operands of type unknown, and null under strict
// null checks. It returns true when it reported.
func (s *semantic) reportUnusable(operand ast.Expression, t typesystem.Type) bool {
	if typesystem.Identical(t, typesystem.Unknown) {
		s.report(operand, CodeIsUnknown, "'%s' is of type 'unknown'.", operand.TokenLiteral())
		return true
	}
	if typesystem.Identical(t, typesystem.Null) && s.strictNulls() {
		s.report(operand, CodeNullValue, "The value 'null' cannot be used here.")
		return true
	}
	return false
}

func (s *semantic) VisitCallExpression(ce *ast.CallExpression) {
	ce.Callee.Accept(s)
	for _, arg := range ce.Arguments {
		arg.Accept(s)
	}

	id, ok := ce.Callee.(*ast.Identifier)
	if !ok {
		return
	}
	sym := s.front.Resolve(id)
	if sym == nil || sym.Kind != symbols.FunctionSymbol {
		return
	}
	params := sym.Function.Parameters

	required := 0
	for _, p := range params {
		if !p.HasDefault {
			required++
		}
	}
	if n := len(ce.Arguments); n < required || n > len(params) {
		expected := fmt.Sprint(len(params))
		if required != len(params) {
			expected = fmt.Sprintf("%d-%d", required, len(params))
		}
		s.report(ce, CodeArgumentCount, "Expected %s arguments, but got %d.", expected, n)
		return
	}

	for i, arg := range ce.Arguments {
		if params[i].TypeAnnotation == nil {
			continue
		}
		want, ok := typesystem.Lookup(params[i].TypeAnnotation.Type.Value)
		if !ok || typesystem.IsDynamic(want) {
			continue
		}
		got := s.front.ContextualType(arg)
		if got == nil || s.assignable(got, want) {
			continue
		}
		s.report(arg, CodeArgumentNotAssignable, "Argument of type '%s' is not assignable to parameter of type '%s'.", got, want)
	}
}

func (s *semantic) assignable(from, to typesystem.Type) bool {
	if typesystem.Identical(from, to) || typesystem.Identical(from, typesystem.Any) {
		return true
	}
	return typesystem.Identical(from, typesystem.Null) && !s.strictNulls()
}

func (s *semantic) VisitObjectLiteral(ol *ast.ObjectLiteral) {
	for _, prop := range ol.Properties {
		if prop.Value != ast.Expression(prop.Key) {
			prop.Value.Accept(s)
		}
	}
}

func (s *semantic) VisitUnknownNode(un *ast.UnknownNode)       {}
func (s *semantic) VisitIdentifier(id *ast.Identifier)         {}
func (s *semantic) VisitStringLiteral(sl *ast.StringLiteral)   {}
func (s *semantic) VisitNumberLiteral(nl *ast.NumberLiteral)   {}
func (s *semantic) VisitBooleanLiteral(bl *ast.BooleanLiteral) {}
func (s *semantic) VisitNullLiteral(nl *ast.NullLiteral)       {}
