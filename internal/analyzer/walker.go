package analyzer

import (
	"log"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/symbols"
)

// walker is the traversal dispatcher. It owns the scope stack; the top of the
// stack is the function whose body is being walked.
type walker struct {
	svc       TypeService
	operators *OperatorTable
	logger    *log.Logger
	file      string
	report    *Report
	scopes    []*Scope
}

func (w *walker) current() *Scope {
	if len(w.scopes) == 0 {
		return nil
	}
	return w.scopes[len(w.scopes)-1]
}

// enterScope pushes s and returns the function that pops it.
func (w *walker) enterScope(s *Scope) func() {
	depth := len(w.scopes)
	w.scopes = append(w.scopes, s)
	return func() { w.scopes = w.scopes[:depth] }
}

func (w *walker) VisitProgram(program *ast.Program) {
	for _, stmt := range program.Statements {
		stmt.Accept(w)
	}
}

func (w *walker) VisitFunctionDeclaration(fn *ast.FunctionDeclaration) {
	result := &FunctionResult{Name: fn.Name.Value, Function: fn}
	w.report.Functions = append(w.report.Functions, result)

	scope := NewScope(w.current(), fn)
	scope.RegisterParameters()
	if err := w.walkBody(scope, fn.Body); err != nil {
		w.logger.Printf("%s:%d:%d: %v", w.file, fn.Token.Line, fn.Token.Column, err)
		result.Err = err
		return
	}
	result.Parameters = scope.Resolve(w.svc)
}

// walkBody walks body with scope on top of the stack. An InternalError raised
// while collecting constraints ends the walk of this body only.
func (w *walker) walkBody(scope *Scope, body *ast.BlockStatement) (err error) {
	restore := w.enterScope(scope)
	defer restore()
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	if body != nil {
		body.Accept(w)
	}
	return nil
}

func (w *walker) VisitBlockStatement(bs *ast.BlockStatement) {
	for _, stmt := range bs.Statements {
		stmt.Accept(w)
	}
}

func (w *walker) VisitExpressionStatement(es *ast.ExpressionStatement) {
	if es.Expression != nil {
		es.Expression.Accept(w)
	}
}

func (w *walker) VisitReturnStatement(rs *ast.ReturnStatement) {
	if rs.Argument != nil {
		rs.Argument.Accept(w)
	}
}

func (w *walker) VisitBinaryExpression(be *ast.BinaryExpression) {
	be.Left.Accept(w)
	be.Right.Accept(w)
	w.collect(be)
}

// collect records the operand types be's operator demands against the
// parameters of the current function that appear as its operands.
func (w *walker) collect(be *ast.BinaryExpression) {
	scope := w.current()
	if scope == nil {
		return
	}

	left := w.svc.Resolve(be.Left)
	right := w.svc.Resolve(be.Right)
	if left == nil && right == nil {
		return
	}

	sig, ok := w.operators.Lookup(be.Operator)
	if !ok {
		return
	}

	for pos, sym := range [2]*symbols.Symbol{left, right} {
		if sym == nil || sym.Kind != symbols.ParameterSymbol || sym.Function != scope.Function {
			continue
		}
		if err := scope.ConstrainParameter(sym.Name, sig.ParameterTypes[pos]); err != nil {
			panic(err)
		}
	}
}

func (w *walker) VisitCallExpression(ce *ast.CallExpression) {
	for _, arg := range ce.Arguments {
		arg.Accept(w)
	}
	ce.Callee.Accept(w)
}

func (w *walker) VisitObjectLiteral(ol *ast.ObjectLiteral) {
	for _, prop := range ol.Properties {
		prop.Value.Accept(w)
	}
}

func (w *walker) VisitUnknownNode(un *ast.UnknownNode) {
	w.logger.Printf("%s:%d:%d: unknown node kind %s", w.file, un.Token.Line, un.Token.Column, un.Name)
	w.report.Unknown = append(w.report.Unknown, un)
}

func (w *walker) VisitIdentifier(id *ast.Identifier)         {}
func (w *walker) VisitStringLiteral(sl *ast.StringLiteral)   {}
func (w *walker) VisitNumberLiteral(nl *ast.NumberLiteral)   {}
func (w *walker) VisitBooleanLiteral(bl *ast.BooleanLiteral) {}
func (w *walker) VisitNullLiteral(nl *ast.NullLiteral)       {}
