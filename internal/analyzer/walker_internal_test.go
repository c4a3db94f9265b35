package analyzer

import (
	"errors"
	"testing"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/frontend"
	"github.com/funvibe/typeinfer/internal/symbols"
	"github.com/funvibe/typeinfer/internal/typesystem"
)

// skewedService hands out a parameter symbol whose name the function never
// declared, for every use of x inside the function called broken.
type skewedService struct{ *frontend.Program }

func (s skewedService) Resolve(node ast.Node) *symbols.Symbol {
	sym := s.Program.Resolve(node)
	if sym != nil && sym.Kind == symbols.ParameterSymbol && sym.Name == "x" && sym.Function.Name.Value == "broken" {
		return &symbols.Symbol{Name: "ghost", Kind: symbols.ParameterSymbol, Function: sym.Function}
	}
	return sym
}

func TestInternalErrorAbortsOnlyItsFunction(t *testing.T) {
	src := `
function broken(x) { return x * 2 }
function fine(y) { return y * 2 }
`
	p := frontend.Load("test.js", src)
	a, err := New(skewedService{p})
	if err != nil {
		t.Fatal(err)
	}

	w := &walker{svc: a.svc, operators: a.operators, logger: a.logger, report: &Report{File: "test.js"}}
	p.AST.Accept(w)
	r := w.report

	if len(w.scopes) != 0 {
		t.Fatalf("scope stack not restored after abort: depth %d", len(w.scopes))
	}

	broken := r.Function("broken")
	var ie *InternalError
	if !errors.As(broken.Err, &ie) || ie.Code != ErrI001 || ie.Name != "ghost" {
		t.Fatalf("broken: err = %v, want I001 on ghost", broken.Err)
	}
	if broken.Parameters != nil {
		t.Errorf("an aborted function must not report parameter results")
	}

	fine := r.Function("fine")
	if fine.Err != nil {
		t.Fatalf("fine: unexpected abort %v", fine.Err)
	}
	if res, _ := fine.Parameter("y"); res.Outcome != OutcomeSolved {
		t.Errorf("fine: y outcome = %s, want solved", res.Outcome)
	}

	fails := r.Failures()
	if len(fails) != 1 || fails[0].Code != diagnostics.ErrA003 {
		t.Fatalf("failures = %v, want one A003", fails)
	}
}

func TestScopeStackRestoredForNestedFunctions(t *testing.T) {
	src := "function a(p) { function b(q) { return q * 1 } return p * 1 }"
	p := frontend.Load("test.js", src)
	a, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	w := &walker{svc: a.svc, operators: a.operators, logger: a.logger, report: &Report{}}
	p.AST.Accept(w)

	if len(w.scopes) != 0 {
		t.Fatalf("scope stack depth = %d after walk", len(w.scopes))
	}
	// p * 1 comes after b's body; it must land in a's scope again.
	res, _ := w.report.Function("a").Parameter("p")
	if res.Outcome != OutcomeSolved {
		t.Errorf("p outcome = %s, want solved", res.Outcome)
	}
}

func TestConstrainUnregisteredParameter(t *testing.T) {
	p := frontend.Load("test.js", "function f(a) {}")
	fn := p.AST.Statements[0].(*ast.FunctionDeclaration)
	s := NewScope(nil, fn)
	s.RegisterParameters()

	if _, ok := s.Parameter("b"); ok {
		t.Errorf("b should not be registered")
	}
	err := s.ConstrainParameter("b", typesystem.Number)
	var ie *InternalError
	if !errors.As(err, &ie) || ie.Function != "f" {
		t.Fatalf("err = %v, want InternalError in f", err)
	}
	if err := s.ConstrainParameter("a", typesystem.Number); err != nil {
		t.Fatalf("a: %v", err)
	}
	rec, _ := s.Parameter("a")
	if len(rec.KnownTypes) != 1 {
		t.Errorf("a: known types = %v", rec.KnownTypes)
	}
}

func TestDuplicateParametersShareConstraints(t *testing.T) {
	p := frontend.Load("test.js", "function f(x, x) { return x * 2 }")
	fn := p.AST.Statements[0].(*ast.FunctionDeclaration)
	s := NewScope(nil, fn)
	s.RegisterParameters()
	if err := s.ConstrainParameter("x", typesystem.Number); err != nil {
		t.Fatal(err)
	}

	results := s.Resolve(p)
	if len(results) != 2 {
		t.Fatalf("expected a result per declaration, got %d", len(results))
	}
	for i, res := range results {
		if res.Outcome != OutcomeSolved || res.Count != 1 {
			t.Errorf("declaration %d: outcome = %s, count = %d", i, res.Outcome, res.Count)
		}
		if res.Param != fn.Parameters[i] {
			t.Errorf("declaration %d: wrong parameter node", i)
		}
	}
}
