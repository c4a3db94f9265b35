package analyzer_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/funvibe/typeinfer/internal/analyzer"
	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/frontend"
	"github.com/funvibe/typeinfer/internal/token"
	"github.com/funvibe/typeinfer/internal/typesystem"
)

// infer parses src and runs the analysis over it, failing on parse errors.
func infer(t *testing.T, src string, opts ...analyzer.Option) *analyzer.Report {
	t.Helper()
	p := frontend.Load("test.js", src)
	if len(p.Errors) > 0 {
		t.Fatalf("parse errors: %v", p.Errors)
	}
	a, err := analyzer.New(p, opts...)
	if err != nil {
		t.Fatalf("analyzer.New: %v", err)
	}
	return a.Infer(p.AST)
}

// param fetches a parameter result, failing when it is missing.
func param(t *testing.T, r *analyzer.Report, fn, name string) analyzer.ParameterResult {
	t.Helper()
	f := r.Function(fn)
	if f == nil {
		t.Fatalf("no result for function %s", fn)
	}
	if f.Err != nil {
		t.Fatalf("function %s aborted: %v", fn, f.Err)
	}
	p, ok := f.Parameter(name)
	if !ok {
		t.Fatalf("no result for parameter %s of %s", name, fn)
	}
	return p
}

func expectSolved(t *testing.T, p analyzer.ParameterResult, want typesystem.Type) {
	t.Helper()
	if p.Outcome != analyzer.OutcomeSolved {
		t.Fatalf("parameter %s: outcome = %s, want solved (%s)", p.Name, p.Outcome, p.Message())
	}
	if !typesystem.Identical(p.Type, want) {
		t.Errorf("parameter %s: type = %s, want %s", p.Name, p.Type, want)
	}
}

func TestSingleUseSolves(t *testing.T) {
	r := infer(t, "function foo(x) {\n  return x * 10;\n}\n")
	p := param(t, r, "foo", "x")
	expectSolved(t, p, typesystem.Number)
	if p.Count != 1 {
		t.Errorf("constraint count = %d, want 1", p.Count)
	}
	if !r.Solved() {
		t.Errorf("report should be solved")
	}
	if len(r.Failures()) != 0 {
		t.Errorf("unexpected failures: %v", r.Failures())
	}
}

func TestBothOperandsConstrained(t *testing.T) {
	r := infer(t, "function f(x, y) { return x * y }")
	expectSolved(t, param(t, r, "f", "x"), typesystem.Number)
	expectSolved(t, param(t, r, "f", "y"), typesystem.Number)
}

func TestOperandPositions(t *testing.T) {
	r := infer(t, "function has(key, obj) { return key in obj }")
	expectSolved(t, param(t, r, "has", "key"), typesystem.String)
	expectSolved(t, param(t, r, "has", "obj"), typesystem.Object)
}

func TestOperatorRows(t *testing.T) {
	tests := []struct {
		expr string
		want typesystem.Type // nil: no constraint
	}{
		{"x * 2", typesystem.Number},
		{"x / 2", typesystem.Number},
		{"x % 2", typesystem.Number},
		{"x - 2", typesystem.Number},
		{"x ** 2", typesystem.Number},
		{"x & 1", typesystem.Number},
		{"x | 1", typesystem.Number},
		{"x ^ 1", typesystem.Number},
		{"x << 1", typesystem.Number},
		{"x >> 1", typesystem.Number},
		{"x >>> 1", typesystem.Number},
		{"x in {}", typesystem.String},
		{"x + 1", nil},
		{"x < 1", nil},
		{"x === 1", nil},
		{"x && 1", nil},
		{"x -= 1", nil},
		{"x = 1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			r := infer(t, "function f(x) { return "+tt.expr+" }")
			p := param(t, r, "f", "x")
			if tt.want == nil {
				if p.Outcome != analyzer.OutcomeUnconstrained {
					t.Errorf("outcome = %s, want unconstrained", p.Outcome)
				}
				return
			}
			expectSolved(t, p, tt.want)
		})
	}
}

func TestConflictingConstraints(t *testing.T) {
	r := infer(t, "function f(x, o) { return (x in o) * x }")
	p := param(t, r, "f", "x")
	if p.Outcome != analyzer.OutcomeConflicting {
		t.Fatalf("outcome = %s, want conflicting", p.Outcome)
	}
	if len(p.Types) != 2 || !typesystem.Identical(p.Types[0], typesystem.String) || !typesystem.Identical(p.Types[1], typesystem.Number) {
		t.Errorf("distinct types = %v, want [string number]", p.Types)
	}
	if !strings.Contains(p.Message(), "could not determine a single type for parameter x") {
		t.Errorf("message = %q", p.Message())
	}
	expectSolved(t, param(t, r, "f", "o"), typesystem.Object)

	if r.Solved() {
		t.Errorf("report with a conflict must not be solved")
	}
	fails := r.Failures()
	if len(fails) != 1 || fails[0].Code != diagnostics.ErrA001 {
		t.Fatalf("failures = %v, want one A001", fails)
	}
	if fails[0].File != "test.js" || fails[0].Token.Column != 12 {
		t.Errorf("failure position = %s", fails[0].Error())
	}
}

func TestRepeatedTypeStillSolves(t *testing.T) {
	r := infer(t, "function f(x) { return x * x - x % 3 }")
	p := param(t, r, "f", "x")
	expectSolved(t, p, typesystem.Number)
	if p.Count != 3 {
		t.Errorf("constraint count = %d, want 3", p.Count)
	}
	if len(p.Types) != 1 {
		t.Errorf("distinct types = %v, want one", p.Types)
	}
}

func TestUnusedParameterIsUnconstrained(t *testing.T) {
	r := infer(t, "function f(a, b) { return a * 2 }")
	p := param(t, r, "f", "b")
	if p.Outcome != analyzer.OutcomeUnconstrained {
		t.Fatalf("outcome = %s, want unconstrained", p.Outcome)
	}
	if p.Type != nil {
		t.Errorf("unconstrained parameter must not carry a type, got %s", p.Type)
	}
	if p.Message() != "insufficient usage evidence for parameter b" {
		t.Errorf("message = %q", p.Message())
	}
	fails := r.Failures()
	if len(fails) != 1 || fails[0].Code != diagnostics.ErrA002 {
		t.Fatalf("failures = %v, want one A002", fails)
	}
}

func TestUnknownNodesDoNotStopAnalysis(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	src := `function f(x) {
  var y = 2;
  if (y) { y = 3 }
  return x - 1;
}`
	r := infer(t, src, analyzer.WithLogger(logger))
	expectSolved(t, param(t, r, "f", "x"), typesystem.Number)

	if len(r.Unknown) != 2 {
		t.Fatalf("unknown nodes = %d, want 2", len(r.Unknown))
	}
	out := buf.String()
	for _, name := range []string{ast.VariableStatementName, ast.IfStatementName} {
		if !strings.Contains(out, "unknown node kind "+name) {
			t.Errorf("log does not mention %s:\n%s", name, out)
		}
	}
	if !strings.HasPrefix(out, "test.js:2:3: ") {
		t.Errorf("log line should carry the position, got %q", out)
	}
}

func TestNonParameterOperandsIgnored(t *testing.T) {
	src := `
var limit = 10
function outer(p) {
  function inner(q) { return p * q * limit }
  return 0
}
`
	r := infer(t, src)
	if len(r.Functions) != 2 || r.Functions[0].Name != "outer" || r.Functions[1].Name != "inner" {
		t.Fatalf("functions should be listed outer first, got %d", len(r.Functions))
	}
	expectSolved(t, param(t, r, "inner", "q"), typesystem.Number)
	if p := param(t, r, "outer", "p"); p.Outcome != analyzer.OutcomeUnconstrained {
		t.Errorf("closure use must not constrain the outer parameter, outcome = %s", p.Outcome)
	}
}

func TestTopLevelExpressionsIgnored(t *testing.T) {
	r := infer(t, "var a = 1\na * 2\n'use strict'")
	if len(r.Functions) != 0 {
		t.Errorf("expected no functions, got %d", len(r.Functions))
	}
	if !r.Solved() {
		t.Errorf("a file without functions is trivially solved")
	}
}

func TestCallArgumentsAreTraversed(t *testing.T) {
	r := infer(t, "function f(x, cb) { return cb(x * 2) }")
	expectSolved(t, param(t, r, "f", "x"), typesystem.Number)
	if p := param(t, r, "f", "cb"); p.Outcome != analyzer.OutcomeUnconstrained {
		t.Errorf("a call must not constrain its callee, outcome = %s", p.Outcome)
	}
}

func TestObjectLiteralValuesAreTraversed(t *testing.T) {
	r := infer(t, "function f(x) { return { v: x / 2 } }")
	expectSolved(t, param(t, r, "f", "x"), typesystem.Number)
}

func TestRegisterExtendsTable(t *testing.T) {
	p := frontend.Load("test.js", "function f(s) { return s + 'suffix' }")
	table, err := analyzer.BuildOperatorTable(p)
	if err != nil {
		t.Fatal(err)
	}
	table.Register(token.PLUS, analyzer.OperatorSignature{
		ParameterTypes: [2]typesystem.Type{typesystem.String, typesystem.String},
	})
	sig, ok := table.Lookup(token.PLUS)
	if !ok || sig.Operator != token.PLUS {
		t.Fatalf("registered row not found: %+v", sig)
	}

	a, err := analyzer.New(p, analyzer.WithOperators(table))
	if err != nil {
		t.Fatal(err)
	}
	r := a.Infer(p.AST)
	expectSolved(t, param(t, r, "f", "s"), typesystem.String)
}

func TestBuildOperatorTable(t *testing.T) {
	table, err := analyzer.BuildOperatorTable(frontend.Load("t.js", ""))
	if err != nil {
		t.Fatal(err)
	}
	ops := table.Operators()
	if len(ops) != 12 {
		t.Errorf("rows = %v, want 12 operators", ops)
	}
	for _, op := range []token.TokenType{token.PLUS, token.LT, token.EQ, token.ASSIGN} {
		if _, ok := table.Lookup(op); ok {
			t.Errorf("operator %s must have no row", op)
		}
	}
}

type blindService struct{ *frontend.Program }

func (blindService) ContextualType(ast.Expression) typesystem.Type { return nil }

func TestBuildOperatorTableNeedsLiteralTypes(t *testing.T) {
	if _, err := analyzer.New(blindService{frontend.Load("t.js", "")}); err == nil {
		t.Fatal("expected an error when the service has no literal types")
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[analyzer.Outcome]string{
		analyzer.OutcomeSolved:        "solved",
		analyzer.OutcomeUnconstrained: "unconstrained",
		analyzer.OutcomeConflicting:   "conflicting",
	}
	for o, want := range tests {
		if o.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(o), o.String(), want)
		}
	}
}
