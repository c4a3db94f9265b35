package checker_test

import (
	"context"
	"strings"
	"testing"

	"github.com/funvibe/typeinfer/internal/checker"
	"github.com/funvibe/typeinfer/internal/config"
	"github.com/funvibe/typeinfer/internal/verify"
)

func check(t *testing.T, filename, src string, opts config.CompilerOptions) verify.Program {
	t.Helper()
	p, err := checker.New().NewProgram(context.Background(), filename, src, opts)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	return p
}

func codes(ds []verify.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func TestSemanticDiagnostics(t *testing.T) {
	opts := config.Default().CompilerOptions

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"clean", "function f(x: number) { return x * 10 }", nil},
		{"implicit any", "function f(x, y: number) { return y * 2 }", []string{checker.CodeImplicitAny}},
		{"default value is not implicit any", "function f(y: number, x = 1) { return y }", nil},
		{"unknown type name", "function f(x: Foo) { return x }", []string{checker.CodeCannotFindName}},
		{"string on the left of *", "function f(s: string, n: number) { return s * n }", []string{checker.CodeArithmeticLeft}},
		{"literal on the right of -", "function f(n: number) { return n - 'a' }", []string{checker.CodeArithmeticRight}},
		{"boolean in bitwise op", "function f(n: number) { return true | n }", []string{checker.CodeArithmeticLeft}},
		{"unknown operand", "function f(u: unknown) { return u * 2 }", []string{checker.CodeIsUnknown}},
		{"null operand under strict", "function f(n: number) { return n * null }", []string{checker.CodeNullValue}},
		{"in with number key", "function f(k: number, o: object) { return k in o }", nil},
		{"in with boolean key", "function f(o: object) { return true in o }", []string{checker.CodeInLeft}},
		{"in with primitive target", "function f(k: string, n: number) { return k in n }", []string{checker.CodeInRight}},
		{"call argument count", "function f(a: number) { return a * 2 }\nf(1, 2)", []string{checker.CodeArgumentCount}},
		{"call argument type", "function f(a: number) { return a * 2 }\nf('x')", []string{checker.CodeArgumentNotAssignable}},
		{"call with matching type", "function f(a: number) { return a * 2 }\nf(3)", nil},
		{"call with optional argument omitted", "function f(a: number, b = 2) { return a * b }\nf(3)", nil},
		{"unresolved callee ignored", "function f(a: number) { return g('x', a) }", nil},
		{"any accepts everything", "function f(a: any) { return a * 2 }\nf('x')", nil},
		{"errors inside nested calls", "function f(a: number) { return a }\nf(f('x'))", []string{checker.CodeArgumentNotAssignable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := check(t, "test.ts", tt.input, opts)
			if syn := p.SyntacticDiagnostics(); len(syn) > 0 {
				t.Fatalf("unexpected syntax errors: %v", syn)
			}
			got := codes(p.SemanticDiagnostics())
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("codes = %v, want %v\n%v", got, tt.want, p.SemanticDiagnostics())
			}
		})
	}
}

func TestDiagnosticPositionsAndMessages(t *testing.T) {
	src := "function f(a: number, b: number) {\n  return a * b\n}\nf(1)\nf('s', 2)\n"
	p := check(t, "test.ts", src, config.Default().CompilerOptions)
	ds := p.SemanticDiagnostics()
	if len(ds) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", ds)
	}
	if ds[0].Line != 4 || ds[0].Column != 1 || ds[0].Message != "Expected 2 arguments, but got 1." {
		t.Errorf("first = %+v", ds[0])
	}
	if ds[1].Line != 5 || ds[1].Column != 3 || ds[1].File != "test.ts" {
		t.Errorf("second = %+v", ds[1])
	}
	if ds[1].Message != "Argument of type 'string' is not assignable to parameter of type 'number'." {
		t.Errorf("message = %q", ds[1].Message)
	}
}

func TestRelaxedOptions(t *testing.T) {
	opts := config.Default().CompilerOptions
	opts.NoImplicitAny = false
	opts.Strict = false

	p := check(t, "test.ts", "function f(a, n: number) { return n * null }\nf(1, null)", opts)
	if ds := p.SemanticDiagnostics(); len(ds) != 0 {
		t.Errorf("expected no diagnostics without strict checks, got %v", ds)
	}
}

func TestPlainJavaScriptSkipsImplicitAny(t *testing.T) {
	p := check(t, "test.js", "function f(x) { return x * 2 }", config.Default().CompilerOptions)
	if ds := p.SemanticDiagnostics(); len(ds) != 0 {
		t.Errorf("JavaScript parameters are not implicitly any, got %v", ds)
	}

	p = check(t, "test.js", "function f(x: number) { return x * 2 }", config.Default().CompilerOptions)
	syn := p.SyntacticDiagnostics()
	if len(syn) != 1 || syn[0].Code != checker.CodeAnnotationInJS {
		t.Errorf("syntactic = %v, want one %s", syn, checker.CodeAnnotationInJS)
	}
}

func TestSyntacticDiagnostics(t *testing.T) {
	p := check(t, "test.ts", "function f(a: number {\n}", config.Default().CompilerOptions)
	syn := p.SyntacticDiagnostics()
	if len(syn) == 0 {
		t.Fatal("expected syntax errors")
	}
	if syn[0].Code != checker.CodeTokenExpected || syn[0].Line != 1 || syn[0].File != "test.ts" {
		t.Errorf("first syntax error = %+v", syn[0])
	}
}

func TestOptionsDiagnostics(t *testing.T) {
	opts := config.Default().CompilerOptions
	if ds := check(t, "test.ts", "", opts).OptionsDiagnostics(); len(ds) != 0 {
		t.Fatalf("default options should be valid, got %v", ds)
	}

	opts.Target = "es2099"
	opts.Module = "commonjs"
	opts.ModuleResolution = "maven"
	ds := check(t, "test.ts", "", opts).OptionsDiagnostics()
	if len(ds) != 2 {
		t.Fatalf("expected 2 option errors, got %v", ds)
	}
	if !strings.HasPrefix(ds[0].Message, "Argument for '--target' option must be: 'es3', 'es5'") {
		t.Errorf("target message = %q", ds[0].Message)
	}
	if !strings.Contains(ds[1].Message, "'--moduleResolution'") || ds[1].Code != checker.CodeInvalidOptionValue {
		t.Errorf("moduleResolution diagnostic = %+v", ds[1])
	}
}

func TestDeclarationAndGlobalAreEmpty(t *testing.T) {
	p := check(t, "test.ts", "function f(a) {}", config.Default().CompilerOptions)
	if p.DeclarationDiagnostics() != nil || p.GlobalDiagnostics() != nil {
		t.Error("declaration and global diagnostics should be empty")
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := checker.New().NewProgram(ctx, "a.ts", "", config.CompilerOptions{}); err == nil {
		t.Fatal("expected an error for a canceled context")
	}
}

func TestDriverRoundTrip(t *testing.T) {
	driver := verify.NewDriver(checker.New())
	res, err := driver.Verify(context.Background(), "a.ts", "function f(x: number) {\n  return x * 10;\n}\n", config.Default().CompilerOptions)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passed() {
		t.Errorf("annotated output should verify cleanly, got %v", res.All())
	}
}
