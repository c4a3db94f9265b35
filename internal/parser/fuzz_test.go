package parser_test

import (
	"testing"

	"github.com/funvibe/typeinfer/internal/parser"
)

// FuzzParser feeds arbitrary text to the parser. It must not panic, and every
// diagnostic must point into the input.
func FuzzParser(f *testing.F) {
	f.Add("function f(a, b) { return a * b }")
	f.Add("function f(a: number = 1, b) {}")
	f.Add("x = { a: 1, 'b': [2], 3: c }; y?.z")
	f.Add("((((((((a))))))))")
	f.Add("function (")

	f.Fuzz(func(t *testing.T, input string) {
		for _, annotated := range []bool{false, true} {
			var opts []parser.Option
			if annotated {
				opts = append(opts, parser.WithTypeAnnotations())
			}
			program, errs := parser.Parse("fuzz.js", input, opts...)
			if program == nil {
				t.Fatal("Parse returned a nil program")
			}
			for _, err := range errs {
				if err.Token.Line < 1 || err.Token.Column < 1 {
					t.Fatalf("diagnostic without position: %v (input %q)", err, input)
				}
			}
		}
	})
}
