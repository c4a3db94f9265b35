// Package report renders inference and verification results for people and
// stores them for later inspection.
package report

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/typeinfer/internal/analyzer"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/prettyprinter"
	"github.com/funvibe/typeinfer/internal/verify"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBold   = "\033[1m"
)

// Printer writes human-readable reports. Color is on when the output is a
// terminal and NO_COLOR is not set.
type Printer struct {
	out   io.Writer
	Color bool
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w, Color: colorEnabled(w)}
}

func colorEnabled(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func (p *Printer) paint(color, s string) string {
	if !p.Color {
		return s
	}
	return color + s + ansiReset
}

// PrintReport lists every function, headed by its signature with the solved
// types filled in, and the outcome of each parameter.
func (p *Printer) PrintReport(r *analyzer.Report) {
	if len(r.Functions) == 0 {
		fmt.Fprintf(p.out, "%s: no function declarations\n", r.File)
		return
	}
	for _, fn := range r.Functions {
		types := make(map[string]string, len(fn.Parameters))
		for _, param := range fn.Parameters {
			if param.Outcome == analyzer.OutcomeSolved {
				types[param.Name] = param.Type.String()
			}
		}
		fmt.Fprintln(p.out, p.paint(ansiBold, prettyprinter.Signature(fn.Function, types)))
		if fn.Err != nil {
			fmt.Fprintf(p.out, "  %s\n", p.paint(ansiRed, "aborted: "+fn.Err.Error()))
			continue
		}
		if len(fn.Parameters) == 0 {
			fmt.Fprintln(p.out, "  (no parameters)")
		}
		for _, param := range fn.Parameters {
			switch param.Outcome {
			case analyzer.OutcomeSolved:
				fmt.Fprintf(p.out, "  %s: %s\n", param.Name, p.paint(ansiGreen, param.Type.String()))
			case analyzer.OutcomeConflicting:
				fmt.Fprintf(p.out, "  %s: %s\n", param.Name, p.paint(ansiRed, param.Message()))
			default:
				fmt.Fprintf(p.out, "  %s: %s\n", param.Name, p.paint(ansiYellow, param.Message()))
			}
		}
	}
}

// PrintVerification summarizes a verification result, listing each
// diagnostic.
func (p *Printer) PrintVerification(res *verify.Result) {
	if res.Passed() {
		fmt.Fprintf(p.out, "%s %s\n", res.File, p.paint(ansiGreen, "verified: no diagnostics"))
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", res.File, p.paint(ansiRed, fmt.Sprintf("unsound: %d diagnostic(s)", res.Count())))
	for _, d := range res.All() {
		fmt.Fprintf(p.out, "  %s\n", d)
	}
}

// PrintErrors writes one line per diagnostic error.
func (p *Printer) PrintErrors(errs []*diagnostics.DiagnosticError) {
	for _, err := range errs {
		fmt.Fprintln(p.out, p.paint(ansiRed, err.Error()))
	}
}

// WriteDiagnostics logs every diagnostic of res, one line each, grouped by
// category in reporting order.
func WriteDiagnostics(l *log.Logger, res *verify.Result) {
	for _, c := range verify.Categories {
		for _, d := range res.Diagnostics[c] {
			l.Println(d.String())
		}
	}
}
