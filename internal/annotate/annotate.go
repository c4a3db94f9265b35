// Package annotate rewrites parameter lists with the types inference found.
package annotate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/typeinfer/internal/analyzer"
	"github.com/funvibe/typeinfer/internal/config"
)

// Policy decides what happens to a parameter inference could not solve.
type Policy string

const (
	PolicyOmit    Policy = config.UnsolvedOmit    // Leave it unannotated
	PolicyUnknown Policy = config.UnsolvedUnknown // Annotate it as unknown
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyOmit, PolicyUnknown:
		return Policy(s), nil
	case "":
		return PolicyOmit, nil
	}
	return "", fmt.Errorf("unknown unsolved-parameter policy %q (want %s or %s)", s, PolicyOmit, PolicyUnknown)
}

// Edit is one insertion into the source text.
type Edit struct {
	Offset    int    // Byte offset the text is inserted at
	Text      string // e.g. ": number"
	Function  string
	Parameter string
}

// Result is the rewritten source together with the edits that produced it,
// in source order.
type Result struct {
	Source string
	Edits  []Edit
}

// Lines splits the rewritten source into lines. Line terminators are
// dropped; a trailing newline yields a final empty line.
func (r *Result) Lines() []string {
	lines := strings.Split(r.Source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Changed reports whether any annotation was inserted.
func (r *Result) Changed() bool {
	return len(r.Edits) > 0
}

// Emit inserts `: type` after the name of every solved parameter of src.
// Unsolved parameters follow policy. Parameters that already carry an
// annotation and functions whose analysis aborted are left untouched, and
// every byte outside the insertion points is preserved.
func Emit(src string, report *analyzer.Report, policy Policy) *Result {
	var edits []Edit
	for _, fn := range report.Functions {
		if fn.Err != nil {
			continue
		}
		for _, p := range fn.Parameters {
			if p.Param == nil || p.Param.TypeAnnotation != nil {
				continue
			}
			var typeName string
			switch {
			case p.Outcome == analyzer.OutcomeSolved:
				typeName = p.Type.String()
			case policy == PolicyUnknown:
				typeName = config.UnknownTypeName
			default:
				continue
			}
			edits = append(edits, Edit{
				Offset:    p.Param.Name.Token.End(),
				Text:      ": " + typeName,
				Function:  fn.Name,
				Parameter: p.Name,
			})
		}
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].Offset < edits[j].Offset })

	// Apply back to front so earlier offsets stay valid.
	out := src
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		out = out[:e.Offset] + e.Text + out[e.Offset:]
	}
	return &Result{Source: out, Edits: edits}
}
