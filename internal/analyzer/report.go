package analyzer

import (
	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
)

// FunctionResult is the outcome of analyzing one function declaration.
type FunctionResult struct {
	Name       string
	Function   *ast.FunctionDeclaration
	Parameters []ParameterResult
	Err        error // Set when the analysis of this function was aborted
}

// Parameter returns the result for the parameter called name.
func (f *FunctionResult) Parameter(name string) (ParameterResult, bool) {
	for _, p := range f.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterResult{}, false
}

// Report collects the results of one inference run, with functions in
// declaration order (outer before inner).
type Report struct {
	File      string
	Functions []*FunctionResult
	Unknown   []*ast.UnknownNode // Constructs the walker skipped
}

// Function returns the first function declared with name.
func (r *Report) Function(name string) *FunctionResult {
	for _, f := range r.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Solved reports whether every parameter of every function got a type.
func (r *Report) Solved() bool {
	for _, f := range r.Functions {
		if f.Err != nil {
			return false
		}
		for _, p := range f.Parameters {
			if p.Outcome != OutcomeSolved {
				return false
			}
		}
	}
	return true
}

// Failures turns every unsolved parameter and aborted function into a
// diagnostic positioned at the offending declaration.
func (r *Report) Failures() []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError
	for _, f := range r.Functions {
		if f.Err != nil {
			err := diagnostics.NewError(diagnostics.ErrA003, f.Function.Name.Token, f.Err.Error())
			err.File = r.File
			errs = append(errs, err)
			continue
		}
		for _, p := range f.Parameters {
			var code diagnostics.ErrorCode
			switch p.Outcome {
			case OutcomeConflicting:
				code = diagnostics.ErrA001
			case OutcomeUnconstrained:
				code = diagnostics.ErrA002
			default:
				continue
			}
			err := diagnostics.NewError(code, p.Param.Name.Token, p.Message())
			err.File = r.File
			errs = append(errs, err)
		}
	}
	return errs
}
