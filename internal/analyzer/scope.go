package analyzer

import (
	"fmt"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/typesystem"
)

// ErrI001 marks a constraint aimed at a parameter the scope never registered.
// It means the symbol information and the scope disagree.
const ErrI001 diagnostics.ErrorCode = "I001"

// InternalError reports a broken invariant of the analysis. It aborts the
// function being analyzed; other functions are unaffected.
type InternalError struct {
	Code     diagnostics.ErrorCode
	Function string
	Name     string
	Message  string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error [%s] in function %s: %s", e.Code, e.Function, e.Message)
}

// ParameterRecord accumulates the types a parameter's uses imply. KnownTypes
// only grows, in the order the uses were met.
type ParameterRecord struct {
	Name       string
	Param      *ast.Parameter
	KnownTypes []typesystem.Type
}

// Scope is the analysis state of one function declaration.
type Scope struct {
	Parent   *Scope
	Name     string
	Function *ast.FunctionDeclaration

	params []*ParameterRecord
	byName map[string]*ParameterRecord
}

func NewScope(parent *Scope, fn *ast.FunctionDeclaration) *Scope {
	return &Scope{
		Parent:   parent,
		Name:     fn.Name.Value,
		Function: fn,
		byName:   make(map[string]*ParameterRecord),
	}
}

// RegisterParameters creates an empty record per declared parameter, in
// declaration order. A repeated name refers to its last declaration, and
// Resolve classifies every declaration of it from that record.
func (s *Scope) RegisterParameters() {
	for _, param := range s.Function.Parameters {
		rec := &ParameterRecord{Name: param.Name.Value, Param: param}
		s.params = append(s.params, rec)
		s.byName[rec.Name] = rec
	}
}

// Parameter returns the record for name. A missing name is not an error.
func (s *Scope) Parameter(name string) (*ParameterRecord, bool) {
	rec, ok := s.byName[name]
	return rec, ok
}

// Parameters returns the records in declaration order.
func (s *Scope) Parameters() []*ParameterRecord {
	return s.params
}

// ConstrainParameter appends t to the constraints of name.
func (s *Scope) ConstrainParameter(name string, t typesystem.Type) error {
	rec, ok := s.byName[name]
	if !ok {
		return &InternalError{
			Code:     ErrI001,
			Function: s.Name,
			Name:     name,
			Message:  fmt.Sprintf("constraint on unregistered parameter %s", name),
		}
	}
	rec.KnownTypes = append(rec.KnownTypes, t)
	return nil
}

// Outcome classifies a parameter once its function has been walked.
type Outcome int

const (
	OutcomeSolved        Outcome = iota // Exactly one distinct type
	OutcomeUnconstrained                // No constraint at all
	OutcomeConflicting                  // Two or more distinct types
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeUnconstrained:
		return "unconstrained"
	case OutcomeConflicting:
		return "conflicting"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// ParameterResult is the resolved state of one parameter.
type ParameterResult struct {
	Name    string
	Param   *ast.Parameter
	Outcome Outcome
	Type    typesystem.Type   // Set when solved
	Types   []typesystem.Type // Distinct constraint types in first-seen order
	Count   int               // Number of constraints recorded
}

func (r ParameterResult) Message() string {
	switch r.Outcome {
	case OutcomeSolved:
		return fmt.Sprintf("parameter %s inferred as %s", r.Name, r.Type)
	case OutcomeConflicting:
		return fmt.Sprintf("could not determine a single type for parameter %s (%s)", r.Name, joinTypes(r.Types))
	default:
		return fmt.Sprintf("insufficient usage evidence for parameter %s", r.Name)
	}
}

// Resolve classifies every parameter. Two constraints count as one type when
// the service says they are the same type.
func (s *Scope) Resolve(svc TypeService) []ParameterResult {
	results := make([]ParameterResult, 0, len(s.params))
	for _, rec := range s.params {
		known := s.byName[rec.Name].KnownTypes
		res := ParameterResult{Name: rec.Name, Param: rec.Param, Count: len(known)}
		for _, t := range known {
			if !containsType(svc, res.Types, t) {
				res.Types = append(res.Types, t)
			}
		}
		switch len(res.Types) {
		case 0:
			res.Outcome = OutcomeUnconstrained
		case 1:
			res.Outcome = OutcomeSolved
			res.Type = res.Types[0]
		default:
			res.Outcome = OutcomeConflicting
		}
		results = append(results, res)
	}
	return results
}

func containsType(svc TypeService, types []typesystem.Type, t typesystem.Type) bool {
	for _, existing := range types {
		if svc.SameType(existing, t) {
			return true
		}
	}
	return false
}

func joinTypes(types []typesystem.Type) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ", "
		}
		out += t.String()
	}
	return out
}
