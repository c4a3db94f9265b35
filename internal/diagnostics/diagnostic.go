package diagnostics

import (
	"fmt"
	"sort"

	"github.com/funvibe/typeinfer/internal/token"
)

type ErrorCode string

// Parser errors
const (
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token missing
	ErrP003 ErrorCode = "P003" // illegal character or unterminated literal
	ErrP004 ErrorCode = "P004" // missing statement terminator
	ErrP005 ErrorCode = "P005" // type annotation outside annotated sources
	ErrP006 ErrorCode = "P006" // expression nesting too deep
)

// Analyzer errors
const (
	ErrA001 ErrorCode = "A001" // conflicting parameter constraints
	ErrA002 ErrorCode = "A002" // insufficient usage evidence
	ErrA003 ErrorCode = "A003" // function analysis aborted on an internal error
)

// Run errors
const (
	ErrR001 ErrorCode = "R001" // source could not be read
	ErrR002 ErrorCode = "R002" // verification could not run
	ErrR003 ErrorCode = "R003" // inference could not start
)

// Config errors
const (
	ErrC001 ErrorCode = "C001" // invalid configuration value
)

// DiagnosticError is a positioned, coded message produced by one of the
// pipeline stages.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: error [%s]: %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: error [%s]: %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// Sort orders errors by position, keeping insertion order for ties.
func Sort(errs []*DiagnosticError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Token.Line != errs[j].Token.Line {
			return errs[i].Token.Line < errs[j].Token.Line
		}
		return errs[i].Token.Column < errs[j].Token.Column
	})
}

// Dedupe drops errors that repeat an earlier one at the same position with the
// same code.
func Dedupe(errs []*DiagnosticError) []*DiagnosticError {
	seen := make(map[string]bool, len(errs))
	out := errs[:0]
	for _, err := range errs {
		key := fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, err)
	}
	return out
}
