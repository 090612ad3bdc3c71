// Package diag defines the Diagnostic error type returned by
// internal/resolver and internal/evaluator, grounded on the
// line/column/message shape of funvibe-funxy's analyzer diagnostics
// (*diagnostics.DiagnosticError, referenced from
// internal/analyzer/analyzer.go) but without a source position, since this
// evaluator's terms are constructed directly rather than parsed from text
// (parsing is an external collaborator's concern, out of scope here).
package diag

import "fmt"

// Kind distinguishes the two diagnostic categories of spec §7.
type Kind int

const (
	// TypeError is produced by internal/resolver: unbound reference, a
	// type mismatch in IF/EQ, or GET/SOME/IS_DEFINED applied to a
	// non-option.
	TypeError Kind = iota
	// RuntimeError is produced during evaluation: get(NONE), a shadowed
	// let, or a reference that failed to resolve at evaluation time.
	RuntimeError
)

// Diagnostic is the single error type surfaced by this module; it
// implements error so callers can use normal Go error handling, and its
// Error() string is exactly the message mandated by spec §7 so the host
// can log or pattern-match it verbatim.
type Diagnostic struct {
	Kind    Kind
	Message string
}

func (d *Diagnostic) Error() string { return d.Message }

// Typef builds a TypeError Diagnostic from a format string, mirroring the
// "Typecheck failed: ..." / "Typecheck failed for X: ..." message family.
func Typef(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

// Runtimef builds a RuntimeError Diagnostic from a format string.
func Runtimef(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: RuntimeError, Message: fmt.Sprintf(format, args...)}
}
