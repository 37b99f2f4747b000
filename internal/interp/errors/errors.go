// Package errors defines the three error kinds the interpreter surfaces to
// its host (spec.md §7): name, type, and fault. These are the interpreter's
// own faults — undefined identifiers, type mismatches, nil dereferences —
// and are never catchable by Brewin code, unlike a v4 raise (see
// internal/interp/runtime.Signal for the catchable counterpart).
package errors

import "fmt"

// Kind is one of the three host-surfaced error kinds (spec.md §6.4).
type Kind string

const (
	NameError  Kind = "NAME_ERROR"
	TypeError  Kind = "TYPE_ERROR"
	FaultError Kind = "FAULT_ERROR"
)

// Error is the value the interpreter hands to its error-reporting front
// end. It implements the standard error interface so internal plumbing can
// pass it through ordinary Go error returns.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewName builds a name-kind error (undefined variable/function/field,
// duplicate definition, arity mismatch, unknown struct type).
func NewName(format string, args ...any) *Error {
	return &Error{Kind: NameError, Message: fmt.Sprintf(format, args...)}
}

// NewType builds a type-kind error (incompatible operands/assignment,
// wrong return type, non-bool condition, non-string raise operand, void in
// expression position).
func NewType(format string, args ...any) *Error {
	return &Error{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

// NewFault builds a fault-kind error (nil struct dereference, an uncaught
// raise escaping main).
func NewFault(format string, args ...any) *Error {
	return &Error{Kind: FaultError, Message: fmt.Sprintf(format, args...)}
}

// As reports whether err is an *Error of the given kind, for callers (the
// CLI, test assertions) that want to branch on error category.
func As(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
