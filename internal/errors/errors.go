// Package errors gives the core's two externally-visible failure modes —
// a failed Import and a hard runtime abort (§7) — the same rich,
// location-carrying error shape the teacher's front end used for syntax
// and runtime errors, trimmed to what a bytecode core actually has:
// no source line, no column, just the file the failure happened in.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType names the kind of failure.
type ErrorType string

const (
	ImportError  ErrorType = "ImportError"
	RuntimeError ErrorType = "RuntimeError"
)

// MercError is an error with a source file and an optional call-stack
// trace, reported by the driver's top-level recover().
type MercError struct {
	Type      ErrorType
	Message   string
	File      string
	CallStack []StackFrame
}

// StackFrame names one activation on the call stack at the time of
// failure (§3 "call_stack").
type StackFrame struct {
	Function string
}

// Error implements the error interface.
func (e *MercError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", e.Type, e.Message)
	if e.File != "" {
		fmt.Fprintf(&sb, "  in %s\n", e.File)
	}
	if len(e.CallStack) > 0 {
		sb.WriteString("\nCall Stack:\n")
		for _, frame := range e.CallStack {
			fmt.Fprintf(&sb, "  at %s\n", frame.Function)
		}
	}
	return sb.String()
}

// NewImportError wraps a failure to read or decode an imported file.
func NewImportError(file string, cause error) *MercError {
	return &MercError{
		Type:    ImportError,
		Message: cause.Error(),
		File:    file,
	}
}

// NewRuntimeError describes a hard abort (§7): an unknown function on
// CallKnown, a non-Function on CallUnknown, or a missing Import path.
func NewRuntimeError(message string) *MercError {
	return &MercError{
		Type:    RuntimeError,
		Message: message,
	}
}

// WithStack attaches the active call stack to the error.
func (e *MercError) WithStack(stack []StackFrame) *MercError {
	e.CallStack = stack
	return e
}
