// Package errors implements the engine's two-layer error model, grounded
// on the teacher's internal/errors (source-context formatting) and
// internal/interp/errors (categorized runtime errors) packages.
//
// CompilerError reports malformed Compact AST *input* (spec §6.1's
// reader-level failures): since the engine consumes pre-parsed binary
// input rather than source text, there is no source line to display, so
// the teacher's line/column/caret formatting degrades to a byte-offset
// marker. InterpreterError is the categorized runtime error taxonomy
// (spec §7) surfaced as ERROR commands.
package errors

import (
	"fmt"
	"strings"
)

// CompilerError reports a structurally invalid Compact AST stream.
type CompilerError struct {
	Message string
	Offset  int
}

// NewCompilerError creates a CompilerError anchored at a byte offset in the
// Compact AST stream.
func NewCompilerError(offset int, message string) *CompilerError {
	return &CompilerError{Offset: offset, Message: message}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format()
}

// Format renders the error with a byte-offset header, the closest this
// engine can get to the teacher's line/column/caret display when there is
// no source text to point into.
func (e *CompilerError) Format() string {
	return fmt.Sprintf("Error in compact AST stream at byte offset %d: %s", e.Offset, e.Message)
}

// FormatErrors renders multiple CompilerErrors, numbered, matching the
// teacher's multi-error banner.
func FormatErrors(errs []*CompilerError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("AST decoding failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d] %s\n", i+1, len(errs), e.Format()))
	}
	return sb.String()
}

// Category is the error taxonomy bucket (spec §7).
type Category string

const (
	CategoryUndefinedVariable Category = "UndefinedVariable"
	CategoryConstWrite        Category = "ConstWriteError"
	CategoryType              Category = "TypeError"
	CategoryBounds            Category = "BoundsError"
	CategoryNullPointer       Category = "NullPointerError"
	CategoryArithmetic        Category = "ArithmeticError"
	CategoryStackOverflow     Category = "StackOverflowError"
	CategoryMemory            Category = "MemoryError"
	CategoryPreprocessor      Category = "PreprocessorError"
	CategoryUnknownFunction   Category = "UnknownFunction"
)

// InterpreterError is a runtime error with the category required to fill
// an ERROR command's errorType field (spec §6.2/§7).
type InterpreterError struct {
	Category Category
	Message  string
}

// Error implements the error interface.
func (e *InterpreterError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// New constructs an InterpreterError.
func New(cat Category, format string, args ...any) *InterpreterError {
	return &InterpreterError{Category: cat, Message: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether cat may latch safe mode (spec §7): only
// StackOverflowError and MemoryError are fatal-capable; every other
// category lets execution continue.
func (c Category) IsFatal() bool {
	return c == CategoryStackOverflow || c == CategoryMemory
}
