package errors

import (
	"fmt"
	"strings"
)

// StackFrame is one frame in a call stack: the function being executed and
// the byte offset of the call site in the Compact AST stream (there being
// no source line/column once the text has been reduced to a binary AST).
type StackFrame struct {
	FunctionName string
	Offset       int
}

// String renders "FunctionName [offset: N]", or just the name if no offset
// is known.
func (sf StackFrame) String() string {
	if sf.Offset == 0 {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s [offset: %d]", sf.FunctionName, sf.Offset)
}

// StackTrace is a call stack, oldest frame first (spec §4.6 GetCallStack).
type StackTrace []StackFrame

// String renders the trace newest-frame-first, one per line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Top returns the most recent frame, or nil if empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Depth returns the number of frames.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewStackFrame builds a StackFrame.
func NewStackFrame(functionName string, offset int) StackFrame {
	return StackFrame{FunctionName: functionName, Offset: offset}
}
