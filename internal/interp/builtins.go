package interp

import (
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/value"
)

// builtinFunc is an Arduino Intrinsic implementation (spec §4.7): it
// receives already-evaluated, left-to-right argument values and returns
// the call's result, emitting whatever commands its category requires.
type builtinFunc func(i *Interpreter, args []*value.Value) *value.Value

// builtinTable maps a bare or dotted intrinsic name to its implementation.
// Populated by init() across the builtins_*.go files so each file stays
// focused on one intrinsic family, mirroring the teacher's
// internal/interp/builtins_*.go split.
var builtinTable = map[string]builtinFunc{}

func registerBuiltins(table map[string]builtinFunc) {
	for name, fn := range table {
		builtinTable[name] = fn
	}
}

func arg(args []*value.Value, idx int) *value.Value {
	if idx < 0 || idx >= len(args) {
		return value.Null()
	}
	return args[idx]
}

// externalRead implements the common request/suspend-or-mock shape shared
// by digitalRead, analogRead, millis, micros, pulseIn, and shiftIn (spec
// §4.9): emit the request command, then either return the deterministic
// mock value immediately (sync mode) or suspend until the host answers
// (async mode).
func (i *Interpreter) externalRead(fnName string, rec *command.Record, staticKey string, mockVal func() *value.Value) *value.Value {
	var reqID string
	if i.Options.SyncMode {
		reqID = staticRequestID(fnName, staticKey)
	} else {
		reqID = i.nextAsyncRequestID(fnName)
	}
	rec.Set("requestId", reqID)
	i.emitNow(rec)

	if i.Options.SyncMode {
		return mockVal()
	}
	return i.awaitResponse(reqID)
}
