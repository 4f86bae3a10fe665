package interp

import (
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/value"
)

func init() {
	registerBuiltins(map[string]builtinFunc{
		"pulseIn":  biPulseIn,
		"shiftOut": biShiftOut,
		"shiftIn":  biShiftIn,
	})
}

func biPulseIn(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	level := arg(args, 1).ToInt32()
	rec := command.New(command.TypePulseIn).
		Set("function", "pulseIn").
		Set("pin", pin).
		Set("value", level)
	return i.externalRead("pulseIn", rec, pinKey(pin), func() *value.Value {
		return value.Int32(i.mock.PulseIn())
	})
}

func biShiftOut(i *Interpreter, args []*value.Value) *value.Value {
	i.emitNow(command.New(command.TypeFunctionCall).
		Set("function", "shiftOut").
		Set("arguments", argValuesToAny(args)))
	return value.Null()
}

func biShiftIn(i *Interpreter, args []*value.Value) *value.Value {
	rec := command.New(command.TypeShiftIn).
		Set("function", "shiftIn").
		Set("requestType", "shiftIn")
	return i.externalRead("shiftIn", rec, "", func() *value.Value {
		return value.Int32(i.mock.ShiftIn())
	})
}
