package interp

import (
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/value"
)

func init() {
	registerBuiltins(map[string]builtinFunc{
		"delay":             biDelay,
		"delayMicroseconds": biDelayMicros,
		"millis":            biMillis,
		"micros":            biMicros,
		"tone":              biTone,
		"noTone":            biNoTone,
	})
}

func biDelay(i *Interpreter, args []*value.Value) *value.Value {
	ms := arg(args, 0).ToInt32()
	i.emitNow(command.New(command.TypeDelay).Set("duration", ms))
	return value.Null()
}

func biDelayMicros(i *Interpreter, args []*value.Value) *value.Value {
	us := arg(args, 0).ToInt32()
	i.emitNow(command.New(command.TypeDelayMicros).Set("duration", us))
	return value.Null()
}

func biMillis(i *Interpreter, args []*value.Value) *value.Value {
	rec := command.New(command.TypeExternal).Set("function", "millis").Set("requestType", "millis")
	return i.externalRead("millis", rec, "", func() *value.Value {
		return value.Uint32(i.mock.Millis())
	})
}

func biMicros(i *Interpreter, args []*value.Value) *value.Value {
	rec := command.New(command.TypeExternal).Set("function", "micros").Set("requestType", "micros")
	return i.externalRead("micros", rec, "", func() *value.Value {
		return value.Uint32(i.mock.Micros())
	})
}

func biTone(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	freq := arg(args, 1).ToInt32()
	rec := command.New(command.TypeFunctionCall).Set("function", "tone").Set("arguments", argValuesToAny(args))
	rec.Set("pin", pin).Set("frequency", freq)
	i.emitNow(rec)
	return value.Null()
}

func biNoTone(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	i.emitNow(command.New(command.TypeFunctionCall).Set("function", "noTone").Set("arguments", argValuesToAny(args)).Set("pin", pin))
	return value.Null()
}
