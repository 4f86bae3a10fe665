package interp

import (
	"fmt"

	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/value"
)

func init() {
	registerBuiltins(map[string]builtinFunc{
		"Serial.begin":      biSerialBegin,
		"Serial.print":      biSerialPrint,
		"Serial.println":    biSerialPrintln,
		"Serial.write":      biSerialWrite,
		"Serial.flush":      biSerialFlush,
		"Serial.setTimeout": biSerialSetTimeout,
		"Serial.available":  biSerialAvailable,
		"Serial.read":       biSerialRead,
		"Serial.peek":       biSerialPeek,
	})
}

func biSerialBegin(i *Interpreter, args []*value.Value) *value.Value {
	baud := arg(args, 0).ToInt32()
	i.emitNow(command.New(command.TypeFunctionCall).
		Set("function", "Serial.begin").
		Set("arguments", argValuesToAny(args)).
		Set("baudRate", baud))
	return value.Null()
}

func biSerialPrint(i *Interpreter, args []*value.Value) *value.Value {
	return serialWrite(i, args, "Serial.print")
}

func biSerialPrintln(i *Interpreter, args []*value.Value) *value.Value {
	return serialWrite(i, args, "Serial.println")
}

func serialWrite(i *Interpreter, args []*value.Value, fn string) *value.Value {
	data := arg(args, 0)
	msg := fmt.Sprintf("%s(%s)", fn, serialMessageArg(data))
	i.emitNow(command.New(command.TypeFunctionCall).
		Set("function", fn).
		Set("arguments", argValuesToAny(args)).
		Set("data", data).
		Set("message", msg))
	return value.Null()
}

// serialMessageArg renders an argument the way it appears inside the
// message field's call-shaped text: quoted for strings, plain otherwise.
func serialMessageArg(v *value.Value) string {
	if v.Kind() == value.KindString {
		return fmt.Sprintf("%q", v.AsString())
	}
	return v.DisplayString()
}

func biSerialWrite(i *Interpreter, args []*value.Value) *value.Value {
	data := arg(args, 0)
	i.emitNow(command.New(command.TypeFunctionCall).
		Set("function", "Serial.write").
		Set("arguments", argValuesToAny(args)).
		Set("data", data))
	return value.Null()
}

func biSerialFlush(i *Interpreter, args []*value.Value) *value.Value {
	i.emitNow(command.New(command.TypeFunctionCall).Set("function", "Serial.flush").Set("arguments", argValuesToAny(args)))
	return value.Null()
}

func biSerialSetTimeout(i *Interpreter, args []*value.Value) *value.Value {
	ms := arg(args, 0).ToInt32()
	i.emitNow(command.New(command.TypeFunctionCall).
		Set("function", "Serial.setTimeout").
		Set("arguments", argValuesToAny(args)).
		Set("timeout", ms))
	return value.Null()
}

func biSerialAvailable(i *Interpreter, args []*value.Value) *value.Value {
	rec := command.New(command.TypeExternal).Set("function", "Serial.available").Set("requestType", "available")
	return i.externalRead("Serial.available", rec, "Serial", func() *value.Value {
		return value.Int32(i.mock.SerialAvailable("Serial"))
	})
}

func biSerialRead(i *Interpreter, args []*value.Value) *value.Value {
	rec := command.New(command.TypeExternal).Set("function", "Serial.read").Set("requestType", "read")
	return i.externalRead("Serial.read", rec, "Serial", func() *value.Value {
		return value.Int32(i.mock.SerialRead())
	})
}

func biSerialPeek(i *Interpreter, args []*value.Value) *value.Value {
	rec := command.New(command.TypeExternal).Set("function", "Serial.peek").Set("requestType", "peek")
	return i.externalRead("Serial.peek", rec, "Serial", func() *value.Value {
		return value.Int32(i.mock.SerialRead())
	})
}
