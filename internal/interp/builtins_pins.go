package interp

import (
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/mock"
	"github.com/ardsim/engine/internal/value"
)

func init() {
	registerBuiltins(map[string]builtinFunc{
		"pinMode":      biPinMode,
		"digitalWrite": biDigitalWrite,
		"analogWrite":  biAnalogWrite,
		"digitalRead":  biDigitalRead,
		"analogRead":   biAnalogRead,
	})
}

func biPinMode(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	mode := arg(args, 1).ToInt32()
	i.emitNow(command.New(command.TypePinMode).Set("pin", pin).Set("mode", mode))
	return value.Null()
}

func biDigitalWrite(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	val := arg(args, 1).ToInt32()
	i.emitNow(command.New(command.TypeDigitalWrite).Set("pin", pin).Set("value", val))
	return value.Null()
}

func biAnalogWrite(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	val := arg(args, 1).ToInt32()
	i.emitNow(command.New(command.TypeAnalogWrite).Set("pin", pin).Set("value", val))
	return value.Null()
}

func biDigitalRead(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	rec := command.New(command.TypeDigitalRead).Set("function", "digitalRead").Set("pin", pin)
	return i.externalRead("digitalRead", rec, pinKey(pin), func() *value.Value {
		if v, ok := i.overrides.Digital(pin); ok {
			return value.Int32(v)
		}
		return value.Int32(mock.DigitalRead(pin))
	})
}

func biAnalogRead(i *Interpreter, args []*value.Value) *value.Value {
	pin := arg(args, 0).ToInt32()
	rec := command.New(command.TypeAnalogRead).Set("function", "analogRead").Set("pin", pin)
	return i.externalRead("analogRead", rec, pinKey(pin), func() *value.Value {
		if v, ok := i.overrides.Analog(pin); ok {
			return value.Int32(v)
		}
		return value.Int32(mock.AnalogRead(pin))
	})
}

func pinKey(pin int32) string {
	return value.Int32(pin).DisplayString()
}
