package interp

import (
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/value"
)

func init() {
	registerBuiltins(map[string]builtinFunc{
		"Keyboard.begin":      biKeyboardBegin,
		"Keyboard.press":      biKeyboardPress,
		"Keyboard.release":    biKeyboardRelease,
		"Keyboard.releaseAll": biKeyboardReleaseAll,
		"Keyboard.write":      biKeyboardWrite,
		"Keyboard.print":      biKeyboardPrint,
		"Keyboard.println":    biKeyboardPrintln,
	})
}

func keyboardCall(i *Interpreter, fn string, args []*value.Value) *value.Value {
	i.emitNow(command.New(command.TypeFunctionCall).Set("function", fn).Set("arguments", argValuesToAny(args)))
	return value.Null()
}

func biKeyboardBegin(i *Interpreter, args []*value.Value) *value.Value {
	return keyboardCall(i, "Keyboard.begin", args)
}

func biKeyboardPress(i *Interpreter, args []*value.Value) *value.Value {
	return keyboardCall(i, "Keyboard.press", args)
}

func biKeyboardRelease(i *Interpreter, args []*value.Value) *value.Value {
	return keyboardCall(i, "Keyboard.release", args)
}

func biKeyboardReleaseAll(i *Interpreter, args []*value.Value) *value.Value {
	return keyboardCall(i, "Keyboard.releaseAll", args)
}

func biKeyboardWrite(i *Interpreter, args []*value.Value) *value.Value {
	return keyboardCall(i, "Keyboard.write", args)
}

func biKeyboardPrint(i *Interpreter, args []*value.Value) *value.Value {
	return keyboardCall(i, "Keyboard.print", args)
}

func biKeyboardPrintln(i *Interpreter, args []*value.Value) *value.Value {
	return keyboardCall(i, "Keyboard.println", args)
}
