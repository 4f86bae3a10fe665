package interp

import (
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

// seedArduinoConstants binds the fixed global identifiers every sketch can
// rely on (spec §4.3/§6.3): digital levels, pin modes, the analog pin
// aliases, the on-board LED pin, and the USB-HID key codes used by
// Keyboard.press/release. Values are bound as const globals so an attempt
// to assign one of them surfaces as ConstWriteError like any other const.
func seedArduinoConstants(root *runtime.Scope) {
	bindConst := func(name string, v *value.Value) {
		root.ForceDeclare(name, &runtime.Variable{Value: v, Type: "int", IsConst: true, IsGlobal: true})
	}

	bindConst("HIGH", value.Int32(1))
	bindConst("LOW", value.Int32(0))
	bindConst("INPUT", value.Int32(0))
	bindConst("OUTPUT", value.Int32(1))
	bindConst("INPUT_PULLUP", value.Int32(2))
	bindConst("LED_BUILTIN", value.Int32(2))

	for n, pin := range map[string]int32{
		"A0": 14, "A1": 15, "A2": 16, "A3": 17, "A4": 18, "A5": 19,
	} {
		bindConst(n, value.Int32(pin))
	}

	// USB-HID key constants (Keyboard.press/release), fixed numeric codes
	// matching the reference core's HID table.
	hidKeys := map[string]int32{
		"KEY_LEFT_CTRL": 128, "KEY_LEFT_SHIFT": 129, "KEY_LEFT_ALT": 130, "KEY_LEFT_GUI": 131,
		"KEY_RIGHT_CTRL": 132, "KEY_RIGHT_SHIFT": 133, "KEY_RIGHT_ALT": 134, "KEY_RIGHT_GUI": 135,
		"KEY_UP_ARROW": 218, "KEY_DOWN_ARROW": 217, "KEY_LEFT_ARROW": 216, "KEY_RIGHT_ARROW": 215,
		"KEY_BACKSPACE": 178, "KEY_TAB": 179, "KEY_RETURN": 176, "KEY_ESC": 177,
		"KEY_INSERT": 209, "KEY_DELETE": 212, "KEY_PAGE_UP": 211, "KEY_PAGE_DOWN": 214,
		"KEY_HOME": 210, "KEY_END": 213, "KEY_CAPS_LOCK": 193,
		"KEY_F1": 194, "KEY_F2": 195, "KEY_F3": 196, "KEY_F4": 197, "KEY_F5": 198, "KEY_F6": 199,
		"KEY_F7": 200, "KEY_F8": 201, "KEY_F9": 202, "KEY_F10": 203, "KEY_F11": 204, "KEY_F12": 205,
	}
	for n, code := range hidKeys {
		bindConst(n, value.Int32(code))
	}
}
