package interp

import (
	"github.com/ardsim/engine/internal/value"
)

func init() {
	registerBuiltins(map[string]builtinFunc{
		"isDigit":            ctypePred(func(c byte) bool { return c >= '0' && c <= '9' }),
		"isAlpha":            ctypePred(isAlphaByte),
		"isSpace":            ctypePred(isSpaceByte),
		"isWhitespace":       ctypePred(isSpaceByte),
		"isAlphaNumeric":     ctypePred(func(c byte) bool { return isAlphaByte(c) || (c >= '0' && c <= '9') }),
		"isUpperCase":        ctypePred(func(c byte) bool { return c >= 'A' && c <= 'Z' }),
		"isLowerCase":        ctypePred(func(c byte) bool { return c >= 'a' && c <= 'z' }),
		"isHexadecimalDigit": ctypePred(isHexByte),
		"isAscii":            ctypePred(func(c byte) bool { return c < 128 }),
		"isControl":          ctypePred(func(c byte) bool { return c < 32 || c == 127 }),
		"isGraph":            ctypePred(func(c byte) bool { return c > 32 && c < 127 }),
		"isPrintable":        ctypePred(func(c byte) bool { return c >= 32 && c < 127 }),
		"isPunct":            ctypePred(isPunctByte),
	})
}

func isAlphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isHexByte(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isPunctByte(c byte) bool {
	return c > 32 && c < 127 && !isAlphaByte(c) && !(c >= '0' && c <= '9')
}

// ctypePred adapts a byte predicate into a builtinFunc taking a single
// character-code argument (spec §4.7's ctype intrinsics).
func ctypePred(pred func(byte) bool) builtinFunc {
	return func(i *Interpreter, args []*value.Value) *value.Value {
		code := arg(args, 0).ToInt32()
		if code < 0 || code > 255 {
			return value.Bool(false)
		}
		return value.Bool(pred(byte(code)))
	}
}
