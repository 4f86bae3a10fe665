package value

import "math"

// ArithError identifies why a binary arithmetic op could not produce a
// value, so the evaluator can emit the matching ERROR kind (spec §4.1).
type ArithError uint8

const (
	ArithNone ArithError = iota
	ArithDivByZero
)

// Add implements "+" with string-concatenation and numeric-promotion rules
// (spec §4.4): any string operand makes it concatenation; otherwise
// int+int stays int, any double operand promotes to double.
func Add(a, b *Value) *Value {
	if a.Kind() == KindString || b.Kind() == KindString {
		return String(a.DisplayString() + b.DisplayString())
	}
	if bothPlainInt(a, b) {
		return wrapInt32(a.ToInt32() + b.ToInt32())
	}
	return Double(a.ToDouble() + b.ToDouble())
}

// Sub implements "-" with numeric promotion.
func Sub(a, b *Value) *Value {
	if bothPlainInt(a, b) {
		return wrapInt32(a.ToInt32() - b.ToInt32())
	}
	return Double(a.ToDouble() - b.ToDouble())
}

// Mul implements "*" with numeric promotion.
func Mul(a, b *Value) *Value {
	if bothPlainInt(a, b) {
		return wrapInt32(a.ToInt32() * b.ToInt32())
	}
	return Double(a.ToDouble() * b.ToDouble())
}

// Div implements "/" with C/Arduino integer truncation (spec §3.1/§9): an
// int paired with an integer-valued double still truncates. Division by
// zero reports ArithDivByZero and the caller must emit the ERROR command
// and yield null.
func Div(a, b *Value) (*Value, ArithError) {
	if isIntegerOperand(a) && isIntegerOperand(b) {
		bi := b.ToInt32()
		if bi == 0 {
			return nil, ArithDivByZero
		}
		return wrapInt32(a.ToInt32() / bi), ArithNone
	}
	bd := b.ToDouble()
	if bd == 0 {
		return nil, ArithDivByZero
	}
	return Double(a.ToDouble() / bd), ArithNone
}

// Mod implements "%", integer only per the Arduino C++ subset; a double
// operand still truncates to int for modulo, matching C semantics.
func Mod(a, b *Value) (*Value, ArithError) {
	bi := b.ToInt32()
	if bi == 0 {
		return nil, ArithDivByZero
	}
	return wrapInt32(a.ToInt32() % bi), ArithNone
}

// BitAnd, BitOr, BitXor implement the bitwise operators (integer only).
func BitAnd(a, b *Value) *Value { return wrapInt32(a.ToInt32() & b.ToInt32()) }
func BitOr(a, b *Value) *Value  { return wrapInt32(a.ToInt32() | b.ToInt32()) }
func BitXor(a, b *Value) *Value { return wrapInt32(a.ToInt32() ^ b.ToInt32()) }
func Shl(a, b *Value) *Value    { return wrapInt32(a.ToInt32() << uint32(b.ToInt32())) }
func Shr(a, b *Value) *Value    { return wrapInt32(a.ToInt32() >> uint32(b.ToInt32())) }

// Neg implements unary "-".
func Neg(a *Value) *Value {
	if isPlainInt(a) {
		return wrapInt32(-a.ToInt32())
	}
	return Double(-a.ToDouble())
}

// BitNot implements unary "~".
func BitNot(a *Value) *Value { return wrapInt32(^a.ToInt32()) }

// Compare implements numeric-aware ordering for <, <=, >, >=; cross-type
// int/double comparisons are allowed per spec §4.4.
func Compare(a, b *Value) int {
	if a.IsNumeric() && b.IsNumeric() {
		ad, bd := a.ToDouble(), b.ToDouble()
		switch {
		case ad < bd:
			return -1
		case ad > bd:
			return 1
		default:
			return 0
		}
	}
	as, bs := a.DisplayString(), b.DisplayString()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// bothPlainInt reports whether both operands are genuinely integer-typed
// (int32/uint32), with no double-fractional-part quirk: Add/Sub/Mul follow
// the plain "any double operand promotes to double" rule (spec §3.1). Only
// Div carries the reference-implementation's integer-valued-double quirk
// (spec §3.1/§9), via isIntegerOperand below.
func bothPlainInt(a, b *Value) bool {
	return isPlainInt(a) && isPlainInt(b)
}

func isPlainInt(v *Value) bool {
	switch v.Kind() {
	case KindInt32, KindUint32:
		return true
	default:
		return false
	}
}

// isIntegerOperand reports whether v participates in integer division:
// int32/uint32 always do; a double only does when its fractional part is
// zero (the reference-implementation parity quirk, spec §3.1/§9, scoped to
// division only).
func isIntegerOperand(v *Value) bool {
	switch v.Kind() {
	case KindInt32, KindUint32:
		return true
	case KindDouble:
		return v.IsIntegerValued()
	default:
		return false
	}
}

// wrapInt32 applies modulo-2^32 wraparound (spec §4.1: "documented, not a
// fatal error") and returns an Int32 value.
func wrapInt32(i int32) *Value {
	return Int32(int32(uint32(i)))
}

// Overflowed reports whether a 64-bit intermediate result would not fit in
// int32, for callers that want to detect (without acting on) the wrap.
func Overflowed(v int64) bool {
	return v > math.MaxInt32 || v < math.MinInt32
}
