package value

import "strconv"

// ToInt32 coerces v to an int32 following C/Arduino truncation rules (spec
// §4.1): doubles truncate toward zero, strings parse a leading integer (0
// on failure), bools are 0/1, null is 0.
func (v *Value) ToInt32() int32 {
	if v.IsNull() {
		return 0
	}
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt32:
		return v.i32
	case KindUint32:
		return int32(v.u32)
	case KindDouble:
		return int32(v.f64)
	case KindString:
		n, _ := strconv.ParseInt(leadingInt(v.str), 10, 64)
		return int32(n)
	default:
		return 0
	}
}

// ToDouble coerces v to float64.
func (v *Value) ToDouble() float64 {
	if v.IsNull() {
		return 0
	}
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt32:
		return float64(v.i32)
	case KindUint32:
		return float64(v.u32)
	case KindDouble:
		return v.f64
	case KindString:
		f, _ := strconv.ParseFloat(leadingFloat(v.str), 64)
		return f
	default:
		return 0
	}
}

// ToBool coerces v to a boolean: zero/empty/null is false, everything else
// is true (used by if/while/ternary conditions and the Serial truthy
// sentinel, spec §4.4).
func (v *Value) ToBool() bool {
	if v.IsNull() {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt32:
		return v.i32 != 0
	case KindUint32:
		return v.u32 != 0
	case KindDouble:
		return v.f64 != 0
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// ToStringValue converts v to its Arduino String() representation (spec
// §4.4's String(x) constructor without base/decimals arguments).
func (v *Value) ToStringValue() string {
	return v.DisplayString()
}

// IsIntegerValued reports whether a double operand's fractional part is
// zero, used by the integer-division quirk documented in spec §3.1/§9.
func (v *Value) IsIntegerValued() bool {
	if v == nil || v.kind != KindDouble {
		return false
	}
	return v.f64 == float64(int64(v.f64))
}

// IsNumeric reports whether v is int32/uint32/double.
func (v *Value) IsNumeric() bool {
	if v == nil {
		return false
	}
	switch v.kind {
	case KindInt32, KindUint32, KindDouble:
		return true
	default:
		return false
	}
}

// leadingInt extracts a leading (optionally signed) integer substring, or
// "0" if none is present, mirroring C's atoi/strtol leniency used by
// String.toInt() and numeric string coercion.
func leadingInt(s string) string {
	i := 0
	n := len(s)
	for i < n && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsStart := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return "0"
	}
	return s[start:i]
}

// leadingFloat extracts a leading numeric substring (integer, fraction,
// exponent), or "0" if none is present.
func leadingFloat(s string) string {
	i := 0
	n := len(s)
	for i < n && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	sawDigit := false
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
		sawDigit = true
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			sawDigit = true
		}
	}
	if !sawDigit {
		return "0"
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < n && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return s[start:i]
}

// Equal implements structural equality with cross-numeric promotion (spec
// §4.1/§4.4): numbers compare by value across int/double, null equals null
// only, strings and bools compare directly, arrays/structs compare
// elementwise.
func Equal(a, b *Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	if a.IsNumeric() && b.IsNumeric() {
		return a.ToDouble() == b.ToDouble()
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.str == b.str
	case KindIntArray:
		return equalSlice(a.ints, b.ints)
	case KindDoubleArray:
		return equalSlice(a.floats, b.floats)
	case KindStringArray:
		return equalSlice(a.strs, b.strs)
	case KindStruct:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Name != b.fields[i].Name || !Equal(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}
		return true
	case KindPointer:
		return a.ptr == b.ptr
	default:
		return false
	}
}

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
