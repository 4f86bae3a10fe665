// Package value implements the tagged-union run-time Value (spec §3.1):
// the set of types an Arduino-dialect expression can produce, their
// numeric promotion rules, and their JSON command-payload encoding.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt32
	KindUint32
	KindDouble
	KindString
	KindIntArray
	KindDoubleArray
	KindStringArray
	KindStruct
	KindPointer
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindIntArray:
		return "int-array"
	case KindDoubleArray:
		return "double-array"
	case KindStringArray:
		return "string-array"
	case KindStruct:
		return "struct"
	case KindPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Member is one named slot in a struct Value, kept in declaration order so
// JSON serialization preserves insertion order (spec §3.1 invariant).
type Member struct {
	Name  string
	Value *Value
}

// Value is the tagged-union run-time value. The zero Value is the null
// variant. Values are normally handled through *Value so that struct and
// array variants can be mutated in place (shared ownership, spec §3.1).
type Value struct {
	kind Kind

	b      bool
	i32    int32
	u32    uint32
	f64    float64
	str    string
	ints   []int32
	floats []float64
	strs   []string
	fields []Member // KindStruct, ordered

	ptr *Value // KindPointer: weak reference, nil means null pointer
}

// Null returns the absent/uninitialized value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Int32 wraps a signed 32-bit integer.
func Int32(i int32) *Value { return &Value{kind: KindInt32, i32: i} }

// Uint32 wraps an unsigned 32-bit integer.
func Uint32(u uint32) *Value { return &Value{kind: KindUint32, u32: u} }

// Double wraps a float64.
func Double(f float64) *Value { return &Value{kind: KindDouble, f64: f} }

// String wraps a UTF-8 string.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// IntArray wraps a homogeneous []int32.
func IntArray(xs []int32) *Value { return &Value{kind: KindIntArray, ints: xs} }

// DoubleArray wraps a homogeneous []float64.
func DoubleArray(xs []float64) *Value { return &Value{kind: KindDoubleArray, floats: xs} }

// StringArray wraps a homogeneous []string.
func StringArray(xs []string) *Value { return &Value{kind: KindStringArray, strs: xs} }

// Struct wraps an ordered member list. The slice is retained (not copied);
// callers that need isolation should Clone first.
func Struct(members []Member) *Value { return &Value{kind: KindStruct, fields: members} }

// Pointer wraps a weak reference to target, or a null pointer if target is nil.
func Pointer(target *Value) *Value { return &Value{kind: KindPointer, ptr: target} }

// Kind returns the variant tag.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is the null/absent variant (including a
// nil receiver, which Go call sites sometimes produce from a failed lookup).
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean payload, or false for any other variant.
func (v *Value) AsBool() bool {
	if v == nil || v.kind != KindBool {
		return false
	}
	return v.b
}

// AsInt32 returns the int32 payload, or 0 for other variants.
func (v *Value) AsInt32() int32 {
	if v == nil {
		return 0
	}
	return v.i32
}

// AsUint32 returns the uint32 payload, or 0 for other variants.
func (v *Value) AsUint32() uint32 {
	if v == nil {
		return 0
	}
	return v.u32
}

// AsDouble returns the float64 payload, or 0 for other variants.
func (v *Value) AsDouble() float64 {
	if v == nil {
		return 0
	}
	return v.f64
}

// AsString returns the string payload, or "" for other variants.
func (v *Value) AsString() string {
	if v == nil {
		return ""
	}
	return v.str
}

// IntElements returns the []int32 payload for a KindIntArray value.
func (v *Value) IntElements() []int32 {
	if v == nil || v.kind != KindIntArray {
		return nil
	}
	return v.ints
}

// DoubleElements returns the []float64 payload for a KindDoubleArray value.
func (v *Value) DoubleElements() []float64 {
	if v == nil || v.kind != KindDoubleArray {
		return nil
	}
	return v.floats
}

// StringElements returns the []string payload for a KindStringArray value.
func (v *Value) StringElements() []string {
	if v == nil || v.kind != KindStringArray {
		return nil
	}
	return v.strs
}

// Members returns the ordered member list for a KindStruct value.
func (v *Value) Members() []Member {
	if v == nil || v.kind != KindStruct {
		return nil
	}
	return v.fields
}

// Member looks up a struct member by name, returning (value, true) if present.
func (v *Value) Member(name string) (*Value, bool) {
	if v == nil || v.kind != KindStruct {
		return nil, false
	}
	for _, m := range v.fields {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// SetMember updates (or appends) a struct member in place, preserving
// insertion order for existing keys.
func (v *Value) SetMember(name string, val *Value) {
	if v == nil || v.kind != KindStruct {
		return
	}
	for i := range v.fields {
		if v.fields[i].Name == name {
			v.fields[i].Value = val
			return
		}
	}
	v.fields = append(v.fields, Member{Name: name, Value: val})
}

// Deref returns the pointed-to value, or nil if this is a null pointer or
// not a pointer at all. Callers must check for nil before use (spec §4.4:
// dereferencing null is a NullPointerError at the call site, not here).
func (v *Value) Deref() *Value {
	if v == nil || v.kind != KindPointer {
		return nil
	}
	return v.ptr
}

// IsNullPointer reports whether v is a pointer variant with no referent.
func (v *Value) IsNullPointer() bool {
	return v != nil && v.kind == KindPointer && v.ptr == nil
}

// SizeOf returns the byte size of the variant's scalar payload, used by the
// sizeof() intrinsic (spec §4.4). Int and double arrays report the element
// size times the count; a string reports its byte length and a string array
// the sum of its strings' byte lengths.
func (v *Value) SizeOf() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindBool:
		return 1
	case KindInt32, KindUint32:
		return 4
	case KindDouble:
		return 8
	case KindString:
		return len(v.str)
	case KindIntArray:
		return 4 * len(v.ints)
	case KindDoubleArray:
		return 8 * len(v.floats)
	case KindStringArray:
		n := 0
		for _, s := range v.strs {
			n += len(s)
		}
		return n
	case KindPointer:
		return 4
	default:
		return 0
	}
}

// TypeofTag returns the typeof()-style tag used by the spec §4.4 typeof()
// intrinsic: "number" | "string" | "boolean" | "undefined" | "object".
func (v *Value) TypeofTag() string {
	if v.IsNull() {
		return "undefined"
	}
	switch v.kind {
	case KindBool:
		return "boolean"
	case KindInt32, KindUint32, KindDouble:
		return "number"
	case KindString:
		return "string"
	default:
		return "object"
	}
}

// Clone returns a deep copy, used by pass-by-value parameter binding (spec
// §4.6) so a callee's writes never alias the caller's argument.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	switch v.kind {
	case KindIntArray:
		xs := make([]int32, len(v.ints))
		copy(xs, v.ints)
		return IntArray(xs)
	case KindDoubleArray:
		xs := make([]float64, len(v.floats))
		copy(xs, v.floats)
		return DoubleArray(xs)
	case KindStringArray:
		xs := make([]string, len(v.strs))
		copy(xs, v.strs)
		return StringArray(xs)
	case KindStruct:
		members := make([]Member, len(v.fields))
		for i, m := range v.fields {
			members[i] = Member{Name: m.Name, Value: m.Value.Clone()}
		}
		return Struct(members)
	default:
		cp := *v
		return &cp
	}
}

// DisplayString renders v for human-facing output contexts such as
// Serial.print (spec §4.7) and IF_STATEMENT's conditionDisplay (spec
// §4.5) — distinct from JSON() which produces machine-readable payloads.
func (v *Value) DisplayString() string {
	if v.IsNull() {
		return "null"
	}
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt32:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindUint32:
		return strconv.FormatUint(uint64(v.u32), 10)
	case KindDouble:
		return formatDouble(v.f64)
	case KindString:
		return v.str
	case KindIntArray:
		parts := make([]string, len(v.ints))
		for i, x := range v.ints {
			parts[i] = strconv.Itoa(int(x))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDoubleArray:
		parts := make([]string, len(v.floats))
		for i, x := range v.floats {
			parts[i] = formatDouble(x)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindStringArray:
		return "[" + strings.Join(v.strs, ", ") + "]"
	case KindStruct:
		parts := make([]string, len(v.fields))
		for i, m := range v.fields {
			parts[i] = fmt.Sprintf("%s: %s", m.Name, m.Value.DisplayString())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindPointer:
		if v.ptr == nil {
			return "null"
		}
		return "&" + v.ptr.DisplayString()
	default:
		return ""
	}
}

// formatDouble renders a float64 without a trailing ".0" when it is
// integer-valued, per spec §4.1's "display contexts" serialization rule.
func formatDouble(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
