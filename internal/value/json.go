package value

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// AppendJSON renders v into buf per spec §4.1's command-payload encoding
// rules: null -> null, bool -> true|false, an integer-valued double is
// written without a fractional part, arrays are JSON arrays (even when
// every element is zero — spec §6.4), and structs are JSON objects that
// preserve member insertion order (encoding/json's map marshaling does
// not guarantee this, so struct members are written by hand).
func (v *Value) AppendJSON(buf *bytes.Buffer) {
	if v.IsNull() {
		buf.WriteString("null")
		return
	}
	switch v.kind {
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt32:
		buf.WriteString(strconv.FormatInt(int64(v.i32), 10))
	case KindUint32:
		buf.WriteString(strconv.FormatUint(uint64(v.u32), 10))
	case KindDouble:
		appendJSONDouble(buf, v.f64)
	case KindString:
		appendJSONString(buf, v.str)
	case KindIntArray:
		buf.WriteByte('[')
		for i, x := range v.ints {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatInt(int64(x), 10))
		}
		buf.WriteByte(']')
	case KindDoubleArray:
		buf.WriteByte('[')
		for i, x := range v.floats {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendJSONDouble(buf, x)
		}
		buf.WriteByte(']')
	case KindStringArray:
		buf.WriteByte('[')
		for i, s := range v.strs {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendJSONString(buf, s)
		}
		buf.WriteByte(']')
	case KindStruct:
		buf.WriteByte('{')
		for i, m := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendJSONString(buf, m.Name)
			buf.WriteByte(':')
			m.Value.AppendJSON(buf)
		}
		buf.WriteByte('}')
	case KindPointer:
		if v.ptr == nil {
			buf.WriteString("null")
		} else {
			v.ptr.AppendJSON(buf)
		}
	default:
		buf.WriteString("null")
	}
}

// JSON returns the JSON encoding of v as a string.
func (v *Value) JSON() string {
	var buf bytes.Buffer
	v.AppendJSON(&buf)
	return buf.String()
}

func appendJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func appendJSONDouble(buf *bytes.Buffer, f float64) {
	if f == float64(int64(f)) {
		buf.WriteString(strconv.FormatInt(int64(f), 10))
		return
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}
