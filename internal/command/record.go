// Package command implements the Command Emitter (spec §3.4, §4.8, §6.2):
// the canonical JSON record factory, ordered append, and statistics
// counters for the engine's output stream.
package command

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/ardsim/engine/internal/value"
)

// Record is an ordered JSON object builder. It is adapted from the
// teacher's internal/jsonvalue.Value: that type tracked an objKeys slice
// to preserve insertion order but its MarshalJSON fell back to
// encoding/json's unordered map marshaling for objects (its own doc
// comment admits "[keys] will be alphabetical"). Commands need a stable,
// reviewable field order (type first, payload fields in declaration
// order, spec §3.4 "never mutated after append"), so this version walks
// its own ordered key slice instead of delegating object encoding to
// encoding/json.
type Record struct {
	keys   []string
	values []any
}

// NewRecord returns an empty ordered record.
func NewRecord() *Record {
	return &Record{}
}

// Set appends or replaces a field. v may be: nil, bool, string, int, int32,
// int64, float64, *value.Value, *Record (nested object), or []*Record /
// []string / []int (array).
func (r *Record) Set(key string, v any) *Record {
	for i, k := range r.keys {
		if k == key {
			r.values[i] = v
			return r
		}
	}
	r.keys = append(r.keys, key)
	r.values = append(r.values, v)
	return r
}

// Has reports whether key has been set.
func (r *Record) Has(key string) bool {
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

// AppendJSON renders the record as a JSON object, fields in Set order.
func (r *Record) AppendJSON(buf *bytes.Buffer) {
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, k)
		buf.WriteByte(':')
		appendAny(buf, r.values[i])
	}
	buf.WriteByte('}')
}

// JSON returns the record encoded as a single JSON line (no trailing newline).
func (r *Record) JSON() string {
	var buf bytes.Buffer
	r.AppendJSON(&buf)
	return buf.String()
}

func appendAny(buf *bytes.Buffer, v any) {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeJSONString(buf, x)
	case int:
		buf.WriteString(strconv.Itoa(x))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(x, 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case float64:
		if x == float64(int64(x)) {
			buf.WriteString(strconv.FormatInt(int64(x), 10))
		} else {
			buf.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
	case *value.Value:
		x.AppendJSON(buf)
	case *Record:
		if x == nil {
			buf.WriteString("null")
			return
		}
		x.AppendJSON(buf)
	case []*Record:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.AppendJSON(buf)
		}
		buf.WriteByte(']')
	case []string:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, e)
		}
		buf.WriteByte(']')
	case []int:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Itoa(e))
		}
		buf.WriteByte(']')
	case []any:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendAny(buf, e)
		}
		buf.WriteByte(']')
	default:
		// Fall back to encoding/json for anything unanticipated (e.g. a
		// plain map used by a one-off call site); order is not guaranteed
		// in that case, so call sites should prefer the typed cases above.
		b, err := json.Marshal(x)
		if err != nil {
			buf.WriteString("null")
			return
		}
		buf.Write(b)
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
