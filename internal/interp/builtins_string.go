package interp

import (
	"strconv"
	"strings"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/value"
)

// stringMethodFunc implements one Arduino String instance method. self is
// the receiver's current value; objNode is its call-site expression, used
// to write mutations back to the underlying variable when the receiver is
// a plain identifier (spec §4.7's String class is mutable).
type stringMethodFunc func(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value

var stringMethodTable = map[string]stringMethodFunc{
	"concat":           smConcat,
	"equals":           smEquals,
	"equalsIgnoreCase": smEqualsIgnoreCase,
	"length":           smLength,
	"toInt":            smToInt,
	"toFloat":          smToFloat,
	"toUpperCase":      smToUpperCase,
	"toLowerCase":      smToLowerCase,
	"trim":             smTrim,
	"replace":          smReplace,
	"startsWith":       smStartsWith,
	"endsWith":         smEndsWith,
	"substring":        smSubstring,
	"compareTo":        smCompareTo,
	"charAt":           smCharAt,
	"setCharAt":        smSetCharAt,
	"reserve":          smReserve,
	"indexOf":          smIndexOf,
	"isEmpty":          smIsEmpty,
}

// writeBackString stores newVal into the receiver's variable (if the
// receiver is a plain identifier) and emits the resulting VAR_SET, mirroring
// the mutation that methods like toUpperCase() perform on a real String.
func writeBackString(i *Interpreter, objNode *ast.Node, newVal *value.Value) {
	if objNode.Kind != ast.KindIdentifier {
		return
	}
	v, ok := i.scope.Lookup(objNode.Text())
	if !ok {
		return
	}
	v.Write(newVal)
	i.emitVarSet(objNode.Text(), v, false)
}

// replaceArgString renders a replace() argument as Arduino's String class
// does: string arguments pass through, numeric (char-code) arguments render
// as the decimal digits of the code point rather than the character itself.
func replaceArgString(v *value.Value) string {
	if v.Kind() == value.KindString {
		return v.AsString()
	}
	return strconv.Itoa(int(v.ToInt32()))
}

func smConcat(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	joined := self.AsString() + arg(args, 0).ToStringValue()
	next := value.String(joined)
	writeBackString(i, objNode, next)
	return value.Bool(true)
}

func smEquals(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Bool(self.AsString() == arg(args, 0).ToStringValue())
}

func smEqualsIgnoreCase(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Bool(strings.EqualFold(self.AsString(), arg(args, 0).ToStringValue()))
}

func smLength(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Int32(int32(len(self.AsString())))
}

func smToInt(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Int32(self.ToInt32())
}

func smToFloat(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Double(self.ToDouble())
}

func smToUpperCase(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	next := value.String(strings.ToUpper(self.AsString()))
	writeBackString(i, objNode, next)
	return value.Null()
}

func smToLowerCase(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	next := value.String(strings.ToLower(self.AsString()))
	writeBackString(i, objNode, next)
	return value.Null()
}

func smTrim(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	next := value.String(strings.TrimSpace(self.AsString()))
	writeBackString(i, objNode, next)
	return value.Null()
}

func smReplace(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	find := replaceArgString(arg(args, 0))
	repl := replaceArgString(arg(args, 1))
	next := value.String(strings.ReplaceAll(self.AsString(), find, repl))
	writeBackString(i, objNode, next)
	return value.Null()
}

func smStartsWith(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Bool(strings.HasPrefix(self.AsString(), arg(args, 0).ToStringValue()))
}

func smEndsWith(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Bool(strings.HasSuffix(self.AsString(), arg(args, 0).ToStringValue()))
}

func smSubstring(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	s := self.AsString()
	start := clampIndex(int(arg(args, 0).ToInt32()), len(s))
	end := len(s)
	if len(args) >= 2 {
		end = clampIndex(int(arg(args, 1).ToInt32()), len(s))
	}
	if end < start {
		start, end = end, start
	}
	return value.String(s[start:end])
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}

func smCompareTo(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Int32(int32(strings.Compare(self.AsString(), arg(args, 0).ToStringValue())))
}

func smCharAt(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	s := self.AsString()
	idx := int(arg(args, 0).ToInt32())
	if idx < 0 || idx >= len(s) {
		return value.Int32(0)
	}
	return value.Int32(int32(s[idx]))
}

func smSetCharAt(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	s := []byte(self.AsString())
	idx := int(arg(args, 0).ToInt32())
	if idx < 0 || idx >= len(s) {
		return value.Null()
	}
	s[idx] = byte(arg(args, 1).ToInt32())
	writeBackString(i, objNode, value.String(string(s)))
	return value.Null()
}

func smReserve(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Bool(true)
}

func smIndexOf(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Int32(int32(strings.Index(self.AsString(), arg(args, 0).ToStringValue())))
}

func smIsEmpty(i *Interpreter, objNode *ast.Node, self *value.Value, args []*value.Value) *value.Value {
	return value.Bool(len(self.AsString()) == 0)
}
