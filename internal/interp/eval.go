package interp

import (
	"strconv"
	"strings"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/errors"
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

// eval dispatches on node kind and returns the resulting Value (spec §4.4).
// Side effects (VAR_SET, FUNCTION_CALL, request commands) are emitted
// inline as part of evaluation, mirroring the teacher's single big-switch
// Eval(node ast.Node) Value dispatch.
func (i *Interpreter) eval(n *ast.Node) *value.Value {
	if n.IsNil() {
		return value.Null()
	}
	switch n.Kind {
	case ast.KindNumberLiteral:
		f := n.NumberValue()
		if f == float64(int64(f)) {
			return value.Int32(int32(f))
		}
		return value.Double(f)
	case ast.KindStringLiteral:
		return value.String(n.Text())
	case ast.KindCharLiteral, ast.KindWideCharLiteral:
		return value.Int32(int32(n.CharValue()))
	case ast.KindIdentifier:
		return i.evalIdentifier(n)
	case ast.KindConstant:
		return i.evalConstant(n)
	case ast.KindAssignment:
		return i.evalAssignment(n)
	case ast.KindBinaryOp:
		return i.evalBinary(n)
	case ast.KindUnaryOp:
		return i.evalUnary(n)
	case ast.KindPostfixOp:
		return i.evalPostfix(n)
	case ast.KindTernary:
		if i.eval(n.Child(0)).ToBool() {
			return i.eval(n.Child(1))
		}
		return i.eval(n.Child(2))
	case ast.KindComma:
		var last *value.Value = value.Null()
		for _, c := range n.Children {
			last = i.eval(c)
		}
		return last
	case ast.KindArrayInitializer:
		return i.evalArrayInitializer(n)
	case ast.KindArrayAccess:
		v, _ := i.evalArrayAccess(n)
		return v
	case ast.KindMemberAccess:
		return i.evalMemberAccess(n)
	case ast.KindFunctionCall:
		return i.evalCall(n)
	case ast.KindConstructorCall:
		return i.evalConstructorCall(n)
	case ast.KindNewExpression:
		return i.eval(n.Child(0))
	case ast.KindCppCast, ast.KindFunctionStyleCast:
		return i.evalCast(n)
	case ast.KindRangeExpression:
		return i.evalRangeExpression(n)
	case ast.KindLambda:
		i.emitNow(commandLambda(n))
		return value.Null()
	case ast.KindComment, ast.KindError, ast.KindEmpty:
		return value.Null()
	case ast.KindPreprocessorDirective:
		i.emitError(errors.CategoryPreprocessor, "unexpected preprocessor directive")
		return value.Null()
	default:
		return value.Null()
	}
}

func (i *Interpreter) evalIdentifier(n *ast.Node) *value.Value {
	name := n.Text()
	if name == "Serial" || strings.HasPrefix(name, "Serial") {
		return value.Bool(true)
	}
	v, ok := i.scope.Lookup(name)
	if !ok {
		i.emitError(errors.CategoryUndefinedVariable, "undefined variable: %s", name)
		return value.Null()
	}
	return v.Read()
}

func (i *Interpreter) evalConstant(n *ast.Node) *value.Value {
	name := n.Text()
	switch name {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	case "null", "nullptr", "NULL":
		return value.Null()
	}
	if v, ok := i.root.Lookup(name); ok {
		return v.Read()
	}
	return value.String(name)
}

// evalAssignment implements spec §4.4's assignment rules, including
// compound-operator decomposition and the valid-LHS kinds.
func (i *Interpreter) evalAssignment(n *ast.Node) *value.Value {
	op := n.Operator()
	target := n.Left()
	rhs := i.eval(n.Right())

	if op != "=" {
		cur := i.eval(target)
		rhs = i.applyCompound(op, cur, rhs)
	}

	return i.assignTo(target, rhs)
}

func (i *Interpreter) applyCompound(op string, cur, rhs *value.Value) *value.Value {
	switch op {
	case "+=":
		return value.Add(cur, rhs)
	case "-=":
		return value.Sub(cur, rhs)
	case "*=":
		return value.Mul(cur, rhs)
	case "/=":
		v, errKind := value.Div(cur, rhs)
		if errKind == value.ArithDivByZero {
			i.emitError(errors.CategoryArithmetic, "division by zero")
			return value.Null()
		}
		return v
	case "%=":
		v, errKind := value.Mod(cur, rhs)
		if errKind == value.ArithDivByZero {
			i.emitError(errors.CategoryArithmetic, "modulo by zero")
			return value.Null()
		}
		return v
	case "&=":
		return value.BitAnd(cur, rhs)
	case "|=":
		return value.BitOr(cur, rhs)
	case "^=":
		return value.BitXor(cur, rhs)
	default:
		return rhs
	}
}

// assignTo writes val to the location named by target (identifier,
// array-access, member-access, or unary-deref) and emits VAR_SET.
func (i *Interpreter) assignTo(target *ast.Node, val *value.Value) *value.Value {
	switch target.Kind {
	case ast.KindIdentifier:
		return i.assignIdentifier(target.Text(), val)
	case ast.KindArrayAccess:
		return i.assignArrayElement(target, val)
	case ast.KindMemberAccess:
		return i.assignMember(target, val)
	case ast.KindUnaryOp:
		if target.Operator() == "*" {
			ptr := i.eval(target.Operand())
			if ptr.IsNullPointer() || ptr.Deref() == nil {
				i.emitError(errors.CategoryNullPointer, "dereference of null pointer")
				return value.Null()
			}
			*ptr.Deref() = *val
			return val
		}
	}
	return val
}

func (i *Interpreter) assignIdentifier(name string, val *value.Value) *value.Value {
	v, ok := i.scope.Lookup(name)
	if !ok {
		i.emitError(errors.CategoryUndefinedVariable, "undefined variable: %s", name)
		return value.Null()
	}
	if v.IsConst {
		i.emitError(errors.CategoryConstWrite, "cannot assign to const variable: %s", name)
		return v.Read()
	}
	val = convertToType(val, v.Type)
	v.Write(val)
	i.emitVarSet(name, v, false)
	return val
}

func (i *Interpreter) assignArrayElement(target *ast.Node, val *value.Value) *value.Value {
	base := target.Left()
	if base.Kind != ast.KindIdentifier {
		i.eval(target) // evaluate for side effects/errors, discard
		return val
	}
	name := base.Text()
	v, ok := i.scope.Lookup(name)
	if !ok {
		i.emitError(errors.CategoryUndefinedVariable, "undefined variable: %s", name)
		return value.Null()
	}
	idx, ok2 := i.resolveArrayIndex(target, v)
	if !ok2 {
		return value.Null()
	}
	arr := v.Read()
	switch arr.Kind() {
	case value.KindIntArray:
		xs := arr.IntElements()
		if idx < 0 || idx >= len(xs) {
			i.emitError(errors.CategoryBounds, "array index %d out of bounds for %s", idx, name)
			return value.Null()
		}
		xs[idx] = val.ToInt32()
	case value.KindDoubleArray:
		xs := arr.DoubleElements()
		if idx < 0 || idx >= len(xs) {
			i.emitError(errors.CategoryBounds, "array index %d out of bounds for %s", idx, name)
			return value.Null()
		}
		xs[idx] = val.ToDouble()
	case value.KindStringArray:
		xs := arr.StringElements()
		if idx < 0 || idx >= len(xs) {
			i.emitError(errors.CategoryBounds, "array index %d out of bounds for %s", idx, name)
			return value.Null()
		}
		xs[idx] = val.ToStringValue()
	default:
		i.emitError(errors.CategoryType, "%s is not an array", name)
		return value.Null()
	}
	// Array writes emit the whole array contents, not just the element
	// (spec §4.8).
	i.emitVarSet(name, v, false)
	return val
}

func (i *Interpreter) assignMember(target *ast.Node, val *value.Value) *value.Value {
	obj := i.evalMemberObject(target)
	if obj == nil {
		return value.Null()
	}
	obj.SetMember(target.Text(), val)
	return val
}

// evalMemberObject evaluates a member-access node's object operand,
// dereferencing through "->" and reporting NullPointerError.
func (i *Interpreter) evalMemberObject(n *ast.Node) *value.Value {
	obj := i.eval(n.Left())
	if obj.Kind() == value.KindPointer {
		if obj.IsNullPointer() {
			i.emitError(errors.CategoryNullPointer, "member access through null pointer")
			return nil
		}
		obj = obj.Deref()
	}
	return obj
}

func (i *Interpreter) evalMemberAccess(n *ast.Node) *value.Value {
	obj := i.evalMemberObject(n)
	if obj == nil {
		return value.Null()
	}
	if v, ok := obj.Member(n.Text()); ok {
		return v
	}
	return value.Null()
}

// resolveArrayIndex flattens 1-D and 2-D array accesses (spec §4.4: "2-D
// array access is flattened row*stride + col with stride inferred from the
// declaration").
func (i *Interpreter) resolveArrayIndex(n *ast.Node, v *runtime.Variable) (int, bool) {
	idxNodes := n.Children[1:]
	if len(idxNodes) == 0 {
		return 0, false
	}
	row := int(i.eval(idxNodes[0]).ToInt32())
	if len(idxNodes) == 1 {
		return row, true
	}
	col := int(i.eval(idxNodes[1]).ToInt32())
	stride := secondDimFromType(v.Type)
	if stride <= 0 {
		return row, true
	}
	return row*stride + col, true
}

// secondDimFromType parses a trailing "[N][M]" declared type string for the
// second dimension M, used to flatten 2-D indices.
func secondDimFromType(typ string) int {
	open := strings.LastIndex(typ, "[")
	if open < 0 {
		return 0
	}
	close := strings.Index(typ[open:], "]")
	if close < 0 {
		return 0
	}
	n, _ := strconv.Atoi(typ[open+1 : open+close])
	return n
}

func (i *Interpreter) evalArrayAccess(n *ast.Node) (*value.Value, int) {
	base := n.Left()
	if base.Kind != ast.KindIdentifier {
		return value.Null(), -1
	}
	name := base.Text()
	v, ok := i.scope.Lookup(name)
	if !ok {
		i.emitError(errors.CategoryUndefinedVariable, "undefined variable: %s", name)
		return value.Null(), -1
	}
	idx, ok2 := i.resolveArrayIndex(n, v)
	if !ok2 {
		return value.Null(), -1
	}
	arr := v.Read()
	switch arr.Kind() {
	case value.KindIntArray:
		xs := arr.IntElements()
		if idx < 0 || idx >= len(xs) {
			i.emitError(errors.CategoryBounds, "array index %d out of bounds for %s", idx, name)
			return value.Null(), idx
		}
		return value.Int32(xs[idx]), idx
	case value.KindDoubleArray:
		xs := arr.DoubleElements()
		if idx < 0 || idx >= len(xs) {
			i.emitError(errors.CategoryBounds, "array index %d out of bounds for %s", idx, name)
			return value.Null(), idx
		}
		return value.Double(xs[idx]), idx
	case value.KindStringArray:
		xs := arr.StringElements()
		if idx < 0 || idx >= len(xs) {
			i.emitError(errors.CategoryBounds, "array index %d out of bounds for %s", idx, name)
			return value.Null(), idx
		}
		return value.String(xs[idx]), idx
	case value.KindString:
		s := arr.AsString()
		if idx < 0 || idx >= len(s) {
			i.emitError(errors.CategoryBounds, "string index %d out of bounds for %s", idx, name)
			return value.Null(), idx
		}
		return value.Int32(int32(s[idx])), idx
	default:
		i.emitError(errors.CategoryType, "%s is not an array", name)
		return value.Null(), idx
	}
}

func (i *Interpreter) evalArrayInitializer(n *ast.Node) *value.Value {
	elems := make([]*value.Value, len(n.Children))
	allInt, allDouble, allString := true, true, true
	for idx, c := range n.Children {
		v := i.eval(c)
		elems[idx] = v
		switch v.Kind() {
		case value.KindInt32, value.KindUint32, value.KindBool:
		default:
			allInt = false
		}
		if !v.IsNumeric() {
			allDouble = false
		}
		if v.Kind() != value.KindString {
			allString = false
		}
	}
	switch {
	case allInt:
		xs := make([]int32, len(elems))
		for idx, v := range elems {
			xs[idx] = v.ToInt32()
		}
		return value.IntArray(xs)
	case allDouble:
		xs := make([]float64, len(elems))
		for idx, v := range elems {
			xs[idx] = v.ToDouble()
		}
		return value.DoubleArray(xs)
	case allString:
		xs := make([]string, len(elems))
		for idx, v := range elems {
			xs[idx] = v.ToStringValue()
		}
		return value.StringArray(xs)
	default:
		xs := make([]string, len(elems))
		for idx, v := range elems {
			xs[idx] = v.ToStringValue()
		}
		return value.StringArray(xs)
	}
}

func (i *Interpreter) evalBinary(n *ast.Node) *value.Value {
	op := n.Operator()
	// && and || are lazy; all other operators evaluate both sides.
	switch op {
	case "&&":
		l := i.eval(n.Left())
		if !l.ToBool() {
			return value.Bool(false)
		}
		return value.Bool(i.eval(n.Right()).ToBool())
	case "||":
		l := i.eval(n.Left())
		if l.ToBool() {
			return value.Bool(true)
		}
		return value.Bool(i.eval(n.Right()).ToBool())
	}

	l := i.eval(n.Left())
	r := i.eval(n.Right())
	switch op {
	case "+":
		return value.Add(l, r)
	case "-":
		return value.Sub(l, r)
	case "*":
		return value.Mul(l, r)
	case "/":
		v, errKind := value.Div(l, r)
		if errKind == value.ArithDivByZero {
			i.emitError(errors.CategoryArithmetic, "division by zero")
			return value.Null()
		}
		return v
	case "%":
		v, errKind := value.Mod(l, r)
		if errKind == value.ArithDivByZero {
			i.emitError(errors.CategoryArithmetic, "modulo by zero")
			return value.Null()
		}
		return v
	case "&":
		return value.BitAnd(l, r)
	case "|":
		return value.BitOr(l, r)
	case "^":
		return value.BitXor(l, r)
	case "<<":
		return value.Shl(l, r)
	case ">>":
		return value.Shr(l, r)
	case "==":
		return value.Bool(value.Equal(l, r))
	case "!=":
		return value.Bool(!value.Equal(l, r))
	case "<":
		return value.Bool(value.Compare(l, r) < 0)
	case "<=":
		return value.Bool(value.Compare(l, r) <= 0)
	case ">":
		return value.Bool(value.Compare(l, r) > 0)
	case ">=":
		return value.Bool(value.Compare(l, r) >= 0)
	default:
		return value.Null()
	}
}

func (i *Interpreter) evalUnary(n *ast.Node) *value.Value {
	op := n.Operator()
	if op == "&" {
		// address-of: evaluate to a pointer pointing at the operand's
		// current value, resolved through identifier lookup when possible.
		if n.Operand().Kind == ast.KindIdentifier {
			if v, ok := i.scope.Lookup(n.Operand().Text()); ok {
				return value.Pointer(v.Read())
			}
		}
		return value.Pointer(i.eval(n.Operand()))
	}
	operand := i.eval(n.Operand())
	switch op {
	case "+":
		return operand
	case "-":
		return value.Neg(operand)
	case "!":
		return value.Bool(!operand.ToBool())
	case "~":
		return value.BitNot(operand)
	case "*":
		if operand.IsNullPointer() {
			i.emitError(errors.CategoryNullPointer, "dereference of null pointer")
			return value.Null()
		}
		if d := operand.Deref(); d != nil {
			return d
		}
		return value.Null()
	default:
		return operand
	}
}

// evalPostfix implements "++"/"--" (spec §4.4): only valid postfix on an
// identifier; emits VAR_SET with the updated value but yields the
// pre-update value in expression context.
func (i *Interpreter) evalPostfix(n *ast.Node) *value.Value {
	op := n.Operator()
	target := n.Operand()
	if target.Kind != ast.KindIdentifier {
		return i.eval(target)
	}
	name := target.Text()
	v, ok := i.scope.Lookup(name)
	if !ok {
		i.emitError(errors.CategoryUndefinedVariable, "undefined variable: %s", name)
		return value.Null()
	}
	pre := v.Read()
	var next *value.Value
	one := value.Int32(1)
	if op == "++" {
		next = value.Add(pre, one)
	} else {
		next = value.Sub(pre, one)
	}
	next = convertToType(next, v.Type)
	v.Write(next)
	i.emitVarSet(name, v, false)
	return pre
}

// evalConstructorCall implements primitive-constructor-style casts and the
// String(x[, base|decimals]) constructor (spec §4.4).
func (i *Interpreter) evalConstructorCall(n *ast.Node) *value.Value {
	typeName := n.CalleeNode().Text()
	args := n.CallArgs()
	if len(args) == 0 {
		return value.Null()
	}
	arg := i.eval(args[0])
	switch typeName {
	case "int":
		return value.Int32(arg.ToInt32())
	case "byte":
		return value.Int32(int32(uint8(arg.ToInt32())))
	case "float", "double":
		return value.Double(arg.ToDouble())
	case "bool", "boolean":
		return value.Bool(arg.ToBool())
	case "char":
		return value.Int32(arg.ToInt32())
	case "String":
		if len(args) >= 2 {
			second := i.eval(args[1])
			base := int(second.ToInt32())
			switch base {
			case 2, 8, 16:
				return value.String(strconv.FormatInt(int64(arg.ToInt32()), base))
			default:
				if arg.Kind() == value.KindDouble {
					return value.String(strconv.FormatFloat(arg.ToDouble(), 'f', base, 64))
				}
			}
		}
		return value.String(arg.ToStringValue())
	default:
		return arg
	}
}

func (i *Interpreter) evalCast(n *ast.Node) *value.Value {
	typeName := n.Left().Text()
	v := i.eval(n.Right())
	return convertToType(v, typeName)
}

func (i *Interpreter) evalRangeExpression(n *ast.Node) *value.Value {
	lo := i.eval(n.Left()).ToInt32()
	hi := i.eval(n.Right()).ToInt32()
	i.emitNow(commandRangeExpression(lo, hi))
	count := int(hi - lo)
	if count < 0 {
		count = 0
	}
	xs := make([]int32, count)
	for idx := range xs {
		xs[idx] = lo + int32(idx)
	}
	return value.IntArray(xs)
}

// convertToType coerces val to match a declared type string, implementing
// "the value is converted to the declared type" (spec §4.4).
func convertToType(val *value.Value, declaredType string) *value.Value {
	base := strings.TrimSuffix(strings.TrimSpace(declaredType), "[]")
	switch base {
	case "int", "byte", "short", "long", "int32_t", "uint8_t", "size_t":
		if val.Kind() == value.KindIntArray || val.Kind() == value.KindDoubleArray || val.Kind() == value.KindStringArray {
			return val
		}
		return value.Int32(val.ToInt32())
	case "float", "double":
		if val.Kind() == value.KindIntArray || val.Kind() == value.KindDoubleArray || val.Kind() == value.KindStringArray {
			return val
		}
		return value.Double(val.ToDouble())
	case "bool", "boolean":
		return value.Bool(val.ToBool())
	case "String", "string", "char*":
		if val.Kind() == value.KindStringArray {
			return val
		}
		return value.String(val.ToStringValue())
	default:
		return val
	}
}
