package interp

import (
	"strings"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/errors"
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

// evalCall resolves a call's callee name and dispatches to the builtin
// table, a String instance method, a user-defined function, or
// UnknownFunction (spec §4.6/§4.7). A member-access callee is either a
// fixed namespace singleton (Serial.*, Keyboard.*) resolved by its dotted
// name, or a call on a String-valued receiver resolved by method name
// alone, since the receiver identifier varies per call site.
func (i *Interpreter) evalCall(n *ast.Node) *value.Value {
	callee := n.CalleeNode()
	argNodes := n.CallArgs()

	if callee.Kind == ast.KindMemberAccess {
		objNode := callee.Left()
		method := callee.Text()

		if objNode.Kind == ast.KindIdentifier && isNamespaceReceiver(objNode.Text()) {
			name := objNode.Text() + "." + method
			if b, ok := builtinTable[name]; ok {
				return b(i, i.evalArgList(argNodes))
			}
		} else if m, ok := stringMethodTable[method]; ok {
			self := i.eval(objNode)
			if self.Kind() == value.KindString {
				return m(i, objNode, self, i.evalArgList(argNodes))
			}
		}

		i.emitError(errors.CategoryUnknownFunction, "unknown function: %s", method)
		return value.Null()
	}

	name := i.calleeName(callee)
	if b, ok := builtinTable[name]; ok {
		return b(i, i.evalArgList(argNodes))
	}

	if fn, ok := i.functions[name]; ok {
		return i.invokeUserFunction(name, fn, argNodes)
	}

	i.emitError(errors.CategoryUnknownFunction, "unknown function: %s", name)
	return value.Null()
}

// isNamespaceReceiver reports whether name is one of the fixed global
// singletons whose methods live in builtinTable under a dotted name,
// rather than being resolved as a String instance method.
func isNamespaceReceiver(name string) bool {
	return name == "Serial" || name == "Keyboard"
}

func (i *Interpreter) evalArgList(nodes []*ast.Node) []*value.Value {
	vals := make([]*value.Value, len(nodes))
	for idx, a := range nodes {
		vals[idx] = i.eval(a)
	}
	return vals
}

// calleeName renders an identifier or qualified member-access callee as
// its canonical dotted name ("Serial.println"), matching the command
// stream's `function` field convention.
func (i *Interpreter) calleeName(n *ast.Node) string {
	switch n.Kind {
	case ast.KindIdentifier, ast.KindConstant:
		return n.Text()
	case ast.KindMemberAccess:
		return i.calleeName(n.Left()) + "." + n.Text()
	default:
		return ""
	}
}

const maxRecursionDepth = DefaultMaxRecursionDepth

// invokeUserFunction implements the Function Invoker (spec §4.6):
// parameter binding with caller-scope default evaluation, a pushed
// parameter scope, the return-flag RAII guard, and the recursion cap.
func (i *Interpreter) invokeUserFunction(name string, fn *ast.Node, argNodes []*ast.Node) *value.Value {
	if i.callStack.Depth() >= maxRecursionDepth {
		i.emitError(errors.CategoryStackOverflow, "stack overflow calling %s", name)
		return value.Null()
	}

	argVals := make([]*value.Value, len(argNodes))
	for idx, a := range argNodes {
		argVals[idx] = i.eval(a)
	}

	i.emitNow(command.New(command.TypeFunctionCall).
		Set("function", name).
		Set("arguments", argValuesToAny(argVals)))

	params := fn.ParamListNode().Children
	callerScope := i.scope
	fnScope := i.root.Push()

	for idx, p := range params {
		pname := p.ParamName()
		ptype := p.ParamTypeNode().Text()
		isRef := strings.HasSuffix(ptype, "&")
		baseType := strings.TrimSuffix(ptype, "&")

		if isRef && idx < len(argNodes) {
			if target := referenceTarget(callerScope, argNodes[idx]); target != nil {
				fnScope.Declare(pname, runtime.NewReference(pname, baseType, target))
				continue
			}
		}

		var val *value.Value
		if idx < len(argVals) {
			val = argVals[idx]
		} else if def := p.DefaultValueNode(); !def.IsNil() {
			savedScope := i.scope
			i.scope = callerScope
			val = i.eval(def)
			i.scope = savedScope
		} else {
			i.emitError(errors.CategoryType, "missing argument %q calling %s", pname, name)
			val = value.Null()
		}
		fnScope.Declare(pname, &runtime.Variable{Value: convertToType(val.Clone(), baseType), Type: baseType})
	}

	// RAII guard: save/restore return flag+value, scope, and control stack
	// depth around the nested call (spec §4.6/§9).
	savedScope := i.scope
	savedReturning, savedReturnVal := i.returning, i.returnVal
	i.returning, i.returnVal = false, value.Null()
	i.scope = fnScope
	i.control.Push(runtime.ScopeUserFunction)
	i.callStack = append(i.callStack, errors.NewStackFrame(name, fn.Offset))

	i.exec(fn.BodyNode())

	i.callStack = i.callStack[:len(i.callStack)-1]
	i.control.Pop()
	result := i.returnVal
	if result == nil {
		result = value.Null()
	}
	i.scope = savedScope
	i.returning, i.returnVal = savedReturning, savedReturnVal

	returnType := fn.ReturnTypeNode().Text()
	if returnType == "void" || returnType == "" {
		return value.Null()
	}
	return convertToType(result, returnType)
}

// invokeSerialEvent calls a user-defined serialEvent() with the shorter
// FUNCTION_CALL variant that omits the arguments field (spec §4.6).
func (i *Interpreter) invokeSerialEvent() {
	fn, ok := i.functions["serialEvent"]
	if !ok {
		return
	}
	i.emitNow(command.New(command.TypeFunctionCall).Set("function", "serialEvent").Set("message", "serialEvent()"))

	fnScope := i.root.Push()
	savedScope := i.scope
	savedReturning, savedReturnVal := i.returning, i.returnVal
	i.returning, i.returnVal = false, value.Null()
	i.scope = fnScope
	i.control.Push(runtime.ScopeUserFunction)
	i.callStack = append(i.callStack, errors.NewStackFrame("serialEvent", fn.Offset))

	i.exec(fn.BodyNode())

	i.callStack = i.callStack[:len(i.callStack)-1]
	i.control.Pop()
	i.scope = savedScope
	i.returning, i.returnVal = savedReturning, savedReturnVal
}

// referenceTarget resolves a reference-parameter's binding when the
// argument expression is a plain identifier naming a variable reachable
// from callerScope (spec §3.2 "a reference variable stores an indirection
// to another variable in a reachable scope"). A non-identifier argument
// (a literal, a call result, ...) has no addressable variable to bind to,
// so the caller falls back to pass-by-value.
func referenceTarget(callerScope *runtime.Scope, argNode *ast.Node) *runtime.Variable {
	if argNode == nil || argNode.Kind != ast.KindIdentifier {
		return nil
	}
	v, ok := callerScope.Lookup(argNode.Text())
	if !ok {
		return nil
	}
	return v
}

func argValuesToAny(vals []*value.Value) []any {
	out := make([]any, len(vals))
	for idx, v := range vals {
		out[idx] = v
	}
	return out
}
