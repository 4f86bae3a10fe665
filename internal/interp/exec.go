package interp

import (
	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

// exec dispatches on statement/declaration node kind (spec §4.5). It
// consumes and clears the returning/breaking/continuing flags set by
// nested control-flow statements at the boundary that understands them
// (loop bodies clear break/continue; function bodies clear return).
func (i *Interpreter) exec(n *ast.Node) {
	if n.IsNil() || i.safeMode {
		return
	}
	switch n.Kind {
	case ast.KindCompoundStatement:
		i.execCompound(n)
	case ast.KindExpressionStatement:
		i.eval(n.Child(0))
	case ast.KindVarDeclaration:
		i.execVarDeclaration(n)
	case ast.KindIf:
		i.execIf(n)
	case ast.KindWhile:
		i.execWhile(n)
	case ast.KindDoWhile:
		i.execDoWhile(n)
	case ast.KindFor:
		i.execFor(n)
	case ast.KindRangeBasedFor:
		i.execRangeFor(n)
	case ast.KindSwitch:
		i.execSwitch(n)
	case ast.KindReturn:
		i.execReturn(n)
	case ast.KindBreak:
		i.breaking = true
		i.emitNow(command.New(command.TypeBreak))
	case ast.KindContinue:
		i.continuing = true
		i.emitNow(command.New(command.TypeContinue))
	case ast.KindFunctionDefinition, ast.KindFunctionDeclaration:
		// Already recorded by collectDeclarations; nested function
		// definitions are not part of this dialect.
	case ast.KindStructDeclaration:
		i.execStructDeclaration(n)
	case ast.KindUnionDeclaration:
		i.emitNow(commandUnionDef(n.Name()))
	case ast.KindEnumType:
		i.execEnumDeclaration(n)
	case ast.KindTypedef:
		// Typedefs have no runtime effect beyond the type alias itself.
	case ast.KindTemplateTypeParameter:
		i.emitNow(commandTemplateParam(n.Text()))
	case ast.KindEmpty, ast.KindComment, ast.KindError:
		// No effect.
	case ast.KindPreprocessorDirective:
		i.eval(n)
	default:
		// A bare expression-producing node used as a statement.
		i.eval(n)
	}
}

func (i *Interpreter) execCompound(n *ast.Node) {
	for _, stmt := range n.Children {
		i.exec(stmt)
		if i.returning || i.breaking || i.continuing || i.safeMode || i.loopAbort {
			return
		}
	}
}

// execVarDeclaration implements declaration-with-initializer VAR_SET
// emission and the isExtern shadowing rule (spec §4.3/§4.8).
func (i *Interpreter) execVarDeclaration(n *ast.Node) {
	typeName := n.VarTypeNode().Text()
	isConst := n.IsConstDeclaration()
	isStatic := n.IsStaticDeclaration()
	for _, decl := range n.Declarators() {
		switch decl.Kind {
		case ast.KindArrayDeclarator:
			i.declareArray(typeName, decl, isConst, isStatic)
		default:
			i.declareScalar(typeName, decl, isConst, isStatic)
		}
	}
}

func (i *Interpreter) declareScalar(typeName string, decl *ast.Node, isConst, isStatic bool) {
	name := decl.Name()
	var val *value.Value
	if initNode := decl.InitializerNode(); !initNode.IsNil() {
		val = convertToType(i.eval(initNode), typeName)
	} else {
		val = zeroValueForType(typeName)
	}
	isExtern := i.scope.HasInParent(name)
	v := &runtime.Variable{Value: val, Type: typeName, IsGlobal: i.scope == i.root, IsConst: isConst, IsStatic: isStatic}
	i.scope.Declare(name, v)
	i.emitVarSet(name, v, isExtern)
}

func (i *Interpreter) declareArray(typeName string, decl *ast.Node, isConst, isStatic bool) {
	inner := decl.ArrayInnerDeclaratorNode()
	name := inner.Name()
	var val *value.Value
	if initNode := decl.ArrayInitializerNode(); !initNode.IsNil() {
		val = convertToType(i.eval(initNode), typeName+"[]")
	} else {
		size := int(decl.IntValue())
		val = zeroArrayForType(typeName, size)
	}
	isExtern := i.scope.HasInParent(name)
	v := &runtime.Variable{Value: val, Type: typeName + "[]", IsGlobal: i.scope == i.root, IsConst: isConst, IsStatic: isStatic}
	i.scope.Declare(name, v)
	i.emitVarSet(name, v, isExtern)
}

func zeroValueForType(typeName string) *value.Value {
	switch typeName {
	case "int", "byte", "short", "long", "int32_t", "uint8_t", "size_t", "char":
		return value.Int32(0)
	case "float", "double":
		return value.Double(0)
	case "bool", "boolean":
		return value.Bool(false)
	case "String", "string", "char*":
		return value.String("")
	default:
		return value.Null()
	}
}

func zeroArrayForType(typeName string, size int) *value.Value {
	switch typeName {
	case "float", "double":
		return value.DoubleArray(make([]float64, size))
	case "String", "string":
		return value.StringArray(make([]string, size))
	default:
		return value.IntArray(make([]int32, size))
	}
}

// execIf implements spec §4.5's If statement.
func (i *Interpreter) execIf(n *ast.Node) {
	cond := i.eval(n.Child(0))
	branch := "else"
	if cond.ToBool() {
		branch = "then"
	}
	i.emitNow(command.New(command.TypeIfStatement).
		Set("condition", cond).
		Set("conditionDisplay", cond.DisplayString()).
		Set("branch", branch))
	if branch == "then" {
		i.execInPushedScope(n.Child(1))
	} else if elseNode := n.Child(2); !elseNode.IsNil() {
		i.execInPushedScope(elseNode)
	}
}

func (i *Interpreter) execInPushedScope(n *ast.Node) {
	saved := i.scope
	i.scope = i.scope.Push()
	i.exec(n)
	i.scope = saved
}

// execWhile implements the While loop per spec §4.5, including the
// limit-reached re-evaluate-condition-once quirk.
func (i *Interpreter) execWhile(n *ast.Node) {
	cond := n.Child(0)
	body := n.Child(1)
	i.emitNow(command.New(command.TypeWhileLoop).Set("phase", "start"))
	i.control.Push(runtime.ScopeWhileLoop)

	iterations := 0
	limitReached := false
	for i.eval(cond).ToBool() {
		if iterations >= i.Options.MaxLoopIterations {
			i.eval(cond) // re-evaluate once more (spec §4.5)
			limitReached = true
			break
		}
		i.emitNow(command.New(command.TypeWhileLoop).Set("phase", "iteration").Set("iteration", iterations))
		i.execInPushedScope(body)
		iterations++
		if i.breaking {
			i.breaking = false
			break
		}
		if i.continuing {
			i.continuing = false
		}
		if i.returning || i.safeMode || i.loopAbort {
			i.control.Pop()
			return
		}
	}
	if limitReached {
		i.control.SetTopStopReason(runtime.StopIterationLimit)
		i.emitNow(command.New(command.TypeLoopLimit).
			Set("iterations", iterations).
			Set("message", "loop-limit reached"))
		i.handleLoopLimitPropagation()
	} else {
		i.emitNow(command.New(command.TypeWhileLoop).Set("phase", "end").Set("iterations", iterations))
	}
	i.control.Pop()
}

func (i *Interpreter) execDoWhile(n *ast.Node) {
	body := n.Child(0)
	cond := n.Child(1)
	i.emitNow(command.New(command.TypeDoWhileLoop).Set("phase", "start"))
	i.control.Push(runtime.ScopeDoWhileLoop)

	iterations := 0
	limitReached := false
	for {
		if iterations >= i.Options.MaxLoopIterations {
			limitReached = true
			break
		}
		i.emitNow(command.New(command.TypeDoWhileLoop).Set("phase", "iteration").Set("iteration", iterations))
		i.execInPushedScope(body)
		iterations++
		if i.breaking {
			i.breaking = false
			break
		}
		i.continuing = false
		if i.returning || i.safeMode || i.loopAbort {
			i.control.Pop()
			return
		}
		if !i.eval(cond).ToBool() {
			break
		}
	}
	i.emitNow(command.New(command.TypeDoWhileLoop).Set("phase", "end").Set("iterations", iterations))
	if limitReached {
		i.control.SetTopStopReason(runtime.StopIterationLimit)
		i.handleLoopLimitPropagation()
	}
	i.control.Pop()
}

// execFor implements the For loop: initializer in a pushed scope,
// increment after body on every iteration (spec §4.5).
func (i *Interpreter) execFor(n *ast.Node) {
	init := n.Child(0)
	cond := n.Child(1)
	incr := n.Child(2)
	body := n.Child(3)

	saved := i.scope
	i.scope = i.scope.Push()
	defer func() { i.scope = saved }()

	if !init.IsNil() {
		i.exec(init)
	}
	i.emitNow(command.New(command.TypeForLoop).Set("phase", "start"))
	i.control.Push(runtime.ScopeForLoop)

	iterations := 0
	limitReached := false
	for cond.IsNil() || i.eval(cond).ToBool() {
		if iterations >= i.Options.MaxLoopIterations {
			limitReached = true
			break
		}
		i.emitNow(command.New(command.TypeForLoop).Set("phase", "iteration").Set("iteration", iterations))
		i.execInPushedScope(body)
		iterations++
		if i.breaking {
			i.breaking = false
			break
		}
		i.continuing = false
		if i.returning || i.safeMode || i.loopAbort {
			i.control.Pop()
			return
		}
		if !incr.IsNil() {
			i.eval(incr)
		}
	}
	i.emitNow(command.New(command.TypeForLoop).Set("phase", "end").Set("iterations", iterations))
	if limitReached {
		i.control.SetTopStopReason(runtime.StopIterationLimit)
		i.handleLoopLimitPropagation()
	}
	i.control.Pop()
}

const rangeForSafetyCap = 1000

// execRangeFor implements range-based for over string characters, integer
// ranges, array elements, or a single-element fallback (spec §4.5).
func (i *Interpreter) execRangeFor(n *ast.Node) {
	declNode := n.Child(0)
	iterNode := n.Child(1)
	body := n.Child(2)
	varName := declNode.Name()

	iterable := i.eval(iterNode)
	saved := i.scope
	i.scope = i.scope.Push()
	defer func() { i.scope = saved }()

	bindAndRun := func(elem *value.Value) {
		v := &runtime.Variable{Value: elem, Type: "auto"}
		i.scope.ForceDeclare(varName, v)
		i.exec(body)
	}

	switch iterable.Kind() {
	case value.KindString:
		for _, r := range iterable.AsString() {
			bindAndRun(value.Int32(int32(r)))
			if i.breaking || i.returning || i.safeMode || i.loopAbort {
				break
			}
			i.continuing = false
		}
	case value.KindIntArray:
		for _, x := range iterable.IntElements() {
			bindAndRun(value.Int32(x))
			if i.breaking || i.returning || i.safeMode || i.loopAbort {
				break
			}
			i.continuing = false
		}
	case value.KindDoubleArray:
		for _, x := range iterable.DoubleElements() {
			bindAndRun(value.Double(x))
			if i.breaking || i.returning || i.safeMode || i.loopAbort {
				break
			}
			i.continuing = false
		}
	case value.KindStringArray:
		for _, x := range iterable.StringElements() {
			bindAndRun(value.String(x))
			if i.breaking || i.returning || i.safeMode || i.loopAbort {
				break
			}
			i.continuing = false
		}
	case value.KindInt32, value.KindUint32:
		n := int(iterable.ToInt32())
		if n > rangeForSafetyCap {
			n = rangeForSafetyCap
		}
		for x := 0; x < n; x++ {
			bindAndRun(value.Int32(int32(x)))
			if i.breaking || i.returning || i.safeMode || i.loopAbort {
				break
			}
			i.continuing = false
		}
	default:
		bindAndRun(iterable)
	}
	i.breaking = false
}

// execSwitch implements Switch/case/fallthrough (spec §4.5).
func (i *Interpreter) execSwitch(n *ast.Node) {
	discriminant := i.eval(n.Child(0))
	i.emitNow(command.New(command.TypeSwitch).Set("discriminant", discriminant))
	i.control.Push(runtime.ScopeSwitch)

	executing := false
	for _, c := range n.Children[1:] {
		label := c.Child(0)
		shouldExecute := executing
		if !shouldExecute {
			if label.IsNil() {
				shouldExecute = true // default
			} else {
				shouldExecute = value.Equal(discriminant, i.eval(label))
			}
		}
		rec := command.New(command.TypeSwitchCase).Set("shouldExecute", shouldExecute)
		if !label.IsNil() {
			rec.Set("value", i.eval(label))
		}
		i.emitNow(rec)
		if shouldExecute {
			executing = true
			i.exec(c.Child(1))
			if i.breaking {
				i.breaking = false
				break
			}
			if i.returning || i.safeMode || i.loopAbort {
				break
			}
		}
	}
	i.control.Pop()
}

func (i *Interpreter) execReturn(n *ast.Node) {
	if expr := n.Child(0); !expr.IsNil() {
		i.returnVal = i.eval(expr)
	} else {
		i.returnVal = value.Null()
	}
	i.returning = true
}

// handleLoopLimitPropagation implements spec §4.5's loop-limit propagation
// policy using the Execution Control Stack (spec §3.6/§9): a limit inside
// Setup terminates only that loop; a limit inside (or under) Loop
// terminates the whole program.
func (i *Interpreter) handleLoopLimitPropagation() {
	if i.control.InSetupScope() {
		return
	}
	i.loopAbort = true
}

func (i *Interpreter) execStructDeclaration(n *ast.Node) {
	structName := n.Name()
	for _, member := range n.Children[1:] {
		switch member.Kind {
		case ast.KindStructMember:
			i.emitNow(commandStructMember(structName, member.Name(), member.Child(0).Text()))
		case ast.KindMultipleStructMembers:
			names := make([]string, member.NumChildren())
			for idx, c := range member.Children {
				names[idx] = c.Text()
			}
			i.emitNow(commandMultiStructMembers(structName, names))
		}
	}
}

func (i *Interpreter) execEnumDeclaration(n *ast.Node) {
	i.emitNow(commandEnumTypeRef(n.Name()))
	next := int32(0)
	for _, member := range n.Children {
		if member.Kind != ast.KindEnumMember {
			continue
		}
		val := next
		if initNode := member.Child(0); !initNode.IsNil() {
			val = i.eval(initNode).ToInt32()
		}
		i.emitNow(commandEnumMember(member.Text(), val))
		i.root.ForceDeclare(member.Text(), &runtime.Variable{Value: value.Int32(val), Type: "int", IsConst: true, IsGlobal: true})
		next = val + 1
	}
}
