package interp

import (
	"strings"
	"testing"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

func newTestInterp(maxLoop int) *Interpreter {
	return New(Options{MaxLoopIterations: maxLoop, SyncMode: true}.normalized())
}

func intLit(v float64) *ast.Node { return ast.NewNumber(v) }

func TestExecIfTakesThenBranch(t *testing.T) {
	i := newTestInterp(3)
	n := ast.NewNode(ast.KindIf, ast.NewConstant("true"),
		ast.NewNode(ast.KindExpressionStatement, ast.NewNode(ast.KindVarDeclaration)))
	i.execIf(n)
	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"branch":"then"`) {
		t.Errorf("expected then branch, stream: %s", stream)
	}
}

func TestExecIfTakesElseBranch(t *testing.T) {
	i := newTestInterp(3)
	elseBody := ast.NewNode(ast.KindCompoundStatement)
	n := ast.NewNode(ast.KindIf, ast.NewConstant("false"), ast.NewNode(ast.KindCompoundStatement), elseBody)
	i.execIf(n)
	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"branch":"else"`) {
		t.Errorf("expected else branch, stream: %s", stream)
	}
}

func TestExecVarDeclarationEmitsVarSet(t *testing.T) {
	i := newTestInterp(3)
	decl := ast.NewNode(ast.KindVarDeclaration,
		&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: "int"}},
		&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: "x"}, Children: []*ast.Node{intLit(7)}},
	)
	i.execVarDeclaration(decl)
	if _, ok := i.scope.Lookup("x"); !ok {
		t.Fatal("x was not declared in scope")
	}
	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"variable":"x"`) || !strings.Contains(stream, `"value":7`) {
		t.Errorf("missing VAR_SET x=7, stream: %s", stream)
	}
}

func TestExecReturnSetsReturningFlagAndValue(t *testing.T) {
	i := newTestInterp(3)
	i.execReturn(ast.NewNode(ast.KindReturn, intLit(42)))
	if !i.returning {
		t.Fatal("execReturn did not set returning")
	}
	if got := i.returnVal.ToInt32(); got != 42 {
		t.Fatalf("returnVal = %d, want 42", got)
	}
}

func TestExecCompoundStopsAtReturn(t *testing.T) {
	i := newTestInterp(3)
	body := ast.NewNode(ast.KindCompoundStatement,
		ast.NewNode(ast.KindReturn, intLit(1)),
		ast.NewNode(ast.KindVarDeclaration,
			&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: "int"}},
			&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: "unreached"}},
		),
	)
	i.execCompound(body)
	if !i.returning {
		t.Fatal("expected returning to be set")
	}
	if _, ok := i.scope.Lookup("unreached"); ok {
		t.Fatal("statement after return should not have executed")
	}
}

// TestExecWhileLoopLimitUnderSetupOnlyStopsTheLoop verifies spec's
// loop-limit propagation policy: a limit hit while the nearest Setup/Loop
// ancestor frame is Setup terminates only that loop.
func TestExecWhileLoopLimitUnderSetupOnlyStopsTheLoop(t *testing.T) {
	i := newTestInterp(2)
	i.control.Push(runtime.ScopeSetup)
	defer i.control.Pop()

	loop := ast.NewNode(ast.KindWhile, ast.NewConstant("true"), ast.NewNode(ast.KindCompoundStatement))
	i.execWhile(loop)

	if i.loopAbort {
		t.Fatal("loop-limit under Setup scope should not set loopAbort")
	}
	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"type":"LOOP_LIMIT_REACHED"`) {
		t.Errorf("expected a LOOP_LIMIT_REACHED command, stream: %s", stream)
	}
}

// TestExecWhileLoopLimitUnderLoopScopeAbortsProgram verifies the other half
// of the propagation policy: the same limit reached under Loop scope
// terminates the whole program via loopAbort.
func TestExecWhileLoopLimitUnderLoopScopeAbortsProgram(t *testing.T) {
	i := newTestInterp(2)
	i.control.Push(runtime.ScopeLoop)
	defer i.control.Pop()

	loop := ast.NewNode(ast.KindWhile, ast.NewConstant("true"), ast.NewNode(ast.KindCompoundStatement))
	i.execWhile(loop)

	if !i.loopAbort {
		t.Fatal("loop-limit under Loop scope should set loopAbort")
	}
}

func TestExecForLoopRunsInitCondIncrBody(t *testing.T) {
	i := newTestInterp(10)
	i.control.Push(runtime.ScopeSetup)
	defer i.control.Pop()

	init := ast.NewNode(ast.KindVarDeclaration,
		&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: "int"}},
		&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: "i"}, Children: []*ast.Node{intLit(0)}},
	)
	cond := ast.NewOp(ast.KindBinaryOp, "<", ast.NewIdent("i"), intLit(3))
	incr := ast.NewOp(ast.KindPostfixOp, "++", ast.NewIdent("i"))
	body := ast.NewNode(ast.KindCompoundStatement)

	forNode := ast.NewNode(ast.KindFor, init, cond, incr, body)
	i.execFor(forNode)

	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"phase":"end","iterations":3`) {
		t.Errorf("expected 3 completed iterations, stream: %s", stream)
	}
	if strings.Contains(stream, "LOOP_LIMIT") {
		t.Errorf("loop should finish before hitting its limit, stream: %s", stream)
	}
}

func TestExecSwitchRunsMatchingCaseAndFallsThrough(t *testing.T) {
	i := newTestInterp(3)
	varDecl := func(name string) *ast.Node {
		return ast.NewNode(ast.KindVarDeclaration,
			&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: "int"}},
			&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: name}, Children: []*ast.Node{intLit(1)}},
		)
	}
	caseOne := ast.NewNode(ast.KindCase, intLit(1), ast.NewNode(ast.KindCompoundStatement, varDecl("a")))
	caseTwo := ast.NewNode(ast.KindCase, intLit(2), ast.NewNode(ast.KindCompoundStatement, varDecl("b")))
	sw := ast.NewNode(ast.KindSwitch, intLit(1), caseOne, caseTwo)

	i.execSwitch(sw)

	if _, ok := i.scope.Lookup("a"); !ok {
		t.Error("matching case 1 should have run")
	}
	if _, ok := i.scope.Lookup("b"); !ok {
		t.Error("case 2 should have run via fallthrough (no break)")
	}
}

func TestExecBreakStopsSwitchFallthrough(t *testing.T) {
	i := newTestInterp(3)
	caseOne := ast.NewNode(ast.KindCase, intLit(1), ast.NewNode(ast.KindCompoundStatement, ast.NewNode(ast.KindBreak)))
	caseTwo := ast.NewNode(ast.KindCase, intLit(2), ast.NewNode(ast.KindCompoundStatement,
		ast.NewNode(ast.KindVarDeclaration,
			&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: "int"}},
			&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: "never"}},
		)))
	sw := ast.NewNode(ast.KindSwitch, intLit(1), caseOne, caseTwo)

	i.execSwitch(sw)

	if i.breaking {
		t.Fatal("switch should have consumed the break flag")
	}
	if _, ok := i.scope.Lookup("never"); ok {
		t.Fatal("break should have stopped fallthrough into case 2")
	}
}

// TestExecVarDeclarationWithConstQualifierMarksVariableConst proves the
// const qualifier flows from a real KindVarDeclaration node (as opposed to
// a hand-built runtime.Variable) through to the declared Variable, and
// that a later assignment against it is rejected.
func TestExecVarDeclarationWithConstQualifierMarksVariableConst(t *testing.T) {
	i := newTestInterp(3)
	decl := ast.NewVarDeclaration(true, false,
		&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: "int"}},
		&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: "x"}, Children: []*ast.Node{intLit(5)}},
	)

	i.execVarDeclaration(decl)

	v, ok := i.scope.Lookup("x")
	if !ok {
		t.Fatal("x was not declared")
	}
	if !v.IsConst {
		t.Fatal("const-qualified declaration should set IsConst on the Variable")
	}

	i.assignIdentifier("x", value.Int32(99))

	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"errorType":"ConstWriteError"`) {
		t.Errorf("expected ConstWriteError, stream: %s", stream)
	}
	if got := v.Read().ToInt32(); got != 5 {
		t.Errorf("const variable was mutated: got %d, want 5", got)
	}
}

func TestExecVarDeclarationWithoutQualifierIsMutable(t *testing.T) {
	i := newTestInterp(3)
	decl := ast.NewVarDeclaration(false, false,
		&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: "int"}},
		&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: "x"}, Children: []*ast.Node{intLit(5)}},
	)

	i.execVarDeclaration(decl)

	v, ok := i.scope.Lookup("x")
	if !ok {
		t.Fatal("x was not declared")
	}
	if v.IsConst {
		t.Fatal("unqualified declaration should not be const")
	}
}

func TestAssignIdentifierRejectsConstWrite(t *testing.T) {
	i := newTestInterp(3)
	v := &runtime.Variable{Value: value.Int32(5), Type: "int", IsConst: true}
	i.scope.Declare("x", v)

	i.assignIdentifier("x", value.Int32(9))

	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"errorType":"ConstWriteError"`) {
		t.Errorf("expected ConstWriteError, stream: %s", stream)
	}
	if got := v.Read().ToInt32(); got != 5 {
		t.Errorf("const variable was mutated: got %d, want 5", got)
	}
}
