package interp

import (
	"strings"
	"testing"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

func paramNode(typ, name string) *ast.Node {
	return ast.NewNode(ast.KindParameter,
		&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: typ}},
		&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: name}},
	)
}

func paramNodeWithDefault(typ, name string, def *ast.Node) *ast.Node {
	return ast.NewNode(ast.KindParameter,
		&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: typ}},
		&ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: name}, Children: []*ast.Node{def}},
	)
}

func funcDef(name, returnType string, params []*ast.Node, body *ast.Node) *ast.Node {
	return ast.NewNode(ast.KindFunctionDefinition,
		&ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: returnType}},
		ast.NewIdent(name),
		ast.NewNode(ast.KindParameter, params...),
		body,
	)
}

func TestInvokeUserFunctionBindsParamsAndReturns(t *testing.T) {
	i := newTestInterp(3)
	body := ast.NewNode(ast.KindCompoundStatement,
		ast.NewNode(ast.KindReturn, ast.NewOp(ast.KindBinaryOp, "+", ast.NewIdent("a"), ast.NewIdent("b"))),
	)
	fn := funcDef("add", "int", []*ast.Node{paramNode("int", "a"), paramNode("int", "b")}, body)
	i.functions["add"] = fn

	call := ast.NewNode(ast.KindFunctionCall, ast.NewIdent("add"), ast.NewNumber(2), ast.NewNumber(3))
	result := i.evalCall(call)

	if got := result.ToInt32(); got != 5 {
		t.Fatalf("add(2,3) = %d, want 5", got)
	}
	if _, ok := i.scope.Lookup("a"); ok {
		t.Fatal("parameter scope should not leak into the caller's scope")
	}
}

func TestInvokeUserFunctionUsesDefaultValueFromCallerScope(t *testing.T) {
	i := newTestInterp(3)
	body := ast.NewNode(ast.KindCompoundStatement,
		ast.NewNode(ast.KindReturn, ast.NewIdent("step")),
	)
	fn := funcDef("bump", "int", []*ast.Node{paramNodeWithDefault("int", "step", ast.NewIdent("defaultStep"))}, body)
	i.functions["bump"] = fn

	i.scope.Declare("defaultStep", &runtime.Variable{Value: value.Int32(9), Type: "int"})

	call := ast.NewNode(ast.KindFunctionCall, ast.NewIdent("bump"))
	result := i.evalCall(call)

	if got := result.ToInt32(); got != 9 {
		t.Fatalf("bump() with omitted arg = %d, want 9 (from caller-scope default)", got)
	}
}

func TestInvokeUserFunctionVoidReturnYieldsNull(t *testing.T) {
	i := newTestInterp(3)
	fn := funcDef("noop", "void", nil, ast.NewNode(ast.KindCompoundStatement))
	i.functions["noop"] = fn

	call := ast.NewNode(ast.KindFunctionCall, ast.NewIdent("noop"))
	result := i.evalCall(call)

	if !result.IsNull() {
		t.Fatalf("void function should return Null, got %v", result)
	}
}

func TestInvokeUserFunctionRecursionHitsStackOverflow(t *testing.T) {
	i := newTestInterp(3)
	body := ast.NewNode(ast.KindCompoundStatement,
		ast.NewNode(ast.KindExpressionStatement, ast.NewNode(ast.KindFunctionCall, ast.NewIdent("recurse"))),
	)
	fn := funcDef("recurse", "void", nil, body)
	i.functions["recurse"] = fn

	i.evalCall(ast.NewNode(ast.KindFunctionCall, ast.NewIdent("recurse")))

	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"errorType":"StackOverflowError"`) {
		t.Errorf("expected a StackOverflowError, stream tail missing it")
	}
}

func TestInvokeUserFunctionBindsReferenceParamThroughToCallerVariable(t *testing.T) {
	i := newTestInterp(3)
	body := ast.NewNode(ast.KindCompoundStatement,
		ast.NewNode(ast.KindExpressionStatement,
			ast.NewOp(ast.KindAssignment, "=", ast.NewIdent("out"), ast.NewNumber(99))),
	)
	fn := funcDef("setTo99", "void", []*ast.Node{paramNode("int&", "out")}, body)
	i.functions["setTo99"] = fn

	caller := &runtime.Variable{Value: value.Int32(1), Type: "int"}
	i.scope.Declare("x", caller)

	i.evalCall(ast.NewNode(ast.KindFunctionCall, ast.NewIdent("setTo99"), ast.NewIdent("x")))

	if got := caller.Read().ToInt32(); got != 99 {
		t.Fatalf("caller's x = %d, want 99 (write through reference parameter)", got)
	}
}

func TestInvokeUserFunctionNonIdentifierArgFallsBackToByValueForReferenceParam(t *testing.T) {
	i := newTestInterp(3)
	body := ast.NewNode(ast.KindCompoundStatement,
		ast.NewNode(ast.KindReturn, ast.NewIdent("out")),
	)
	fn := funcDef("identity", "int", []*ast.Node{paramNode("int&", "out")}, body)
	i.functions["identity"] = fn

	result := i.evalCall(ast.NewNode(ast.KindFunctionCall, ast.NewIdent("identity"), ast.NewNumber(7)))

	if got := result.ToInt32(); got != 7 {
		t.Fatalf("identity(7) = %d, want 7 (value argument, no addressable target)", got)
	}
}

func TestEvalCallDispatchesNamespaceSingletonByDottedName(t *testing.T) {
	i := newTestInterp(3)
	call := ast.NewNode(ast.KindFunctionCall,
		&ast.Node{Kind: ast.KindMemberAccess, Payload: ast.Payload{Str: "begin"}, Children: []*ast.Node{ast.NewIdent("Serial")}},
		ast.NewNumber(9600),
	)
	i.evalCall(call)

	stream := i.stream.JSONLines()
	if !strings.Contains(stream, `"function":"Serial.begin"`) {
		t.Errorf("expected Serial.begin call, stream: %s", stream)
	}
}

func TestEvalCallDispatchesStringMethodByReceiverKind(t *testing.T) {
	i := newTestInterp(3)
	i.scope.Declare("greeting", &runtime.Variable{Value: value.String("hello"), Type: "String"})

	call := ast.NewNode(ast.KindFunctionCall,
		&ast.Node{Kind: ast.KindMemberAccess, Payload: ast.Payload{Str: "toUpperCase"}, Children: []*ast.Node{ast.NewIdent("greeting")}},
	)
	i.evalCall(call)

	got, _ := i.scope.Lookup("greeting")
	if got.Read().AsString() != "HELLO" {
		t.Fatalf("greeting.toUpperCase() did not write back uppercase, got %q", got.Read().AsString())
	}
}
