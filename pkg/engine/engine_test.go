package engine

import (
	"strings"
	"testing"

	"github.com/ardsim/engine/internal/ast"
)

func typeNode(name string) *ast.Node {
	return &ast.Node{Kind: ast.KindType, Payload: ast.Payload{Str: name}}
}

func declarator(name string, init *ast.Node) *ast.Node {
	n := &ast.Node{Kind: ast.KindDeclarator, Payload: ast.Payload{Str: name}}
	if init != nil {
		n.Children = []*ast.Node{init}
	}
	return n
}

func param(typ, name string) *ast.Node {
	return ast.NewNode(ast.KindParameter, typeNode(typ), declarator(name, nil))
}

func paramList(params ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindParameter, params...)
}

func varDecl(typ string, decls ...*ast.Node) *ast.Node {
	children := append([]*ast.Node{typeNode(typ)}, decls...)
	return ast.NewNode(ast.KindVarDeclaration, children...)
}

func call(callee *ast.Node, args ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindFunctionCall, append([]*ast.Node{callee}, args...)...)
}

func memberCall(receiver, method string, args ...*ast.Node) *ast.Node {
	callee := &ast.Node{Kind: ast.KindMemberAccess, Payload: ast.Payload{Str: method}, Children: []*ast.Node{ast.NewIdent(receiver)}}
	return call(callee, args...)
}

func exprStmt(e *ast.Node) *ast.Node {
	return ast.NewNode(ast.KindExpressionStatement, e)
}

func compound(stmts ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindCompoundStatement, stmts...)
}

func fnDef(name, returnType string, params *ast.Node, body *ast.Node) *ast.Node {
	return ast.NewNode(ast.KindFunctionDefinition, typeNode(returnType), ast.NewIdent(name), params, body)
}

func fnSimple(name string, body *ast.Node) *ast.Node {
	return fnDef(name, "void", paramList(), body)
}

func program(children ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindProgram, children...)
}

func compile(n *ast.Node) []byte {
	return ast.NewWriter().Write(n)
}

func TestScenario1_EmptyLoopWithZeroIterations(t *testing.T) {
	// void setup(){ pinMode(13,OUTPUT); digitalWrite(13,HIGH); } void loop(){}
	setupBody := compound(
		exprStmt(call(ast.NewIdent("pinMode"), ast.NewNumber(13), ast.NewConstant("OUTPUT"))),
		exprStmt(call(ast.NewIdent("digitalWrite"), ast.NewNumber(13), ast.NewConstant("HIGH"))),
	)
	prog := program(
		fnSimple("setup", setupBody),
		fnSimple("loop", compound()),
	)

	e, err := New(WithMaxLoopIterations(0), WithSyncMode(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Run(compile(prog)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stream := e.CommandStream()
	for _, want := range []string{
		`"type":"VERSION_INFO"`,
		`"type":"PROGRAM_START"`,
		`"type":"SETUP_START"`,
		`"type":"PIN_MODE"`,
		`"pin":13`,
		`"mode":1`,
		`"type":"DIGITAL_WRITE"`,
		`"type":"SETUP_END"`,
		`"message":"Starting loop() execution"`,
		`"iterations":0`,
		`"limitReached":true`,
		`"type":"PROGRAM_END"`,
	} {
		if !strings.Contains(stream, want) {
			t.Errorf("command stream missing %q\nfull stream:\n%s", want, stream)
		}
	}
}

func TestScenario4_SerialBeginAndPrintln(t *testing.T) {
	setupBody := compound(
		exprStmt(memberCall("Serial", "begin", ast.NewNumber(9600))),
		exprStmt(memberCall("Serial", "println", ast.NewString("hi"))),
	)
	prog := program(
		fnSimple("setup", setupBody),
		fnSimple("loop", compound()),
	)

	e, err := New(WithMaxLoopIterations(0), WithSyncMode(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Run(compile(prog)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stream := e.CommandStream()
	if !strings.Contains(stream, `"function":"Serial.begin"`) {
		t.Errorf("missing Serial.begin call, stream:\n%s", stream)
	}
	if !strings.Contains(stream, `"function":"Serial.println"`) || !strings.Contains(stream, `"data":"hi"`) {
		t.Errorf("missing Serial.println call with data, stream:\n%s", stream)
	}
}

func TestScenario6_UserFunctionCallAndReturn(t *testing.T) {
	// int f(int x){ return x*2; } void setup(){ int y = f(3); }
	fBody := compound(
		ast.NewNode(ast.KindReturn, ast.NewOp(ast.KindBinaryOp, "*", ast.NewIdent("x"), ast.NewNumber(2))),
	)
	fDef := fnDef("f", "int", paramList(param("int", "x")), fBody)

	setupBody := compound(
		varDecl("int", declarator("y", call(ast.NewIdent("f"), ast.NewNumber(3)))),
	)

	prog := program(
		fDef,
		fnSimple("setup", setupBody),
		fnSimple("loop", compound()),
	)

	e, err := New(WithMaxLoopIterations(0), WithSyncMode(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Run(compile(prog)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stream := e.CommandStream()
	if !strings.Contains(stream, `"function":"f"`) {
		t.Errorf("missing FUNCTION_CALL for f, stream:\n%s", stream)
	}
	if !strings.Contains(stream, `"variable":"y","value":6`) {
		t.Errorf("missing VAR_SET y=6, stream:\n%s", stream)
	}
}

func TestScenario2_GlobalVariableAccumulatedInSetup(t *testing.T) {
	// int a=0; void setup(){ for(int i=0;i<3;i++) a+=i; } void loop(){}
	forBody := compound(exprStmt(ast.NewOp(ast.KindAssignment, "+=", ast.NewIdent("a"), ast.NewIdent("i"))))
	forLoop := ast.NewNode(ast.KindFor,
		varDecl("int", declarator("i", ast.NewNumber(0))),
		ast.NewOp(ast.KindBinaryOp, "<", ast.NewIdent("i"), ast.NewNumber(3)),
		ast.NewOp(ast.KindPostfixOp, "++", ast.NewIdent("i")),
		forBody,
	)
	prog := program(
		varDecl("int", declarator("a", ast.NewNumber(0))),
		fnSimple("setup", compound(forLoop)),
		fnSimple("loop", compound()),
	)

	e, err := New(WithMaxLoopIterations(5), WithSyncMode(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Run(compile(prog)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stream := e.CommandStream()
	if strings.Contains(stream, `"errorType":"UndefinedVariable"`) {
		t.Fatalf("global variable a should be declared before setup() runs, stream:\n%s", stream)
	}
	if got, want := strings.Count(stream, `"variable":"a"`), 4; got != want {
		t.Errorf(`"variable":"a" VAR_SET count = %d, want %d (1 declaration + 3 accumulations), stream:
%s`, got, want, stream)
	}
	if !strings.Contains(stream, `"variable":"a","value":3`) {
		t.Errorf("expected final a=3 (0+1+2), stream:\n%s", stream)
	}
}

func TestAsyncSuspendAndResume(t *testing.T) {
	setupBody := compound(
		varDecl("int", declarator("v", call(ast.NewIdent("analogRead"), ast.NewConstant("A0")))),
	)
	prog := program(
		fnSimple("setup", setupBody),
		fnSimple("loop", compound()),
	)

	e, err := New(WithMaxLoopIterations(0), WithSyncMode(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := e.Load(compile(prog))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e.Start(p)

	if got := e.State(); got != "WaitingForResponse" {
		t.Fatalf("State() = %q, want WaitingForResponse after async analogRead", got)
	}

	reqID := lastRequestID(e)
	if reqID == "" {
		t.Fatal("expected a pending requestId in the command stream")
	}
	e.HandleResponse(reqID, 77)
	e.Tick()

	stream := e.CommandStream()
	if !strings.Contains(stream, `"variable":"v","value":77`) {
		t.Errorf("missing VAR_SET v=77 after resume, stream:\n%s", stream)
	}
}

// lastRequestID scrapes the most recently emitted request id out of the
// command stream, for tests that need to answer an async request without
// hand-deriving the interpreter's internal counter format.
func lastRequestID(e *Engine) string {
	recs := e.Records()
	for i := len(recs) - 1; i >= 0; i-- {
		s := recs[i].JSON()
		const marker = `"requestId":"`
		if idx := strings.Index(s, marker); idx >= 0 {
			rest := s[idx+len(marker):]
			return rest[:strings.IndexByte(rest, '"')]
		}
	}
	return ""
}
