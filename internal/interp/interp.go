// Package interp implements the Expression Evaluator, Statement Executor,
// Function Invoker, Arduino Intrinsics dispatch, and Suspension Protocol
// (spec §4.4-§4.9), grounded on the teacher's internal/interp.Interpreter
// big-switch Eval dispatch and its RAII-guard discipline for scopes and
// control-flow flags.
package interp

import (
	"fmt"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/errors"
	"github.com/ardsim/engine/internal/mock"
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

// Interpreter executes a Compact AST program and emits a Command stream.
// It is not safe for concurrent use from more than one goroutine at a
// time; the suspension protocol (spec §4.9) internally uses a second
// goroutine purely as its "blocked awaiting a response" mechanism, not as
// general concurrency — see suspend.go.
type Interpreter struct {
	Options Options

	root    *runtime.Scope
	scope   *runtime.Scope
	control *runtime.ControlStack
	stream  *command.Stream

	functions map[string]*ast.Node // name -> function-definition node
	mock      *mock.Source
	overrides *mock.Overrides

	state         State
	safeMode      bool
	safeModeMsg   string
	exception     *errors.InterpreterError
	callStack     errors.StackTrace
	requestSeq    int

	// control-flow propagation flags (spec §4.5/§4.6), teacher-style
	// plain booleans consumed by the enclosing executor and then cleared.
	returning  bool
	returnVal  *value.Value
	breaking   bool
	continuing bool
	loopAbort  bool // set when a loop-iteration-limit under Loop scope must terminate the whole program (spec §4.5)

	loopIteration int // 1-based main-loop iteration counter (spec §6.4)

	sus *suspension // nil until the first async suspend
}

// New constructs an Interpreter ready to Run a decoded program.
func New(opts Options) *Interpreter {
	opts = opts.normalized()
	root := runtime.NewScope()
	interp := &Interpreter{
		Options:   opts,
		root:      root,
		scope:     root,
		control:   runtime.NewControlStack(),
		stream:    command.NewStream(),
		functions: make(map[string]*ast.Node),
		mock:      mock.New(),
		overrides: mock.NewOverrides(),
		state:     StateIdle,
	}
	interp.seedConstants()
	return interp
}

// Stream returns the accumulated command stream.
func (i *Interpreter) Stream() *command.Stream {
	return i.stream
}

// State returns the current execution state.
func (i *Interpreter) State() State {
	return i.state
}

// Stop resets to Idle and clears control-flow flags (spec §5: "does not
// unwind the call stack cooperatively").
func (i *Interpreter) Stop() {
	i.state = StateIdle
	i.returning = false
	i.breaking = false
	i.continuing = false
	if i.sus != nil {
		i.sus.discard()
	}
}

// SetAnalogValue / SetDigitalValue pre-seed mock values (spec §6.3).
func (i *Interpreter) SetAnalogValue(pin, val int32)  { i.overrides.SetAnalog(pin, val) }
func (i *Interpreter) SetDigitalValue(pin, val int32) { i.overrides.SetDigital(pin, val) }

// seedConstants populates the root scope per spec §4.3.
func (i *Interpreter) seedConstants() {
	seedArduinoConstants(i.root)
}

// emitNow appends rec to the command stream. Callers set all of rec's
// fields before passing it in; nothing is returned.
func (i *Interpreter) emitNow(rec *command.Record) {
	i.stream.Emit(rec)
}

// emitError appends an ERROR command (spec §7) unless safe mode is
// latched, in which case it is suppressed from the stream but still
// counted (spec §7 "Safe mode").
func (i *Interpreter) emitError(cat errors.Category, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if i.safeMode {
		i.stream.Stats().ByError[string(cat)]++
		return
	}
	rec := command.New(command.TypeError).
		Set("message", msg).
		Set("errorType", string(cat))
	i.emitNow(rec)
	if cat.IsFatal() {
		i.latchSafeMode(msg)
	}
}

// latchSafeMode enters the latched degraded state (spec §7).
func (i *Interpreter) latchSafeMode(reason string) {
	i.safeMode = true
	i.safeModeMsg = reason
	i.state = StatePaused
}

// SafeMode reports whether safe mode is latched, and why.
func (i *Interpreter) SafeMode() (bool, string) {
	return i.safeMode, i.safeModeMsg
}

// Run drives the top-level orchestration (spec §4.5 "Top-level
// orchestration"): declaration collection, global-variable initialization,
// setup, and the bounded loop phase. In sync mode Run executes the whole
// program inline and returns
// once it reaches Complete or Error. In async mode Run launches the
// orchestration on its own goroutine and blocks only until the first
// pause — a suspend, completion, or fatal error (spec §4.9); the caller
// resumes subsequent pauses via Tick/HandleResponse.
func (i *Interpreter) Run(program *ast.Node) {
	i.state = StateRunning
	i.collectDeclarations(program)
	i.emitVersionInfo()
	i.emitNow(command.New(command.TypeProgramStart))

	if i.Options.SyncMode {
		i.runPhases(program)
		return
	}

	i.sus = newSuspension()
	go func() {
		i.runPhases(program)
		i.sus.pauseCh <- struct{}{}
	}()
	<-i.sus.pauseCh
}

func (i *Interpreter) emitVersionInfo() {
	i.emitNow(command.New(command.TypeVersionInfo).Set("engine", "ardsim").Set("version", "1.0.0"))
}

// collectDeclarations records user-defined function names without
// executing their bodies (spec §2 phase (a)).
func (i *Interpreter) collectDeclarations(program *ast.Node) {
	for _, child := range program.Children {
		if child.Kind == ast.KindFunctionDefinition {
			i.functions[child.DeclaratorNode().Name()] = child
		}
	}
}

// execGlobalDeclarations runs every top-level child that is not a function
// definition directly into the root scope (global variables, top-level
// struct/enum/union declarations), before setup() runs (spec §2 phase (b),
// §4.3 global-scope lifetime). Function definitions are skipped here since
// collectDeclarations already recorded them and exec's own dispatch treats
// a function-definition node as a no-op.
func (i *Interpreter) execGlobalDeclarations(program *ast.Node) {
	for _, child := range program.Children {
		if child.Kind == ast.KindFunctionDefinition || child.Kind == ast.KindFunctionDeclaration {
			continue
		}
		i.exec(child)
	}
}
