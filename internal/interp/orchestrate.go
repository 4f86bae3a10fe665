package interp

import (
	"fmt"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/runtime"
)

// runPhases drives the top-level orchestration (spec §4.5 "Top-level
// orchestration"): global-variable declarations into the root scope, then
// setup() once, then loop() up to the configured iteration cap, with
// serialEvent invoked once at the end if the sketch defines it.
func (i *Interpreter) runPhases(program *ast.Node) {
	i.execGlobalDeclarations(program)
	i.runSetupPhase()
	if i.safeMode {
		i.finishProgram(0)
		return
	}
	iterations := i.runLoopPhase()
	i.finishProgram(iterations)
}

func (i *Interpreter) runSetupPhase() {
	i.emitNow(command.New(command.TypeSetupStart))
	i.control.Push(runtime.ScopeSetup)
	if fn, ok := i.functions["setup"]; ok {
		i.scope = i.root.Push()
		i.exec(fn.BodyNode())
		i.scope = i.root
	}
	i.returning = false
	i.control.Pop()
	i.emitNow(command.New(command.TypeSetupEnd))
}

func (i *Interpreter) runLoopPhase() int {
	i.emitNow(command.New(command.TypeLoopStart).Set("message", "Starting loop() execution"))
	i.control.Push(runtime.ScopeLoop)

	fn, hasLoop := i.functions["loop"]
	iterations := 0
	max := i.Options.MaxLoopIterations

	for hasLoop && iterations < max {
		iteration := iterations + 1 // main-loop iteration counters are 1-based (spec §6.4)
		i.loopIteration = iteration
		i.emitNow(command.New(command.TypeLoopStart).Set("iteration", iteration))
		i.emitNow(command.New(command.TypeFunctionCall).Set("function", "loop").Set("iteration", iteration))

		i.scope = i.root.Push()
		i.exec(fn.BodyNode())
		i.scope = i.root
		i.returning = false

		i.emitNow(command.New(command.TypeFunctionCall).Set("function", "loop").Set("iteration", iteration).Set("completed", true))
		iterations++

		if i.loopAbort || i.safeMode {
			break
		}
	}

	i.invokeSerialEvent()

	i.control.SetTopStopReason(runtime.StopIterationLimit)
	i.emitNow(command.New(command.TypeLoopEnd).Set("iterations", iterations).Set("limitReached", true))
	i.control.Pop()
	return iterations
}

// finishProgram emits the two PROGRAM_END commands (spec §4.5) and settles
// the final execution state.
func (i *Interpreter) finishProgram(iterations int) {
	msg := fmt.Sprintf("Completed %d loop iterations (limit reached)", iterations)
	i.emitNow(command.New(command.TypeProgramEnd).Set("message", msg))
	i.emitNow(command.New(command.TypeProgramEnd).Set("message", "Program execution stopped"))
	i.state = StateComplete
}
