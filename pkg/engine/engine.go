// Package engine is the embeddable public API for running an Arduino-dialect
// sketch's Compact AST and observing its Command stream (spec §6.3),
// grounded on the teacher's pkg/dwscript functional-options Engine: New
// takes variadic Option values, returns (*Engine, error), and every
// subsequent call is a plain method on the constructed value.
package engine

import (
	"fmt"

	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/interp"
	"github.com/ardsim/engine/internal/value"
)

// Engine runs one sketch at a time. It is not safe for concurrent method
// calls; callers embedding it in a server should serialize access per
// instance, same as the underlying Interpreter (spec §5).
type Engine struct {
	interp *interp.Interpreter
}

// Option configures an Engine at construction time.
type Option func(*interp.Options)

// WithMaxLoopIterations caps loop() iterations per run (spec §6.3). Omitting
// this option defaults to interp.DefaultMaxLoopIterations; passing 0
// explicitly means "run zero loop() iterations" (spec §8 scenario 1), which
// is why this is a functional option rather than a struct field defaulted
// by zero-value.
func WithMaxLoopIterations(n int) Option {
	return func(o *interp.Options) { o.MaxLoopIterations = n }
}

// WithSyncMode runs external reads (digitalRead, millis, ...) against the
// deterministic mock source immediately instead of suspending for a host
// response (spec §4.9).
func WithSyncMode(sync bool) Option {
	return func(o *interp.Options) { o.SyncMode = sync }
}

// WithVerbose toggles verbose diagnostic output on the embedder's side.
func WithVerbose(v bool) Option {
	return func(o *interp.Options) { o.Verbose = v }
}

// WithDebug toggles extra debug bookkeeping.
func WithDebug(v bool) Option {
	return func(o *interp.Options) { o.Debug = v }
}

// WithStepDelay sets a millisecond delay hint for step-by-step playback.
func WithStepDelay(ms int) Option {
	return func(o *interp.Options) { o.StepDelay = ms }
}

// WithMemoryCeiling overrides the soft pre-allocation ceiling (spec §5).
func WithMemoryCeiling(bytes int) Option {
	return func(o *interp.Options) { o.MemoryCeilingBytes = bytes }
}

// New constructs an Engine. Options not supplied take the documented
// defaults (spec §6.3), applied here rather than in interp.Options.normalized
// so that an explicit WithMaxLoopIterations(0) is distinguishable from the
// option never having been passed at all.
func New(opts ...Option) (*Engine, error) {
	o := interp.Options{MaxLoopIterations: interp.DefaultMaxLoopIterations}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{interp: interp.New(o)}, nil
}

// Load decodes a Compact AST buffer into a Program ready to Start (spec
// §6.1).
func (e *Engine) Load(compactAST []byte) (*Program, error) {
	root, err := ast.NewReader(compactAST).Read()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Program{root: root}, nil
}

// Start begins executing program (spec §6.3's start()). In async mode this
// returns as soon as the engine first pauses (a suspend, completion, or
// fatal error); call Tick/HandleResponse to advance further. In sync mode
// it runs the whole program to completion before returning.
func (e *Engine) Start(p *Program) {
	e.interp.Run(p.root)
}

// Run is the one-shot convenience form of Load+Start.
func (e *Engine) Run(compactAST []byte) error {
	p, err := e.Load(compactAST)
	if err != nil {
		return err
	}
	e.Start(p)
	return nil
}

// Tick resumes a suspended async-mode run once its awaited response has
// been delivered via HandleResponse (spec §4.9).
func (e *Engine) Tick() {
	e.interp.Tick()
}

// HandleResponse delivers a host-provided value for a pending external
// request (spec §6.3). The value is coerced to the engine's run-time Value
// model: bool, int32/int/int64 (as int32), uint32, float64, or string pass
// straight through; anything else becomes null.
func (e *Engine) HandleResponse(requestID string, val any) {
	e.interp.HandleResponse(requestID, toValue(val))
}

func toValue(v any) *value.Value {
	switch x := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(x)
	case int:
		return value.Int32(int32(x))
	case int32:
		return value.Int32(x)
	case int64:
		return value.Int32(int32(x))
	case uint32:
		return value.Uint32(x)
	case float64:
		return value.Double(x)
	case string:
		return value.String(x)
	default:
		return value.Null()
	}
}

// SetAnalogValue / SetDigitalValue pre-seed mock sensor values (spec §6.3),
// taking priority over the deterministic formulaic defaults.
func (e *Engine) SetAnalogValue(pin, val int32)  { e.interp.SetAnalogValue(pin, val) }
func (e *Engine) SetDigitalValue(pin, val int32) { e.interp.SetDigitalValue(pin, val) }

// Stop halts execution and discards any pending suspension (spec §6.3).
func (e *Engine) Stop() { e.interp.Stop() }

// State reports the current execution state (spec §3.5).
func (e *Engine) State() string { return e.interp.State().String() }

// SafeMode reports whether the engine has latched into the degraded safe
// mode, and the message that caused it (spec §7).
func (e *Engine) SafeMode() (bool, string) { return e.interp.SafeMode() }

// CommandStream returns the accumulated command stream as JSON Lines (spec
// §6.2).
func (e *Engine) CommandStream() string { return e.interp.Stream().JSONLines() }

// Records returns the accumulated command records without serializing them,
// for embedders that want to inspect the stream programmatically.
func (e *Engine) Records() []*command.Record { return e.interp.Stream().Records() }

// Stats returns the running per-type/per-error counters (SPEC_FULL §3.4
// supplement).
func (e *Engine) Stats() *command.Stats { return e.interp.Stream().Stats() }

// Program is a decoded, ready-to-run sketch (spec §3.1's root KindProgram
// node).
type Program struct {
	root *ast.Node
}
