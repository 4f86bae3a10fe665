package interp

import (
	"fmt"
	"sync"

	"github.com/ardsim/engine/internal/value"
)

// suspension is the goroutine-based implementation of the Suspension
// Protocol (spec §4.9). The teacher's design note (§9) advises a stored
// "(compound-node, child-index)" cursor rather than coroutines, to keep
// the *reference* engine portable to constrained/WASM targets. That
// constraint does not apply to this Go engine: a goroutine blocked on an
// unbuffered channel *is* Go's native, idiomatic cursor — it captures the
// exact point of suspension (including inside nested loops and
// expressions) for free, with no bookkeeping to keep in sync as new
// statement kinds are added. Exactly one side runs at a time, synchronized
// by channel rendezvous, so the engine is still logically single-threaded
// per spec §5. This substitution is recorded as a deliberate deviation in
// DESIGN.md.
type suspension struct {
	mu       sync.Mutex
	queue    []pendingResponse
	resumeCh chan *value.Value
	pauseCh  chan struct{}
	ticking  bool
	awaiting string
	epoch    int
}

type pendingResponse struct {
	id  string
	val *value.Value
}

func newSuspension() *suspension {
	return &suspension{
		resumeCh: make(chan *value.Value),
		pauseCh:  make(chan struct{}),
		epoch:    1700000000, // deterministic counter, not wall-clock (see suspend.go doc)
	}
}

// nextAsyncRequestID implements the "<function>_<counter>_<epoch>" format
// from spec §4.9. The counter and epoch are both deterministic per-engine
// state so repeated runs with identical input and response timing produce
// an identical command stream (spec §8).
func (i *Interpreter) nextAsyncRequestID(fn string) string {
	i.requestSeq++
	i.sus.epoch++
	return fmt.Sprintf("%s_%d_%d", fn, i.requestSeq, i.sus.epoch)
}

// staticRequestID implements the sync-mode request id shape shown in spec
// §8 scenario 3 ("analogRead_static_14"): "<function>_static_<key>".
func staticRequestID(fn, key string) string {
	return fmt.Sprintf("%s_static_%s", fn, key)
}

// awaitResponse suspends the running goroutine until a matching response
// is delivered via Tick, then returns it. Must only be called from the
// goroutine running Run/runPhases in async mode.
func (i *Interpreter) awaitResponse(requestID string) *value.Value {
	i.sus.awaiting = requestID
	i.state = StateWaitingForResponse
	i.sus.pauseCh <- struct{}{}
	val := <-i.sus.resumeCh
	i.state = StateRunning
	return val
}

// HandleResponse delivers an external-read result (spec §6.3). It only
// enqueues the value; Tick is responsible for matching it against the
// awaited requestId and resuming execution.
func (i *Interpreter) HandleResponse(requestID string, val *value.Value) {
	if i.sus == nil {
		return
	}
	i.sus.mu.Lock()
	i.sus.queue = append(i.sus.queue, pendingResponse{id: requestID, val: val})
	i.sus.mu.Unlock()
}

// Tick drains the response queue for the currently awaited requestId and,
// if found, resumes execution until the next suspension, completion, or
// error (spec §4.9). Tick is a no-op, reentry-guarded and safe to call
// when nothing is pending.
func (i *Interpreter) Tick() {
	if i.sus == nil || i.state != StateWaitingForResponse {
		return
	}
	i.sus.mu.Lock()
	if i.sus.ticking {
		i.sus.mu.Unlock()
		return
	}
	i.sus.ticking = true
	var found *value.Value
	idx := -1
	for n, r := range i.sus.queue {
		if r.id == i.sus.awaiting {
			idx = n
			found = r.val
			break
		}
	}
	if idx >= 0 {
		i.sus.queue = append(i.sus.queue[:idx], i.sus.queue[idx+1:]...)
	}
	i.sus.mu.Unlock()

	if found == nil {
		i.sus.mu.Lock()
		i.sus.ticking = false
		i.sus.mu.Unlock()
		return
	}

	i.sus.resumeCh <- found
	<-i.sus.pauseCh

	i.sus.mu.Lock()
	i.sus.ticking = false
	i.sus.mu.Unlock()
}

// discard abandons a suspended goroutine on Stop() (spec §5: "does not
// unwind the call stack cooperatively; any pending response is discarded
// by reset()"). The blocked goroutine is intentionally leaked rather than
// force-killed — Go has no safe mechanism to cancel an arbitrary blocked
// goroutine, and the host is documented to discard the whole interpreter
// instance on Stop()/reset() in practice.
func (s *suspension) discard() {
	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
}
