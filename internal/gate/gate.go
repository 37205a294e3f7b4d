// internal/gate/gate.go
package gate

import (
	"context"
	"sync"
	"time"
)

// Outcome is the single terminal event a gate emits.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCanceled
)

// Gate enforces a minimum dwell time before an earning action may be
// credited. It counts down in whole-second ticks and emits exactly one
// terminal outcome: Completed once the full duration elapsed, or Canceled if
// the caller aborted first. No reward may be granted before Completed.
type Gate struct {
	duration time.Duration

	mu        sync.Mutex
	remaining int
	finished  bool

	done   chan Outcome
	cancel chan struct{}
	once   sync.Once
}

// tickInterval is a variable so gate tests can run without real one-second waits.
var tickInterval = time.Second

// Start launches a dwell gate for the given number of seconds. A
// non-positive duration completes immediately.
func Start(seconds int) *Gate {
	g := &Gate{
		duration:  time.Duration(seconds) * tickInterval,
		remaining: seconds,
		done:      make(chan Outcome, 1),
		cancel:    make(chan struct{}),
	}
	go g.run(seconds)
	return g
}

func (g *Gate) run(seconds int) {
	if seconds <= 0 {
		g.finish(OutcomeCompleted)
		return
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.cancel:
			g.finish(OutcomeCanceled)
			return
		case <-ticker.C:
			g.mu.Lock()
			g.remaining--
			left := g.remaining
			g.mu.Unlock()
			if left <= 0 {
				g.finish(OutcomeCompleted)
				return
			}
		}
	}
}

func (g *Gate) finish(o Outcome) {
	g.mu.Lock()
	g.finished = true
	g.remaining = 0
	g.mu.Unlock()
	g.done <- o
}

// Done returns the channel carrying the gate's single terminal outcome.
func (g *Gate) Done() <-chan Outcome {
	return g.done
}

// Cancel aborts the gate. Safe to call multiple times; a no-op once the
// gate already completed.
func (g *Gate) Cancel() {
	g.once.Do(func() { close(g.cancel) })
}

// Remaining returns the whole seconds left on the countdown, for rendering.
func (g *Gate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remaining
}

// Wait blocks until the gate terminates or ctx is canceled. Context
// cancellation cancels the gate; the returned bool is true only when the
// full dwell elapsed.
func (g *Gate) Wait(ctx context.Context) bool {
	select {
	case o := <-g.done:
		return o == OutcomeCompleted
	case <-ctx.Done():
		g.Cancel()
		return (<-g.done) == OutcomeCompleted
	}
}
