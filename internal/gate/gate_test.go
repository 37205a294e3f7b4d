// internal/gate/gate_test.go
package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnify/internal/util"
)

// Gates tick once per tickInterval; tests shrink it so countdowns finish fast.
func withFastTicks(t *testing.T) {
	t.Helper()
	old := tickInterval
	tickInterval = 2 * time.Millisecond
	t.Cleanup(func() { tickInterval = old })
}

func TestGateCompletes(t *testing.T) {
	withFastTicks(t)

	g := Start(3)

	select {
	case outcome := <-g.Done():
		assert.Equal(t, OutcomeCompleted, outcome)
		assert.Zero(t, g.Remaining())
	case <-time.After(time.Second):
		t.Fatal("gate did not complete in time")
	}
}

func TestGateZeroDurationCompletesImmediately(t *testing.T) {
	g := Start(0)

	select {
	case outcome := <-g.Done():
		assert.Equal(t, OutcomeCompleted, outcome)
	case <-time.After(time.Second):
		t.Fatal("zero-duration gate did not complete")
	}
}

func TestGateCancel(t *testing.T) {
	withFastTicks(t)

	g := Start(1000)
	g.Cancel()
	g.Cancel() // Safe to call twice.

	select {
	case outcome := <-g.Done():
		assert.Equal(t, OutcomeCanceled, outcome)
	case <-time.After(time.Second):
		t.Fatal("canceled gate did not terminate")
	}
}

func TestGateWaitContextCancellation(t *testing.T) {
	withFastTicks(t)

	g := Start(1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A canceled context cancels the gate; no credit may follow.
	assert.False(t, g.Wait(ctx))
}

func TestGateWaitCompletion(t *testing.T) {
	withFastTicks(t)

	g := Start(2)
	assert.True(t, g.Wait(context.Background()))
}

func TestTrackerExclusiveSlot(t *testing.T) {
	withFastTicks(t)

	tracker := NewTracker()

	g, release, err := tracker.Begin("uid-1", SlotWatch, 1000)
	require.NoError(t, err)
	assert.Equal(t, SlotWatch, tracker.Active("uid-1"))

	// A second gate for the same user is rejected while one is in flight.
	_, _, err = tracker.Begin("uid-1", SlotVisit, 5)
	assert.ErrorIs(t, err, util.ErrGateActive)

	// Other users are unaffected.
	g2, release2, err := tracker.Begin("uid-2", SlotVisit, 0)
	require.NoError(t, err)
	assert.True(t, g2.Wait(context.Background()))
	release2()

	g.Cancel()
	assert.False(t, g.Wait(context.Background()))
	release()

	assert.Equal(t, SlotNone, tracker.Active("uid-1"))

	// The slot is free again after release.
	_, release3, err := tracker.Begin("uid-1", SlotUnlockSpin, 0)
	require.NoError(t, err)
	release3()
}
