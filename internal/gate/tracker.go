// internal/gate/tracker.go
package gate

import (
	"sync"

	"earnify/internal/util"
)

// Slot names the single active-task selector a user session holds.
type Slot string

const (
	SlotNone       Slot = "none"
	SlotWatch      Slot = "watch"
	SlotClick      Slot = "click"
	SlotVisit      Slot = "visit"
	SlotUnlockSpin Slot = "unlock-spin"
)

// Tracker enforces that at most one gate is active per user at a time.
type Tracker struct {
	mu     sync.Mutex
	active map[string]Slot // uid -> active slot
}

// NewTracker creates an empty gate tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]Slot)}
}

// Begin claims the slot for the user and starts a dwell gate. It fails with
// ErrGateActive while any other gate is in flight for that user. The caller
// must invoke the returned release func once the gate terminates.
func (t *Tracker) Begin(uid string, slot Slot, seconds int) (*Gate, func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.active[uid]; ok && cur != SlotNone {
		return nil, nil, util.ErrGateActive
	}
	t.active[uid] = slot

	g := Start(seconds)
	release := func() {
		t.mu.Lock()
		delete(t.active, uid)
		t.mu.Unlock()
	}
	return g, release, nil
}

// Active returns the slot currently held by the user, SlotNone when idle.
func (t *Tracker) Active(uid string) Slot {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.active[uid]; ok {
		return s
	}
	return SlotNone
}
