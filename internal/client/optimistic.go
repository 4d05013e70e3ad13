package client

import (
	"fmt"
	"sync"
	"time"

	"collabboard.dev/internal/protocol"
)

const defaultGracePeriod = time.Second

type PendingKind string

const (
	PendingCreate PendingKind = "CREATE_CARD"
	PendingUpdate PendingKind = "UPDATE_CARD"
)

// PendingMutation is the bookkeeping for one in-flight mutation: a provisional
// card for creates, the prior field values for updates.
type PendingMutation struct {
	Kind     PendingKind
	ColumnID string
	CardID   string
	Card     protocol.Card
	Previous protocol.Card
}

// Tracker records in-flight optimistic mutations under locally generated
// keys and clears them after a grace period or on explicit rollback. It does
// not feed back into the mirror: whether a failed send should revert the
// optimistic local change is an open extension point, so the tracker keeps
// the records and leaves reconciliation to a future consumer.
type Tracker struct {
	grace time.Duration

	mu      sync.Mutex
	pending map[string]PendingMutation
	timers  map[string]*time.Timer
	nextKey uint64
}

func NewTracker(grace time.Duration) *Tracker {
	if grace <= 0 {
		grace = defaultGracePeriod
	}
	return &Tracker{
		grace:   grace,
		pending: make(map[string]PendingMutation),
		timers:  make(map[string]*time.Timer),
	}
}

// TrackCreate records a provisional card under a fresh temporary key.
func (t *Tracker) TrackCreate(columnID string, provisional protocol.Card) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextKey++
	key := fmt.Sprintf("temp-%d", t.nextKey)
	provisional.ID = key
	t.pending[key] = PendingMutation{Kind: PendingCreate, ColumnID: columnID, Card: provisional}
	return key
}

// TrackUpdate records the card's prior state for potential rollback.
func (t *Tracker) TrackUpdate(cardID string, previous protocol.Card) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextKey++
	key := fmt.Sprintf("update-%s-%d", cardID, t.nextKey)
	t.pending[key] = PendingMutation{Kind: PendingUpdate, CardID: cardID, Previous: previous}
	return key
}

// ScheduleClear drops the record after the grace period. Called once the
// request was handed to the transport.
func (t *Tracker) ScheduleClear(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[key]; !ok {
		return
	}
	if old := t.timers[key]; old != nil {
		old.Stop()
	}
	t.timers[key] = time.AfterFunc(t.grace, func() { t.Rollback(key) })
}

// Rollback drops the record immediately.
func (t *Tracker) Rollback(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer := t.timers[key]; timer != nil {
		timer.Stop()
		delete(t.timers, key)
	}
	delete(t.pending, key)
}

// Pending returns a copy of the current records.
func (t *Tracker) Pending() map[string]PendingMutation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]PendingMutation, len(t.pending))
	for k, v := range t.pending {
		out[k] = v
	}
	return out
}
