package client

import (
	"strings"
	"testing"
	"time"

	"collabboard.dev/internal/protocol"
)

func TestTrackCreateRecordsProvisionalCard(t *testing.T) {
	tr := NewTracker(time.Hour)
	key := tr.TrackCreate("todo", protocol.Card{Title: "X", Position: 2})
	if !strings.HasPrefix(key, "temp-") {
		t.Fatalf("key = %q", key)
	}

	pending := tr.Pending()
	rec, ok := pending[key]
	if !ok {
		t.Fatalf("record missing")
	}
	if rec.Kind != PendingCreate || rec.ColumnID != "todo" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Card.ID != key || rec.Card.Position != 2 {
		t.Fatalf("provisional card = %+v", rec.Card)
	}
}

func TestTrackUpdateRecordsPreviousState(t *testing.T) {
	tr := NewTracker(time.Hour)
	prev := protocol.Card{ID: "c1", Title: "before", Position: 1}
	key := tr.TrackUpdate("c1", prev)
	if !strings.HasPrefix(key, "update-c1-") {
		t.Fatalf("key = %q", key)
	}
	rec := tr.Pending()[key]
	if rec.Kind != PendingUpdate || rec.CardID != "c1" || rec.Previous.Title != "before" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestScheduleClearExpiresRecord(t *testing.T) {
	tr := NewTracker(20 * time.Millisecond)
	key := tr.TrackCreate("todo", protocol.Card{Title: "X"})
	tr.ScheduleClear(key)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if len(tr.Pending()) == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("record never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRollbackClearsImmediately(t *testing.T) {
	tr := NewTracker(time.Hour)
	key := tr.TrackCreate("todo", protocol.Card{Title: "X"})
	tr.ScheduleClear(key)
	tr.Rollback(key)
	if len(tr.Pending()) != 0 {
		t.Fatalf("record survived rollback")
	}
	// Rollback of an unknown key is harmless.
	tr.Rollback("temp-999")
}

func TestKeysAreUniqueAcrossRecords(t *testing.T) {
	tr := NewTracker(time.Hour)
	seen := map[string]struct{}{}
	for i := 0; i < 20; i++ {
		k := tr.TrackCreate("todo", protocol.Card{Title: "X"})
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate key %q", k)
		}
		seen[k] = struct{}{}
	}
	if len(tr.Pending()) != 20 {
		t.Fatalf("pending = %d", len(tr.Pending()))
	}
}
