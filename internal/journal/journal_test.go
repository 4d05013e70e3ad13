package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"collabboard.dev/internal/protocol"
)

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	j := New(filepath.Join(dir, "events"))

	events := []struct {
		msgType string
		payload any
	}{
		{protocol.TypeCardCreated, protocol.CardCreatedPayload{
			ColumnID: "todo",
			Card:     protocol.Card{ID: "c1", Title: "X", Position: 0},
		}},
		{protocol.TypeColumnDeleted, protocol.ColumnDeletedPayload{ColumnID: "todo"}},
	}
	for _, ev := range events {
		if err := j.WriteEvent(ev.msgType, ev.payload); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "events", "events-*.jsonl.zst"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no journal files (err=%v)", err)
	}

	var entries []Entry
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		dec, err := zstd.NewReader(f)
		if err != nil {
			t.Fatalf("zstd: %v", err)
		}
		sc := bufio.NewScanner(dec)
		for sc.Scan() {
			var e Entry
			if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
				t.Fatalf("decode line: %v", err)
			}
			entries = append(entries, e)
		}
		dec.Close()
		f.Close()
	}

	if len(entries) != len(events) {
		t.Fatalf("entries = %d, want %d", len(entries), len(events))
	}
	for i, e := range entries {
		if e.Type != events[i].msgType {
			t.Fatalf("entry %d type = %s, want %s", i, e.Type, events[i].msgType)
		}
		if e.TS.IsZero() {
			t.Fatalf("entry %d has zero timestamp", i)
		}
	}
}

func TestCloseWithoutWritesIsClean(t *testing.T) {
	j := New(t.TempDir())
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
