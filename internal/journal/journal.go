package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Entry is one applied board event.
type Entry struct {
	TS      time.Time `json:"ts"`
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
}

// EventJournal appends one JSONL entry per applied mutation event to
// hourly-rotated zstd-compressed files under dir. It is diagnostics only:
// nothing reads it back at startup, so board state still resets on restart.
type EventJournal struct {
	dir string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func New(dir string) *EventJournal {
	return &EventJournal{dir: dir}
}

// WriteEvent satisfies board.Journal.
func (j *EventJournal) WriteEvent(msgType string, payload any) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now().UTC()
	hour := now.Format("2006-01-02-15")
	if hour != j.curHour {
		if err := j.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(Entry{TS: now, Type: msgType, Payload: payload})
	if err != nil {
		return err
	}
	if _, err := j.w.Write(b); err != nil {
		return err
	}
	if err := j.w.WriteByte('\n'); err != nil {
		return err
	}
	return j.w.Flush()
}

func (j *EventJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.closeLocked()
}

func (j *EventJournal) rotateLocked(hour string) error {
	if err := j.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(j.dir, fmt.Sprintf("events-%s.jsonl.zst", hour))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	j.f = f
	j.enc = enc
	j.w = bufio.NewWriterSize(enc, 64*1024)
	j.curHour = hour
	return nil
}

func (j *EventJournal) closeLocked() error {
	var encErr error
	if j.w != nil {
		_ = j.w.Flush()
	}
	if j.enc != nil {
		encErr = j.enc.Close()
		j.enc = nil
	}
	if j.f != nil {
		_ = j.f.Close()
		j.f = nil
	}
	j.w = nil
	return encErr
}
