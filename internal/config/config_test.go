package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsMatchSeedBoard(t *testing.T) {
	c := Defaults()
	if c.Addr != ":8080" || c.ReconnectDelayMS != 3000 {
		t.Fatalf("defaults = %+v", c)
	}

	n := 0
	b := c.Board.SeedBoard(func() string { n++; return fmt.Sprintf("id%d", n) })
	if b.ID != "main-board" || len(b.Columns) != 1 {
		t.Fatalf("board = %+v", b)
	}
	col := b.Columns[0]
	if col.ID != "todo" || len(col.Cards) != 1 {
		t.Fatalf("column = %+v", col)
	}
	if col.Cards[0].ID != "id1" || col.Cards[0].Position != 0 {
		t.Fatalf("card = %+v", col.Cards[0])
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	doc := `
addr: ":9090"
board:
  id: team-board
  title: Team Board
  columns:
    - id: backlog
      title: Backlog
      cards:
        - title: first
        - title: second
          description: with details
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":9090" {
		t.Fatalf("addr = %q", c.Addr)
	}
	if c.ReconnectDelayMS != 3000 {
		t.Fatalf("reconnect delay lost default: %d", c.ReconnectDelayMS)
	}

	n := 0
	b := c.Board.SeedBoard(func() string { n++; return fmt.Sprintf("id%d", n) })
	if b.ID != "team-board" || len(b.Columns) != 1 || len(b.Columns[0].Cards) != 2 {
		t.Fatalf("board = %+v", b)
	}
	if b.Columns[0].Cards[1].Position != 1 || b.Columns[0].Cards[1].Description != "with details" {
		t.Fatalf("card = %+v", b.Columns[0].Cards[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for bad yaml")
	}
}
