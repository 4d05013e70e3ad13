package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"collabboard.dev/internal/protocol"
)

// Config is the server configuration file. Flags in cmd/server override the
// loaded values.
type Config struct {
	Addr             string `yaml:"addr"`
	JournalDir       string `yaml:"journal_dir"`
	ReconnectDelayMS int    `yaml:"reconnect_delay_ms"`

	Board Seed `yaml:"board"`
}

// Seed describes the board the server starts with. Column ids are fixed by
// the config so tooling can target them; card ids are allocated at seed time.
type Seed struct {
	ID      string       `yaml:"id"`
	Title   string       `yaml:"title"`
	Columns []SeedColumn `yaml:"columns"`
}

type SeedColumn struct {
	ID    string     `yaml:"id"`
	Title string     `yaml:"title"`
	Cards []SeedCard `yaml:"cards"`
}

type SeedCard struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

func Defaults() Config {
	return Config{
		Addr:             ":8080",
		JournalDir:       "",
		ReconnectDelayMS: 3000,
		Board: Seed{
			ID:    "main-board",
			Title: "My Trello Board",
			Columns: []SeedColumn{
				{
					ID:    "todo",
					Title: "To Do",
					Cards: []SeedCard{
						{
							Title:       "Welcome to Trello Clone",
							Description: "Start by creating your first card!",
						},
					},
				},
			},
		},
	}
}

// Load reads path over the defaults, so absent keys keep their default
// values.
func Load(path string) (Config, error) {
	c := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// SeedBoard materializes the seed into a board value, allocating card ids
// with newID and assigning contiguous positions.
func (s Seed) SeedBoard(newID func() string) protocol.Board {
	b := protocol.Board{ID: s.ID, Title: s.Title, Columns: make([]protocol.Column, 0, len(s.Columns))}
	for _, sc := range s.Columns {
		col := protocol.Column{ID: sc.ID, Title: sc.Title, Cards: make([]protocol.Card, 0, len(sc.Cards))}
		for i, card := range sc.Cards {
			col.Cards = append(col.Cards, protocol.Card{
				ID:          newID(),
				Title:       card.Title,
				Description: card.Description,
				Position:    i,
			})
		}
		b.Columns = append(b.Columns, col)
	}
	return b
}
