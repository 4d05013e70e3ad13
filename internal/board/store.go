package board

import (
	"github.com/google/uuid"

	"collabboard.dev/internal/protocol"
)

// Store owns the single authoritative board. It has no locking of its own:
// all access goes through the hub loop goroutine. Mutations referencing ids
// that no longer resolve are silent no-ops, because clients operate on
// eventually-stale mirrors between round-trips.
type Store struct {
	board protocol.Board
	newID func() string
}

// NewStore seeds the board. newID may be nil, in which case random UUIDs are
// allocated; tests inject a deterministic generator.
func NewStore(seed protocol.Board, newID func() string) *Store {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{board: seed.Clone(), newID: newID}
}

// Snapshot returns a deep copy of the current board for BOARD_STATE delivery.
func (s *Store) Snapshot() protocol.Board {
	return s.board.Clone()
}

func (s *Store) findColumn(id string) *protocol.Column {
	for i := range s.board.Columns {
		if s.board.Columns[i].ID == id {
			return &s.board.Columns[i]
		}
	}
	return nil
}

func (s *Store) findCard(cardID string) (*protocol.Column, int) {
	for i := range s.board.Columns {
		col := &s.board.Columns[i]
		for j := range col.Cards {
			if col.Cards[j].ID == cardID {
				return col, j
			}
		}
	}
	return nil, -1
}

// renumber restores the contiguity invariant: position == index for every
// card in the column.
func renumber(col *protocol.Column) {
	for i := range col.Cards {
		col.Cards[i].Position = i
	}
}

// CreateCard appends a new card to the column. No-op if the column is gone.
func (s *Store) CreateCard(columnID string, draft protocol.CardDraft) (protocol.CardCreatedPayload, bool) {
	col := s.findColumn(columnID)
	if col == nil {
		return protocol.CardCreatedPayload{}, false
	}
	card := protocol.Card{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Position:    len(col.Cards),
	}
	col.Cards = append(col.Cards, card)
	return protocol.CardCreatedPayload{ColumnID: columnID, Card: card}, true
}

// UpdateCard merges title/description edits into the card, wherever it lives.
// Id and position are not settable through this path.
func (s *Store) UpdateCard(cardID string, updates protocol.CardUpdates) (protocol.CardUpdatedPayload, bool) {
	col, idx := s.findCard(cardID)
	if col == nil {
		return protocol.CardUpdatedPayload{}, false
	}
	card := &col.Cards[idx]
	if updates.Title != nil {
		card.Title = *updates.Title
	}
	if updates.Description != nil {
		card.Description = *updates.Description
	}
	return protocol.CardUpdatedPayload{CardID: cardID, Updates: updates}, true
}

// DeleteCard removes the card and closes the position gap it leaves behind.
func (s *Store) DeleteCard(cardID string) (protocol.CardDeletedPayload, bool) {
	col, idx := s.findCard(cardID)
	if col == nil {
		return protocol.CardDeletedPayload{}, false
	}
	col.Cards = append(col.Cards[:idx], col.Cards[idx+1:]...)
	renumber(col)
	return protocol.CardDeletedPayload{CardID: cardID, ColumnID: col.ID}, true
}

// MoveCard moves a card between (or within) columns. The card is matched by
// id, never by a caller-supplied source index, since the index may be stale
// under concurrent edits. The requested position is clamped into the
// destination's valid range after removal; the broadcast payload carries the
// applied index.
func (s *Store) MoveCard(req protocol.MoveCardPayload) (protocol.CardMovedPayload, bool) {
	from := s.findColumn(req.FromColumnID)
	to := s.findColumn(req.ToColumnID)
	if from == nil || to == nil {
		return protocol.CardMovedPayload{}, false
	}
	idx := -1
	for i := range from.Cards {
		if from.Cards[i].ID == req.CardID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return protocol.CardMovedPayload{}, false
	}

	card := from.Cards[idx]
	from.Cards = append(from.Cards[:idx], from.Cards[idx+1:]...)
	renumber(from)

	// Same-column moves clamp against the already-shortened sequence; the
	// insertion index may equal the length (append).
	pos := req.NewPosition
	if pos < 0 {
		pos = 0
	}
	if pos > len(to.Cards) {
		pos = len(to.Cards)
	}

	card.Position = pos
	to.Cards = append(to.Cards, protocol.Card{})
	copy(to.Cards[pos+1:], to.Cards[pos:])
	to.Cards[pos] = card
	renumber(to)

	return protocol.CardMovedPayload{
		CardID:       req.CardID,
		FromColumnID: req.FromColumnID,
		ToColumnID:   req.ToColumnID,
		NewPosition:  pos,
	}, true
}

// CreateColumn appends an empty column.
func (s *Store) CreateColumn(title string) (protocol.ColumnCreatedPayload, bool) {
	col := protocol.Column{
		ID:    s.newID(),
		Title: title,
		Cards: []protocol.Card{},
	}
	s.board.Columns = append(s.board.Columns, col)
	return protocol.ColumnCreatedPayload{Column: col}, true
}

// UpdateColumn merges a title edit. No-op if the column is gone.
func (s *Store) UpdateColumn(columnID string, updates protocol.ColumnUpdates) (protocol.ColumnUpdatedPayload, bool) {
	col := s.findColumn(columnID)
	if col == nil {
		return protocol.ColumnUpdatedPayload{}, false
	}
	if updates.Title != nil {
		col.Title = *updates.Title
	}
	return protocol.ColumnUpdatedPayload{ColumnID: columnID, Updates: updates}, true
}

// DeleteColumn removes the column and, with it, all of its cards.
func (s *Store) DeleteColumn(columnID string) (protocol.ColumnDeletedPayload, bool) {
	for i := range s.board.Columns {
		if s.board.Columns[i].ID == columnID {
			s.board.Columns = append(s.board.Columns[:i], s.board.Columns[i+1:]...)
			return protocol.ColumnDeletedPayload{ColumnID: columnID}, true
		}
	}
	return protocol.ColumnDeletedPayload{}, false
}
