package client

import (
	"encoding/json"

	"collabboard.dev/internal/protocol"
)

// apply patches the mirror with one inbound frame. Events referencing state
// the mirror does not have are discarded as stale: the next BOARD_STATE
// resolves any divergence.
func (c *Client) apply(raw []byte) {
	base, err := protocol.DecodeBase(raw)
	if err != nil {
		c.log.Printf("drop unparsable frame: %v", err)
		return
	}

	c.mu.Lock()
	changed := c.applyLocked(base)
	c.mu.Unlock()

	if changed && c.onUpdate != nil {
		c.onUpdate()
	}
}

func (c *Client) applyLocked(base protocol.BaseMessage) bool {
	if base.Type == protocol.TypeBoardState {
		var b protocol.Board
		if err := json.Unmarshal(base.Payload, &b); err != nil {
			c.log.Printf("drop BOARD_STATE: %v", err)
			return false
		}
		c.board = &b
		return true
	}

	if base.Type == protocol.TypeError {
		var p protocol.ErrorPayload
		if err := json.Unmarshal(base.Payload, &p); err == nil {
			c.log.Printf("server error: %s", p.Message)
		}
		return false
	}

	// Incremental events need a board to patch.
	if c.board == nil {
		return false
	}

	switch base.Type {
	case protocol.TypeCardCreated:
		var ev protocol.CardCreatedPayload
		if err := json.Unmarshal(base.Payload, &ev); err != nil {
			return false
		}
		col := findColumn(c.board, ev.ColumnID)
		if col == nil {
			return false
		}
		// The same event can be observed twice around a reconnect race.
		for i := range col.Cards {
			if col.Cards[i].ID == ev.Card.ID {
				return false
			}
		}
		col.Cards = append(col.Cards, ev.Card)
		return true

	case protocol.TypeCardUpdated:
		var ev protocol.CardUpdatedPayload
		if err := json.Unmarshal(base.Payload, &ev); err != nil {
			return false
		}
		_, card := findCard(c.board, ev.CardID)
		if card == nil {
			return false
		}
		if ev.Updates.Title != nil {
			card.Title = *ev.Updates.Title
		}
		if ev.Updates.Description != nil {
			card.Description = *ev.Updates.Description
		}
		return true

	case protocol.TypeCardDeleted:
		var ev protocol.CardDeletedPayload
		if err := json.Unmarshal(base.Payload, &ev); err != nil {
			return false
		}
		col := findColumn(c.board, ev.ColumnID)
		if col == nil {
			return false
		}
		for i := range col.Cards {
			if col.Cards[i].ID == ev.CardID {
				col.Cards = append(col.Cards[:i], col.Cards[i+1:]...)
				renumber(col)
				return true
			}
		}
		return false

	case protocol.TypeCardMoved:
		var ev protocol.CardMovedPayload
		if err := json.Unmarshal(base.Payload, &ev); err != nil {
			return false
		}
		return c.applyMove(ev)

	case protocol.TypeColumnCreated:
		var ev protocol.ColumnCreatedPayload
		if err := json.Unmarshal(base.Payload, &ev); err != nil {
			return false
		}
		c.board.Columns = append(c.board.Columns, ev.Column)
		return true

	case protocol.TypeColumnUpdated:
		var ev protocol.ColumnUpdatedPayload
		if err := json.Unmarshal(base.Payload, &ev); err != nil {
			return false
		}
		col := findColumn(c.board, ev.ColumnID)
		if col == nil {
			return false
		}
		if ev.Updates.Title != nil {
			col.Title = *ev.Updates.Title
		}
		return true

	case protocol.TypeColumnDeleted:
		var ev protocol.ColumnDeletedPayload
		if err := json.Unmarshal(base.Payload, &ev); err != nil {
			return false
		}
		for i := range c.board.Columns {
			if c.board.Columns[i].ID == ev.ColumnID {
				c.board.Columns = append(c.board.Columns[:i], c.board.Columns[i+1:]...)
				return true
			}
		}
		return false

	default:
		c.log.Printf("drop unknown event type %q", base.Type)
		return false
	}
}

// applyMove mirrors the server's move: remove by id from the source, insert
// at the applied index, then re-index both columns. Unknown columns or a
// card missing from the source mean the event is older than the mirror;
// it is discarded.
func (c *Client) applyMove(ev protocol.CardMovedPayload) bool {
	from := findColumn(c.board, ev.FromColumnID)
	to := findColumn(c.board, ev.ToColumnID)
	if from == nil || to == nil {
		return false
	}
	idx := -1
	for i := range from.Cards {
		if from.Cards[i].ID == ev.CardID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	card := from.Cards[idx]
	from.Cards = append(from.Cards[:idx], from.Cards[idx+1:]...)
	renumber(from)

	pos := ev.NewPosition
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
	return true
}

func findColumn(b *protocol.Board, id string) *protocol.Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

func findCard(b *protocol.Board, cardID string) (*protocol.Column, *protocol.Card) {
	for i := range b.Columns {
		col := &b.Columns[i]
		for j := range col.Cards {
			if col.Cards[j].ID == cardID {
				return col, &col.Cards[j]
			}
		}
	}
	return nil, nil
}

func renumber(col *protocol.Column) {
	for i := range col.Cards {
		col.Cards[i].Position = i
	}
}
