package protocol

// Card is a unit of work. Position is the card's 0-based rank within its
// column; handlers keep it equal to the card's index at rest.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

// Column holds an ordered card sequence. Slice order is ascending Position.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Board is the single collaborative document. Exactly one exists per server
// process; clients hold independently-owned mirror copies.
type Board struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
}

// Clone returns a deep copy. Cards are value types, so copying the slices is
// enough to sever all aliasing with the receiver.
func (b Board) Clone() Board {
	out := b
	out.Columns = make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		out.Columns[i] = col.Clone()
	}
	return out
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := c
	out.Cards = make([]Card, len(c.Cards))
	copy(out.Cards, c.Cards)
	return out
}
