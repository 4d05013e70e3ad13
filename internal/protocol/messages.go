package protocol

// CardDraft is the caller-supplied part of a new card; the server allocates
// the id and position.
type CardDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CardUpdates is a partial card edit. Nil pointers mean "leave unchanged";
// id and position are never settable through updates.
type CardUpdates struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ColumnUpdates is a partial column edit (title only).
type ColumnUpdates struct {
	Title *string `json:"title,omitempty"`
}

// CREATE_CARD (client -> server)
type CreateCardPayload struct {
	ColumnID string    `json:"columnId"`
	Card     CardDraft `json:"card"`
}

// UPDATE_CARD (client -> server)
type UpdateCardPayload struct {
	CardID  string      `json:"cardId"`
	Updates CardUpdates `json:"updates"`
}

// DELETE_CARD (client -> server)
type DeleteCardPayload struct {
	CardID string `json:"cardId"`
}

// MOVE_CARD (client -> server). NewPosition is a request; the server clamps
// it into the destination's valid range.
type MoveCardPayload struct {
	CardID       string `json:"cardId"`
	FromColumnID string `json:"fromColumnId"`
	ToColumnID   string `json:"toColumnId"`
	NewPosition  int    `json:"newPosition"`
}

// CREATE_COLUMN (client -> server)
type CreateColumnPayload struct {
	Title string `json:"title"`
}

// UPDATE_COLUMN (client -> server)
type UpdateColumnPayload struct {
	ColumnID string        `json:"columnId"`
	Updates  ColumnUpdates `json:"updates"`
}

// DELETE_COLUMN (client -> server)
type DeleteColumnPayload struct {
	ColumnID string `json:"columnId"`
}

// CARD_CREATED (server -> client)
type CardCreatedPayload struct {
	ColumnID string `json:"columnId"`
	Card     Card   `json:"card"`
}

// CARD_UPDATED (server -> client)
type CardUpdatedPayload struct {
	CardID  string      `json:"cardId"`
	Updates CardUpdates `json:"updates"`
}

// CARD_DELETED (server -> client)
type CardDeletedPayload struct {
	CardID   string `json:"cardId"`
	ColumnID string `json:"columnId"`
}

// CARD_MOVED (server -> client). NewPosition is the applied (clamped) index,
// not necessarily the requested one.
type CardMovedPayload struct {
	CardID       string `json:"cardId"`
	FromColumnID string `json:"fromColumnId"`
	ToColumnID   string `json:"toColumnId"`
	NewPosition  int    `json:"newPosition"`
}

// COLUMN_CREATED (server -> client)
type ColumnCreatedPayload struct {
	Column Column `json:"column"`
}

// COLUMN_UPDATED (server -> client)
type ColumnUpdatedPayload struct {
	ColumnID string        `json:"columnId"`
	Updates  ColumnUpdates `json:"updates"`
}

// COLUMN_DELETED (server -> client)
type ColumnDeletedPayload struct {
	ColumnID string `json:"columnId"`
}

// ERROR (server -> client, never broadcast)
type ErrorPayload struct {
	Message string `json:"message"`
}
