package protocol

import "encoding/json"

const Version = "1.0"

// Client -> server message types.
const (
	TypeCreateCard   = "CREATE_CARD"
	TypeUpdateCard   = "UPDATE_CARD"
	TypeDeleteCard   = "DELETE_CARD"
	TypeMoveCard     = "MOVE_CARD"
	TypeCreateColumn = "CREATE_COLUMN"
	TypeUpdateColumn = "UPDATE_COLUMN"
	TypeDeleteColumn = "DELETE_COLUMN"
)

// Server -> client message types.
const (
	TypeBoardState    = "BOARD_STATE"
	TypeCardCreated   = "CARD_CREATED"
	TypeCardUpdated   = "CARD_UPDATED"
	TypeCardDeleted   = "CARD_DELETED"
	TypeCardMoved     = "CARD_MOVED"
	TypeColumnCreated = "COLUMN_CREATED"
	TypeColumnUpdated = "COLUMN_UPDATED"
	TypeColumnDeleted = "COLUMN_DELETED"
	TypeError         = "ERROR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// Encode wraps a payload in the {type, payload} envelope.
func Encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(BaseMessage{Type: msgType, Payload: raw})
}

var clientTypes = map[string]struct{}{
	TypeCreateCard:   {},
	TypeUpdateCard:   {},
	TypeDeleteCard:   {},
	TypeMoveCard:     {},
	TypeCreateColumn: {},
	TypeUpdateColumn: {},
	TypeDeleteColumn: {},
}

var serverTypes = map[string]struct{}{
	TypeBoardState:    {},
	TypeCardCreated:   {},
	TypeCardUpdated:   {},
	TypeCardDeleted:   {},
	TypeCardMoved:     {},
	TypeColumnCreated: {},
	TypeColumnUpdated: {},
	TypeColumnDeleted: {},
	TypeError:         {},
}

// IsClientType reports whether t is a mutation request type.
func IsClientType(t string) bool {
	_, ok := clientTypes[t]
	return ok
}

// IsServerType reports whether t is a broadcast/reply type.
func IsServerType(t string) bool {
	_, ok := serverTypes[t]
	return ok
}
