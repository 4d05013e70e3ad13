package protocol

// Error messages sent back to the originating connection only. Stale
// references are not in this list: those are silent server-side no-ops.
const (
	ErrMsgInvalidFormat = "Invalid message format"
	ErrMsgUnknownType   = "Unknown message type"
	ErrMsgBadPayload    = "Invalid payload"
)

// EncodeError wraps a message in an ERROR envelope. Encoding a plain string
// payload cannot fail, so the serialized form is returned directly.
func EncodeError(message string) []byte {
	b, err := Encode(TypeError, ErrorPayload{Message: message})
	if err != nil {
		return []byte(`{"type":"ERROR","payload":{"message":"internal error"}}`)
	}
	return b
}
