package board

import (
	"encoding/json"

	"collabboard.dev/internal/protocol"
)

// handleRequest validates and dispatches one mutation request. Malformed
// frames, unknown types and schema violations earn the originator a private
// ERROR reply; stale references surface as ok=false from the store and are
// dropped without a reply. The switch is exhaustive over the client message
// types, so adding a mutation kind means adding a case here.
func (h *Hub) handleRequest(env RequestEnvelope) {
	if env.Type == "" {
		h.replyError(env.ClientID, protocol.ErrMsgInvalidFormat)
		return
	}
	if !protocol.IsClientType(env.Type) {
		h.replyError(env.ClientID, protocol.ErrMsgUnknownType)
		return
	}
	if err := h.validator.ValidatePayload(env.Type, env.Payload); err != nil {
		h.replyError(env.ClientID, protocol.ErrMsgBadPayload)
		return
	}

	switch env.Type {
	case protocol.TypeCreateCard:
		var p protocol.CreateCardPayload
		if !h.decode(env, &p) {
			return
		}
		if ev, ok := h.store.CreateCard(p.ColumnID, p.Card); ok {
			h.broadcast(protocol.TypeCardCreated, ev)
		}

	case protocol.TypeUpdateCard:
		var p protocol.UpdateCardPayload
		if !h.decode(env, &p) {
			return
		}
		if ev, ok := h.store.UpdateCard(p.CardID, p.Updates); ok {
			h.broadcast(protocol.TypeCardUpdated, ev)
		}

	case protocol.TypeDeleteCard:
		var p protocol.DeleteCardPayload
		if !h.decode(env, &p) {
			return
		}
		if ev, ok := h.store.DeleteCard(p.CardID); ok {
			h.broadcast(protocol.TypeCardDeleted, ev)
		}

	case protocol.TypeMoveCard:
		var p protocol.MoveCardPayload
		if !h.decode(env, &p) {
			return
		}
		if ev, ok := h.store.MoveCard(p); ok {
			h.broadcast(protocol.TypeCardMoved, ev)
		}

	case protocol.TypeCreateColumn:
		var p protocol.CreateColumnPayload
		if !h.decode(env, &p) {
			return
		}
		if ev, ok := h.store.CreateColumn(p.Title); ok {
			h.broadcast(protocol.TypeColumnCreated, ev)
		}

	case protocol.TypeUpdateColumn:
		var p protocol.UpdateColumnPayload
		if !h.decode(env, &p) {
			return
		}
		if ev, ok := h.store.UpdateColumn(p.ColumnID, p.Updates); ok {
			h.broadcast(protocol.TypeColumnUpdated, ev)
		}

	case protocol.TypeDeleteColumn:
		var p protocol.DeleteColumnPayload
		if !h.decode(env, &p) {
			return
		}
		if ev, ok := h.store.DeleteColumn(p.ColumnID); ok {
			h.broadcast(protocol.TypeColumnDeleted, ev)
		}

	default:
		h.replyError(env.ClientID, protocol.ErrMsgUnknownType)
	}
}

func (h *Hub) decode(env RequestEnvelope, dst any) bool {
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		h.replyError(env.ClientID, protocol.ErrMsgBadPayload)
		return false
	}
	return true
}
