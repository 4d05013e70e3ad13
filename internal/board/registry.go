package board

import "collabboard.dev/internal/protocol"

type clientState struct {
	Out chan []byte
}

// handleJoin registers the session and queues the full board snapshot. Both
// happen inside one loop iteration, so no incremental event can reach the
// session before its snapshot.
func (h *Hub) handleJoin(req JoinRequest) {
	h.clients[req.ClientID] = &clientState{Out: req.Out}
	b, err := protocol.Encode(protocol.TypeBoardState, h.store.Snapshot())
	if err != nil {
		h.log.Printf("encode BOARD_STATE: %v", err)
		return
	}
	h.send(req.ClientID, b)
	h.log.Printf("client %s connected (%d total)", req.ClientID, len(h.clients))
}

func (h *Hub) handleLeave(id string) {
	cl, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(cl.Out)
	h.log.Printf("client %s disconnected (%d total)", id, len(h.clients))
}

// send queues a frame without blocking the loop. A session whose queue is
// full has stopped draining; it is evicted and will resnapshot on reconnect
// instead of silently missing events.
func (h *Hub) send(id string, b []byte) {
	cl, ok := h.clients[id]
	if !ok {
		return
	}
	select {
	case cl.Out <- b:
	default:
		delete(h.clients, id)
		close(cl.Out)
		h.log.Printf("client %s evicted: send queue full", id)
	}
}

// broadcast serializes the event once and fans it out to every session,
// including the originator: the protocol has no request/response correlation,
// so the originator learns the authoritative outcome like everyone else.
func (h *Hub) broadcast(msgType string, payload any) {
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		h.log.Printf("encode %s: %v", msgType, err)
		return
	}
	if h.journal != nil {
		if err := h.journal.WriteEvent(msgType, payload); err != nil {
			h.log.Printf("journal %s: %v", msgType, err)
		}
	}
	for id := range h.clients {
		h.send(id, b)
	}
}

func (h *Hub) replyError(clientID, message string) {
	h.send(clientID, protocol.EncodeError(message))
}
