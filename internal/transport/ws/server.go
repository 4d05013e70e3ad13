package ws

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"collabboard.dev/internal/board"
	"collabboard.dev/internal/protocol"
)

const (
	writeTimeout = 5 * time.Second
	outQueueSize = 64
)

// Server bridges websocket connections and the hub loop. Each connection gets
// a reader loop on the handler goroutine and a writer goroutine draining the
// hub-owned out queue; the hub closing that queue ends the connection.
type Server struct {
	hub *board.Hub
	log *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

func NewServer(hub *board.Hub, logger *log.Logger) *Server {
	return &Server{
		hub: hub,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id := fmt.Sprintf("C%d", s.nextID.Add(1))
		out := make(chan []byte, outQueueSize)

		// Join delivers the BOARD_STATE snapshot into out before any later
		// mutation can be broadcast to this session.
		select {
		case s.hub.Join() <- board.JoinRequest{ClientID: id, Out: out}:
		case <-r.Context().Done():
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine: sole writer on the connection.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						// Hub closed the queue (leave or eviction).
						_ = conn.Close()
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop. Frames that fail envelope decoding are forwarded with
		// an empty type; the hub answers those with a private ERROR.
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			env := board.RequestEnvelope{ClientID: id}
			if base, err := protocol.DecodeBase(msg); err == nil {
				env.Type = base.Type
				env.Payload = base.Payload
			}
			select {
			case s.hub.Inbox() <- env:
			case <-ctx.Done():
			}
		}

		// Cleanup. The hub may already have dropped this session.
		select {
		case s.hub.Leave() <- id:
		default:
		}
	}
}
