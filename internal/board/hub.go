package board

import (
	"context"
	"encoding/json"
	"log"

	"collabboard.dev/internal/protocol"
)

// RequestEnvelope is one inbound mutation request, tagged with the session
// that sent it so protocol errors can be replied privately. An empty Type
// marks a frame the transport could not parse at all.
type RequestEnvelope struct {
	ClientID string
	Type     string
	Payload  json.RawMessage
}

// JoinRequest registers a session's outbound queue with the hub.
type JoinRequest struct {
	ClientID string
	Out      chan []byte
}

// Journal receives every applied mutation event. Implementations must not
// block the hub loop for long; may be nil.
type Journal interface {
	WriteEvent(msgType string, payload any) error
}

// Hub is the single-threaded authoritative side of the protocol: the board
// store, the connection registry and the broadcast fan-out. All state must be
// accessed only from the hub loop goroutine; the transport talks to it
// exclusively through channels, which is what gives every client the same
// total order of mutations.
type Hub struct {
	store     *Store
	log       *log.Logger
	journal   Journal
	validator *protocol.Validator

	clients map[string]*clientState

	inbox chan RequestEnvelope
	join  chan JoinRequest
	leave chan string
	stop  chan struct{}
}

func NewHub(store *Store, logger *log.Logger, journal Journal) (*Hub, error) {
	validator, err := protocol.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Hub{
		store:     store,
		log:       logger,
		journal:   journal,
		validator: validator,
		clients:   make(map[string]*clientState),
		inbox:     make(chan RequestEnvelope, 256),
		join:      make(chan JoinRequest),
		leave:     make(chan string, 16),
		stop:      make(chan struct{}),
	}, nil
}

func (h *Hub) Inbox() chan<- RequestEnvelope { return h.inbox }
func (h *Hub) Join() chan<- JoinRequest      { return h.join }
func (h *Hub) Leave() chan<- string          { return h.leave }

// Run processes joins, leaves and mutation requests one at a time until the
// context is cancelled or Stop is called.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.stop:
			return nil
		case req := <-h.join:
			h.handleJoin(req)
		case id := <-h.leave:
			h.handleLeave(id)
		case env := <-h.inbox:
			h.handleRequest(env)
		}
	}
}

func (h *Hub) Stop() { close(h.stop) }
