package client

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"collabboard.dev/internal/protocol"
)

// ErrNotConnected is returned by request methods while no socket is live.
// Requests are fire-and-forget: a dropped request is lost unless the caller
// repeats it.
var ErrNotConnected = errors.New("client: not connected")

const defaultReconnectDelay = 3 * time.Second

type Options struct {
	URL string

	// ReconnectDelay is the fixed wait between reconnect attempts after an
	// unexpected close. Zero means 3s.
	ReconnectDelay time.Duration

	// OnUpdate, if set, runs after every event that changed the mirror. The
	// UI layer uses it as its re-render trigger. It is called from the read
	// loop goroutine and must not call back into Board-mutating methods.
	OnUpdate func()

	Logger *log.Logger
}

// Client is the synchronization layer: it owns the local mirror of the
// board, applies inbound events to it, and is the sole path through which
// the UI layer requests mutations. The mirror is nil until the first
// BOARD_STATE arrives; it survives disconnects and is replaced wholesale on
// reconnect.
type Client struct {
	url      string
	delay    time.Duration
	onUpdate func()
	log      *log.Logger

	tracker *Tracker

	mu        sync.Mutex
	conn      *websocket.Conn
	board     *protocol.Board
	connected bool

	writeMu sync.Mutex

	retryNow chan struct{}
}

func New(opts Options) *Client {
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = defaultReconnectDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		url:      opts.URL,
		delay:    delay,
		onUpdate: opts.OnUpdate,
		log:      logger,
		tracker:  NewTracker(defaultGracePeriod),
		retryNow: make(chan struct{}, 1),
	}
}

// Run dials the server and keeps the connection alive until ctx is
// cancelled: every unexpected close schedules a fresh attempt after the
// fixed delay, indefinitely. Run returns ctx.Err() on cancellation.
func (c *Client) Run(ctx context.Context) error {
	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.log.Printf("dial %s: %v", c.url, err)
		} else {
			c.log.Printf("connected to %s", c.url)
			c.setConn(conn)
			c.readLoop(ctx, conn)
			c.dropConn(conn)
			c.log.Printf("disconnected from %s", c.url)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		case <-c.retryNow:
			// Manual reconnect bypasses the delay.
		}
	}
}

// Reconnect closes any live socket and retries immediately, bypassing the
// retry delay. Safe to call from any goroutine.
func (c *Client) Reconnect() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
	select {
	case c.retryNow <- struct{}{}:
	default:
	}
}

// Connected reports whether a socket is currently live. The mirror may still
// be non-nil while disconnected; the UI layer renders it with a reconnecting
// indicator.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Board returns a deep copy of the mirror, and false while no snapshot has
// been received yet.
func (c *Client) Board() (protocol.Board, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.board == nil {
		return protocol.Board{}, false
	}
	return c.board.Clone(), true
}

// Pending exposes the optimistic-update tracker's current records.
func (c *Client) Pending() map[string]PendingMutation {
	return c.tracker.Pending()
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		c.apply(msg)
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()
}

func (c *Client) dropConn(conn *websocket.Conn) {
	_ = conn.Close()
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.connected = false
	}
	c.mu.Unlock()
}

// send serializes a request and writes it without waiting for any response:
// the protocol has no correlation ids, so the outcome arrives as a broadcast
// event like everyone else's.
func (c *Client) send(msgType string, payload any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, b)
}

// CreateCard requests a new card and tracks a provisional copy (temporary id,
// locally computed append position) until the grace period runs out or the
// send fails.
func (c *Client) CreateCard(columnID, title, description string) error {
	provisional := protocol.Card{
		Title:       title,
		Description: description,
	}
	c.mu.Lock()
	if c.board != nil {
		if col := findColumn(c.board, columnID); col != nil {
			provisional.Position = len(col.Cards)
		}
	}
	c.mu.Unlock()

	key := c.tracker.TrackCreate(columnID, provisional)
	err := c.send(protocol.TypeCreateCard, protocol.CreateCardPayload{
		ColumnID: columnID,
		Card:     protocol.CardDraft{Title: title, Description: description},
	})
	if err != nil {
		c.tracker.Rollback(key)
		return err
	}
	c.tracker.ScheduleClear(key)
	return nil
}

// UpdateCard requests a partial edit and tracks the card's prior state until
// the grace period runs out or the send fails.
func (c *Client) UpdateCard(cardID string, updates protocol.CardUpdates) error {
	var previous *protocol.Card
	c.mu.Lock()
	if c.board != nil {
		if _, card := findCard(c.board, cardID); card != nil {
			cp := *card
			previous = &cp
		}
	}
	c.mu.Unlock()

	key := ""
	if previous != nil {
		key = c.tracker.TrackUpdate(cardID, *previous)
	}
	err := c.send(protocol.TypeUpdateCard, protocol.UpdateCardPayload{CardID: cardID, Updates: updates})
	if err != nil {
		if key != "" {
			c.tracker.Rollback(key)
		}
		return err
	}
	if key != "" {
		c.tracker.ScheduleClear(key)
	}
	return nil
}

func (c *Client) DeleteCard(cardID string) error {
	return c.send(protocol.TypeDeleteCard, protocol.DeleteCardPayload{CardID: cardID})
}

func (c *Client) MoveCard(cardID, fromColumnID, toColumnID string, newPosition int) error {
	return c.send(protocol.TypeMoveCard, protocol.MoveCardPayload{
		CardID:       cardID,
		FromColumnID: fromColumnID,
		ToColumnID:   toColumnID,
		NewPosition:  newPosition,
	})
}

func (c *Client) CreateColumn(title string) error {
	return c.send(protocol.TypeCreateColumn, protocol.CreateColumnPayload{Title: title})
}

func (c *Client) UpdateColumn(columnID string, updates protocol.ColumnUpdates) error {
	return c.send(protocol.TypeUpdateColumn, protocol.UpdateColumnPayload{ColumnID: columnID, Updates: updates})
}

func (c *Client) DeleteColumn(columnID string) error {
	return c.send(protocol.TypeDeleteColumn, protocol.DeleteColumnPayload{ColumnID: columnID})
}
