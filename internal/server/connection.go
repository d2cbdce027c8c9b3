package server

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/cardsharp/handreplay/internal/replay"
)

// StateRequest asks for the table state of one hand at one action index.
type StateRequest struct {
	Hand  int `json:"hand"`
	Index int `json:"index"`
}

// StateResponse carries either a GameState or an error message.
type StateResponse struct {
	Type  string            `json:"type"` // "state" or "error"
	Hand  int               `json:"hand,omitempty"`
	State *replay.GameState `json:"state,omitempty"`
	Error string            `json:"error,omitempty"`
}

// connection pairs a websocket with a read pump and a buffered write pump,
// one goroutine each.
type connection struct {
	id        string
	conn      *websocket.Conn
	send      chan StateResponse
	server    *Server
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newConnection(conn *websocket.Conn, server *Server) *connection {
	ctx, cancel := context.WithCancel(context.Background())
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return &connection{
		id:     ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
		conn:   conn,
		send:   make(chan StateResponse, server.cfg.SendBuffer),
		server: server,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *connection) start() {
	go c.writePump()
	go c.readPump()
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		_ = c.conn.Close()
	})
}

func (c *connection) readPump() {
	defer c.close()
	for {
		var req StateRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.server.logger.Warn().Str("conn", c.id).Err(err).Msg("read failed")
			}
			return
		}
		c.enqueue(c.resolve(req))
	}
}

func (c *connection) writePump() {
	for {
		select {
		case resp, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(resp); err != nil {
				c.server.logger.Warn().Str("conn", c.id).Err(err).Msg("write failed")
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *connection) enqueue(resp StateResponse) {
	select {
	case c.send <- resp:
	case <-c.ctx.Done():
	default:
		// Buffer full; the client is not keeping up.
		c.server.logger.Warn().Str("conn", c.id).Msg("send buffer full, closing")
		c.close()
	}
}

// resolve recomputes the requested state. Each request is independent:
// there is no per-connection replay state to corrupt.
func (c *connection) resolve(req StateRequest) StateResponse {
	if req.Hand < 0 || req.Hand >= len(c.server.hands) {
		return StateResponse{Type: "error", Error: "hand index out of range"}
	}
	hand := c.server.hands[req.Hand]

	// Out-of-range indexes clamp to the timeline bounds.
	index := req.Index
	if index < 0 {
		index = 0
	}
	if index > len(hand.Actions) {
		index = len(hand.Actions)
	}

	state, err := replay.StateAt(hand, index)
	if err != nil {
		return StateResponse{Type: "error", Error: err.Error()}
	}
	return StateResponse{Type: "state", Hand: req.Hand, State: &state}
}
