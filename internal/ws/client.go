package ws

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/chirpnet/chirp-backend/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Client represents a single WebSocket session. It receives server pushes on
// its send channel and accepts join_user_room / typing frames from the peer.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	authID string // authenticated user id, fixed at upgrade
	userID string // room currently joined; guarded by hub.mu

	closeOnce sync.Once
}

// NewClient creates a new WebSocket client for an authenticated user
func NewClient(hub *Hub, conn *websocket.Conn, authID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		authID: authID,
	}
}

// ReadPump reads frames from the peer and dispatches client events. The
// deferred Leave is the disconnect cleanup path: it always runs, whether the
// peer closed cleanly or the read failed.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.dispatch(data)
	}
}

// dispatch handles one inbound frame. Unknown or malformed frames are dropped.
func (c *Client) dispatch(data []byte) {
	var ev InboundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return
	}

	switch ev.Type {
	case EventJoinUserRoom:
		userID := decodeUserID(ev.Payload)
		if userID == "" {
			return
		}
		// A session may only join its own room.
		if userID != c.authID {
			logger.Get().Warn().
				Str("auth_id", c.authID).
				Str("claimed_id", userID).
				Msg("rejected join_user_room for foreign room")
			return
		}
		c.hub.Join(c, userID)

	case EventTyping:
		var p TypingPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}
		// Typing is ephemeral: no persistence, no ordering, straight relay.
		sender, err := strconv.ParseUint(c.authID, 10, 64)
		if err != nil || p.ReceiverID == 0 {
			return
		}
		receiverRoom := strconv.FormatUint(uint64(p.ReceiverID), 10)
		c.hub.Broadcast(receiverRoom, NewUserTypingEvent(uint(sender), p.IsTyping))
	}
}

// decodeUserID accepts the user id as a JSON string or number
func decodeUserID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatUint(n, 10)
	}
	return ""
}

// WritePump sends queued events to the WebSocket
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
