package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/chirpnet/chirp-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "live_events"

// Hub maintains the mapping from user id to the set of connected sessions
// ("rooms") and fans events out to them. It is the single live-delivery path;
// durability is the stores' job, so every send here is best-effort.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool

	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub creates a new Hub. redisClient may be nil (single-instance mode:
// no cross-instance event bridge).
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		rooms:       make(map[string]map[*Client]bool),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Join adds the client to userID's room. A client belongs to at most one room;
// joining again with a different id moves it.
func (h *Hub) Join(c *Client, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.userID == userID {
		if h.rooms[userID] != nil && h.rooms[userID][c] {
			return
		}
	}
	h.removeLocked(c)

	c.userID = userID
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*Client]bool)
	}
	h.rooms[userID][c] = true
}

// Leave removes the client from its room. Safe to call for a client that
// never joined; the send channel is closed exactly once here.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)

	c.closeOnce.Do(func() { close(c.send) })
}

// removeLocked detaches the client from its current room. Caller holds h.mu.
func (h *Hub) removeLocked(c *Client) {
	if c.userID == "" {
		return
	}
	if room, ok := h.rooms[c.userID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.userID)
		}
	}
	c.userID = ""
}

// Broadcast delivers the event to every session in userID's room, and
// publishes it to Redis for other instances. Fire-and-forget: a full or dead
// session is skipped, never waited on, and no error reaches the caller.
func (h *Hub) Broadcast(userID string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Get().Error().Err(err).Str("event", event.Type).Msg("failed to encode live event")
		return
	}

	h.broadcastLocal(userID, event.Type, data)

	if h.redisClient != nil {
		msg, err := json.Marshal(&redisEnvelope{UserID: userID, Data: data})
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, msg) //nolint:errcheck
		}
	}
}

func (h *Hub) broadcastLocal(userID, eventType string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[userID] {
		select {
		case c.send <- data:
		default:
			// Slow consumer: drop rather than stall the room.
			logger.Get().Warn().
				Str("user_id", userID).
				Str("event", eventType).
				Msg("dropped live event for slow session")
		}
	}
}

// RoomSize returns the number of live sessions for a user
func (h *Hub) RoomSize(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

type redisEnvelope struct {
	UserID string          `json:"user_id"`
	Data   json.RawMessage `json:"data"`
}

// Run subscribes to events published by other instances. Blocks until Stop.
func (h *Hub) Run() {
	if h.redisClient == nil {
		<-h.ctx.Done()
		return
	}

	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env redisEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err == nil {
				// Local delivery only; do not re-publish.
				h.broadcastLocal(env.UserID, "", env.Data)
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
