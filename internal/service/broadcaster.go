package service

import "github.com/chirpnet/chirp-backend/internal/ws"

// Broadcaster is the live-delivery seam. The hub implements it; services only
// ever fire-and-forget through it, after the durable write has succeeded.
type Broadcaster interface {
	Broadcast(userID string, event *ws.Event)
}
