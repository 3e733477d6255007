package ws

import (
	"encoding/json"

	"github.com/chirpnet/chirp-backend/internal/domain"
)

// Wire event names. These are a compatibility contract with existing clients
// and must not change.
const (
	// client -> server
	EventJoinUserRoom = "join_user_room"
	EventTyping       = "typing"

	// server -> client
	EventNewMessage      = "new_message"
	EventNewNotification = "new_notification"
	EventUserTyping      = "user_typing"
)

// Event is the envelope for every frame on the live channel
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// InboundEvent is a client frame before payload dispatch
type InboundEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// TypingPayload is the client -> server typing signal
type TypingPayload struct {
	SenderID   uint `json:"senderId"`
	ReceiverID uint `json:"receiverId"`
	IsTyping   bool `json:"isTyping"`
}

// UserTypingPayload is the server -> client typing relay
type UserTypingPayload struct {
	SenderID uint `json:"senderId"`
	IsTyping bool `json:"isTyping"`
}

// NotificationPayload is the server -> client new_notification payload
type NotificationPayload struct {
	Type   string         `json:"type"`
	Sender domain.UserRef `json:"sender"`
	PostID *uint          `json:"post,omitempty"`
	Text   string         `json:"text,omitempty"`
}

// NewMessageEvent wraps a message for live delivery
func NewMessageEvent(msg *domain.MessageResponse) *Event {
	return &Event{Type: EventNewMessage, Payload: msg}
}

// NewNotificationEvent wraps a notification for live delivery
func NewNotificationEvent(p *NotificationPayload) *Event {
	return &Event{Type: EventNewNotification, Payload: p}
}

// NewUserTypingEvent wraps a typing relay for live delivery
func NewUserTypingEvent(senderID uint, isTyping bool) *Event {
	return &Event{Type: EventUserTyping, Payload: &UserTypingPayload{
		SenderID: senderID,
		IsTyping: isTyping,
	}}
}
