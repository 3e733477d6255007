package domain

import "time"

// Message represents one direct message. Rows are immutable after creation
// except for the read flag; messages are never deleted.
//
// The composite indexes back the two hot query paths: thread range scans by
// (conversation_id, created_at) and unread filtering by (receiver_id, read).
type Message struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID string    `gorm:"size:64;index:idx_conversation_created,priority:1" json:"conversationId"`
	SenderID       uint      `gorm:"index" json:"senderId"`
	ReceiverID     uint      `gorm:"index:idx_receiver_read,priority:1" json:"receiverId"`
	Content        string    `gorm:"type:text" json:"content"`
	AttachmentURL  string    `gorm:"size:500" json:"attachmentUrl,omitempty"`
	Read           bool      `gorm:"index:idx_receiver_read,priority:2" json:"read"`
	CreatedAt      time.Time `gorm:"index:idx_conversation_created,priority:2" json:"createdAt"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

// TableName returns the table name
func (Message) TableName() string {
	return "messages"
}

// SendMessageRequest represents a send message request
type SendMessageRequest struct {
	ReceiverID    uint   `json:"receiverId" binding:"required"`
	Content       string `json:"content"`
	AttachmentURL string `json:"attachmentUrl"`
}

// MessageResponse represents a message in API responses and in the
// new_message live event. Field names are part of the wire contract.
type MessageResponse struct {
	ID             uint      `json:"id"`
	ConversationID string    `json:"conversationId"`
	Sender         UserRef   `json:"sender"`
	Receiver       UserRef   `json:"receiver"`
	Content        string    `json:"content"`
	AttachmentURL  string    `json:"attachmentUrl,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToResponse converts Message to MessageResponse. Sender/Receiver must be
// preloaded.
func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         m.Sender.Ref(),
		Receiver:       m.Receiver.Ref(),
		Content:        m.Content,
		AttachmentURL:  m.AttachmentURL,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}
