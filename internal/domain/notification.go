package domain

import "time"

// Notification types
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification represents a social-action notification. Immutable after
// creation except for the read flag.
type Notification struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID uint      `gorm:"index:idx_recipient_read,priority:1;index:idx_recipient_created,priority:1" json:"recipientId"`
	SenderID    uint      `json:"senderId"`
	Type        string    `gorm:"size:20" json:"type"`
	PostID      *uint     `json:"postId,omitempty"`
	Text        string    `gorm:"size:280" json:"text,omitempty"`
	Read        bool      `gorm:"index:idx_recipient_read,priority:2" json:"read"`
	CreatedAt   time.Time `gorm:"index:idx_recipient_created,priority:2" json:"createdAt"`

	Sender User `gorm:"foreignKey:SenderID" json:"-"`
	Post   Post `gorm:"foreignKey:PostID" json:"-"`
}

// TableName returns the table name
func (Notification) TableName() string {
	return "notifications"
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Sender    UserRef   `json:"sender"`
	PostID    *uint     `json:"postId,omitempty"`
	Text      string    `json:"text,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts Notification to NotificationResponse. Sender must be
// preloaded.
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Sender:    n.Sender.Ref(),
		PostID:    n.PostID,
		Text:      n.Text,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationSummaryResponse represents unread count response
type NotificationSummaryResponse struct {
	TotalUnread int64 `json:"totalUnread"`
}
