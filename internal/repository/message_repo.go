package repository

import (
	"errors"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access interface
type MessageRepository interface {
	Create(msg *domain.Message) error
	FindByID(id uint) (*domain.Message, error)
	FindByConversation(conversationID string) ([]*domain.Message, error)
	FindInvolving(userID uint) ([]*domain.Message, error)
	MarkRead(id uint) error
	MarkConversationRead(conversationID string, recipientID uint) (int64, error)
	CountUnread(userID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create appends a message to the log and reloads it with sender/receiver
// preloaded for denormalized responses.
func (r *messageRepository) Create(msg *domain.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return err
	}
	return r.db.Preload("Sender").Preload("Receiver").
		First(msg, msg.ID).Error
}

// FindByID finds a message by ID
func (r *messageRepository) FindByID(id uint) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		First(&msg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// FindByConversation returns the full thread, oldest first. Ties on
// created_at are broken by the monotonic id so the order is stable across
// calls even under concurrent sends.
func (r *messageRepository) FindByConversation(conversationID string) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// FindInvolving returns every message the user sent or received, newest
// first. Feeds the conversation aggregation.
func (r *messageRepository) FindInvolving(userID uint) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flips the read flag. Idempotent: a second call matches no rows.
func (r *messageRepository) MarkRead(id uint) error {
	return r.db.Model(&domain.Message{}).
		Where("id = ? AND `read` = ?", id, false).
		Update("read", true).Error
}

// MarkConversationRead marks every unread message addressed to recipientID in
// the conversation as read and returns the number of rows changed.
func (r *messageRepository) MarkConversationRead(conversationID string, recipientID uint) (int64, error) {
	result := r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND `read` = ?", conversationID, recipientID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// CountUnread returns the number of unread messages addressed to the user
// across all conversations.
func (r *messageRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("receiver_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	return count, err
}
