package repository

import (
	"errors"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository notification data access interface
type NotificationRepository interface {
	Create(n *domain.Notification) error
	FindByID(id uint) (*domain.Notification, error)
	FindByRecipient(recipientID uint, limit int) ([]*domain.Notification, error)
	MarkRead(id uint) error
	MarkAllRead(recipientID uint) (int64, error)
	CountUnread(recipientID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a notification and reloads it with the sender preloaded
func (r *notificationRepository) Create(n *domain.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return err
	}
	return r.db.Preload("Sender").First(n, n.ID).Error
}

// FindByID returns a notification by ID
func (r *notificationRepository) FindByID(id uint) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.Preload("Sender").First(&n, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindByRecipient returns the newest notifications for a user, capped at limit
func (r *notificationRepository) FindByRecipient(recipientID uint, limit int) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	err := r.db.Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead marks a notification as read. Idempotent.
func (r *notificationRepository) MarkRead(id uint) error {
	return r.db.Model(&domain.Notification{}).
		Where("id = ? AND `read` = ?", id, false).
		Update("read", true).Error
}

// MarkAllRead marks every unread notification for the user as read
func (r *notificationRepository) MarkAllRead(recipientID uint) (int64, error) {
	result := r.db.Model(&domain.Notification{}).
		Where("recipient_id = ? AND `read` = ?", recipientID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// CountUnread returns the unread notification count for a user
func (r *notificationRepository) CountUnread(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("recipient_id = ? AND `read` = ?", recipientID, false).
		Count(&count).Error
	return count, err
}
