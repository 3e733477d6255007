package service

import (
	"fmt"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/repository"
	"github.com/chirpnet/chirp-backend/internal/ws"
)

const defaultNotificationLimit = 20

// NotificationService handles notification persistence, fan-out and read state
type NotificationService interface {
	Dispatch(sender *domain.User, recipientID uint, notifType string, postID *uint, text string) error
	List(userID uint, limit int) ([]*domain.NotificationResponse, error)
	MarkRead(userID, notificationID uint) (*domain.NotificationResponse, error)
	MarkAllRead(userID uint) (int64, error)
	UnreadCount(userID uint) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	broadcaster Broadcaster
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, broadcaster Broadcaster) NotificationService {
	return &notificationService{
		repo:        repo,
		broadcaster: broadcaster,
	}
}

// Dispatch records a social-action notification and then pushes it live.
// Self-actions are dropped entirely. The durable write always comes first:
// if it fails, no live event is emitted.
func (s *notificationService) Dispatch(sender *domain.User, recipientID uint, notifType string, postID *uint, text string) error {
	if sender.ID == recipientID {
		return nil
	}

	n := &domain.Notification{
		RecipientID: recipientID,
		SenderID:    sender.ID,
		Type:        notifType,
		PostID:      postID,
		Text:        text,
	}
	if err := s.repo.Create(n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	s.broadcaster.Broadcast(roomKey(recipientID), ws.NewNotificationEvent(&ws.NotificationPayload{
		Type:   notifType,
		Sender: sender.Ref(),
		PostID: postID,
		Text:   text,
	}))
	return nil
}

// List returns the newest notifications for a user
func (s *notificationService) List(userID uint, limit int) ([]*domain.NotificationResponse, error) {
	if limit < 1 || limit > 100 {
		limit = defaultNotificationLimit
	}

	notifications, err := s.repo.FindByRecipient(userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = n.ToResponse()
	}
	return responses, nil
}

// MarkRead marks one notification as read after ownership check
func (s *notificationService) MarkRead(userID, notificationID uint) (*domain.NotificationResponse, error) {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != userID {
		return nil, common.ErrForbidden
	}

	if !n.Read {
		if err := s.repo.MarkRead(notificationID); err != nil {
			return nil, err
		}
		n.Read = true
	}
	return n.ToResponse(), nil
}

// MarkAllRead marks every unread notification as read
func (s *notificationService) MarkAllRead(userID uint) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

// UnreadCount returns the unread notification count
func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}
