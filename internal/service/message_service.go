package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/repository"
	"github.com/chirpnet/chirp-backend/internal/ws"
)

// MessageService business logic for direct messages and the inbox view
type MessageService interface {
	Send(senderID uint, req *domain.SendMessageRequest) (*domain.MessageResponse, error)
	GetThread(userID, otherID uint) ([]*domain.MessageResponse, error)
	ListConversations(userID uint) ([]*domain.Conversation, error)
	MarkRead(callerID, messageID uint) (*domain.MessageResponse, error)
	MarkConversationRead(callerID, otherID uint) (int64, error)
}

type messageService struct {
	repo        repository.MessageRepository
	userRepo    repository.UserRepository
	broadcaster Broadcaster
}

// NewMessageService creates a new MessageService
func NewMessageService(repo repository.MessageRepository, userRepo repository.UserRepository, broadcaster Broadcaster) MessageService {
	return &messageService{
		repo:        repo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

// Send validates, durably appends the message, then pushes new_message to the
// receiver's room. The broadcast is best-effort: its outcome never affects the
// caller, and it only runs after the write succeeded.
func (s *messageService) Send(senderID uint, req *domain.SendMessageRequest) (*domain.MessageResponse, error) {
	if req.ReceiverID == 0 {
		return nil, fmt.Errorf("%w: receiver is required", common.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Content) == "" && req.AttachmentURL == "" {
		return nil, common.ErrEmptyMessage
	}

	conversationID, err := domain.ConversationID(senderID, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		Content:        strings.TrimSpace(req.Content),
		AttachmentURL:  req.AttachmentURL,
	}
	if err := s.repo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	resp := msg.ToResponse()
	s.broadcaster.Broadcast(roomKey(req.ReceiverID), ws.NewMessageEvent(resp))

	return resp, nil
}

// GetThread returns the full conversation with the other user, oldest first
func (s *messageService) GetThread(userID, otherID uint) ([]*domain.MessageResponse, error) {
	conversationID, err := domain.ConversationID(userID, otherID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.FindByConversation(conversationID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = m.ToResponse()
	}
	return responses, nil
}

// ListConversations builds the inbox view: one row per conversation with the
// latest message and the viewer's unread count. The input is newest-first, so
// the first message seen per conversation is its latest, and appending rows in
// first-seen order yields last-activity-descending ordering.
func (s *messageService) ListConversations(userID uint) ([]*domain.Conversation, error) {
	messages, err := s.repo.FindInvolving(userID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Conversation)
	conversations := make([]*domain.Conversation, 0)

	for _, m := range messages {
		conv, ok := byID[m.ConversationID]
		if !ok {
			other := m.Sender
			if m.SenderID == userID {
				other = m.Receiver
			}
			conv = &domain.Conversation{
				ConversationID: m.ConversationID,
				OtherUser:      other.Ref(),
				LastMessage:    m.ToResponse(),
			}
			byID[m.ConversationID] = conv
			conversations = append(conversations, conv)
		}
		if m.ReceiverID == userID && !m.Read {
			conv.UnreadCount++
		}
	}

	return conversations, nil
}

// MarkRead flips one message's read flag. Only the receiver may do so; the
// call is idempotent.
func (s *messageService) MarkRead(callerID, messageID uint) (*domain.MessageResponse, error) {
	msg, err := s.repo.FindByID(messageID)
	if err != nil {
		return nil, err
	}
	if msg.ReceiverID != callerID {
		return nil, common.ErrForbidden
	}

	if !msg.Read {
		if err := s.repo.MarkRead(messageID); err != nil {
			return nil, err
		}
		msg.Read = true
	}
	return msg.ToResponse(), nil
}

// MarkConversationRead marks every message from the other user addressed to
// the caller as read; returns the number of messages changed.
func (s *messageService) MarkConversationRead(callerID, otherID uint) (int64, error) {
	conversationID, err := domain.ConversationID(callerID, otherID)
	if err != nil {
		return 0, err
	}
	return s.repo.MarkConversationRead(conversationID, callerID)
}

// roomKey renders a user id as the hub room key
func roomKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
