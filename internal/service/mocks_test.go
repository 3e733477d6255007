package service

import (
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/ws"
	"github.com/stretchr/testify/mock"
)

// --- Mock Broadcaster ---

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) Broadcast(userID string, event *ws.Event) {
	m.Called(userID, event)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByID(id uint) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) Search(query string, limit int) ([]*domain.User, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// --- Mock MessageRepository ---

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(msg *domain.Message) error {
	return m.Called(msg).Error(0)
}

func (m *mockMessageRepo) FindByID(id uint) (*domain.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) FindByConversation(conversationID string) ([]*domain.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) FindInvolving(userID uint) ([]*domain.Message, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) MarkRead(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockMessageRepo) MarkConversationRead(conversationID string, recipientID uint) (int64, error) {
	args := m.Called(conversationID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) CountUnread(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock NotificationRepository ---

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(n *domain.Notification) error {
	return m.Called(n).Error(0)
}

func (m *mockNotificationRepo) FindByID(id uint) (*domain.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) FindByRecipient(recipientID uint, limit int) ([]*domain.Notification, error) {
	args := m.Called(recipientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(recipientID uint) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(recipientID uint) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock FollowRepository ---

type mockFollowRepo struct {
	mock.Mock
}

func (m *mockFollowRepo) Create(followerID, followeeID uint) error {
	return m.Called(followerID, followeeID).Error(0)
}

func (m *mockFollowRepo) Delete(followerID, followeeID uint) error {
	return m.Called(followerID, followeeID).Error(0)
}

func (m *mockFollowRepo) Exists(followerID, followeeID uint) (bool, error) {
	args := m.Called(followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowRepo) CountFollowers(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFollowRepo) CountFollowing(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFollowRepo) FindFollowers(userID uint) ([]*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockFollowRepo) FindFollowing(userID uint) ([]*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockFollowRepo) FindMutualIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// --- Mock PostRepository ---

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(post *domain.Post) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) FindByID(id uint) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) FindAll(page, limit int) ([]*domain.Post, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) FindByAuthors(authorIDs []uint, page, limit int) ([]*domain.Post, int64, error) {
	args := m.Called(authorIDs, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) FindByAuthor(authorID uint) ([]*domain.Post, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}

func (m *mockPostRepo) Search(query string, limit int) ([]*domain.Post, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}

func (m *mockPostRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockPostRepo) LikeExists(postID, userID uint) (bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) AddLike(postID, userID uint) error {
	return m.Called(postID, userID).Error(0)
}

func (m *mockPostRepo) RemoveLike(postID, userID uint) error {
	return m.Called(postID, userID).Error(0)
}

func (m *mockPostRepo) CountLikes(postID uint) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock CommentRepository ---

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(comment *domain.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentRepo) FindByPost(postID uint) ([]*domain.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

// --- Mock NotificationService ---

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) Dispatch(sender *domain.User, recipientID uint, notifType string, postID *uint, text string) error {
	return m.Called(sender, recipientID, notifType, postID, text).Error(0)
}

func (m *mockNotificationService) List(userID uint, limit int) ([]*domain.NotificationResponse, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NotificationResponse), args.Error(1)
}

func (m *mockNotificationService) MarkRead(userID, notificationID uint) (*domain.NotificationResponse, error) {
	args := m.Called(userID, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationResponse), args.Error(1)
}

func (m *mockNotificationService) MarkAllRead(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) UnreadCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}
