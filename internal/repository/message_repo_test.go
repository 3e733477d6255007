package repository

import (
	"testing"
	"time"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMessageTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Message{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	users := []domain.User{
		{Username: "alice", Email: "alice@example.com", Password: "x"},
		{Username: "bob", Email: "bob@example.com", Password: "x"},
		{Username: "carol", Email: "carol@example.com", Password: "x"},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}
	return db
}

func mustConversationID(t *testing.T, a, b uint) string {
	t.Helper()
	id, err := domain.ConversationID(a, b)
	if err != nil {
		t.Fatalf("ConversationID(%d,%d): %v", a, b, err)
	}
	return id
}

func TestMessageRepository_CreatePreloadsParticipants(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)

	msg := &domain.Message{
		ConversationID: mustConversationID(t, 1, 2),
		SenderID:       1,
		ReceiverID:     2,
		Content:        "hello bob",
	}
	err := repo.Create(msg)
	assert.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, "alice", msg.Sender.Username)
	assert.Equal(t, "bob", msg.Receiver.Username)
	assert.False(t, msg.Read)
}

func TestMessageRepository_RoundTrip(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)

	sent := &domain.Message{
		ConversationID: mustConversationID(t, 1, 2),
		SenderID:       1,
		ReceiverID:     2,
		Content:        "payload stays intact",
		AttachmentURL:  "https://cdn.example.com/img.png",
	}
	assert.NoError(t, repo.Create(sent))

	got, err := repo.FindByID(sent.ID)
	assert.NoError(t, err)
	assert.Equal(t, sent.ConversationID, got.ConversationID)
	assert.Equal(t, sent.SenderID, got.SenderID)
	assert.Equal(t, sent.ReceiverID, got.ReceiverID)
	assert.Equal(t, sent.Content, got.Content)
	assert.Equal(t, sent.AttachmentURL, got.AttachmentURL)
}

func TestMessageRepository_FindByID_NotFound(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)

	_, err := repo.FindByID(999)
	assert.ErrorIs(t, err, common.ErrMessageNotFound)
}

func TestMessageRepository_ThreadOrderWithTies(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)
	convID := mustConversationID(t, 1, 2)

	// Same timestamp on purpose: id must break the tie.
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		msg := &domain.Message{
			ConversationID: convID,
			SenderID:       1,
			ReceiverID:     2,
			Content:        "tied",
			CreatedAt:      ts,
		}
		assert.NoError(t, repo.Create(msg))
	}
	early := &domain.Message{
		ConversationID: convID,
		SenderID:       2,
		ReceiverID:     1,
		Content:        "first",
		CreatedAt:      ts.Add(-time.Minute),
	}
	assert.NoError(t, repo.Create(early))

	thread, err := repo.FindByConversation(convID)
	assert.NoError(t, err)
	assert.Len(t, thread, 4)
	assert.Equal(t, "first", thread[0].Content)
	for i := 1; i < len(thread); i++ {
		assert.True(t, thread[i].ID > thread[i-1].ID || thread[i].CreatedAt.After(thread[i-1].CreatedAt),
			"thread out of order at %d", i)
	}
}

func TestMessageRepository_ThreadIsolation(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)

	assert.NoError(t, repo.Create(&domain.Message{
		ConversationID: mustConversationID(t, 1, 2), SenderID: 1, ReceiverID: 2, Content: "to bob",
	}))
	assert.NoError(t, repo.Create(&domain.Message{
		ConversationID: mustConversationID(t, 1, 3), SenderID: 1, ReceiverID: 3, Content: "to carol",
	}))

	thread, err := repo.FindByConversation(mustConversationID(t, 1, 2))
	assert.NoError(t, err)
	assert.Len(t, thread, 1)
	assert.Equal(t, "to bob", thread[0].Content)
}

func TestMessageRepository_MarkRead_Idempotent(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)

	msg := &domain.Message{
		ConversationID: mustConversationID(t, 1, 2), SenderID: 1, ReceiverID: 2, Content: "unread",
	}
	assert.NoError(t, repo.Create(msg))

	assert.NoError(t, repo.MarkRead(msg.ID))
	got, err := repo.FindByID(msg.ID)
	assert.NoError(t, err)
	assert.True(t, got.Read)

	// Second call matches no rows but still succeeds.
	assert.NoError(t, repo.MarkRead(msg.ID))
	got, err = repo.FindByID(msg.ID)
	assert.NoError(t, err)
	assert.True(t, got.Read)
}

func TestMessageRepository_MarkConversationRead(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)
	convID := mustConversationID(t, 1, 2)

	// Two unread for bob, one unread for alice in the same conversation,
	// plus an unrelated unread in another conversation.
	for i := 0; i < 2; i++ {
		assert.NoError(t, repo.Create(&domain.Message{
			ConversationID: convID, SenderID: 1, ReceiverID: 2, Content: "for bob",
		}))
	}
	assert.NoError(t, repo.Create(&domain.Message{
		ConversationID: convID, SenderID: 2, ReceiverID: 1, Content: "for alice",
	}))
	assert.NoError(t, repo.Create(&domain.Message{
		ConversationID: mustConversationID(t, 2, 3), SenderID: 3, ReceiverID: 2, Content: "other thread",
	}))

	changed, err := repo.MarkConversationRead(convID, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	// Alice's unread message in the conversation is untouched.
	count, err := repo.CountUnread(1)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Bob still has the unread from the other conversation.
	count, err = repo.CountUnread(2)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Idempotent: nothing left to change.
	changed, err = repo.MarkConversationRead(convID, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, changed)
}

func TestMessageRepository_FindInvolving_NewestFirst(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewMessageRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, repo.Create(&domain.Message{
		ConversationID: mustConversationID(t, 1, 2), SenderID: 1, ReceiverID: 2, Content: "old", CreatedAt: base,
	}))
	assert.NoError(t, repo.Create(&domain.Message{
		ConversationID: mustConversationID(t, 1, 3), SenderID: 3, ReceiverID: 1, Content: "new", CreatedAt: base.Add(time.Hour),
	}))
	assert.NoError(t, repo.Create(&domain.Message{
		ConversationID: mustConversationID(t, 2, 3), SenderID: 2, ReceiverID: 3, Content: "not mine", CreatedAt: base.Add(2 * time.Hour),
	}))

	messages, err := repo.FindInvolving(1)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "new", messages[0].Content)
	assert.Equal(t, "old", messages[1].Content)
}
