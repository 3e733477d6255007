package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock MessageService ---

type mockMessageService struct {
	mock.Mock
}

func (m *mockMessageService) Send(senderID uint, req *domain.SendMessageRequest) (*domain.MessageResponse, error) {
	args := m.Called(senderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageResponse), args.Error(1)
}

func (m *mockMessageService) GetThread(userID, otherID uint) ([]*domain.MessageResponse, error) {
	args := m.Called(userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MessageResponse), args.Error(1)
}

func (m *mockMessageService) ListConversations(userID uint) ([]*domain.Conversation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Conversation), args.Error(1)
}

func (m *mockMessageService) MarkRead(callerID, messageID uint) (*domain.MessageResponse, error) {
	args := m.Called(callerID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageResponse), args.Error(1)
}

func (m *mockMessageService) MarkConversationRead(callerID, otherID uint) (int64, error) {
	args := m.Called(callerID, otherID)
	return args.Get(0).(int64), args.Error(1)
}

func messageTestRouter(svc *mockMessageService, callerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMessageHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", callerID)
		c.Next()
	})
	r.POST("/api/messages", h.Send)
	r.GET("/api/messages/conversations", h.ListConversations)
	r.GET("/api/messages/:userId", h.GetThread)
	r.PUT("/api/messages/:messageId/read", h.MarkRead)
	r.PUT("/api/messages/conversation/:userId/read", h.MarkConversationRead)
	return r
}

func TestMessageHandler_Send(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	svc.On("Send", uint(1), mock.MatchedBy(func(req *domain.SendMessageRequest) bool {
		return req.ReceiverID == 2 && req.Content == "hey"
	})).Return(&domain.MessageResponse{
		ID:             10,
		ConversationID: "1_2",
		Sender:         domain.UserRef{ID: 1, Username: "alice"},
		Receiver:       domain.UserRef{ID: 2, Username: "bob"},
		Content:        "hey",
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/messages", strings.NewReader(`{"receiverId":2,"content":"hey"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1_2", body.Data["conversationId"])
	sender := body.Data["sender"].(map[string]interface{})
	assert.Equal(t, "alice", sender["username"])
}

func TestMessageHandler_Send_SelfMessageRejected(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	svc.On("Send", uint(1), mock.Anything).Return(nil, common.ErrSelfMessage)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/messages", strings.NewReader(`{"receiverId":1,"content":"hi me"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandler_Send_MissingReceiver(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/messages", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// binding:"required" rejects it before the service is involved.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestMessageHandler_GetThread(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	svc.On("GetThread", uint(1), uint(2)).Return([]*domain.MessageResponse{
		{ID: 1, Content: "a"},
		{ID: 2, Content: "b"},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/messages/2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestMessageHandler_GetThread_BadID(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/messages/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandler_MarkRead_Forbidden(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	svc.On("MarkRead", uint(1), uint(9)).Return(nil, common.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/messages/9/read", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMessageHandler_MarkConversationRead(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	svc.On("MarkConversationRead", uint(1), uint(2)).Return(int64(3), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/messages/conversation/2/read", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body.Data["updated"])
}

func TestMessageHandler_ListConversations(t *testing.T) {
	svc := new(mockMessageService)
	r := messageTestRouter(svc, 1)

	svc.On("ListConversations", uint(1)).Return([]*domain.Conversation{
		{
			ConversationID: "1_2",
			OtherUser:      domain.UserRef{ID: 2, Username: "bob"},
			LastMessage:    &domain.MessageResponse{ID: 4, Content: "latest"},
			UnreadCount:    2,
		},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/messages/conversations", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.EqualValues(t, 2, body.Data[0]["unreadCount"])
	other := body.Data[0]["otherUser"].(map[string]interface{})
	assert.Equal(t, "bob", other["username"])
}
