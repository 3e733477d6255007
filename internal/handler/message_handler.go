package handler

import (
	"net/http"
	"strconv"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/middleware"
	"github.com/chirpnet/chirp-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	service service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(service service.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := h.service.Send(userID, &req)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: msg})
}

// ListConversations handles GET /api/messages/conversations
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conversations, err := h.service.ListConversations(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load conversations", err)
		return
	}

	common.SuccessResponse(c, conversations, nil)
}

// GetThread handles GET /api/messages/:userId
func (h *MessageHandler) GetThread(c *gin.Context) {
	userID := middleware.GetUserID(c)

	otherID, err := parseID(c.Param("userId"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	messages, err := h.service.GetThread(userID, otherID)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, messages, nil)
}

// MarkRead handles PUT /api/messages/:messageId/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	messageID, err := parseID(c.Param("messageId"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid message id", err)
		return
	}

	msg, err := h.service.MarkRead(userID, messageID)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, msg, nil)
}

// MarkConversationRead handles PUT /api/messages/conversation/:userId/read
func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	otherID, err := parseID(c.Param("userId"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	count, err := h.service.MarkConversationRead(userID, otherID)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, gin.H{"updated": count}, nil)
}

// parseID parses a decimal path parameter into a uint
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
