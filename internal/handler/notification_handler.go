package handler

import (
	"net/http"
	"strconv"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/middleware"
	"github.com/chirpnet/chirp-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit := 0
	if l, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = l
	}

	notifications, err := h.service.List(userID, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load notifications", err)
		return
	}

	common.SuccessResponse(c, notifications, nil)
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	count, err := h.service.UnreadCount(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to count notifications", err)
		return
	}

	common.SuccessResponse(c, gin.H{"totalUnread": count}, nil)
}

// MarkRead handles PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid notification id", err)
		return
	}

	n, err := h.service.MarkRead(userID, id)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, n, nil)
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	count, err := h.service.MarkAllRead(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notifications read", err)
		return
	}

	common.SuccessResponse(c, gin.H{"updated": count}, nil)
}
