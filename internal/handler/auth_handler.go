package handler

import (
	"net/http"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/middleware"
	"github.com/chirpnet/chirp-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Register(&req)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: resp})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tokens, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, tokens, nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.service.Me(userID)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, user, nil)
}
