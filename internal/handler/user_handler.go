package handler

import (
	"net/http"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/middleware"
	"github.com/chirpnet/chirp-backend/internal/service"
	"github.com/chirpnet/chirp-backend/pkg/cache"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile and follow-graph HTTP requests
type UserHandler struct {
	service service.UserService
	cache   cache.Service // may be nil
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service service.UserService, cacheService cache.Service) *UserHandler {
	return &UserHandler{service: service, cache: cacheService}
}

// GetProfile handles GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	viewerID := middleware.GetUserID(c)

	// Anonymous profile views carry no viewer-specific fields.
	cacheable := viewerID == 0 && h.cache != nil && h.cache.IsAvailable()
	if cacheable {
		if data, err := h.cache.GetUser(c.Request.Context(), id); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	profile, err := h.service.GetProfile(id, viewerID)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	if cacheable {
		_ = h.cache.SetUser(c.Request.Context(), id, common.APIResponse{Data: profile})
	}

	common.SuccessResponse(c, profile, nil)
}

// UpdateProfile handles PUT /api/users/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}
	if id != userID {
		common.ErrorResponse(c, http.StatusForbidden, "You can only update your own profile", nil)
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	profile, err := h.service.UpdateProfile(userID, &req, req.ProfilePicture)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateUser(c.Request.Context(), userID)
	}

	common.SuccessResponse(c, profile, nil)
}

// Search handles GET /api/users/search/query
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.service.Search(c.Query("q"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	common.SuccessResponse(c, users, nil)
}

// ToggleFollow handles POST /api/users/:id/follow
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	userID := middleware.GetUserID(c)

	targetID, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	result, err := h.service.ToggleFollow(userID, targetID)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateUser(c.Request.Context(), targetID)
	}

	common.SuccessResponse(c, result, nil)
}

// Followers handles GET /api/users/:id/followers
func (h *UserHandler) Followers(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	users, err := h.service.Followers(id)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, users, nil)
}

// Following handles GET /api/users/:id/following
func (h *UserHandler) Following(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	users, err := h.service.Following(id)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, users, nil)
}
