package handler

import (
	"net/http"
	"strconv"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/middleware"
	"github.com/chirpnet/chirp-backend/internal/service"
	"github.com/chirpnet/chirp-backend/pkg/cache"
	"github.com/gin-gonic/gin"
)

// PostHandler handles post, like and comment HTTP requests
type PostHandler struct {
	service service.PostService
	cache   cache.Service // may be nil
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service service.PostService, cacheService cache.Service) *PostHandler {
	return &PostHandler{service: service, cache: cacheService}
}

// CreatePostRequest with media URLs from the upload endpoint
type CreatePostRequest struct {
	Content string             `json:"content"`
	Media   []domain.PostMedia `json:"media"`
}

// Create handles POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Media) > 4 {
		common.ErrorResponse(c, http.StatusBadRequest, "At most 4 media items per post", nil)
		return
	}

	post, err := h.service.Create(userID, req.Content, req.Media)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateFeed(c.Request.Context())
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: post})
}

// Feed handles GET /api/posts
func (h *PostHandler) Feed(c *gin.Context) {
	page, limit := pageParams(c)
	viewerID := middleware.GetUserID(c)

	// Anonymous feeds are identical for everyone, so they cache well.
	cacheable := viewerID == 0 && h.cache != nil && h.cache.IsAvailable()
	if cacheable {
		if data, err := h.cache.GetFeed(c.Request.Context(), page, limit); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	posts, meta, err := h.service.Feed(viewerID, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load feed", err)
		return
	}

	if cacheable {
		_ = h.cache.SetFeed(c.Request.Context(), page, limit, common.APIResponse{Data: posts, Meta: meta})
	}

	common.SuccessResponse(c, posts, meta)
}

// FriendsFeed handles GET /api/posts/friends
func (h *PostHandler) FriendsFeed(c *gin.Context) {
	page, limit := pageParams(c)

	posts, meta, err := h.service.FriendsFeed(middleware.GetUserID(c), page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load friends feed", err)
		return
	}

	common.SuccessResponse(c, posts, meta)
}

// Search handles GET /api/posts/search
func (h *PostHandler) Search(c *gin.Context) {
	posts, err := h.service.Search(c.Query("query"), middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	common.SuccessResponse(c, posts, nil)
}

// Get handles GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post id", err)
		return
	}

	post, err := h.service.Get(id, middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// UserPosts handles GET /api/posts/user/:userId
func (h *PostHandler) UserPosts(c *gin.Context) {
	authorID, err := parseID(c.Param("userId"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	posts, err := h.service.UserPosts(authorID, middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, posts, nil)
}

// Delete handles DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post id", err)
		return
	}

	if err := h.service.Delete(userID, id); err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateFeed(c.Request.Context())
	}

	c.Status(http.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post id", err)
		return
	}

	result, err := h.service.ToggleLike(userID, id)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// AddComment handles POST /api/posts/:id/comment
func (h *PostHandler) AddComment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post id", err)
		return
	}

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.AddComment(userID, id, req.Text)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: comment})
}

// ListComments handles GET /api/posts/:id/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post id", err)
		return
	}

	comments, err := h.service.ListComments(id)
	if err != nil {
		common.ErrorResponse(c, common.ErrorStatus(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, comments, nil)
}

func pageParams(c *gin.Context) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := 10
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	return page, limit
}
