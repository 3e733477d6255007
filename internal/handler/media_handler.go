package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 20 << 20 // 20 MB

// MediaHandler handles media uploads for post media, message attachments and
// profile pictures.
type MediaHandler struct {
	storage *storage.S3Client
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(storage *storage.S3Client) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// Upload handles POST /api/media
func (h *MediaHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		common.ErrorResponse(c, http.StatusServiceUnavailable, "Media storage is not configured", nil)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "File is required", err)
		return
	}
	if file.Size > maxUploadSize {
		common.ErrorResponse(c, http.StatusBadRequest, "File too large", nil)
		return
	}

	contentType := file.Header.Get("Content-Type")
	mediaType := "image"
	if strings.HasPrefix(contentType, "video/") {
		mediaType = "video"
	} else if !strings.HasPrefix(contentType, "image/") {
		common.ErrorResponse(c, http.StatusBadRequest, "Only image and video uploads are allowed", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}
	defer src.Close()

	key := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	result, err := h.storage.Upload(c.Request.Context(), key, src, contentType, file.Size)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	url := result.URL
	if result.CDNURL != "" {
		url = result.CDNURL
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: gin.H{
		"url":  url,
		"type": mediaType,
	}})
}
