package handlers

import (
	"errors"
	"net/http"

	"lessonwiki-backend/internal/service"
	"lessonwiki-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{service: svc}
}

// UploadImage stores one image and returns its public URL, matching the
// editor's insert-image contract.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	url, filename, err := h.service.UploadImage(file, c.PostForm("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"filename": filename,
	})
}

func (h *UploadHandler) UploadVideo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
		return
	}

	url, filename, err := h.service.UploadVideo(file, c.PostForm("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"filename": filename,
	})
}

func (h *UploadHandler) List(c *gin.Context) {
	uploads, err := h.service.List()
	if err != nil {
		logger.Error(err, "Failed to list uploads", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list uploads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.Delete(req.URL)
	if errors.Is(err, service.ErrUploadNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
