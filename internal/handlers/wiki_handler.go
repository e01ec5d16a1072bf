package handlers

import (
	"errors"
	"net/http"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/service"
	"lessonwiki-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WikiHandler struct {
	service *service.WikiService
}

func NewWikiHandler(svc *service.WikiService) *WikiHandler {
	return &WikiHandler{service: svc}
}

// ensureService guards routes that need the database-backed wiki registry,
// which the flat-file storage mode runs without.
func (h *WikiHandler) ensureService(c *gin.Context) bool {
	if h.service == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Wiki service not available"})
		return false
	}
	return true
}

func (h *WikiHandler) List(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	wikis, err := h.service.List()
	if err != nil {
		logger.Error(err, "Failed to list wikis", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list wikis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wikis": wikis})
}

func (h *WikiHandler) Get(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	slug := c.Param("wiki")

	wiki, err := h.service.Get(slug)
	if errors.Is(err, service.ErrWikiNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wiki not found"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to load wiki", map[string]interface{}{"slug": slug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wiki"})
		return
	}

	c.JSON(http.StatusOK, wiki)
}

// Resolve looks a wiki up by request host. Used by deployments serving
// several branded wikis from one backend.
func (h *WikiHandler) Resolve(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	host := c.DefaultQuery("host", c.Request.Host)

	wiki, err := h.service.Resolve(host)
	if errors.Is(err, service.ErrWikiNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No wiki for this domain"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to resolve wiki by domain", map[string]interface{}{"host": host})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve wiki"})
		return
	}

	c.JSON(http.StatusOK, wiki)
}

func (h *WikiHandler) Create(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.CreateWikiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wiki, err := h.service.Create(&req)
	if errors.Is(err, service.ErrWikiExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "Wiki already exists"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to create wiki", map[string]interface{}{"slug": req.Slug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wiki"})
		return
	}

	c.JSON(http.StatusCreated, wiki)
}

func (h *WikiHandler) Delete(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	slug := c.Param("wiki")

	err := h.service.Delete(slug)
	if errors.Is(err, service.ErrWikiNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wiki not found"})
		return
	}
	if errors.Is(err, service.ErrWikiLocked) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Wiki is locked"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to delete wiki", map[string]interface{}{"slug": slug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wiki"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
