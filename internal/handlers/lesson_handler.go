package handlers

import (
	"errors"
	"net/http"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/service"
	"lessonwiki-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	service *service.LessonService
}

func NewLessonHandler(svc *service.LessonService) *LessonHandler {
	return &LessonHandler{service: svc}
}

// List returns every lesson of a wiki in reading order.
func (h *LessonHandler) List(c *gin.Context) {
	wikiSlug := c.Param("wiki")

	lessons, err := h.service.List(wikiSlug)
	if err != nil {
		logger.Error(err, "Failed to list lessons", map[string]interface{}{"wiki": wikiSlug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list lessons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// Get returns one lesson by slug or id, snapshots included, for re-editing.
func (h *LessonHandler) Get(c *gin.Context) {
	wikiSlug := c.Param("wiki")
	identifier := c.Param("slug")

	lesson, err := h.service.Get(wikiSlug, identifier)
	if errors.Is(err, service.ErrLessonNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to load lesson", map[string]interface{}{
			"wiki": wikiSlug,
			"slug": identifier,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lesson"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// Save persists a published lesson, renaming colliding new lessons instead
// of rejecting them. The response reports the final id/slug/order.
func (h *LessonHandler) Save(c *gin.Context) {
	var req models.SaveLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Save(&req)
	if errors.Is(err, service.ErrMissingWikiSlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to save lesson", map[string]interface{}{"wiki": req.WikiSlug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lesson"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LessonHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.service.Delete(id)
	if errors.Is(err, service.ErrLessonNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to delete lesson", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reorder rewrites lesson order to match the submitted slug sequence.
func (h *LessonHandler) Reorder(c *gin.Context) {
	var req models.ReorderLessonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Reorder(&req); err != nil {
		if errors.Is(err, service.ErrMissingWikiSlug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error(err, "Failed to reorder lessons", map[string]interface{}{"wiki": req.WikiSlug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder lessons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
