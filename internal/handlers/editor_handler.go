package handlers

import (
	"errors"
	"net/http"

	"lessonwiki-backend/internal/document"
	"lessonwiki-backend/internal/editor"
	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/service"
	"lessonwiki-backend/pkg/lang"
	"lessonwiki-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// EditorHandler exposes the authoring flow: rehydrating stored lessons back
// into editable document trees and publishing edited trees through a
// session into persistence.
type EditorHandler struct {
	lessons *service.LessonService
}

func NewEditorHandler(lessons *service.LessonService) *EditorHandler {
	return &EditorHandler{lessons: lessons}
}

// PublishLessonRequest carries both panes' document trees plus the lesson
// metadata form. The Arabic tree may be omitted while the translation still
// mirrors the English draft.
type PublishLessonRequest struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	WikiSlug        string            `json:"wikiSlug" binding:"required"`
	Order           int               `json:"order"`
	TitleEn         string            `json:"title_en"`
	TitleAr         string            `json:"title_ar"`
	DurationMin     int               `json:"duration_min"`
	Difficulty      string            `json:"difficulty"`
	PrerequisitesEn []string          `json:"prerequisites_en"`
	PrerequisitesAr []string          `json:"prerequisites_ar"`
	Materials       []models.Material `json:"materials"`
	ForceNew        bool              `json:"forceNew"`
	English         *document.Node    `json:"english" binding:"required"`
	Arabic          *document.Node    `json:"arabic"`
}

// GetDocument returns one pane's editable tree for a stored lesson,
// restored from the block snapshots when present.
func (h *EditorHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")
	locale := lang.NormalizeOrDefault(c.Query("lang"))

	lesson, err := h.lessons.GetByID(id)
	if errors.Is(err, service.ErrLessonNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to load lesson for editing", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       lesson.ID,
		"slug":     lesson.Slug,
		"locale":   locale.String(),
		"dir":      locale.Direction(),
		"document": document.Rehydrate(lesson.Body, locale),
	})
}

// Publish runs a full editing session over the submitted trees: titles sync
// from the leading headings, a missing Arabic tree mirrors the English one,
// both panes serialize and merge, and the merged lesson is persisted. A
// structural mismatch between the panes is reported as a warning, never as
// an error.
func (h *EditorHandler) Publish(c *gin.Context) {
	var req PublishLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := editor.NewSession(editor.Meta{
		ID:          req.ID,
		Slug:        req.Slug,
		WikiSlug:    req.WikiSlug,
		Order:       req.Order,
		TitleEn:     req.TitleEn,
		TitleAr:     req.TitleAr,
		DurationMin: req.DurationMin,
		Difficulty:  req.Difficulty,
		IsNew:       req.ForceNew || req.ID == "",
	})
	session.EditEnglish(req.English)
	if req.Arabic != nil {
		session.EditArabic(req.Arabic)
	}

	result, err := session.Publish()
	if errors.Is(err, editor.ErrMissingIdentifiers) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to assemble lesson for publishing", map[string]interface{}{"wiki": req.WikiSlug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish lesson"})
		return
	}

	// Metadata the session does not own passes through unchanged.
	result.Request.PrerequisitesEn = req.PrerequisitesEn
	result.Request.PrerequisitesAr = req.PrerequisitesAr
	result.Request.Materials = req.Materials

	resp, err := h.lessons.Save(&result.Request)
	if errors.Is(err, service.ErrMissingWikiSlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to save published lesson", map[string]interface{}{"wiki": req.WikiSlug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lesson"})
		return
	}

	if resp.Warning == "" {
		resp.Warning = result.Warning
	}
	c.JSON(http.StatusOK, resp)
}
