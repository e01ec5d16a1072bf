package handlers

import (
	"errors"
	"net/http"

	"lessonwiki-backend/internal/render"
	"lessonwiki-backend/internal/service"
	"lessonwiki-backend/pkg/lang"
	"lessonwiki-backend/pkg/logger"
	"lessonwiki-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

// RenderHandler serves the read-only lesson page payload: sanitized HTML
// blocks, table of contents and prev/next navigation for one locale.
type RenderHandler struct {
	lessons  *service.LessonService
	registry *render.Registry
}

func NewRenderHandler(lessons *service.LessonService, registry *render.Registry) *RenderHandler {
	return &RenderHandler{
		lessons:  lessons,
		registry: registry,
	}
}

func (h *RenderHandler) GetPage(c *gin.Context) {
	wikiSlug := c.Param("wiki")
	slug := c.Param("slug")
	locale := lang.NormalizeOrDefault(c.Query("lang"))

	lesson, err := h.lessons.Get(wikiSlug, slug)
	if errors.Is(err, service.ErrLessonNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to load lesson for rendering", map[string]interface{}{
			"wiki": wikiSlug,
			"slug": slug,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lesson"})
		return
	}

	page := render.Lesson(h.registry, lesson, locale, validator.SanitizeHTML)

	nav, err := h.lessons.Navigation(wikiSlug, lesson.Slug)
	if err != nil {
		// Navigation is best effort; the page itself already loaded.
		nav = &service.LessonNavigation{}
	}

	title := lang.Pick(locale, lesson.TitleEn, lesson.TitleAr)
	c.JSON(http.StatusOK, gin.H{
		"id":           lesson.ID,
		"slug":         lesson.Slug,
		"title":        title,
		"locale":       locale.String(),
		"dir":          locale.Direction(),
		"duration_min": lesson.DurationMin,
		"difficulty":   lesson.Difficulty,
		"blocks":       page.Blocks,
		"toc":          page.Toc,
		"nav":          nav,
	})
}
