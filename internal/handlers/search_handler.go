package handlers

import (
	"net/http"
	"strconv"

	"lessonwiki-backend/internal/service"
	"lessonwiki-backend/pkg/lang"
	"lessonwiki-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

func (h *SearchHandler) Search(c *gin.Context) {
	wikiSlug := c.Param("wiki")
	query := c.Query("q")
	locale := lang.NormalizeOrDefault(c.Query("lang"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.service.Search(wikiSlug, query, locale, limit)
	if err != nil {
		logger.Error(err, "Search failed", map[string]interface{}{
			"wiki":  wikiSlug,
			"query": query,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"locale":  locale.String(),
		"results": results,
	})
}
