package service

import (
	"strings"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/repository"
	"lessonwiki-backend/pkg/lang"
)

const (
	defaultSearchLimit = 20
	snippetRadius      = 60
)

// SearchResult is one lesson hit with a context snippet around the first
// match in the requested locale.
type SearchResult struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

type SearchService struct {
	repo repository.LessonRepository
}

func NewSearchService(repo repository.LessonRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search finds lessons whose titles or body text contain the query.
func (s *SearchService) Search(wikiSlug, query string, locale lang.Locale, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	lessons, err := s.repo.Search(wikiSlug, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(lessons))
	for i := range lessons {
		lesson := &lessons[i]
		title := lang.Pick(locale, lesson.TitleEn, lesson.TitleAr)
		if strings.TrimSpace(title) == "" {
			title = lesson.Slug
		}
		results = append(results, SearchResult{
			ID:      lesson.ID,
			Slug:    lesson.Slug,
			Title:   title,
			Snippet: snippet(lesson, query, locale),
		})
	}
	return results, nil
}

// snippet extracts surrounding text from the first body block matching the
// query in the requested locale. Falls back to the other locale so results
// found via the opposite language still show context.
func snippet(lesson *models.Lesson, query string, locale lang.Locale) string {
	if text := snippetFromBlocks(lesson.Body, query, locale.String()); text != "" {
		return text
	}
	return snippetFromBlocks(lesson.Body, query, locale.Other().String())
}

func snippetFromBlocks(body models.LessonBody, query, localeKey string) string {
	needle := strings.ToLower(query)
	for i := range body {
		text := body[i].Text(localeKey)
		idx := strings.Index(strings.ToLower(text), needle)
		if idx < 0 {
			continue
		}

		start := idx - snippetRadius
		if start < 0 {
			start = 0
		}
		end := idx + len(needle) + snippetRadius
		if end > len(text) {
			end = len(text)
		}

		// Back off to rune boundaries so multi-byte text never splits.
		for start > 0 && !isRuneStart(text[start]) {
			start--
		}
		for end < len(text) && !isRuneStart(text[end]) {
			end++
		}

		excerpt := strings.TrimSpace(text[start:end])
		if start > 0 {
			excerpt = "…" + excerpt
		}
		if end < len(text) {
			excerpt += "…"
		}
		return excerpt
	}
	return ""
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
