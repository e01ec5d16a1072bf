package service

import (
	"errors"
	"strings"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/repository"
	"lessonwiki-backend/pkg/cache"
	"lessonwiki-backend/pkg/logger"
	"lessonwiki-backend/pkg/utils"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrMissingWikiSlug = errors.New("wikiSlug is required")
)

const (
	defaultDurationMin = 30
	defaultDifficulty  = "Beginner"
)

// LessonNavigation points at the neighbouring lessons in kit order.
type LessonNavigation struct {
	Prev *models.SavedLessonRef `json:"prev,omitempty"`
	Next *models.SavedLessonRef `json:"next,omitempty"`
}

type LessonService struct {
	repo  repository.LessonRepository
	cache *cache.Cache
}

func NewLessonService(repo repository.LessonRepository, cacheService *cache.Cache) *LessonService {
	return &LessonService{
		repo:  repo,
		cache: cacheService,
	}
}

// Save persists a published lesson. New lessons whose id or slug collide
// with an existing record are renamed with a numeric suffix rather than
// rejected, and the renamed identity is reported back to the caller.
func (s *LessonService) Save(req *models.SaveLessonRequest) (*models.SaveLessonResponse, error) {
	if strings.TrimSpace(req.WikiSlug) == "" {
		return nil, ErrMissingWikiSlug
	}

	isUpdate := false
	var existing *models.Lesson
	if req.ID != "" && !req.ForceNew {
		found, err := s.repo.GetByID(req.ID)
		if err == nil {
			existing = found
			isUpdate = true
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	lesson := s.buildLesson(req)

	if isUpdate {
		lesson.ID = existing.ID
		lesson.Slug = existing.Slug
		lesson.CreatedAt = existing.CreatedAt
		if req.Order < 1 {
			lesson.Order = existing.Order
		}
	} else {
		if err := s.disambiguate(lesson); err != nil {
			return nil, err
		}
		if lesson.Order < 1 {
			max, err := s.repo.MaxOrder(lesson.WikiSlug)
			if err != nil {
				return nil, err
			}
			lesson.Order = max + 1
		}
	}

	var err error
	if isUpdate {
		err = s.repo.Update(lesson)
	} else {
		err = s.repo.Create(lesson)
	}
	if err != nil {
		logger.Error(err, "Failed to save lesson", map[string]interface{}{
			"wiki": lesson.WikiSlug,
			"slug": lesson.Slug,
		})
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateWiki(lesson.WikiSlug)
	}

	return &models.SaveLessonResponse{
		OK:       true,
		IsUpdate: isUpdate,
		Lesson: models.SavedLessonRef{
			ID:    lesson.ID,
			Slug:  lesson.Slug,
			Order: lesson.Order,
		},
	}, nil
}

// buildLesson maps the request onto a fresh record, filling field defaults
// the database would otherwise supply so the file backend behaves the same.
func (s *LessonService) buildLesson(req *models.SaveLessonRequest) *models.Lesson {
	lesson := &models.Lesson{
		ID:              req.ID,
		Slug:            req.Slug,
		WikiSlug:        req.WikiSlug,
		Order:           req.Order,
		TitleEn:         req.TitleEn,
		TitleAr:         req.TitleAr,
		DurationMin:     req.DurationMin,
		Difficulty:      req.Difficulty,
		PrerequisitesEn: models.StringList(req.PrerequisitesEn),
		PrerequisitesAr: models.StringList(req.PrerequisitesAr),
		Materials:       models.MaterialList(req.Materials),
		Body:            models.LessonBody(req.Body),
	}

	if lesson.DurationMin <= 0 {
		lesson.DurationMin = defaultDurationMin
	}
	if strings.TrimSpace(lesson.Difficulty) == "" {
		lesson.Difficulty = defaultDifficulty
	}
	if lesson.Body == nil {
		lesson.Body = models.LessonBody{}
	}
	return lesson
}

// disambiguate gives a new lesson collision-free id and slug. The slug is
// derived from the English title when the request carries none.
func (s *LessonService) disambiguate(lesson *models.Lesson) error {
	if lesson.Slug == "" {
		lesson.Slug = utils.GenerateSlug(lesson.TitleEn)
	}
	if lesson.Slug == "" {
		lesson.Slug = "lesson"
	}
	if lesson.ID == "" {
		lesson.ID = lesson.Slug
	}

	var takenErr error
	lesson.Slug = utils.UniqueSlug(lesson.Slug, func(candidate string) bool {
		taken, err := s.repo.ExistsBySlug(candidate)
		if err != nil {
			takenErr = err
		}
		return taken
	})
	if takenErr != nil {
		return takenErr
	}

	lesson.ID = utils.UniqueSlug(lesson.ID, func(candidate string) bool {
		taken, err := s.repo.ExistsByID(candidate)
		if err != nil {
			takenErr = err
		}
		return taken
	})
	return takenErr
}

// Get resolves a lesson by slug first, then by id.
func (s *LessonService) Get(wikiSlug, identifier string) (*models.Lesson, error) {
	if s.cache != nil {
		var cached models.Lesson
		if err := s.cache.GetLesson(wikiSlug, identifier, &cached); err == nil {
			return &cached, nil
		}
	}

	lesson, err := s.repo.GetBySlug(wikiSlug, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		lesson, err = s.repo.GetByID(identifier)
		if err == nil && lesson.WikiSlug != wikiSlug {
			return nil, ErrLessonNotFound
		}
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheLesson(wikiSlug, identifier, lesson)
	}
	return lesson, nil
}

// GetByID loads a lesson by primary key alone. Editing surfaces address
// lessons by id without knowing the wiki up front.
func (s *LessonService) GetByID(id string) (*models.Lesson, error) {
	lesson, err := s.repo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// List returns every lesson of a wiki in reading order. The reserved
// getting-started lesson always sorts first.
func (s *LessonService) List(wikiSlug string) ([]models.Lesson, error) {
	if s.cache != nil {
		var cached []models.Lesson
		if err := s.cache.GetLessonList(wikiSlug, &cached); err == nil {
			return cached, nil
		}
	}

	lessons, err := s.repo.ListByWiki(wikiSlug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheLessonList(wikiSlug, lessons)
	}
	return lessons, nil
}

// Navigation locates the previous and next lesson around the given slug.
func (s *LessonService) Navigation(wikiSlug, slug string) (*LessonNavigation, error) {
	lessons, err := s.List(wikiSlug)
	if err != nil {
		return nil, err
	}

	nav := &LessonNavigation{}
	for i := range lessons {
		if lessons[i].Slug != slug {
			continue
		}
		if i > 0 {
			nav.Prev = lessonRef(&lessons[i-1])
		}
		if i < len(lessons)-1 {
			nav.Next = lessonRef(&lessons[i+1])
		}
		return nav, nil
	}
	return nil, ErrLessonNotFound
}

func lessonRef(lesson *models.Lesson) *models.SavedLessonRef {
	return &models.SavedLessonRef{
		ID:    lesson.ID,
		Slug:  lesson.Slug,
		Order: lesson.Order,
	}
}

func (s *LessonService) Delete(id string) error {
	lesson, err := s.repo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLessonNotFound
	}
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateWiki(lesson.WikiSlug)
	}
	return nil
}

// Reorder rewrites lesson order to match the given slug sequence.
func (s *LessonService) Reorder(req *models.ReorderLessonsRequest) error {
	if strings.TrimSpace(req.WikiSlug) == "" {
		return ErrMissingWikiSlug
	}
	if err := s.repo.Reorder(req.WikiSlug, req.Slugs); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateWiki(req.WikiSlug)
	}
	return nil
}
