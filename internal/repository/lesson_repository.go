package repository

import (
	"lessonwiki-backend/internal/models"

	"gorm.io/gorm"
)

// LessonRepository abstracts lesson persistence so the service layer works
// identically against the database and the flat-file backend.
type LessonRepository interface {
	Create(lesson *models.Lesson) error
	Update(lesson *models.Lesson) error
	GetByID(id string) (*models.Lesson, error)
	GetBySlug(wikiSlug, slug string) (*models.Lesson, error)
	ListByWiki(wikiSlug string) ([]models.Lesson, error)
	Delete(id string) error
	ExistsByID(id string) (bool, error)
	ExistsBySlug(slug string) (bool, error)
	MaxOrder(wikiSlug string) (int, error)
	Reorder(wikiSlug string, slugs []string) error
	Search(wikiSlug, query string, limit int) ([]models.Lesson, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *models.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) Update(lesson *models.Lesson) error {
	return r.db.Save(lesson).Error
}

func (r *lessonRepository) GetByID(id string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.Where("id = ?", id).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) GetBySlug(wikiSlug, slug string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.Where("wiki_slug = ? AND slug = ?", wikiSlug, slug).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) ListByWiki(wikiSlug string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.Where("wiki_slug = ?", wikiSlug).
		Order(`(slug = '` + models.GettingStartedSlug + `') DESC`).
		Order(`"order" ASC`).
		Order("created_at ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Lesson{}).Error
}

func (r *lessonRepository) ExistsByID(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Lesson{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *lessonRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Lesson{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *lessonRepository) MaxOrder(wikiSlug string) (int, error) {
	var max int
	err := r.db.Model(&models.Lesson{}).
		Where("wiki_slug = ?", wikiSlug).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error
	return max, err
}

func (r *lessonRepository) Reorder(wikiSlug string, slugs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, slug := range slugs {
			err := tx.Model(&models.Lesson{}).
				Where("wiki_slug = ? AND slug = ?", wikiSlug, slug).
				Update("order", i+1).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *lessonRepository) Search(wikiSlug, query string, limit int) ([]models.Lesson, error) {
	var lessons []models.Lesson
	pattern := "%" + query + "%"

	q := r.db.Where("wiki_slug = ?", wikiSlug).
		Where("title_en ILIKE ? OR title_ar ILIKE ? OR body::text ILIKE ?", pattern, pattern, pattern).
		Order(`"order" ASC`)
	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Find(&lessons).Error
	return lessons, err
}
