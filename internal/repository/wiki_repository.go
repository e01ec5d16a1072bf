package repository

import (
	"encoding/json"

	"lessonwiki-backend/internal/models"

	"gorm.io/gorm"
)

type WikiRepository interface {
	Create(wiki *models.Wiki) error
	Update(wiki *models.Wiki) error
	GetBySlug(slug string) (*models.Wiki, error)
	GetByDomain(domain string) (*models.Wiki, error)
	GetAll() ([]models.Wiki, error)
	Delete(slug string) error
	ExistsBySlug(slug string) (bool, error)
}

type wikiRepository struct {
	db *gorm.DB
}

func NewWikiRepository(db *gorm.DB) WikiRepository {
	return &wikiRepository{db: db}
}

func (r *wikiRepository) Create(wiki *models.Wiki) error {
	return r.db.Create(wiki).Error
}

func (r *wikiRepository) Update(wiki *models.Wiki) error {
	return r.db.Save(wiki).Error
}

func (r *wikiRepository) GetBySlug(slug string) (*models.Wiki, error) {
	var wiki models.Wiki
	err := r.db.Preload("Kits").Where("slug = ?", slug).First(&wiki).Error
	if err != nil {
		return nil, err
	}
	return &wiki, nil
}

func (r *wikiRepository) GetByDomain(domain string) (*models.Wiki, error) {
	var wiki models.Wiki
	needle, err := json.Marshal([]string{domain})
	if err != nil {
		return nil, err
	}
	err = r.db.Where("domains @> ?", string(needle)).First(&wiki).Error
	if err != nil {
		return nil, err
	}
	return &wiki, nil
}

func (r *wikiRepository) GetAll() ([]models.Wiki, error) {
	var wikis []models.Wiki
	err := r.db.Order("slug ASC").Find(&wikis).Error
	return wikis, err
}

func (r *wikiRepository) Delete(slug string) error {
	return r.db.Where("slug = ?", slug).Delete(&models.Wiki{}).Error
}

func (r *wikiRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Wiki{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
