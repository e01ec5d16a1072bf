package service

import (
	"errors"
	"strings"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/repository"
	"lessonwiki-backend/pkg/lang"
	"lessonwiki-backend/pkg/utils"
)

var (
	ErrWikiNotFound = errors.New("wiki not found")
	ErrWikiExists   = errors.New("wiki already exists")
	ErrWikiLocked   = errors.New("wiki is locked")
)

type WikiService struct {
	repo repository.WikiRepository
}

func NewWikiService(repo repository.WikiRepository) *WikiService {
	return &WikiService{repo: repo}
}

func (s *WikiService) Create(req *models.CreateWikiRequest) (*models.Wiki, error) {
	slug := utils.GenerateSlug(req.Slug)
	if slug == "" {
		return nil, errors.New("invalid wiki slug")
	}

	exists, err := s.repo.ExistsBySlug(slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWikiExists
	}

	wiki := &models.Wiki{
		Slug:          slug,
		DisplayName:   strings.TrimSpace(req.DisplayName),
		Domains:       models.StringList(req.Domains),
		DefaultLocale: lang.Default.String(),
	}
	if wiki.DisplayName == "" {
		wiki.DisplayName = slug
	}

	if err := s.repo.Create(wiki); err != nil {
		return nil, err
	}
	return wiki, nil
}

func (s *WikiService) Get(slug string) (*models.Wiki, error) {
	wiki, err := s.repo.GetBySlug(slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrWikiNotFound
	}
	if err != nil {
		return nil, err
	}
	return wiki, nil
}

// Resolve maps a request host to its wiki, so one deployment can serve
// several branded wikis from different domains.
func (s *WikiService) Resolve(host string) (*models.Wiki, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if host == "" {
		return nil, ErrWikiNotFound
	}

	wiki, err := s.repo.GetByDomain(host)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrWikiNotFound
	}
	if err != nil {
		return nil, err
	}
	return wiki, nil
}

func (s *WikiService) List() ([]models.Wiki, error) {
	return s.repo.GetAll()
}

func (s *WikiService) Update(wiki *models.Wiki) error {
	return s.repo.Update(wiki)
}

func (s *WikiService) Delete(slug string) error {
	wiki, err := s.Get(slug)
	if err != nil {
		return err
	}
	if wiki.IsLocked {
		return ErrWikiLocked
	}
	return s.repo.Delete(slug)
}
