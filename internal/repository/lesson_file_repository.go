package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"lessonwiki-backend/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every backend when a record does not exist.
// Aliasing the gorm sentinel keeps one errors.Is check working for both.
var ErrNotFound = gorm.ErrRecordNotFound

// fileLessonRepository keeps each wiki's lessons in a single JSON document
// under the data directory (lessons.<wiki>.json), sorted by order on write.
// It exists so small deployments can run without a database.
type fileLessonRepository struct {
	mu      sync.RWMutex
	dataDir string
}

func NewFileLessonRepository(dataDir string) (LessonRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileLessonRepository{dataDir: dataDir}, nil
}

func (r *fileLessonRepository) storePath(wikiSlug string) string {
	return filepath.Join(r.dataDir, fmt.Sprintf("lessons.%s.json", wikiSlug))
}

func (r *fileLessonRepository) readStore(wikiSlug string) ([]models.Lesson, error) {
	data, err := os.ReadFile(r.storePath(wikiSlug))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Lesson{}, nil
		}
		return nil, err
	}

	var lessons []models.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("corrupt lesson store %s: %w", r.storePath(wikiSlug), err)
	}
	return lessons, nil
}

func (r *fileLessonRepository) writeStore(wikiSlug string, lessons []models.Lesson) error {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Order < lessons[j].Order
	})

	data, err := json.MarshalIndent(lessons, "", "  ")
	if err != nil {
		return err
	}

	// Write via a temp file so a crash never leaves a half-written store.
	path := r.storePath(wikiSlug)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// wikiSlugs lists every wiki that has a lesson store on disk.
func (r *fileLessonRepository) wikiSlugs() ([]string, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return nil, err
	}

	var slugs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "lessons.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(strings.TrimPrefix(name, "lessons."), ".json"))
	}
	return slugs, nil
}

func (r *fileLessonRepository) Create(lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lessons, err := r.readStore(lesson.WikiSlug)
	if err != nil {
		return err
	}
	for _, existing := range lessons {
		if existing.ID == lesson.ID {
			return fmt.Errorf("lesson %s already exists", lesson.ID)
		}
	}

	lessons = append(lessons, *lesson)
	return r.writeStore(lesson.WikiSlug, lessons)
}

func (r *fileLessonRepository) Update(lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lessons, err := r.readStore(lesson.WikiSlug)
	if err != nil {
		return err
	}
	for i, existing := range lessons {
		if existing.ID == lesson.ID {
			lessons[i] = *lesson
			return r.writeStore(lesson.WikiSlug, lessons)
		}
	}
	return ErrNotFound
}

func (r *fileLessonRepository) GetByID(id string) (*models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wikis, err := r.wikiSlugs()
	if err != nil {
		return nil, err
	}
	for _, wiki := range wikis {
		lessons, err := r.readStore(wiki)
		if err != nil {
			return nil, err
		}
		for i := range lessons {
			if lessons[i].ID == id {
				return &lessons[i], nil
			}
		}
	}
	return nil, ErrNotFound
}

func (r *fileLessonRepository) GetBySlug(wikiSlug, slug string) (*models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lessons, err := r.readStore(wikiSlug)
	if err != nil {
		return nil, err
	}
	for i := range lessons {
		if lessons[i].Slug == slug {
			return &lessons[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileLessonRepository) ListByWiki(wikiSlug string) ([]models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lessons, err := r.readStore(wikiSlug)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(lessons, func(i, j int) bool {
		if lessons[i].IsGettingStarted() != lessons[j].IsGettingStarted() {
			return lessons[i].IsGettingStarted()
		}
		return lessons[i].Order < lessons[j].Order
	})
	return lessons, nil
}

func (r *fileLessonRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wikis, err := r.wikiSlugs()
	if err != nil {
		return err
	}
	for _, wiki := range wikis {
		lessons, err := r.readStore(wiki)
		if err != nil {
			return err
		}
		for i := range lessons {
			if lessons[i].ID == id {
				lessons = append(lessons[:i], lessons[i+1:]...)
				return r.writeStore(wiki, lessons)
			}
		}
	}
	return ErrNotFound
}

func (r *fileLessonRepository) ExistsByID(id string) (bool, error) {
	_, err := r.GetByID(id)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *fileLessonRepository) ExistsBySlug(slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wikis, err := r.wikiSlugs()
	if err != nil {
		return false, err
	}
	for _, wiki := range wikis {
		lessons, err := r.readStore(wiki)
		if err != nil {
			return false, err
		}
		for i := range lessons {
			if lessons[i].Slug == slug {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fileLessonRepository) MaxOrder(wikiSlug string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lessons, err := r.readStore(wikiSlug)
	if err != nil {
		return 0, err
	}

	max := 0
	for i := range lessons {
		if lessons[i].Order > max {
			max = lessons[i].Order
		}
	}
	return max, nil
}

func (r *fileLessonRepository) Reorder(wikiSlug string, slugs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lessons, err := r.readStore(wikiSlug)
	if err != nil {
		return err
	}

	position := make(map[string]int, len(slugs))
	for i, slug := range slugs {
		position[slug] = i + 1
	}
	for i := range lessons {
		if order, ok := position[lessons[i].Slug]; ok {
			lessons[i].Order = order
		}
	}
	return r.writeStore(wikiSlug, lessons)
}

func (r *fileLessonRepository) Search(wikiSlug, query string, limit int) ([]models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lessons, err := r.readStore(wikiSlug)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []models.Lesson
	for i := range lessons {
		if lessonMatches(&lessons[i], needle) {
			matches = append(matches, lessons[i])
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

func lessonMatches(lesson *models.Lesson, needle string) bool {
	if strings.Contains(strings.ToLower(lesson.TitleEn), needle) ||
		strings.Contains(strings.ToLower(lesson.TitleAr), needle) {
		return true
	}
	for _, block := range lesson.Body {
		if strings.Contains(strings.ToLower(block.En), needle) ||
			strings.Contains(strings.ToLower(block.Ar), needle) {
			return true
		}
	}
	return false
}
