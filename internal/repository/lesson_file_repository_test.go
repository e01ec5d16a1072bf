package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lessonwiki-backend/internal/models"
)

func newTestFileRepo(t *testing.T) LessonRepository {
	t.Helper()
	repo, err := NewFileLessonRepository(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file repository: %v", err)
	}
	return repo
}

func sampleLesson(id, slug, wiki string, order int) *models.Lesson {
	return &models.Lesson{
		ID:       id,
		Slug:     slug,
		WikiSlug: wiki,
		Order:    order,
		TitleEn:  "Lesson " + id,
		Body: models.LessonBody{
			{Type: models.BlockParagraph, En: "content of " + id},
		},
	}
}

func TestFileRepoCreateAndGet(t *testing.T) {
	repo := newTestFileRepo(t)

	lesson := sampleLesson("intro", "intro", "robotics", 1)
	if err := repo.Create(lesson); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := repo.GetByID("intro")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if byID.TitleEn != "Lesson intro" {
		t.Fatalf("unexpected lesson: %+v", byID)
	}

	bySlug, err := repo.GetBySlug("robotics", "intro")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if bySlug.ID != "intro" {
		t.Fatalf("unexpected lesson: %+v", bySlug)
	}

	if err := repo.Create(lesson); err == nil {
		t.Fatal("duplicate create must fail")
	}
}

func TestFileRepoNotFoundUsesSentinel(t *testing.T) {
	repo := newTestFileRepo(t)

	_, err := repo.GetByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Update(sampleLesson("missing", "missing", "robotics", 1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := repo.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestFileRepoListOrderingPinsGettingStarted(t *testing.T) {
	repo := newTestFileRepo(t)

	seeds := []*models.Lesson{
		sampleLesson("b", "basics", "robotics", 2),
		sampleLesson("a", "advanced", "robotics", 3),
		sampleLesson("g", models.GettingStartedSlug, "robotics", 50),
		sampleLesson("x", "elsewhere", "chemistry", 1),
	}
	for _, lesson := range seeds {
		if err := repo.Create(lesson); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	lessons, err := repo.ListByWiki("robotics")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(lessons))
	}
	if lessons[0].Slug != models.GettingStartedSlug {
		t.Fatalf("getting-started must be first, got %q", lessons[0].Slug)
	}
	if lessons[1].Slug != "basics" || lessons[2].Slug != "advanced" {
		t.Fatalf("order wrong: %q, %q", lessons[1].Slug, lessons[2].Slug)
	}
}

func TestFileRepoUpdateAndMaxOrder(t *testing.T) {
	repo := newTestFileRepo(t)

	lesson := sampleLesson("intro", "intro", "robotics", 5)
	if err := repo.Create(lesson); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	lesson.TitleEn = "Renamed"
	if err := repo.Update(lesson); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := repo.GetByID("intro")
	if got.TitleEn != "Renamed" {
		t.Fatalf("update not persisted: %+v", got)
	}

	max, err := repo.MaxOrder("robotics")
	if err != nil {
		t.Fatalf("max order failed: %v", err)
	}
	if max != 5 {
		t.Fatalf("max order = %d, want 5", max)
	}
	if max, _ := repo.MaxOrder("empty-wiki"); max != 0 {
		t.Fatalf("empty wiki max order = %d, want 0", max)
	}
}

func TestFileRepoExistsAcrossWikis(t *testing.T) {
	repo := newTestFileRepo(t)

	if err := repo.Create(sampleLesson("intro", "intro", "robotics", 1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(sampleLesson("other", "other", "chemistry", 1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, id := range []string{"intro", "other"} {
		ok, err := repo.ExistsByID(id)
		if err != nil || !ok {
			t.Fatalf("ExistsByID(%q) = %v, %v", id, ok, err)
		}
	}
	ok, err := repo.ExistsBySlug("other")
	if err != nil || !ok {
		t.Fatalf("ExistsBySlug = %v, %v", ok, err)
	}
	ok, _ = repo.ExistsByID("nope")
	if ok {
		t.Fatal("missing id reported as existing")
	}
}

func TestFileRepoReorder(t *testing.T) {
	repo := newTestFileRepo(t)

	for i, slug := range []string{"one", "two", "three"} {
		if err := repo.Create(sampleLesson(slug, slug, "robotics", i+1)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	if err := repo.Reorder("robotics", []string{"three", "one", "two"}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	lessons, _ := repo.ListByWiki("robotics")
	got := []string{lessons[0].Slug, lessons[1].Slug, lessons[2].Slug}
	want := []string{"three", "one", "two"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFileRepoPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	repo, err := NewFileLessonRepository(dir)
	if err != nil {
		t.Fatalf("create repo: %v", err)
	}
	if err := repo.Create(sampleLesson("intro", "intro", "robotics", 1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The store is one JSON file per wiki.
	if _, err := os.Stat(filepath.Join(dir, "lessons.robotics.json")); err != nil {
		t.Fatalf("store file missing: %v", err)
	}

	reopened, err := NewFileLessonRepository(dir)
	if err != nil {
		t.Fatalf("reopen repo: %v", err)
	}
	lesson, err := reopened.GetByID("intro")
	if err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if lesson.Body[0].En != "content of intro" {
		t.Fatalf("body not persisted: %+v", lesson.Body)
	}
}

func TestFileRepoSearch(t *testing.T) {
	repo := newTestFileRepo(t)

	intro := sampleLesson("intro", "intro", "robotics", 1)
	intro.TitleAr = "مقدمة"
	if err := repo.Create(intro); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(sampleLesson("other", "other", "robotics", 2)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	hits, err := repo.Search("robotics", "OF INTRO", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "intro" {
		t.Fatalf("case-insensitive body search failed: %+v", hits)
	}

	hits, err = repo.Search("robotics", "مقدمة", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "intro" {
		t.Fatalf("arabic title search failed: %+v", hits)
	}
}
