package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lessonwiki-backend/internal/document"
	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/pkg/lang"
	"lessonwiki-backend/pkg/utils"
)

// StructuralWarning is the editorial message surfaced when the two panes
// serialized to different block counts. Publishing still proceeds.
const StructuralWarning = "English and Arabic content differ in structure. Please review the Arabic translation."

const fallbackTitleAr = "عنوان غير متوفر"

var ErrMissingIdentifiers = errors.New("lesson is missing a derivable id and slug")

// PublishResult is the fully-formed record handed to persistence plus the
// non-fatal warnings collected while assembling it.
type PublishResult struct {
	Request models.SaveLessonRequest
	Warning string
}

// Publish serializes both panes, merges them into the bilingual body and
// assembles the save payload. Identifier validation failures are fatal to
// the publish only; the session's trees are never modified, so editing can
// continue or the publish can be retried.
func (s *Session) Publish() (*PublishResult, error) {
	if strings.TrimSpace(s.meta.WikiSlug) == "" {
		return nil, fmt.Errorf("%w: no wiki selected", ErrMissingIdentifiers)
	}

	bodyEn := document.Serialize(s.english, lang.English)
	bodyAr := document.Serialize(s.arabic, lang.Arabic)
	merged, divergent := document.Merge(bodyEn, bodyAr)

	titleEn := strings.TrimSpace(s.meta.TitleEn)
	titleAr := strings.TrimSpace(s.meta.TitleAr)
	if titleEn == "" {
		titleEn = titleAr
	}
	if titleEn == "" {
		titleEn = "Untitled"
	}
	if titleAr == "" {
		titleAr = strings.TrimSpace(s.meta.TitleEn)
	}
	if titleAr == "" {
		titleAr = fallbackTitleAr
	}

	id, slug, err := s.mintIdentifiers(titleEn)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{
		Request: models.SaveLessonRequest{
			ID:          id,
			Slug:        slug,
			WikiSlug:    s.meta.WikiSlug,
			Order:       s.meta.Order,
			TitleEn:     titleEn,
			TitleAr:     titleAr,
			DurationMin: s.meta.DurationMin,
			Difficulty:  s.meta.Difficulty,
			Body:        merged,
			ForceNew:    s.meta.IsNew,
		},
	}
	if divergent {
		result.Warning = StructuralWarning
	}
	return result, nil
}

// Saved records the identity persistence handed back (which may have been
// renamed by conflict disambiguation) and ends the session's "new" phase.
func (s *Session) Saved(ref models.SavedLessonRef) {
	if strings.TrimSpace(ref.ID) != "" {
		s.meta.ID = ref.ID
	}
	if strings.TrimSpace(ref.Slug) != "" {
		s.meta.Slug = ref.Slug
	}
	s.meta.Order = ref.Order
	s.meta.IsNew = false
}

// mintIdentifiers derives the publish id/slug pair. Force-new sessions
// always mint a fresh unique pair from the title; existing sessions keep
// their identity, falling back to the title-derived slug.
func (s *Session) mintIdentifiers(titleEn string) (id, slug string, err error) {
	baseSlug := utils.GenerateSlug(titleEn)
	if baseSlug == "" {
		baseSlug = "lesson"
	}

	if s.meta.IsNew {
		token := strings.SplitN(uuid.New().String(), "-", 2)[0]
		fresh := baseSlug + "-" + token
		return fresh, fresh, nil
	}

	id = strings.TrimSpace(s.meta.ID)
	if id == "" {
		id = baseSlug
	}
	slug = strings.TrimSpace(s.meta.Slug)
	if slug == "" {
		slug = baseSlug
	}
	if id == "" || slug == "" {
		return "", "", ErrMissingIdentifiers
	}
	return id, slug, nil
}
