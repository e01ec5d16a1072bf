// Package editor models one authoring session over a lesson's two language
// panes. Each pane exclusively owns its document tree; synchronization
// between them happens only by explicit copy, gated on the Arabic pane's
// dirty flag.
package editor

import (
	"strings"

	"lessonwiki-backend/internal/document"
	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/pkg/lang"
)

// Meta is the in-progress lesson metadata owned by the session. It is
// constructed when the session starts (new or loaded) and torn down when
// the session ends; nothing here is ambient global state.
type Meta struct {
	ID          string
	Slug        string
	WikiSlug    string
	Order       int
	TitleEn     string
	TitleAr     string
	DurationMin int
	Difficulty  string
	IsNew       bool
}

// PreferredTitle resolves the display title the way every surface does:
// English title, else Arabic, else slug, else id.
func (m *Meta) PreferredTitle() string {
	for _, candidate := range []string{m.TitleEn, m.TitleAr, m.Slug, m.ID} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Session owns the two document trees for one lesson being edited. A
// session belongs to exactly one editing surface; there is no cross-session
// locking, concurrent saves are last-write-wins.
type Session struct {
	meta Meta

	english *document.Node
	arabic  *document.Node

	// arabicDirty latches on the first direct Arabic edit. Once set,
	// mirroring from English never resumes for this session.
	arabicDirty bool
}

// NewSession starts a blank session for a brand new lesson.
func NewSession(meta Meta) *Session {
	s := &Session{
		meta:    meta,
		english: document.EmptyDoc(),
		arabic:  document.EmptyDoc(),
	}
	s.refreshTitles()
	return s
}

// LoadSession starts a session over an existing lesson record, rehydrating
// both panes from the stored body.
func LoadSession(lesson *models.Lesson) *Session {
	s := &Session{
		meta: Meta{
			ID:          lesson.ID,
			Slug:        lesson.Slug,
			WikiSlug:    lesson.WikiSlug,
			Order:       lesson.Order,
			TitleEn:     lesson.TitleEn,
			TitleAr:     lesson.TitleAr,
			DurationMin: lesson.DurationMin,
			Difficulty:  lesson.Difficulty,
		},
		english: document.Rehydrate(lesson.Body, lang.English),
		arabic:  document.Rehydrate(lesson.Body, lang.Arabic),
	}
	s.refreshTitles()
	return s
}

func (s *Session) Meta() Meta {
	return s.meta
}

// English returns a copy of the English pane's tree.
func (s *Session) English() *document.Node {
	return s.english.Clone()
}

// Arabic returns a copy of the Arabic pane's tree.
func (s *Session) Arabic() *document.Node {
	return s.arabic.Clone()
}

// ArabicDirty reports whether the Arabic pane has diverged from the
// English draft.
func (s *Session) ArabicDirty() bool {
	return s.arabicDirty
}

// EditEnglish applies a user edit to the English pane: the pane takes
// ownership of a copy of the tree, the first heading feeds the English
// title, and — while the Arabic pane is still clean — the whole tree is
// mirrored into the Arabic pane without marking it dirty.
func (s *Session) EditEnglish(doc *document.Node) {
	if doc == nil {
		return
	}
	s.english = doc.Clone()

	if heading := document.FirstHeadingText(s.english); heading != "" {
		s.meta.TitleEn = heading
	}
	if !s.arabicDirty {
		s.arabic = s.english.Clone()
	}
}

// EditArabic applies a user edit to the Arabic pane, latching the dirty
// flag so English mirroring stops permanently for this session.
func (s *Session) EditArabic(doc *document.Node) {
	if doc == nil {
		return
	}
	s.arabic = doc.Clone()
	s.arabicDirty = true

	if heading := document.FirstHeadingText(s.arabic); heading != "" {
		s.meta.TitleAr = heading
	}
}

// SetTitles records externally-changed title metadata (for instance after
// a load or a properties-form edit) and rewrites each pane's leading
// heading to match. The Arabic pane is only rewritten while clean.
func (s *Session) SetTitles(titleEn, titleAr string) {
	if strings.TrimSpace(titleEn) != "" {
		s.meta.TitleEn = titleEn
	}
	if strings.TrimSpace(titleAr) != "" {
		s.meta.TitleAr = titleAr
	}
	s.refreshTitles()
}

// refreshTitles realigns each pane's first heading with the preferred
// title when they differ.
func (s *Session) refreshTitles() {
	if preferred := s.meta.PreferredTitle(); preferred != "" {
		if current := document.FirstHeadingText(s.english); current != preferred {
			s.english = document.ApplyTitle(s.english, preferred)
		}
	}

	if s.arabicDirty {
		return
	}
	preferredAr := strings.TrimSpace(s.meta.TitleAr)
	if preferredAr == "" {
		preferredAr = s.meta.PreferredTitle()
	}
	if preferredAr == "" {
		return
	}
	if current := document.FirstHeadingText(s.arabic); current != preferredAr {
		s.arabic = document.ApplyTitle(s.arabic, preferredAr)
	}
}
