package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Block type tags shared between the editor transcoder and the renderer.
const (
	BlockParagraph = "paragraph"
	BlockHeading   = "heading"
	BlockList      = "list"
	BlockCallout   = "callout"
	BlockImage     = "image"
	BlockYoutube   = "youtube"
	BlockVideo     = "video"
)

// Callout variants derived from the authoring prefix convention.
const (
	VariantInfo    = "info"
	VariantTip     = "tip"
	VariantWarning = "warning"
)

// LessonBlock is one bilingual semantic unit of lesson content. Each
// language serializer populates only its own `*_en`/`*_ar` fields plus the
// shared type-specific ones; json_en/json_ar hold the verbatim editor node
// snapshot used to restore editing state losslessly.
type LessonBlock struct {
	Type string `json:"type"`

	En     string `json:"en,omitempty"`
	Ar     string `json:"ar,omitempty"`
	HTMLEn string `json:"html_en,omitempty"`
	HTMLAr string `json:"html_ar,omitempty"`

	TitleEn   string `json:"title_en,omitempty"`
	TitleAr   string `json:"title_ar,omitempty"`
	CaptionEn string `json:"caption_en,omitempty"`
	CaptionAr string `json:"caption_ar,omitempty"`

	Level   int      `json:"level,omitempty"`
	Ordered bool     `json:"ordered,omitempty"`
	ItemsEn []string `json:"items_en,omitempty"`
	ItemsAr []string `json:"items_ar,omitempty"`

	Variant string `json:"variant,omitempty"`
	Image   string `json:"image,omitempty"`
	URL     string `json:"url,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Poster  string `json:"poster,omitempty"`

	JSONEn json.RawMessage `json:"json_en,omitempty"`
	JSONAr json.RawMessage `json:"json_ar,omitempty"`
}

// Text returns the plain text for a locale code ("en" or "ar").
func (b *LessonBlock) Text(locale string) string {
	if locale == "ar" {
		return b.Ar
	}
	return b.En
}

func (b *LessonBlock) SetText(locale, value string) {
	if locale == "ar" {
		b.Ar = value
	} else {
		b.En = value
	}
}

func (b *LessonBlock) HTML(locale string) string {
	if locale == "ar" {
		return b.HTMLAr
	}
	return b.HTMLEn
}

func (b *LessonBlock) SetHTML(locale, value string) {
	if locale == "ar" {
		b.HTMLAr = value
	} else {
		b.HTMLEn = value
	}
}

func (b *LessonBlock) Title(locale string) string {
	if locale == "ar" {
		return b.TitleAr
	}
	return b.TitleEn
}

func (b *LessonBlock) SetTitle(locale, value string) {
	if locale == "ar" {
		b.TitleAr = value
	} else {
		b.TitleEn = value
	}
}

func (b *LessonBlock) Caption(locale string) string {
	if locale == "ar" {
		return b.CaptionAr
	}
	return b.CaptionEn
}

func (b *LessonBlock) SetCaption(locale, value string) {
	if locale == "ar" {
		b.CaptionAr = value
	} else {
		b.CaptionEn = value
	}
}

func (b *LessonBlock) Items(locale string) []string {
	if locale == "ar" {
		return b.ItemsAr
	}
	return b.ItemsEn
}

func (b *LessonBlock) SetItems(locale string, items []string) {
	if locale == "ar" {
		b.ItemsAr = items
	} else {
		b.ItemsEn = items
	}
}

// Snapshot returns the stashed raw editor node for a locale, nil when the
// block was authored without one (legacy records, hand-written files).
func (b *LessonBlock) Snapshot(locale string) json.RawMessage {
	if locale == "ar" {
		return b.JSONAr
	}
	return b.JSONEn
}

func (b *LessonBlock) SetSnapshot(locale string, raw json.RawMessage) {
	if locale == "ar" {
		b.JSONAr = raw
	} else {
		b.JSONEn = raw
	}
}

type LessonBody []LessonBlock

func (lb *LessonBody) Scan(value interface{}) error {
	if value == nil {
		*lb = LessonBody{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan LessonBody")
	}

	return json.Unmarshal(bytes, lb)
}

func (lb LessonBody) Value() (driver.Value, error) {
	if len(lb) == 0 {
		return json.Marshal(LessonBody{})
	}
	return json.Marshal(lb)
}
