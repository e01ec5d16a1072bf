package document

import "lessonwiki-backend/internal/models"

// Merge zips the two per-language block lists positionally into one
// bilingual list. Each language's serializer populates only its own
// language-keyed fields, so the union is collision-free; for the shared
// type-specific fields the Arabic value wins when present, mirroring a
// field overlay. When the lists differ in length the divergent flag is set
// so callers can surface an editorial warning — pairing stays positional,
// no auto-alignment is attempted.
func Merge(en, ar []models.LessonBlock) (merged []models.LessonBlock, divergent bool) {
	maxLen := len(en)
	if len(ar) > maxLen {
		maxLen = len(ar)
	}

	merged = make([]models.LessonBlock, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		var block models.LessonBlock
		if i < len(en) {
			block = en[i]
		}
		if i < len(ar) {
			overlay(&block, ar[i])
		}
		merged = append(merged, block)
	}

	return merged, len(en) != len(ar)
}

// overlay copies every populated field of src onto dst.
func overlay(dst *models.LessonBlock, src models.LessonBlock) {
	if src.Type != "" {
		dst.Type = src.Type
	}
	if src.En != "" {
		dst.En = src.En
	}
	if src.Ar != "" {
		dst.Ar = src.Ar
	}
	if src.HTMLEn != "" {
		dst.HTMLEn = src.HTMLEn
	}
	if src.HTMLAr != "" {
		dst.HTMLAr = src.HTMLAr
	}
	if src.TitleEn != "" {
		dst.TitleEn = src.TitleEn
	}
	if src.TitleAr != "" {
		dst.TitleAr = src.TitleAr
	}
	if src.CaptionEn != "" {
		dst.CaptionEn = src.CaptionEn
	}
	if src.CaptionAr != "" {
		dst.CaptionAr = src.CaptionAr
	}
	if src.Level != 0 {
		dst.Level = src.Level
	}
	if src.Ordered {
		dst.Ordered = true
	}
	if src.ItemsEn != nil {
		dst.ItemsEn = src.ItemsEn
	}
	if src.ItemsAr != nil {
		dst.ItemsAr = src.ItemsAr
	}
	if src.Variant != "" {
		dst.Variant = src.Variant
	}
	if src.Image != "" {
		dst.Image = src.Image
	}
	if src.URL != "" {
		dst.URL = src.URL
	}
	if src.Width != 0 {
		dst.Width = src.Width
	}
	if src.Height != 0 {
		dst.Height = src.Height
	}
	if src.Poster != "" {
		dst.Poster = src.Poster
	}
	if src.JSONEn != nil {
		dst.JSONEn = src.JSONEn
	}
	if src.JSONAr != nil {
		dst.JSONAr = src.JSONAr
	}
}
