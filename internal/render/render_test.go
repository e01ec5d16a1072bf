package render

import (
	"strings"
	"testing"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/pkg/lang"
)

func passthrough(s string) string { return s }

func renderLesson(t *testing.T, lesson *models.Lesson, locale lang.Locale) *Page {
	t.Helper()
	return Lesson(DefaultRegistry(), lesson, locale, passthrough)
}

func TestRenderHeadingClampAndToc(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockHeading, En: "Top", Level: 2},
			{Type: models.BlockHeading, En: "Deep", Level: 6},
			{Type: models.BlockHeading, En: "Bogus", Level: 9},
		},
	}

	page := renderLesson(t, lesson, "en")
	if len(page.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(page.Blocks))
	}

	// Level 2 renders as h3; deeper levels cap at h4.
	if !strings.HasPrefix(page.Blocks[0], "<h3 ") {
		t.Fatalf("level 2 should render h3: %q", page.Blocks[0])
	}
	if !strings.HasPrefix(page.Blocks[1], "<h4 ") {
		t.Fatalf("level 6 should cap at h4: %q", page.Blocks[1])
	}
	// Out-of-range levels fall back to 2.
	if !strings.HasPrefix(page.Blocks[2], "<h3 ") {
		t.Fatalf("level 9 should clamp to 2 and render h3: %q", page.Blocks[2])
	}

	if len(page.Toc) != 3 {
		t.Fatalf("expected 3 toc entries, got %d", len(page.Toc))
	}
	if page.Toc[0].ID != "top" || page.Toc[0].Level != 2 {
		t.Fatalf("unexpected toc entry: %+v", page.Toc[0])
	}
	if page.Toc[2].Level != 2 {
		t.Fatalf("clamped heading should report level 2 in toc: %+v", page.Toc[2])
	}
}

func TestRenderElidesTitleHeading(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Getting Started",
		Body: models.LessonBody{
			{Type: models.BlockHeading, En: "Getting Started", Level: 1},
			{Type: models.BlockHeading, En: "Getting Started", Level: 1},
			{Type: models.BlockParagraph, En: "welcome"},
		},
	}

	page := renderLesson(t, lesson, "en")
	// Only the first title match disappears; the repeat renders.
	if len(page.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %v", len(page.Blocks), page.Blocks)
	}
	if !strings.Contains(page.Blocks[0], "Getting Started") {
		t.Fatalf("second title heading should render: %q", page.Blocks[0])
	}
	if len(page.Toc) != 1 {
		t.Fatalf("elided heading must not enter the toc, got %d entries", len(page.Toc))
	}
}

func TestRenderAnchorDeduplication(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockHeading, En: "Setup", Level: 2},
			{Type: models.BlockHeading, En: "Setup", Level: 2},
			{Type: models.BlockHeading, En: "Setup", Level: 2},
		},
	}

	page := renderLesson(t, lesson, "en")
	ids := []string{page.Toc[0].ID, page.Toc[1].ID, page.Toc[2].ID}
	want := []string{"setup", "setup-1", "setup-2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("anchor %d = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestAnchorSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Simple Heading", "simple-heading"},
		{"What's the Deal?!", "whats-the-deal"},
		{"مقدمة الدرس", "مقدمة-الدرس"},
		{"***", "section"},
		{"", "section"},
	}
	for _, tt := range tests {
		if got := anchorSlug(tt.in); got != tt.want {
			t.Fatalf("anchorSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderParagraphPrefersMarkup(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockParagraph, En: "plain", HTMLEn: "<strong>rich</strong>"},
			{Type: models.BlockParagraph, En: "5 < 6"},
			{Type: models.BlockParagraph},
		},
	}

	page := renderLesson(t, lesson, "en")
	if len(page.Blocks) != 2 {
		t.Fatalf("empty paragraph must be dropped, got %d blocks", len(page.Blocks))
	}
	if !strings.Contains(page.Blocks[0], "<strong>rich</strong>") {
		t.Fatalf("markup not used: %q", page.Blocks[0])
	}
	if !strings.Contains(page.Blocks[1], "5 &lt; 6") {
		t.Fatalf("plain text not escaped: %q", page.Blocks[1])
	}
}

func TestRenderListDirectionPerLocale(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockList, Ordered: true, ItemsEn: []string{"one"}, ItemsAr: []string{"واحد"}},
		},
	}

	en := renderLesson(t, lesson, "en")
	if !strings.Contains(en.Blocks[0], `<ol dir="ltr"`) {
		t.Fatalf("english list should be ltr: %q", en.Blocks[0])
	}

	ar := renderLesson(t, lesson, "ar")
	if !strings.Contains(ar.Blocks[0], `<ol dir="rtl"`) {
		t.Fatalf("arabic list should be rtl: %q", ar.Blocks[0])
	}
	if !strings.Contains(ar.Blocks[0], "واحد") {
		t.Fatalf("arabic items missing: %q", ar.Blocks[0])
	}
}

func TestRenderCalloutVariantClass(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockCallout, Variant: models.VariantWarning, En: "careful"},
			{Type: models.BlockCallout, En: "note"},
		},
	}

	page := renderLesson(t, lesson, "en")
	if !strings.Contains(page.Blocks[0], "lesson__callout--warning") {
		t.Fatalf("warning class missing: %q", page.Blocks[0])
	}
	if !strings.Contains(page.Blocks[1], "lesson__callout--info") {
		t.Fatalf("missing variant should default to info: %q", page.Blocks[1])
	}
}

func TestRenderImageCaptionFallback(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockImage, Image: "/uploads/a.png", CaptionEn: "The caption"},
			{Type: models.BlockImage, Image: "/uploads/b.png", TitleEn: "Only title"},
			{Type: models.BlockImage},
		},
	}

	page := renderLesson(t, lesson, "en")
	if len(page.Blocks) != 2 {
		t.Fatalf("image without src must be dropped, got %d blocks", len(page.Blocks))
	}
	if !strings.Contains(page.Blocks[0], "<figcaption>The caption</figcaption>") {
		t.Fatalf("caption missing: %q", page.Blocks[0])
	}
	if !strings.Contains(page.Blocks[1], "<figcaption>Only title</figcaption>") {
		t.Fatalf("title fallback missing: %q", page.Blocks[1])
	}
}

func TestRenderYoutubeEmbeds(t *testing.T) {
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockYoutube, URL: "https://youtu.be/dQw4w9WgXcQ"},
		},
	}

	page := renderLesson(t, lesson, "en")
	if !strings.Contains(page.Blocks[0], "https://www.youtube.com/embed/dQw4w9WgXcQ") {
		t.Fatalf("share url not converted: %q", page.Blocks[0])
	}
}

func TestRenderSanitizerApplied(t *testing.T) {
	upper := func(s string) string { return strings.ToUpper(s) }
	lesson := &models.Lesson{
		TitleEn: "Lesson",
		Body: models.LessonBody{
			{Type: models.BlockParagraph, HTMLEn: "stored markup"},
		},
	}

	page := Lesson(DefaultRegistry(), lesson, "en", upper)
	if !strings.Contains(page.Blocks[0], "STORED MARKUP") {
		t.Fatalf("sanitizer not applied to stored markup: %q", page.Blocks[0])
	}
}
