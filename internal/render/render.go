// Package render turns persisted lesson bodies into the read-only HTML
// served on public lesson pages. It consumes only the semantic fields of
// each block — the editor snapshots are for re-editing, not rendering.
package render

import (
	"fmt"
	"strings"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/pkg/lang"
)

// TocEntry is one table-of-contents anchor collected from a heading block.
type TocEntry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Page is a fully rendered lesson body.
type Page struct {
	Blocks []string   `json:"blocks"`
	Toc    []TocEntry `json:"toc"`
}

// HTML joins the rendered blocks into one fragment.
func (p *Page) HTML() string {
	return strings.Join(p.Blocks, "\n")
}

// Context carries per-render state: the requested locale, the sanitizer
// applied to stored markup and the TOC collected while walking headings.
type Context struct {
	locale      lang.Locale
	sanitize    func(string) string
	lessonTitle string

	headingCounts map[string]int
	toc           []TocEntry
	skippedTitle  bool
}

func (ctx *Context) Locale() lang.Locale {
	return ctx.locale
}

// SanitizeHTML cleans potentially unsafe stored markup before output.
func (ctx *Context) SanitizeHTML(input string) string {
	if ctx.sanitize == nil {
		return input
	}
	return ctx.sanitize(input)
}

// Lesson renders every block of a lesson body in order for one locale.
// Blocks whose renderer yields nothing are dropped silently.
func Lesson(reg *Registry, lesson *models.Lesson, locale lang.Locale, sanitize func(string) string) *Page {
	ctx := &Context{
		locale:        locale,
		sanitize:      sanitize,
		lessonTitle:   strings.TrimSpace(lang.Pick(locale, lesson.TitleEn, lesson.TitleAr)),
		headingCounts: make(map[string]int),
	}

	page := &Page{Blocks: []string{}, Toc: []TocEntry{}}
	for _, block := range lesson.Body {
		renderer, ok := reg.Get(block.Type)
		if !ok {
			continue
		}
		if html := renderer(ctx, block); html != "" {
			page.Blocks = append(page.Blocks, html)
		}
	}
	page.Toc = ctx.toc
	return page
}

// anchorID derives a deduplicated anchor id for a heading.
func (ctx *Context) anchorID(text string) string {
	base := anchorSlug(text)
	count := ctx.headingCounts[base]
	ctx.headingCounts[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, count)
}
