package render

import (
	"fmt"
	"strings"

	"lessonwiki-backend/internal/document"
	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/pkg/lang"
)

const maxHeadingTag = 4

func renderParagraph(ctx *Context, block models.LessonBlock) string {
	locale := ctx.Locale().String()
	if html := block.HTML(locale); html != "" {
		return fmt.Sprintf(`<p class="lesson__paragraph">%s</p>`, ctx.SanitizeHTML(html))
	}
	text := strings.TrimSpace(block.Text(locale))
	if text == "" {
		return ""
	}
	return fmt.Sprintf(`<p class="lesson__paragraph">%s</p>`, document.EscapeHTML(text))
}

func renderHeading(ctx *Context, block models.LessonBlock) string {
	text := strings.TrimSpace(block.Text(ctx.Locale().String()))
	if text == "" {
		return ""
	}

	level := block.Level
	if level < 2 || level > 6 {
		level = 2
	}

	// A leading level-1 heading that repeats the lesson title is the
	// canonical title slot; the page header already shows it.
	if block.Level == 1 && !ctx.skippedTitle && text == ctx.lessonTitle {
		ctx.skippedTitle = true
		return ""
	}

	id := ctx.anchorID(text)
	ctx.toc = append(ctx.toc, TocEntry{ID: id, Text: text, Level: level})

	// Visual depth is clamped so deeply nested headings stay readable.
	tagLevel := level + 1
	if tagLevel > maxHeadingTag {
		tagLevel = maxHeadingTag
	}
	return fmt.Sprintf(`<h%d id="%s" data-level="%d">%s</h%d>`,
		tagLevel, id, level, document.EscapeHTML(text), tagLevel)
}

func renderList(ctx *Context, block models.LessonBlock) string {
	items := block.Items(ctx.Locale().String())
	if len(items) == 0 {
		return ""
	}

	tag := "ul"
	if block.Ordered {
		tag = "ol"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<%s dir="%s" class="lesson__list">`, tag, ctx.Locale().Direction())
	for _, item := range items {
		sb.WriteString("<li>" + ctx.SanitizeHTML(item) + "</li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}

func renderCallout(ctx *Context, block models.LessonBlock) string {
	locale := ctx.Locale().String()
	variant := block.Variant
	if variant == "" {
		variant = models.VariantInfo
	}

	body := ""
	if html := block.HTML(locale); html != "" {
		body = ctx.SanitizeHTML(html)
	} else if text := strings.TrimSpace(block.Text(locale)); text != "" {
		body = document.EscapeHTML(text)
	}
	if body == "" {
		return ""
	}
	return fmt.Sprintf(`<aside class="lesson__callout lesson__callout--%s">%s</aside>`, variant, body)
}

func renderImage(ctx *Context, block models.LessonBlock) string {
	if block.Image == "" {
		return ""
	}
	locale := ctx.Locale()
	caption := strings.TrimSpace(lang.Pick(locale, block.CaptionEn, block.CaptionAr))
	if caption == "" {
		caption = strings.TrimSpace(lang.Pick(locale, block.TitleEn, block.TitleAr))
	}

	var sb strings.Builder
	sb.WriteString(`<figure class="lesson__figure">`)
	fmt.Fprintf(&sb, `<img src="%s" alt="%s" />`,
		document.EscapeHTML(block.Image), document.EscapeHTML(caption))
	if caption != "" {
		fmt.Fprintf(&sb, `<figcaption>%s</figcaption>`, document.EscapeHTML(caption))
	}
	sb.WriteString("</figure>")
	return sb.String()
}

func renderYoutube(ctx *Context, block models.LessonBlock) string {
	if block.URL == "" {
		return ""
	}
	embedURL := ToYoutubeEmbed(block.URL)
	if embedURL == "" {
		return ""
	}
	title := strings.TrimSpace(lang.Pick(ctx.Locale(), block.TitleEn, block.TitleAr))
	if title == "" {
		title = "YouTube video"
	}
	return fmt.Sprintf(`<div class="lesson__embed"><iframe src="%s" title="%s" allowfullscreen></iframe></div>`,
		document.EscapeHTML(embedURL), document.EscapeHTML(title))
}

func renderVideo(ctx *Context, block models.LessonBlock) string {
	if block.URL == "" {
		return ""
	}
	locale := ctx.Locale()
	caption := strings.TrimSpace(lang.Pick(locale, block.CaptionEn, block.CaptionAr))
	if caption == "" {
		caption = strings.TrimSpace(lang.Pick(locale, block.TitleEn, block.TitleAr))
	}

	var sb strings.Builder
	sb.WriteString(`<figure class="lesson__figure">`)
	fmt.Fprintf(&sb, `<video controls src="%s"`, document.EscapeHTML(block.URL))
	if block.Poster != "" {
		fmt.Fprintf(&sb, ` poster="%s"`, document.EscapeHTML(block.Poster))
	}
	sb.WriteString("></video>")
	if caption != "" {
		fmt.Fprintf(&sb, `<figcaption>%s</figcaption>`, document.EscapeHTML(caption))
	}
	sb.WriteString("</figure>")
	return sb.String()
}
