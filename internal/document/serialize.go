package document

import (
	"strings"

	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/pkg/lang"
)

// Serialize walks one language's document tree in order and emits the
// semantic block list persisted in the lesson body. Only the given locale's
// fields are populated; merging with the other language happens in Merge.
// Nodes that produce no content are skipped, never surfaced as errors.
func Serialize(doc *Node, locale lang.Locale) []models.LessonBlock {
	blocks := []models.LessonBlock{}
	if doc == nil {
		return blocks
	}
	key := locale.String()
	for _, node := range doc.Content {
		serializeNode(node, key, &blocks)
	}
	return blocks
}

func serializeNode(node *Node, key string, blocks *[]models.LessonBlock) {
	if node == nil {
		return
	}

	switch node.Type {
	case KindParagraph:
		inline := ComposeInline(node.Content)
		if inline.Text == "" && inline.Markup == "" {
			return
		}
		block := models.LessonBlock{Type: models.BlockParagraph}
		block.SetText(key, strings.TrimSpace(inline.Text))
		if inline.Markup != "" {
			block.SetHTML(key, inline.Markup)
		}
		block.SetSnapshot(key, MarshalSnapshot(node))
		*blocks = append(*blocks, block)

	case KindHeading:
		inline := ComposeInline(node.Content)
		if inline.Text == "" {
			return
		}
		text := strings.TrimSpace(inline.Text)
		block := models.LessonBlock{
			Type:  models.BlockHeading,
			Level: node.AttrInt("level", 2),
		}
		if block.Level <= 0 {
			block.Level = 2
		}
		block.SetText(key, text)
		if inline.Markup != "" && inline.Markup != EscapeHTML(text) {
			block.SetHTML(key, inline.Markup)
		}
		block.SetSnapshot(key, MarshalSnapshot(node))
		*blocks = append(*blocks, block)

	case KindBulletList, KindOrderedList:
		markupItems, textItems := serializeList(node)
		if len(markupItems) == 0 && len(textItems) == 0 {
			return
		}
		block := models.LessonBlock{
			Type:    models.BlockList,
			Ordered: node.Type == KindOrderedList,
		}
		block.SetItems(key, markupItems)
		block.SetText(key, strings.Join(textItems, "\n"))
		block.SetSnapshot(key, MarshalSnapshot(node))
		*blocks = append(*blocks, block)

	case KindBlockquote:
		var markupParts, textParts []string
		for _, child := range node.Content {
			if child == nil || child.Type != KindParagraph {
				continue
			}
			inline := ComposeInline(child.Content)
			if inline.Markup != "" {
				markupParts = append(markupParts, inline.Markup)
			}
			if inline.Text != "" {
				textParts = append(textParts, inline.Text)
			}
		}
		rawText := strings.TrimSpace(strings.Join(textParts, "\n"))
		if rawText == "" {
			return
		}
		variant := DeriveCalloutVariant(rawText)
		block := models.LessonBlock{
			Type:    models.BlockCallout,
			Variant: variant,
		}
		block.SetText(key, StripVariantPrefix(rawText, variant))
		if len(markupParts) > 0 {
			block.SetHTML(key, strings.Join(markupParts, "<br />"))
		}
		block.SetSnapshot(key, MarshalSnapshot(node))
		*blocks = append(*blocks, block)

	case KindImage:
		src := node.AttrString("src")
		if src == "" {
			return
		}
		block := models.LessonBlock{
			Type:  models.BlockImage,
			Image: src,
		}
		alt := strings.TrimSpace(node.AttrString("alt"))
		title := strings.TrimSpace(node.AttrString("title"))
		if alt != "" {
			block.SetTitle(key, alt)
			block.SetCaption(key, alt)
		}
		if title != "" {
			if block.Title(key) == "" {
				block.SetTitle(key, title)
			}
			if block.Caption(key) == "" {
				block.SetCaption(key, title)
			}
		}
		block.SetSnapshot(key, MarshalSnapshot(node))
		*blocks = append(*blocks, block)

	case KindYoutube:
		url := node.AttrString("src")
		if url == "" {
			return
		}
		block := models.LessonBlock{
			Type:   models.BlockYoutube,
			URL:    url,
			Width:  node.AttrInt("width", 0),
			Height: node.AttrInt("height", 0),
		}
		block.SetSnapshot(key, MarshalSnapshot(node))
		*blocks = append(*blocks, block)

	case KindVideo:
		url := node.AttrString("src")
		if url == "" {
			return
		}
		block := models.LessonBlock{
			Type:   models.BlockVideo,
			URL:    url,
			Poster: node.AttrString("poster"),
		}
		if title := node.AttrString("title"); title != "" {
			block.SetTitle(key, title)
		}
		block.SetSnapshot(key, MarshalSnapshot(node))
		*blocks = append(*blocks, block)

	default:
		// Unknown container: flatten into children rather than dropping
		// whatever the author put inside.
		for _, child := range node.Content {
			serializeNode(child, key, blocks)
		}
	}
}

// serializeList renders each list item into one markup string and one plain
// text string. Multiple paragraphs inside an item are joined by explicit
// breaks; nested sub-lists become nested markup and newline-joined text.
func serializeList(node *Node) (markupItems, textItems []string) {
	for _, item := range node.Content {
		if item == nil || item.Type != KindListItem {
			continue
		}
		var markupParts, textParts []string

		for _, child := range item.Content {
			if child == nil {
				continue
			}
			switch child.Type {
			case KindParagraph:
				inline := ComposeInline(child.Content)
				if inline.Markup != "" {
					markupParts = append(markupParts, inline.Markup)
				} else if inline.Text != "" {
					markupParts = append(markupParts, EscapeHTML(inline.Text))
				}
				if inline.Text != "" {
					textParts = append(textParts, inline.Text)
				}
			case KindBulletList, KindOrderedList:
				nestedMarkup, nestedText := serializeList(child)
				if len(nestedMarkup) > 0 {
					tag := "ul"
					if child.Type == KindOrderedList {
						tag = "ol"
					}
					var sb strings.Builder
					sb.WriteString("<" + tag + ">")
					for _, li := range nestedMarkup {
						sb.WriteString("<li>" + li + "</li>")
					}
					sb.WriteString("</" + tag + ">")
					markupParts = append(markupParts, sb.String())
				}
				if len(nestedText) > 0 {
					textParts = append(textParts, strings.Join(nestedText, "\n"))
				}
			}
		}

		markupItems = append(markupItems, strings.Join(markupParts, "<br />"))
		textItems = append(textItems, strings.Join(textParts, "\n"))
	}
	return markupItems, textItems
}
