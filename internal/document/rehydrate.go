package document

import (
	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/pkg/lang"
)

// Rehydrate reconstructs a loadable document tree from a stored block list.
// A block's stashed snapshot for the requested locale is spliced in
// verbatim (the lossless path); blocks without one are synthesized from the
// semantic fields, which degrades inline formatting to plain text. An empty
// result becomes a single empty paragraph so the editor always has
// something to load.
func Rehydrate(blocks []models.LessonBlock, locale lang.Locale) *Node {
	key := locale.String()
	var nodes []*Node

	for i := range blocks {
		block := &blocks[i]
		if snapshot := UnmarshalSnapshot(block.Snapshot(key)); snapshot != nil {
			nodes = append(nodes, snapshot)
			continue
		}
		if node := synthesize(block, key); node != nil {
			nodes = append(nodes, node)
		}
	}

	if len(nodes) == 0 {
		return EmptyDoc()
	}
	return NewDoc(nodes...)
}

func synthesize(block *models.LessonBlock, key string) *Node {
	text := block.Text(key)

	switch block.Type {
	case models.BlockHeading:
		level := block.Level
		if level <= 0 {
			level = 2
		}
		return Heading(level, text)

	case models.BlockParagraph:
		// Stored markup may carry author-written HTML; normalizing it to
		// plain text beats echoing raw tags into the editor.
		plain := text
		if html := block.HTML(key); html != "" {
			plain = StripHTML(html)
		}
		return Paragraph(plain)

	case models.BlockList:
		items := block.Items(key)
		if len(items) == 0 {
			return nil
		}
		listType := KindBulletList
		if block.Ordered {
			listType = KindOrderedList
		}
		list := &Node{Type: listType}
		for _, entry := range items {
			list.Content = append(list.Content, &Node{
				Type:    KindListItem,
				Content: []*Node{Paragraph(StripHTML(entry))},
			})
		}
		return list

	case models.BlockCallout:
		variant := DeriveCalloutVariant(text)
		normalized := StripVariantPrefix(text, variant)
		return &Node{
			Type:    KindBlockquote,
			Content: []*Node{Paragraph(normalized)},
		}

	case models.BlockImage:
		if block.Image == "" {
			return nil
		}
		alt := block.Title(key)
		if alt == "" {
			alt = block.Caption(key)
		}
		attrs := Attrs{"src": block.Image}
		if alt != "" {
			attrs["alt"] = alt
			attrs["title"] = alt
		}
		return &Node{Type: KindImage, Attrs: attrs}

	case models.BlockYoutube:
		if block.URL == "" {
			return nil
		}
		width, height := block.Width, block.Height
		if width == 0 {
			width = 640
		}
		if height == 0 {
			height = 360
		}
		return &Node{Type: KindYoutube, Attrs: Attrs{
			"src":    block.URL,
			"width":  width,
			"height": height,
		}}

	case models.BlockVideo:
		if block.URL == "" {
			return nil
		}
		attrs := Attrs{"src": block.URL, "controls": true}
		if block.Poster != "" {
			attrs["poster"] = block.Poster
		}
		if title := block.Title(key); title != "" {
			attrs["title"] = title
		} else if caption := block.Caption(key); caption != "" {
			attrs["title"] = caption
		}
		return &Node{Type: KindVideo, Attrs: attrs}

	default:
		if text != "" {
			return Paragraph(text)
		}
		return nil
	}
}
