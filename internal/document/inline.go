package document

import "strings"

// InlineResult carries the two renditions of an inline run: plain text with
// marks stripped, and markup with marks applied.
type InlineResult struct {
	Text   string
	Markup string
}

// applyMarks wraps escaped markup in the node's marks, innermost first, in
// the order the node lists them. A mark missing its actionable attribute
// (a link without href, a text style without color) is a no-op.
func applyMarks(markup string, marks []Mark) string {
	for _, mark := range marks {
		switch mark.Type {
		case MarkBold:
			markup = "<strong>" + markup + "</strong>"
		case MarkItalic:
			markup = "<em>" + markup + "</em>"
		case MarkUnderline:
			markup = "<u>" + markup + "</u>"
		case MarkStrike:
			markup = "<s>" + markup + "</s>"
		case MarkCode:
			markup = "<code>" + markup + "</code>"
		case MarkLink:
			href := mark.AttrString("href")
			if href == "" {
				continue
			}
			target := mark.AttrString("target")
			if target == "" {
				target = "_blank"
			} else {
				target = escapeAttribute(target)
			}
			markup = `<a href="` + escapeAttribute(href) + `" target="` + target + `" rel="noopener noreferrer">` + markup + "</a>"
		case MarkTextStyle:
			color := mark.AttrString("color")
			if color == "" {
				continue
			}
			markup = `<span style="color: ` + escapeAttribute(color) + `">` + markup + "</span>"
		case MarkHighlight:
			styleAttr := ""
			if color := mark.AttrString("color"); color != "" {
				styleAttr = ` style="background-color: ` + escapeAttribute(color) + `"`
			}
			markup = "<mark" + styleAttr + ">" + markup + "</mark>"
		}
	}
	return markup
}

// ComposeInline renders a run of inline nodes into plain text and markup.
// Text runs contribute verbatim text and escaped, mark-wrapped markup; hard
// breaks contribute a newline and an explicit break; inline images appear
// in markup only. Unknown nodes with content are flattened transparently.
func ComposeInline(nodes []*Node) InlineResult {
	if len(nodes) == 0 {
		return InlineResult{}
	}

	var textParts, markupParts []string

	for _, node := range nodes {
		if node == nil {
			continue
		}
		switch node.Type {
		case KindText:
			textParts = append(textParts, node.Text)
			markupParts = append(markupParts, applyMarks(EscapeHTML(node.Text), node.Marks))
		case KindHardBreak:
			textParts = append(textParts, "\n")
			markupParts = append(markupParts, "<br />")
		case KindImage:
			src := node.AttrString("src")
			if src == "" {
				continue
			}
			img := `<img src="` + escapeAttribute(src) + `"`
			if alt := node.AttrString("alt"); alt != "" {
				img += ` alt="` + escapeAttribute(alt) + `"`
			}
			if title := node.AttrString("title"); title != "" {
				img += ` title="` + escapeAttribute(title) + `"`
			}
			img += " />"
			markupParts = append(markupParts, img)
		default:
			if len(node.Content) == 0 {
				continue
			}
			nested := ComposeInline(node.Content)
			if nested.Text != "" {
				textParts = append(textParts, nested.Text)
			}
			if nested.Markup != "" {
				markupParts = append(markupParts, nested.Markup)
			}
		}
	}

	return InlineResult{
		Text:   strings.Join(textParts, ""),
		Markup: strings.Join(markupParts, ""),
	}
}
