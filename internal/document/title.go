package document

import "strings"

// FirstHeadingText returns the trimmed plain text of the first heading
// among the document's direct children, or "" when there is none. Only
// direct text runs count; marks are ignored.
func FirstHeadingText(doc *Node) string {
	if doc == nil {
		return ""
	}
	for _, node := range doc.Content {
		if node == nil || node.Type != KindHeading {
			continue
		}
		var parts []string
		for _, child := range node.Content {
			if child != nil && child.Type == KindText {
				parts = append(parts, child.Text)
			}
		}
		return strings.TrimSpace(strings.Join(parts, ""))
	}
	return ""
}

// ApplyTitle rewrites the document so its first node is a level-1 heading
// carrying the given title. An existing leading heading is replaced;
// otherwise the heading is prepended. All other nodes are preserved.
func ApplyTitle(doc *Node, title string) *Node {
	title = strings.TrimSpace(title)
	first := Heading(1, title)

	var rest []*Node
	if doc != nil {
		rest = doc.Content
	}
	if len(rest) > 0 && rest[0] != nil && rest[0].Type == KindHeading {
		rest = rest[1:]
	}

	content := make([]*Node, 0, len(rest)+1)
	content = append(content, first)
	content = append(content, rest...)
	return NewDoc(content...)
}
