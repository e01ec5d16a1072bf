// Package document implements the bidirectional transcoding engine between
// rich-text editor node trees and the bilingual lesson block representation
// persisted with every lesson.
package document

import "encoding/json"

// Node kinds emitted by the editor. Dispatch over these is closed; anything
// else is treated as a transparent container and recursed into.
const (
	KindDoc         = "doc"
	KindParagraph   = "paragraph"
	KindHeading     = "heading"
	KindText        = "text"
	KindHardBreak   = "hardBreak"
	KindBulletList  = "bulletList"
	KindOrderedList = "orderedList"
	KindListItem    = "listItem"
	KindBlockquote  = "blockquote"
	KindImage       = "image"
	KindYoutube     = "youtube"
	KindVideo       = "video"
)

// Inline mark kinds, in the editor's vocabulary.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkCode      = "code"
	MarkLink      = "link"
	MarkTextStyle = "textStyle"
	MarkHighlight = "highlight"
)

type Attrs map[string]interface{}

type Mark struct {
	Type  string `json:"type"`
	Attrs Attrs  `json:"attrs,omitempty"`
}

// Node is one editor document node. The JSON shape matches the editor's
// serialized document exactly so snapshots round-trip verbatim.
type Node struct {
	Type    string  `json:"type"`
	Attrs   Attrs   `json:"attrs,omitempty"`
	Marks   []Mark  `json:"marks,omitempty"`
	Content []*Node `json:"content,omitempty"`
	Text    string  `json:"text,omitempty"`
}

// NewDoc wraps block nodes in a document root.
func NewDoc(children ...*Node) *Node {
	return &Node{Type: KindDoc, Content: children}
}

// EmptyDoc returns the minimal loadable document: a root with one empty
// paragraph. An editor document must never be fully empty.
func EmptyDoc() *Node {
	return NewDoc(&Node{Type: KindParagraph})
}

// TextNode returns an unmarked text run.
func TextNode(text string) *Node {
	return &Node{Type: KindText, Text: text}
}

// Paragraph returns a paragraph with a single text run, or an empty
// paragraph when text is blank.
func Paragraph(text string) *Node {
	p := &Node{Type: KindParagraph}
	if text != "" {
		p.Content = []*Node{TextNode(text)}
	}
	return p
}

// Heading returns a heading node at the given level.
func Heading(level int, text string) *Node {
	h := &Node{Type: KindHeading, Attrs: Attrs{"level": level}}
	if text != "" {
		h.Content = []*Node{TextNode(text)}
	}
	return h
}

// Clone produces a deep copy that shares no state with the receiver.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Type: n.Type,
		Text: n.Text,
	}
	if n.Attrs != nil {
		clone.Attrs = make(Attrs, len(n.Attrs))
		for k, v := range n.Attrs {
			clone.Attrs[k] = v
		}
	}
	if n.Marks != nil {
		clone.Marks = make([]Mark, len(n.Marks))
		for i, m := range n.Marks {
			cm := Mark{Type: m.Type}
			if m.Attrs != nil {
				cm.Attrs = make(Attrs, len(m.Attrs))
				for k, v := range m.Attrs {
					cm.Attrs[k] = v
				}
			}
			clone.Marks[i] = cm
		}
	}
	if n.Content != nil {
		clone.Content = make([]*Node, len(n.Content))
		for i, child := range n.Content {
			clone.Content[i] = child.Clone()
		}
	}
	return clone
}

// AttrString reads a string attribute, tolerating absence.
func (n *Node) AttrString(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	if value, ok := n.Attrs[key].(string); ok {
		return value
	}
	return ""
}

// AttrInt reads a numeric attribute. Editor documents decoded from JSON
// carry numbers as float64.
func (n *Node) AttrInt(key string, fallback int) int {
	if n == nil || n.Attrs == nil {
		return fallback
	}
	switch value := n.Attrs[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	}
	return fallback
}

// MarkAttrString reads a string attribute from a mark.
func (m Mark) AttrString(key string) string {
	if m.Attrs == nil {
		return ""
	}
	if value, ok := m.Attrs[key].(string); ok {
		return value
	}
	return ""
}

// MarshalSnapshot serializes a node for stashing inside a lesson block.
func MarshalSnapshot(n *Node) json.RawMessage {
	if n == nil {
		return nil
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return nil
	}
	return raw
}

// UnmarshalSnapshot restores a stashed node. Malformed snapshots yield nil
// so callers fall back to the semantic fields.
func UnmarshalSnapshot(raw json.RawMessage) *Node {
	if len(raw) == 0 {
		return nil
	}
	var node Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil
	}
	if node.Type == "" {
		return nil
	}
	return &node
}
