package document

import "testing"

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<a href="x">&'</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;&amp;&#39;&lt;/a&gt;"
	if got != want {
		t.Fatalf("EscapeHTML = %q, want %q", got, want)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<strong>bold</strong> text", "bold text"},
		{"a&nbsp;b", "a b"},
		{"  <p>  spaced   out </p> ", "spaced out"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Fatalf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyMarksOrder(t *testing.T) {
	// Marks wrap in stored order, each new mark outside the previous one.
	node := &Node{
		Type: KindText,
		Text: "click",
		Marks: []Mark{
			{Type: MarkBold},
			{Type: MarkItalic},
			{Type: MarkLink, Attrs: Attrs{"href": "https://example.com"}},
		},
	}

	result := ComposeInline([]*Node{node})
	want := `<a href="https://example.com" target="_blank" rel="noopener noreferrer"><em><strong>click</strong></em></a>`
	if result.Markup != want {
		t.Fatalf("markup = %q, want %q", result.Markup, want)
	}
	if result.Text != "click" {
		t.Fatalf("text = %q, want %q", result.Text, "click")
	}
}

func TestLinkWithoutHrefIsNoop(t *testing.T) {
	node := &Node{
		Type:  KindText,
		Text:  "dangling",
		Marks: []Mark{{Type: MarkLink}},
	}

	result := ComposeInline([]*Node{node})
	if result.Markup != "dangling" {
		t.Fatalf("link without href must be a no-op, got %q", result.Markup)
	}
}

func TestTextStyleAndHighlight(t *testing.T) {
	nodes := []*Node{
		{Type: KindText, Text: "red", Marks: []Mark{{Type: MarkTextStyle, Attrs: Attrs{"color": "#ff0000"}}}},
		{Type: KindText, Text: " and ", Marks: []Mark{{Type: MarkTextStyle}}},
		{Type: KindText, Text: "lit", Marks: []Mark{{Type: MarkHighlight, Attrs: Attrs{"color": "#ffff00"}}}},
	}

	result := ComposeInline(nodes)
	want := `<span style="color: #ff0000">red</span> and <mark style="background-color: #ffff00">lit</mark>`
	if result.Markup != want {
		t.Fatalf("markup = %q, want %q", result.Markup, want)
	}
}

func TestComposeInlineHardBreakAndImage(t *testing.T) {
	nodes := []*Node{
		TextNode("line one"),
		{Type: KindHardBreak},
		TextNode("line two"),
		{Type: KindImage, Attrs: Attrs{"src": "/uploads/x.png", "alt": "pic"}},
	}

	result := ComposeInline(nodes)
	if result.Text != "line one\nline two" {
		t.Fatalf("text = %q", result.Text)
	}
	if result.Markup != `line one<br />line two<img src="/uploads/x.png" alt="pic" />` {
		t.Fatalf("markup = %q", result.Markup)
	}
}
