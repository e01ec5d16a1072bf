package render

import "testing"

func TestToYoutubeEmbed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"share link", "https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"already embedded", "https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"plain seconds", "https://youtu.be/abc?t=90", "https://www.youtube.com/embed/abc?start=90"},
		{"duration form", "https://www.youtube.com/watch?v=abc&t=1h2m30s", "https://www.youtube.com/embed/abc?start=3750"},
		{"minutes seconds", "https://youtu.be/abc?t=2m5s", "https://www.youtube.com/embed/abc?start=125"},
		{"start param", "https://www.youtube.com/watch?v=abc&start=42", "https://www.youtube.com/embed/abc?start=42"},
		{"no id", "https://www.youtube.com/watch", ""},
		{"not a url", "://broken", ""},
		{"unrelated host", "https://example.com/watch?v=abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToYoutubeEmbed(tt.in); got != tt.want {
				t.Fatalf("ToYoutubeEmbed(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
