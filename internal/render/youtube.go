package render

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var youtubeTimeRegex = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s?)?$`)

// ToYoutubeEmbed converts watch and share URLs into the embed form the
// player iframe accepts. Already-embedded URLs pass through untouched.
// Returns "" when no video id can be extracted.
func ToYoutubeEmbed(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	var id string
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch {
	case host == "youtu.be":
		id = strings.Trim(u.Path, "/")
	case strings.Contains(u.Path, "/embed/"):
		id = strings.TrimPrefix(u.Path, "/embed/")
		id = strings.Trim(id, "/")
	case strings.HasSuffix(host, "youtube.com"):
		id = u.Query().Get("v")
	}
	if id = strings.TrimSpace(id); id == "" {
		return ""
	}

	embed := "https://www.youtube.com/embed/" + id
	start := parseStartTime(u.Query())
	if start > 0 {
		embed += fmt.Sprintf("?start=%d", start)
	}
	return embed
}

// parseStartTime reads the t or start query parameter. Accepts plain
// seconds ("90") and the share-link duration form ("1h2m30s").
func parseStartTime(q url.Values) int {
	value := q.Get("t")
	if value == "" {
		value = q.Get("start")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if secs, err := strconv.Atoi(value); err == nil {
		return secs
	}

	m := youtubeTimeRegex.FindStringSubmatch(strings.ToLower(value))
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}
