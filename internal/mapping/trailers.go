package mapping

import (
	"net/url"
	"slices"
	"strings"

	"kinosync/internal/services/kinopoisk"
)

// embedRewrites maps embed-style YouTube URL prefixes to the canonical
// watch form.
var embedRewrites = strings.NewReplacer(
	"https://www.youtube.com/embed/", "https://www.youtube.com/watch?v=",
	"https://www.youtube.com/v/", "https://www.youtube.com/watch?v=",
)

// TrailerURLs keeps the videos hosted on YouTube, rewrites embed URLs
// to canonical watch URLs, and reverses the source order so the most
// relevant trailer (last in the source list) comes first.
func TrailerURLs(videos []kinopoisk.Video) []string {
	kept := make([]string, 0, len(videos))
	for _, video := range videos {
		raw := strings.TrimSpace(video.URL)
		if raw == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || !isYouTubeHost(parsed.Host) {
			continue
		}
		kept = append(kept, embedRewrites.Replace(raw))
	}
	slices.Reverse(kept)
	return kept
}

func isYouTubeHost(host string) bool {
	return strings.Contains(strings.ToLower(host), "youtube")
}
