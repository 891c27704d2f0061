package mapping

import (
	"time"

	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

const episodeDateLayout = "2006-01-02"

// EpisodeFromRecord maps a season-tree episode entry onto an episode
// entity. A malformed release date leaves the premiere unset.
func EpisodeFromRecord(episode kinopoisk.Episode) media.Episode {
	mapped := media.Episode{
		Name:          episode.NameRu,
		OriginalTitle: episode.NameEn,
		Overview:      episode.Synopsis,
		SeasonNumber:  episode.SeasonNumber,
		EpisodeNumber: episode.EpisodeNumber,
	}
	if premiere, err := time.Parse(episodeDateLayout, episode.ReleaseDate); err == nil {
		mapped.PremiereDate = premiere
	}
	return mapped
}
