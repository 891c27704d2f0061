package resolve

import (
	"context"

	"kinosync/internal/logging"
	"kinosync/internal/mapping"
	"kinosync/internal/media"
)

// EpisodeLookup identifies one episode of a series. The series binding
// is preferred; the episode's own binding is a fallback for libraries
// that stamp the series id on each episode.
type EpisodeLookup struct {
	SeriesProviderIDs media.ProviderIDs
	ProviderIDs       media.ProviderIDs
	SeasonNumber      int
	EpisodeNumber     int
}

// Episode resolves an episode by walking the series season tree and
// picking the exact season/episode index pair. A missing series
// binding or an absent index yields no metadata.
func (s *Service) Episode(ctx context.Context, lookup EpisodeLookup) (Result[media.Episode], error) {
	seriesID, ok := catalogID(lookup.SeriesProviderIDs)
	if !ok {
		seriesID, ok = catalogID(lookup.ProviderIDs)
	}
	if !ok {
		s.logger.Debug("episode lookup has no series binding")
		return Result[media.Episode]{}, nil
	}

	seasons, err := s.api.SeasonsBySeriesID(ctx, seriesID)
	if err != nil {
		return Result[media.Episode]{}, absorbNoToken(err)
	}
	for _, season := range seasons.Items {
		if season.Number != lookup.SeasonNumber {
			continue
		}
		for _, episode := range season.Episodes {
			if episode.EpisodeNumber != lookup.EpisodeNumber {
				continue
			}
			// Some season trees restate the season on each entry; when
			// they disagree with the containing season, skip the entry.
			if episode.SeasonNumber != 0 && episode.SeasonNumber != lookup.SeasonNumber {
				continue
			}
			mapped := mapping.EpisodeFromRecord(episode)
			mapped.SeasonNumber = lookup.SeasonNumber
			return resolved(mapped), nil
		}
	}
	s.logger.Info("episode not present in season tree",
		logging.Int64("series_id", seriesID),
		logging.Int("season", lookup.SeasonNumber),
		logging.Int("episode", lookup.EpisodeNumber))
	return Result[media.Episode]{}, nil
}
