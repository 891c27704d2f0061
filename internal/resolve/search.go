package resolve

import (
	"context"

	"kinosync/internal/logging"
	"kinosync/internal/mapping"
	"kinosync/internal/match"
	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

// SearchFilms returns browsable search hits for a lookup, limited to
// the requested kind when it is movie or series. A bound catalog id
// skips the name search and yields at most one hit. Name hits run
// through the relevance filter; its fallback keeps the full set
// visible when nothing matches exactly.
func (s *Service) SearchFilms(ctx context.Context, lookup Lookup, kind media.Kind) ([]media.SearchResult, error) {
	if id, ok := catalogID(lookup.ProviderIDs); ok {
		film, err := s.api.FilmByID(ctx, id)
		if err != nil {
			return nil, absorbNoToken(err)
		}
		if film != nil {
			if hit, ok := filmHit(*film, kind); ok {
				return []media.SearchResult{hit}, nil
			}
			return nil, nil
		}
		s.logger.Debug("bound catalog id yielded no record", logging.Int64("id", id))
	}
	query := match.Normalize(lookup.Name)
	if query == "" {
		return nil, nil
	}
	found, err := s.api.FilmsByName(ctx, query, lookup.Year)
	if err != nil {
		return nil, absorbNoToken(err)
	}
	relevant := match.FilterRelevantFilms(found.Items, lookup.Name, lookup.Year)
	hits := make([]media.SearchResult, 0, len(relevant))
	for _, film := range relevant {
		if hit, ok := filmHit(film, kind); ok {
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

func filmHit(film kinopoisk.Film, kind media.Kind) (media.SearchResult, bool) {
	switch kind {
	case media.KindMovie:
		if film.IsSeries() {
			return media.SearchResult{}, false
		}
	case media.KindSeries:
		if !film.IsSeries() {
			return media.SearchResult{}, false
		}
	}
	return mapping.SearchResultFromFilm(film), true
}

// SearchPersons returns browsable search hits for a person lookup,
// following the same id-first protocol as SearchFilms.
func (s *Service) SearchPersons(ctx context.Context, lookup Lookup) ([]media.SearchResult, error) {
	if id, ok := catalogID(lookup.ProviderIDs); ok {
		person, err := s.api.PersonByID(ctx, id)
		if err != nil {
			return nil, absorbNoToken(err)
		}
		if person != nil {
			return []media.SearchResult{mapping.PersonSearchResult(*person)}, nil
		}
		s.logger.Debug("bound catalog id yielded no person", logging.Int64("id", id))
	}
	query := match.Normalize(lookup.Name)
	if query == "" {
		return nil, nil
	}
	found, err := s.api.PersonsByName(ctx, query)
	if err != nil {
		return nil, absorbNoToken(err)
	}
	relevant := match.FilterRelevantPersons(found.Items, lookup.Name)
	hits := make([]media.SearchResult, 0, len(relevant))
	for _, person := range relevant {
		hits = append(hits, mapping.PersonSearchResult(person))
	}
	return hits, nil
}
