package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"kinosync/internal/logging"
	"kinosync/internal/mapping"
	"kinosync/internal/match"
	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

// resultLanguage tags every resolved entity; the catalog serves
// Russian-first metadata.
const resultLanguage = "ru"

// Lookup identifies the item to resolve. A bound catalog id wins over
// the name search path.
type Lookup struct {
	Name        string
	Year        int
	ProviderIDs media.ProviderIDs
}

// Result carries a resolved entity. HasMetadata false means the item
// could not be confidently identified; the zero Item must be ignored.
type Result[T any] struct {
	HasMetadata bool
	Item        T
	Language    string
}

func resolved[T any](item T) Result[T] {
	return Result[T]{HasMetadata: true, Item: item, Language: resultLanguage}
}

// Service resolves movies, series, episodes and persons against the
// catalog. It is stateless and safe for concurrent use.
type Service struct {
	api    kinopoisk.API
	logger *slog.Logger
}

// New creates a resolution service over the given catalog API.
func New(api kinopoisk.API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logging.WithComponent(logger, "resolve")}
}

// Movie resolves a movie lookup into full movie metadata, including
// credits and trailer URLs.
func (s *Service) Movie(ctx context.Context, lookup Lookup) (Result[media.Movie], error) {
	film, err := s.locateFilm(ctx, lookup)
	if err != nil || film == nil {
		return Result[media.Movie]{}, absorbNoToken(err)
	}
	movie := mapping.MovieFromFilm(*film)
	movie.People, movie.TrailerURLs, err = s.filmExtras(ctx, film.KinopoiskID)
	if err != nil {
		return Result[media.Movie]{}, absorbNoToken(err)
	}
	return resolved(movie), nil
}

// Series resolves a series lookup into full series metadata.
func (s *Service) Series(ctx context.Context, lookup Lookup) (Result[media.Series], error) {
	film, err := s.locateFilm(ctx, lookup)
	if err != nil || film == nil {
		return Result[media.Series]{}, absorbNoToken(err)
	}
	series := mapping.SeriesFromFilm(*film)
	series.People, series.TrailerURLs, err = s.filmExtras(ctx, film.KinopoiskID)
	if err != nil {
		return Result[media.Series]{}, absorbNoToken(err)
	}
	return resolved(series), nil
}

// Images resolves a lookup to a film and returns its classified images.
func (s *Service) Images(ctx context.Context, lookup Lookup) ([]media.Image, error) {
	film, err := s.locateFilm(ctx, lookup)
	if err != nil || film == nil {
		return nil, absorbNoToken(err)
	}
	return mapping.ImagesFromFilm(*film), nil
}

// locateFilm finds the single film a lookup refers to. A bound catalog
// id is fetched directly. Otherwise the normalized name is searched and
// the hits run through relevance filtering; anything but exactly one
// survivor aborts the resolution, and the survivor is re-fetched so the
// full record is returned rather than the reduced search rendering.
func (s *Service) locateFilm(ctx context.Context, lookup Lookup) (*kinopoisk.Film, error) {
	if id, ok := catalogID(lookup.ProviderIDs); ok {
		film, err := s.api.FilmByID(ctx, id)
		if err != nil || film != nil {
			return film, err
		}
		s.logger.Debug("bound catalog id yielded no record", logging.Int64("id", id))
	}
	query := match.Normalize(lookup.Name)
	if query == "" {
		return nil, nil
	}
	found, err := s.api.FilmsByName(ctx, query, lookup.Year)
	if err != nil {
		return nil, err
	}
	relevant := match.FilterRelevantFilms(found.Items, lookup.Name, lookup.Year)
	if len(relevant) != 1 {
		s.logger.Info("name search was not conclusive",
			logging.String("name", lookup.Name),
			logging.Int("year", lookup.Year),
			logging.Int("candidates", len(relevant)))
		return nil, nil
	}
	return s.api.FilmByID(ctx, relevant[0].KinopoiskID)
}

// filmExtras fetches the staff and trailer lists for a confirmed film.
func (s *Service) filmExtras(ctx context.Context, filmID int64) ([]media.Credit, []string, error) {
	staff, err := s.api.StaffByFilmID(ctx, filmID)
	if err != nil {
		return nil, nil, err
	}
	videos, err := s.api.VideosByFilmID(ctx, filmID)
	if err != nil {
		return nil, nil, err
	}
	return mapping.CreditsFromStaff(staff, s.logger), mapping.TrailerURLs(videos), nil
}

// catalogID extracts the numeric catalog id from a provider id set.
func catalogID(ids media.ProviderIDs) (int64, bool) {
	raw := ids.Get(media.ProviderKinopoisk)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// absorbNoToken maps the missing-credential failure to a quiet
// no-metadata outcome. Everything else passes through.
func absorbNoToken(err error) error {
	if errors.Is(err, kinopoisk.ErrNoToken) {
		return nil
	}
	return err
}
