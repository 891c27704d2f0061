package mapping

import (
	"strconv"

	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

// criticRatingScale rescales the catalog's 0-10 critic rating to the
// 0-100 scale local entities use. The community rating passes through.
const criticRatingScale = 10

// MovieFromFilm maps a full film record onto a movie entity.
func MovieFromFilm(film kinopoisk.Film) media.Movie {
	movie := media.Movie{
		Name:                film.NameRu,
		OriginalTitle:       film.NameOriginal,
		SortName:            sortName(film),
		Overview:            film.Description,
		Tagline:             film.Slogan,
		OfficialRating:      film.RatingMpaa,
		CommunityRating:     film.RatingKinopoisk,
		CriticRating:        film.RatingFilmCritics * criticRatingScale,
		Year:                film.Year,
		RunTimeMinutes:      runtimeMinutes(film.FilmLength),
		Genres:              genreNames(film.Genres),
		ProductionLocations: countryNames(film.Countries),
		ProviderIDs:         FilmProviderIDs(film),
	}
	return movie
}

// SeriesFromFilm maps a full series record onto a series entity.
func SeriesFromFilm(film kinopoisk.Film) media.Series {
	series := media.Series{
		Name:                film.NameRu,
		OriginalTitle:       film.NameOriginal,
		SortName:            sortName(film),
		Overview:            film.Description,
		Tagline:             film.Slogan,
		OfficialRating:      film.RatingMpaa,
		CommunityRating:     film.RatingKinopoisk,
		CriticRating:        film.RatingFilmCritics * criticRatingScale,
		Year:                film.Year,
		EndYear:             film.EndYear,
		Genres:              genreNames(film.Genres),
		ProductionLocations: countryNames(film.Countries),
		ProviderIDs:         FilmProviderIDs(film),
	}
	return series
}

// SearchResultFromFilm maps a film summary into a browsable search hit
// without a detail fetch.
func SearchResultFromFilm(film kinopoisk.Film) media.SearchResult {
	imageURL := film.PosterURLPreview
	if imageURL == "" {
		imageURL = film.PosterURL
	}
	return media.SearchResult{
		Name:        film.NameRu,
		ImageURL:    imageURL,
		Year:        film.Year,
		Overview:    film.Description,
		ProviderIDs: FilmProviderIDs(film),
	}
}

// sortName prefers the localized name, falling back to the original
// title when the localized one is blank.
func sortName(film kinopoisk.Film) string {
	if film.NameRu == "" {
		return film.NameOriginal
	}
	return film.NameRu
}

// FilmProviderIDs collects the external id bindings of a film record.
func FilmProviderIDs(film kinopoisk.Film) media.ProviderIDs {
	ids := media.ProviderIDs{}
	ids.Set(media.ProviderKinopoisk, strconv.FormatInt(film.KinopoiskID, 10))
	if film.ImdbID != "" {
		ids.Set(media.ProviderIMDB, film.ImdbID)
	}
	return ids
}

// runtimeMinutes keeps only plausible positive runtimes.
func runtimeMinutes(length int) int {
	if length <= 0 {
		return 0
	}
	return length
}

func genreNames(genres []kinopoisk.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, genre := range genres {
		if genre.Genre == "" {
			continue
		}
		names = append(names, genre.Genre)
	}
	return names
}

func countryNames(countries []kinopoisk.Country) []string {
	names := make([]string, 0, len(countries))
	for _, country := range countries {
		if country.Country == "" {
			continue
		}
		names = append(names, country.Country)
	}
	return names
}
