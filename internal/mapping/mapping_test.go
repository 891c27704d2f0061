package mapping

import (
	"testing"
	"time"

	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

func TestMovieFromFilm(t *testing.T) {
	film := kinopoisk.Film{
		KinopoiskID:       435,
		ImdbID:            "tt0120689",
		NameRu:            "Зеленая миля",
		NameOriginal:      "The Green Mile",
		Description:       "История смертника",
		Slogan:            "Miracles do happen",
		RatingKinopoisk:   9.1,
		RatingFilmCritics: 7.8,
		RatingMpaa:        "r",
		Year:              1999,
		FilmLength:        189,
		Countries:         []kinopoisk.Country{{Country: "США"}, {Country: ""}},
		Genres:            []kinopoisk.Genre{{Genre: "драма"}, {Genre: "фэнтези"}},
	}

	movie := MovieFromFilm(film)
	if movie.Name != "Зеленая миля" || movie.OriginalTitle != "The Green Mile" {
		t.Fatalf("unexpected names: %#v", movie)
	}
	if movie.SortName != "Зеленая миля" {
		t.Fatalf("unexpected sort name: %q", movie.SortName)
	}
	if movie.CriticRating != 78 {
		t.Fatalf("expected critic rating rescaled to 78, got %v", movie.CriticRating)
	}
	if movie.CommunityRating != 9.1 {
		t.Fatalf("expected community rating passthrough, got %v", movie.CommunityRating)
	}
	if movie.RunTimeMinutes != 189 {
		t.Fatalf("unexpected runtime: %d", movie.RunTimeMinutes)
	}
	if len(movie.ProductionLocations) != 1 || movie.ProductionLocations[0] != "США" {
		t.Fatalf("expected blank country dropped: %#v", movie.ProductionLocations)
	}
	if got := movie.ProviderIDs.Get(media.ProviderKinopoisk); got != "435" {
		t.Fatalf("unexpected kinopoisk id: %q", got)
	}
	if got := movie.ProviderIDs.Get(media.ProviderIMDB); got != "tt0120689" {
		t.Fatalf("unexpected imdb id: %q", got)
	}
}

func TestSortNameFallsBackToOriginal(t *testing.T) {
	film := kinopoisk.Film{NameOriginal: "Primer"}
	if movie := MovieFromFilm(film); movie.SortName != "Primer" {
		t.Fatalf("expected fallback sort name, got %q", movie.SortName)
	}
}

func TestSeriesFromFilmKeepsEndYear(t *testing.T) {
	film := kinopoisk.Film{KinopoiskID: 77044, NameRu: "Друзья", Year: 1994, EndYear: 2004}
	series := SeriesFromFilm(film)
	if series.Year != 1994 || series.EndYear != 2004 {
		t.Fatalf("unexpected years: %#v", series)
	}
}

func TestTrailerURLs(t *testing.T) {
	videos := []kinopoisk.Video{
		{URL: "https://vimeo.com/123"},
		{URL: "https://www.youtube.com/watch?v=abc"},
		{URL: "https://www.youtube.com/embed/def"},
	}
	got := TrailerURLs(videos)
	want := []string{
		"https://www.youtube.com/watch?v=def",
		"https://www.youtube.com/watch?v=abc",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected trailers: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trailer %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTrailerURLsSkipsBlankAndMalformed(t *testing.T) {
	videos := []kinopoisk.Video{
		{URL: "   "},
		{URL: "://bad"},
		{URL: "https://www.youtube.com/v/ghi"},
	}
	got := TrailerURLs(videos)
	if len(got) != 1 || got[0] != "https://www.youtube.com/watch?v=ghi" {
		t.Fatalf("unexpected trailers: %#v", got)
	}
}

func TestCreditsFromStaffSkipsUnusableEntries(t *testing.T) {
	staff := []kinopoisk.FilmStaff{
		{StaffID: 1, NameRu: "Том Хэнкс", Description: "Paul Edgecomb", ProfessionKey: "ACTOR"},
		{StaffID: 2, NameEn: "Frank Darabont", ProfessionKey: "DIRECTOR"},
		{StaffID: 3, ProfessionKey: "ACTOR"},
		{StaffID: 4, NameRu: "Кто-то", ProfessionKey: "TRANSLATOR"},
	}
	credits := CreditsFromStaff(staff, nil)
	if len(credits) != 2 {
		t.Fatalf("expected 2 credits, got %#v", credits)
	}
	if credits[0].Role != media.RoleActor || credits[0].Character != "Paul Edgecomb" {
		t.Fatalf("unexpected first credit: %#v", credits[0])
	}
	if credits[1].Name != "Frank Darabont" || credits[1].Role != media.RoleDirector {
		t.Fatalf("unexpected second credit: %#v", credits[1])
	}
}

func TestPersonFromRecordParsesLooseDates(t *testing.T) {
	cases := []struct {
		name     string
		birthday string
		want     time.Time
		wantSet  bool
	}{
		{"plain date", "1932-04-04", time.Date(1932, 4, 4, 0, 0, 0, 0, time.UTC), true},
		{"timestamp", "1932-04-04T00:00:00", time.Date(1932, 4, 4, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "once upon a time", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			person := PersonFromRecord(kinopoisk.Person{PersonID: 9, NameRu: "Имя", Birthday: tc.birthday})
			if tc.wantSet != !person.BirthDate.IsZero() {
				t.Fatalf("birth date set = %v, want %v", !person.BirthDate.IsZero(), tc.wantSet)
			}
			if tc.wantSet && !person.BirthDate.Equal(tc.want) {
				t.Fatalf("birth date = %v, want %v", person.BirthDate, tc.want)
			}
		})
	}
}

func TestPersonFromRecordJoinsFacts(t *testing.T) {
	person := PersonFromRecord(kinopoisk.Person{
		PersonID:   9,
		NameEn:     "Andrei Tarkovsky",
		BirthPlace: "Завражье",
		Facts:      []string{"факт один", "  ", "факт два"},
	})
	if person.Name != "Andrei Tarkovsky" || person.SortName != "Andrei Tarkovsky" {
		t.Fatalf("expected original-name fallback: %#v", person)
	}
	if person.Overview != "факт один\nфакт два" {
		t.Fatalf("unexpected overview: %q", person.Overview)
	}
	if len(person.ProductionLocations) != 1 || person.ProductionLocations[0] != "Завражье" {
		t.Fatalf("unexpected birthplace: %#v", person.ProductionLocations)
	}
}

func TestEpisodeFromRecord(t *testing.T) {
	episode := EpisodeFromRecord(kinopoisk.Episode{
		SeasonNumber:  2,
		EpisodeNumber: 5,
		NameRu:        "Серия",
		ReleaseDate:   "2004-11-14",
	})
	if episode.SeasonNumber != 2 || episode.EpisodeNumber != 5 {
		t.Fatalf("unexpected indexes: %#v", episode)
	}
	want := time.Date(2004, 11, 14, 0, 0, 0, 0, time.UTC)
	if !episode.PremiereDate.Equal(want) {
		t.Fatalf("unexpected premiere: %v", episode.PremiereDate)
	}

	undated := EpisodeFromRecord(kinopoisk.Episode{ReleaseDate: "soon"})
	if !undated.PremiereDate.IsZero() {
		t.Fatalf("expected unset premiere, got %v", undated.PremiereDate)
	}
}

func TestImagesFromFilm(t *testing.T) {
	film := kinopoisk.Film{
		CoverURL:         "https://img/cover.jpg",
		PosterURL:        "https://img/poster.jpg",
		PosterURLPreview: "https://img/poster_small.jpg",
		LogoURL:          "https://img/logo.png",
	}
	images := ImagesFromFilm(film)
	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %#v", images)
	}
	if images[0].Kind != media.ImageBackdrop || images[0].URL != "https://img/cover.jpg" {
		t.Fatalf("unexpected backdrop: %#v", images[0])
	}
	if images[1].Kind != media.ImagePrimary || images[1].ThumbnailURL != "https://img/poster_small.jpg" {
		t.Fatalf("unexpected primary: %#v", images[1])
	}
	if images[2].Kind != media.ImageLogo {
		t.Fatalf("unexpected logo: %#v", images[2])
	}

	if got := ImagesFromFilm(kinopoisk.Film{}); len(got) != 0 {
		t.Fatalf("expected no images, got %#v", got)
	}
}

func TestSearchResultFromFilmPrefersPreviewPoster(t *testing.T) {
	film := kinopoisk.Film{
		KinopoiskID:      1,
		NameRu:           "Имя",
		PosterURL:        "https://img/full.jpg",
		PosterURLPreview: "https://img/preview.jpg",
		Year:             2010,
	}
	hit := SearchResultFromFilm(film)
	if hit.ImageURL != "https://img/preview.jpg" {
		t.Fatalf("expected preview poster, got %q", hit.ImageURL)
	}

	film.PosterURLPreview = ""
	if hit := SearchResultFromFilm(film); hit.ImageURL != "https://img/full.jpg" {
		t.Fatalf("expected full poster fallback, got %q", hit.ImageURL)
	}
}
