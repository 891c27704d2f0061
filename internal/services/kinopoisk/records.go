package kinopoisk

// Records in this file are immutable snapshots of catalog entities at
// fetch time. Numeric ids are provider-assigned and unique per kind.

// SearchResult is the paginated envelope the catalog wraps list
// responses in. Item order is the relevance order returned by the API.
type SearchResult[T any] struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"items"`
}

// Country is a nested production-country record.
type Country struct {
	Country string `json:"country"`
}

// Genre is a nested genre record.
type Genre struct {
	Genre string `json:"genre"`
}

// Film is a movie or series record. List endpoints return a reduced
// field set; detail endpoints fill in description, staff-adjacent and
// trailer-adjacent fields.
type Film struct {
	KinopoiskID       int64     `json:"kinopoiskId"`
	ImdbID            string    `json:"imdbId"`
	NameRu            string    `json:"nameRu"`
	NameOriginal      string    `json:"nameOriginal"`
	PosterURL         string    `json:"posterUrl"`
	PosterURLPreview  string    `json:"posterUrlPreview"`
	CoverURL          string    `json:"coverUrl"`
	LogoURL           string    `json:"logoUrl"`
	Description       string    `json:"description"`
	Slogan            string    `json:"slogan"`
	RatingKinopoisk   float64   `json:"ratingKinopoisk"`
	RatingFilmCritics float64   `json:"ratingFilmCritics"`
	RatingMpaa        string    `json:"ratingMpaa"`
	Year              int       `json:"year"`
	StartYear         int       `json:"startYear"`
	EndYear           int       `json:"endYear"`
	FilmLength        int       `json:"filmLength"`
	Countries         []Country `json:"countries"`
	Genres            []Genre   `json:"genres"`
	Serial            bool      `json:"serial"`
	Type              string    `json:"type"` // FILM, VIDEO, TV_SERIES, MINI_SERIES, TV_SHOW
}

// IsSeries reports whether the record describes a series-like entity.
func (f Film) IsSeries() bool {
	switch f.Type {
	case "TV_SERIES", "MINI_SERIES", "TV_SHOW":
		return true
	}
	return f.Serial
}

// FilmStaff is one staff-list entry for a film.
type FilmStaff struct {
	StaffID       int64  `json:"staffId"`
	NameRu        string `json:"nameRu"`
	NameEn        string `json:"nameEn"`
	Description   string `json:"description"`
	PosterURL     string `json:"posterUrl"`
	ProfessionKey string `json:"professionKey"`
}

// Video is a trailer or teaser entry for a film.
type Video struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Site string `json:"site"`
}

// Season groups the episodes of one season of a series.
type Season struct {
	Number   int       `json:"number"`
	Episodes []Episode `json:"episodes"`
}

// Episode is one entry of a season's episode list.
type Episode struct {
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	NameRu        string `json:"nameRu"`
	NameEn        string `json:"nameEn"`
	Synopsis      string `json:"synopsis"`
	ReleaseDate   string `json:"releaseDate"`
}

// Person is a person record from the staff endpoints.
type Person struct {
	PersonID   int64    `json:"personId"`
	NameRu     string   `json:"nameRu"`
	NameEn     string   `json:"nameEn"`
	PosterURL  string   `json:"posterUrl"`
	Profession string   `json:"profession"`
	BirthPlace string   `json:"birthPlace"`
	Birthday   string   `json:"birthday"`
	Death      string   `json:"death"`
	Facts      []string `json:"facts"`
}
