package media

import "time"

// Provider keys used for external id bindings.
const (
	ProviderKinopoisk = "kinopoisk"
	ProviderIMDB      = "imdb"
	ProviderTMDB      = "tmdb"
)

// Kind enumerates the entity kinds kinosync resolves.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindSeries  Kind = "series"
	KindEpisode Kind = "episode"
	KindPerson  Kind = "person"
)

// ProviderIDs maps a provider key to the external id bound to an entity.
// At most one id per provider: Set keeps the first binding and reports
// whether it was applied.
type ProviderIDs map[string]string

// Set binds id under provider unless a binding already exists.
func (p ProviderIDs) Set(provider, id string) bool {
	if provider == "" || id == "" {
		return false
	}
	if _, ok := p[provider]; ok {
		return false
	}
	p[provider] = id
	return true
}

// Get returns the id bound under provider, or "".
func (p ProviderIDs) Get(provider string) string {
	return p[provider]
}

// Movie is a local movie entity populated from a catalog record.
type Movie struct {
	Name                string
	OriginalTitle       string
	SortName            string
	Overview            string
	Tagline             string
	OfficialRating      string
	CommunityRating     float64
	CriticRating        float64
	Year                int
	RunTimeMinutes      int
	Genres              []string
	ProductionLocations []string
	TrailerURLs         []string
	People              []Credit
	ProviderIDs         ProviderIDs
}

// Series is a local series entity populated from a catalog record.
type Series struct {
	Name                string
	OriginalTitle       string
	SortName            string
	Overview            string
	Tagline             string
	OfficialRating      string
	CommunityRating     float64
	CriticRating        float64
	Year                int
	EndYear             int
	Genres              []string
	ProductionLocations []string
	TrailerURLs         []string
	People              []Credit
	ProviderIDs         ProviderIDs
}

// Episode is a local episode entity populated from a catalog record.
type Episode struct {
	Name          string
	OriginalTitle string
	Overview      string
	SeasonNumber  int
	EpisodeNumber int
	PremiereDate  time.Time
}

// Person is a local person entity populated from a catalog record.
type Person struct {
	Name                string
	OriginalName        string
	SortName            string
	Overview            string
	BirthDate           time.Time
	DeathDate           time.Time
	ProductionLocations []string
	ProviderIDs         ProviderIDs
}

// Role is the closed set of credit roles kinosync understands.
type Role string

const (
	RoleActor    Role = "actor"
	RoleDirector Role = "director"
	RoleWriter   Role = "writer"
	RoleProducer Role = "producer"
	RoleComposer Role = "composer"
)

// Credit attaches a person to a movie or series.
type Credit struct {
	Name        string
	Role        Role
	Character   string
	ImageURL    string
	ProviderIDs ProviderIDs
}

// ImageKind classifies remote images.
type ImageKind string

const (
	ImageBackdrop ImageKind = "backdrop"
	ImagePrimary  ImageKind = "primary"
	ImageLogo     ImageKind = "logo"
)

// Image is a classified remote image entry.
type Image struct {
	URL          string
	ThumbnailURL string
	Kind         ImageKind
	Language     string
}

// SearchResult is a lightweight, browsable search hit.
type SearchResult struct {
	Name        string
	ImageURL    string
	Year        int
	Overview    string
	ProviderIDs ProviderIDs
}
