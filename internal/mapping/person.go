package mapping

import (
	"strconv"
	"strings"
	"time"

	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

// looseDateLayouts covers the date renderings the catalog has been seen
// to emit for births and deaths.
var looseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006",
}

// PersonFromRecord maps a person record onto a person entity. Dates
// that fail to parse leave the field unset.
func PersonFromRecord(person kinopoisk.Person) media.Person {
	ids := media.ProviderIDs{}
	ids.Set(media.ProviderKinopoisk, strconv.FormatInt(person.PersonID, 10))

	name := person.NameRu
	if name == "" {
		name = person.NameEn
	}
	mapped := media.Person{
		Name:         name,
		OriginalName: person.NameEn,
		SortName:     name,
		ProviderIDs:  ids,
	}
	if born, ok := parseLooseDate(person.Birthday); ok {
		mapped.BirthDate = born
	}
	if died, ok := parseLooseDate(person.Death); ok {
		mapped.DeathDate = died
	}
	if person.BirthPlace != "" {
		mapped.ProductionLocations = []string{person.BirthPlace}
	}
	if facts := nonBlank(person.Facts); len(facts) > 0 {
		mapped.Overview = strings.Join(facts, "\n")
	}
	return mapped
}

// PersonSearchResult maps a person record into a browsable search hit.
func PersonSearchResult(person kinopoisk.Person) media.SearchResult {
	ids := media.ProviderIDs{}
	ids.Set(media.ProviderKinopoisk, strconv.FormatInt(person.PersonID, 10))
	name := person.NameRu
	if name == "" {
		name = person.NameEn
	}
	return media.SearchResult{
		Name:        name,
		ImageURL:    person.PosterURL,
		ProviderIDs: ids,
	}
}

func parseLooseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range looseDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func nonBlank(values []string) []string {
	kept := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		kept = append(kept, value)
	}
	return kept
}
