// Package match narrows ambiguous catalog search results down to a
// confident candidate set.
package match

import "kinosync/internal/services/kinopoisk"

// FilterRelevantFilms keeps the candidates whose normalized localized
// or original name equals the normalized query name, and whose year
// matches when a year is given. Sets of size zero or one pass through
// unchanged. When the filter would discard everything, the original
// set is returned instead so ambiguity stays visible to the caller.
func FilterRelevantFilms(candidates []kinopoisk.Film, name string, year int) []kinopoisk.Film {
	if len(candidates) <= 1 {
		return candidates
	}
	want := Normalize(name)
	filtered := make([]kinopoisk.Film, 0, len(candidates))
	for _, candidate := range candidates {
		if Normalize(candidate.NameRu) != want && Normalize(candidate.NameOriginal) != want {
			continue
		}
		if year > 0 && candidate.Year != year {
			continue
		}
		filtered = append(filtered, candidate)
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

// FilterRelevantPersons applies the same narrowing to person search
// hits, comparing the normalized localized and original names against
// the query.
func FilterRelevantPersons(candidates []kinopoisk.Person, name string) []kinopoisk.Person {
	if len(candidates) <= 1 {
		return candidates
	}
	want := Normalize(name)
	filtered := make([]kinopoisk.Person, 0, len(candidates))
	for _, candidate := range candidates {
		if Normalize(candidate.NameRu) != want && Normalize(candidate.NameEn) != want {
			continue
		}
		filtered = append(filtered, candidate)
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}
