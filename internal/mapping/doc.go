// Package mapping translates Kinopoisk catalog records into local media
// entity fields. Translation is defensive: blank nested entries are
// dropped, unparsable dates leave fields unset, and unknown staff
// professions are skipped rather than failing the whole record.
package mapping
