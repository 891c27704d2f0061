// Command kinosync resolves local media library items against the
// Kinopoisk catalog and maintains Top 250 collections.
package main
