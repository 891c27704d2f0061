// Package library persists the local media library model: libraries,
// items with their external provider bindings, collections and the
// activity log. Storage is a single SQLite database.
package library
