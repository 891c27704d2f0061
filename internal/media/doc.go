// Package media holds the local media entity shapes kinosync fills in
// and the provider-id binding semantics shared by every entity kind.
// Entities here are owned by the host library; kinosync only sets
// fields, it never persists or deletes them.
package media
