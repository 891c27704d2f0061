// Package logging builds the slog loggers used across kinosync and holds
// small attribute helpers so call sites stay terse.
package logging
