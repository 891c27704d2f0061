// Package activity defines the operator-visible activity log sink.
// Only permanent, operator-actionable conditions are recorded here
// (invalid credential, exhausted request quota); everything else stays
// in the diagnostic log.
package activity

import (
	"context"
	"log/slog"

	"kinosync/internal/logging"
)

// Recorder accepts operator-visible activity entries.
type Recorder interface {
	Record(ctx context.Context, summary, shortSummary string) error
}

// LogRecorder writes activity entries to the diagnostic logger. It is
// the fallback sink when no persistent recorder is wired in.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder creates a Recorder backed by logger.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logging.WithComponent(logger, "activity")}
}

func (r *LogRecorder) Record(_ context.Context, summary, shortSummary string) error {
	r.logger.Warn(summary, logging.String("short_summary", shortSummary))
	return nil
}

// Nop discards activity entries.
type Nop struct{}

func (Nop) Record(context.Context, string, string) error { return nil }
