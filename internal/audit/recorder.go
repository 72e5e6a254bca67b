// Package audit records a trail of route searches consumed from Kafka.
package audit

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/airroutes/internal/kafka"
)

type Recorder struct {
	logger *slog.Logger
}

func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger}
}

func (r *Recorder) Record(ctx context.Context, event kafka.SearchEvent) error {
	attrs := []any{
		"search_id", event.SearchID,
		"origins", event.Origins,
		"destinations", event.Destinations,
		"date_from", event.DateFrom,
		"date_to", event.DateTo,
		"weight", event.Weight,
		"candidates", event.Candidates,
		"categories", event.Categories,
		"duration_ms", event.DurationMS,
	}
	if event.Failed {
		r.logger.WarnContext(ctx, "search.audit.failed", append(attrs, "error", event.Error)...)
		return nil
	}
	r.logger.InfoContext(ctx, "search.audit", attrs...)
	return nil
}
