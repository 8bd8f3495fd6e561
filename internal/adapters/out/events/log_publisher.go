package events

import (
	"context"

	"haulage/internal/core/ports"

	"github.com/rs/zerolog"
)

// LogPublisher stands in for the bus when no NATS URL is configured.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event ports.Event) error {
	p.logger.Debug().
		Str("event", event.Type).
		Str("aggregate_id", event.AggregateID).
		Fields(event.Data).
		Msg("event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
