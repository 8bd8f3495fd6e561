package ports

import (
	"context"
	"time"
)

// Event types published after a command commits.
const (
	EventDispatchCreated    = "dispatch.created"
	EventDispatchTransition = "dispatch.transitioned"
	EventDispatchDeleted    = "dispatch.deleted"
	EventMaterialSeeded     = "material.seeded"
	EventStockClamped       = "material.stock_clamped"
	EventOrderUnassigned    = "order.unassigned"
)

// Event is a committed change announced to other systems.
type Event struct {
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Data        map[string]any `json:"data,omitempty"`
}

// EventPublisher delivers events on a best-effort basis. A failed publish
// never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
