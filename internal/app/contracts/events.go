package contracts

import "context"

// EventPublisher fans booking lifecycle events out to interested consumers
// (notifications, reporting). Publishing is best effort from the caller's
// point of view; a failed publish must not roll the write back.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}
