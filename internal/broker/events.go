package broker

import (
	"context"

	"storefront-service/internal/models"
)

// publisher abstracts the Kafka producer so services can be tested without
// a broker
type publisher interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
}

// EventPublisher handles publishing storefront domain events
type EventPublisher struct {
	producer publisher
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer publisher) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderPlaced publishes an OrderPlaced event keyed by username
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	return ep.producer.PublishEvent(ctx, "order-"+event.Username, event)
}

// PublishUserLogin publishes a UserLogin event keyed by username
func (ep *EventPublisher) PublishUserLogin(ctx context.Context, event *models.UserLoginEvent) error {
	return ep.producer.PublishEvent(ctx, "user-"+event.Username, event)
}
