package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LocationEvent is one accepted GPS ping, published for async processing.
// The location worker persists it as history for the admin analytics.
type LocationEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	VendorID  uuid.UUID `json:"vendor_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishLocationEvent publishes an accepted location ping for async processing
	PublishLocationEvent(ctx context.Context, event *LocationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
