package service

import (
	"context"
	"time"
)

// FeederEvent is a platform event published for async processing: telemetry
// ingestion by the worker and downstream analytics.
type FeederEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Action     string    `json:"action"`               // Audit action name, e.g. DISPENSE_RECORDED
	DeviceID   string    `json:"device_id"`
	UserID     string    `json:"user_id,omitempty"`
	Grams      float64   `json:"grams,omitempty"`
	Kind       string    `json:"kind,omitempty"` // Dispense kind when Action is a feeding event
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishFeederEvent publishes a feeder event for async processing
	PublishFeederEvent(ctx context.Context, event *FeederEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
