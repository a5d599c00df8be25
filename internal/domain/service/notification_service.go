package service

import "context"

// NotificationService defines the interface for sending push notifications
// to a user's registered device token.
type NotificationService interface {
	// Send delivers a single push notification.
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}
