package notification

import (
	"context"
	"fmt"

	"petfeeder/internal/domain/service"

	"firebase.google.com/go/v4/messaging"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase notification service instance
func NewFirebaseService(client *messaging.Client) service.NotificationService {
	return &firebaseService{
		client: client,
	}
}

// Send pushes a notification to a single device token
func (s *firebaseService) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}
