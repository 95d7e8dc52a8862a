// Package push delivers notifications through Firebase Cloud Messaging.
package push

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

// FCMSender sends one push message per registered device token. It satisfies
// notification.Sender.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender builds a messaging client from a service-account credentials
// file.
func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm client: %w", err)
	}

	return &FCMSender{client: client}, nil
}

func (s *FCMSender) Send(ctx context.Context, deviceToken string, n domain.Notification) error {
	data := map[string]string{"category": string(n.Category)}
	for k, v := range n.Payload {
		data[k] = v
	}

	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}

// LogSender is used when no FCM credentials are configured; it records the
// payload instead of delivering it.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, deviceToken string, n domain.Notification) error {
	s.Logger.Info("push delivery skipped (no FCM credentials)",
		"token", deviceToken, "category", n.Category, "title", n.Title)
	return nil
}
