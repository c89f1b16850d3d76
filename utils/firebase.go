package utils

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"consultly/config"
)

var (
	messagingClient *messaging.Client
	messagingOnce   sync.Once
	messagingErr    error
)

// GetMessagingClient returns the shared FCM client, initializing the
// Firebase app from the configured credentials file on first use.
func GetMessagingClient(ctx context.Context) (*messaging.Client, error) {
	messagingOnce.Do(func() {
		opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsPath)
		app, err := firebase.NewApp(ctx, nil, opt)
		if err != nil {
			messagingErr = fmt.Errorf("failed to initialize firebase app: %w", err)
			return
		}
		messagingClient, messagingErr = app.Messaging(ctx)
	})
	return messagingClient, messagingErr
}
