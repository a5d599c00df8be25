// Package firebase constructs the shared Firebase Admin SDK clients: the
// Firestore document store, the Realtime Database tree, the authentication
// provider and the messaging client.
package firebase

import (
	"context"
	"log/slog"

	"petfeeder/config"
	"petfeeder/internal/errors"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewApp initializes the Firebase app from the configured connection
// parameters. Config validation already guaranteed they are present.
func NewApp(params Params) (*firebase.App, error) {
	cfg := params.Config.Firebase

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{
		ProjectID:   cfg.ProjectID,
		DatabaseURL: cfg.DatabaseURL,
	}, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	params.Logger.Info("Firebase app initialized",
		slog.String("project_id", cfg.ProjectID),
	)

	return app, nil
}

// FirestoreParams defines the parameters for the Firestore client
type FirestoreParams struct {
	fx.In
	fx.Lifecycle

	Ctx context.Context
	App *firebase.App
}

// NewFirestore creates the Firestore client backing the durable document store.
func NewFirestore(params FirestoreParams) (*firestore.Client, error) {
	client, err := params.App.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

// NewDatabase creates the Realtime Database client backing the status fragments.
func NewDatabase(ctx context.Context, app *firebase.App) (*db.Client, error) {
	client, err := app.Database(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Realtime Database client")
	}

	return client, nil
}

// NewAuth creates the authentication client used to verify session tokens.
func NewAuth(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Auth client")
	}

	return client, nil
}

// NewMessaging creates the messaging client used for push notifications.
func NewMessaging(ctx context.Context, app *firebase.App) (*messaging.Client, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create messaging client")
	}

	return client, nil
}
