package utils

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"travelgo/config"
)

var FirestoreClient *firestore.Client

// FirebaseInit initializes the Firebase App and the Firestore client
// backing the chat message stream. Chat is an optional surface; when no
// credentials are configured the client stays nil and chat is disabled
// rather than failing the whole process.
func FirebaseInit() {
	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}, opts...)
	if err != nil {
		GetLogger().Sugar().Warnf("firebase: error initializing app, chat disabled: %v", err)
		return
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		GetLogger().Sugar().Warnf("firebase: error getting Firestore client, chat disabled: %v", err)
		return
	}

	FirestoreClient = client
}

// GetFirestoreClient returns the Firestore client, or nil when chat is disabled.
func GetFirestoreClient() *firestore.Client {
	return FirestoreClient
}
