package Firestore

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// InitFirebase builds the Firebase app the Firestore client and the FCM
// messaging client are derived from. Call once at startup.
func InitFirebase(ctx context.Context, credentialsFile, projectID string) (*firebase.App, error) {
	opt := option.WithCredentialsFile(credentialsFile)

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %v", err)
	}

	log.Println("Firebase initialized successfully")
	return app, nil
}
