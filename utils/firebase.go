package utils

import (
	"context"
	"log"

	"fleetdesk/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		// Push delivery is best-effort; the ledger runs without it.
		log.Printf("firebase: error initializing app, push disabled: %v", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("firebase: error getting Messaging client, push disabled: %v", err)
		return
	}

	FCMClient = client
}
