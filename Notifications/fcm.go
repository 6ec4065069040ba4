package Notifications

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"CropCare/Models"
)

// FCMSender delivers notifications to the registered device through
// Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
	DB     *gorm.DB
	ctx    context.Context
}

// NewFCMSender initializes Firebase from a service account key file.
func NewFCMSender(db *gorm.DB, credentialsFile string) (*FCMSender, error) {
	ctx := context.Background()
	opt := option.WithCredentialsFile(credentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %v", err)
	}

	log.Println("Firebase initialized successfully")
	return &FCMSender{client: client, DB: db, ctx: ctx}, nil
}

// Ready reports whether the Firebase client was initialized.
func (s *FCMSender) Ready() bool {
	return s != nil && s.client != nil
}

// Send pushes one notification to the registered device token. The
// content keeps the app's alert shape: default sound, high priority,
// and the vibration pattern carried in the data payload.
func (s *FCMSender) Send(title, body string) error {
	if !s.Ready() {
		return fmt.Errorf("firebase client not initialized")
	}

	token := Models.CurrentToken(s.DB)
	if token == "" {
		return fmt.Errorf("no device token registered")
	}

	message := &messaging.Message{
		Token: token,
		Data: map[string]string{
			"vibrate": "0,250,250,250",
		},
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
			Priority: "high",
		},
	}

	response, err := s.client.Send(s.ctx, message)
	if err != nil {
		return fmt.Errorf("error sending Firebase message: %v", err)
	}

	log.Printf("Successfully sent Firebase notification: %s", response)
	return nil
}
