package main

import (
	"context"
	"log"

	"Garrison/Config"
	"Garrison/Controllers"
	"Garrison/CronJobs"
	"Garrison/Details"
	"Garrison/FiberConfig"
	"Garrison/Firestore"
	"Garrison/Models"
	"Garrison/Notifications"
	"Garrison/Slack"
)

func main() {
	cfg, err := Config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := Models.Connect(cfg.DatabasePath); err != nil {
		log.Fatal("Failed to connect local database:", err)
	}

	ctx := context.Background()
	app, err := Firestore.InitFirebase(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseProjectID)
	if err != nil {
		log.Fatal("Failed to initialize Firebase:", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		log.Fatal("Failed to create Firestore client:", err)
	}
	defer client.Close()
	store := Firestore.NewStore(client)

	notifier, err := Notifications.NewNotifier(ctx, app)
	if err != nil {
		log.Fatal("Failed to create FCM notifier:", err)
	}

	dispatcher := Details.NewDispatcher(store, notifier, cfg.Timezone)
	dispatcher.DB = Models.DB
	if cfg.SlackBotToken != "" {
		dispatcher.Alerter = Slack.NewAlertClient(cfg.SlackBotToken, cfg.SlackAlertChannel)
	}

	scheduler, err := CronJobs.NewDetailScheduler(dispatcher, cfg.Timezone, cfg.MorningReminderTime, cfg.EveningReminderTime)
	if err != nil {
		log.Fatal("Failed to create detail scheduler:", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start detail scheduler:", err)
	}
	defer scheduler.Stop()

	details := Controllers.NewDetailController(dispatcher, Models.DB)
	tokens := Controllers.NewTokenController(store)
	if err := FiberConfig.FiberConfig(cfg, details, tokens); err != nil {
		log.Fatal(err)
	}
}
