package main

import (
	"log"

	"CropCare/Config"
	"CropCare/CronJobs"
	"CropCare/Engine"
	"CropCare/FiberConfig"
	"CropCare/Models"
	"CropCare/Notifications"
	"CropCare/Store"
)

func main() {
	cfg := Config.Load()

	if err := Models.Connect(cfg.DBPath); err != nil {
		log.Fatal("Failed to open database:", err)
	}

	// Firebase is optional at startup: without it the dispatcher reports
	// permission denied and scheduling calls fail with a user-facing
	// message, but the rest of the API keeps serving.
	sender, err := Notifications.NewFCMSender(Models.DB, cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Println("Failed to initialize Firebase:", err)
	}

	dispatcher := Notifications.NewFCMDispatcher(Models.DB, sender)
	store := Store.NewScheduleStore(Models.DB)
	engine := Engine.New(store, dispatcher)

	dispatchLoop := CronJobs.NewDispatchLoop(Models.DB, sender, cfg.DispatchIntervalSeconds, true)
	if err := dispatchLoop.Start(); err != nil {
		log.Fatal("Failed to start dispatch loop:", err)
	}
	defer dispatchLoop.Stop()

	FiberConfig.FiberConfig(engine, cfg.Port)
}
