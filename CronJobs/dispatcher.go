package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"CropCare/Models"
	"CropCare/Notifications"
)

// DispatchLoop drains due pending notifications on a fixed tick,
// delivering each through the sender and marking it sent. Rows that fail
// to send stay pending and are retried on the next tick.
type DispatchLoop struct {
	cronScheduler   *cron.Cron
	db              *gorm.DB
	sender          Notifications.Sender
	intervalSeconds int
	runImmediately  bool
	jobID           cron.EntryID
	now             func() time.Time
}

// NewDispatchLoop creates a dispatch loop ticking every intervalSeconds.
func NewDispatchLoop(db *gorm.DB, sender Notifications.Sender, intervalSeconds int, runImmediately bool) *DispatchLoop {
	return &DispatchLoop{
		cronScheduler:   cron.New(),
		db:              db,
		sender:          sender,
		intervalSeconds: intervalSeconds,
		runImmediately:  runImmediately,
		now:             time.Now,
	}
}

// Start begins the periodic dispatch job.
func (d *DispatchLoop) Start() error {
	var err error
	d.jobID, err = d.cronScheduler.AddFunc(fmt.Sprintf("@every %ds", d.intervalSeconds), func() {
		d.RunOnce()
	})
	if err != nil {
		return fmt.Errorf("error scheduling dispatch job: %w", err)
	}

	d.cronScheduler.Start()
	log.Printf("Notification dispatch loop started - ticking every %ds", d.intervalSeconds)

	if d.runImmediately {
		d.RunOnce()
	}
	return nil
}

// Stop terminates the dispatch loop.
func (d *DispatchLoop) Stop() {
	if d.cronScheduler != nil {
		d.cronScheduler.Stop()
		log.Println("Notification dispatch loop stopped")
	}
}

// RunOnce sends every due notification. Exposed for manual runs.
func (d *DispatchLoop) RunOnce() {
	var due []Models.PendingNotification
	err := d.db.Where("sent = ? AND canceled = ? AND fire_at <= ?", false, false, d.now()).
		Order("fire_at").Find(&due).Error
	if err != nil {
		log.Printf("Error loading due notifications: %v", err)
		return
	}

	for i := range due {
		row := &due[i]
		if err := d.sender.Send(row.Title, row.Body); err != nil {
			log.Printf("Error sending notification %d: %v", row.ID, err)
			continue
		}
		sentAt := d.now()
		row.Sent = true
		row.SentAt = &sentAt
		if err := d.db.Save(row).Error; err != nil {
			log.Printf("Failed to update notification %d status: %v", row.ID, err)
		}
	}
}
