package Models

import (
	"time"

	"gorm.io/gorm"
)

// Task is a single dated care action belonging to a Schedule. Tasks are
// generated in bulk from the crop template and never edited afterwards.
// NotificationIDs holds the dispatcher ids of the exact-time and
// day-before alerts so schedule deletion can cancel them.
type Task struct {
	Date            time.Time `json:"date"`
	Description     string    `json:"task"`
	NotificationIDs []string  `json:"notificationIds,omitempty"`
}

// Schedule ties a crop and planting date to its generated task list.
// The task list is fully determined by (Crop, PlantingDate).
type Schedule struct {
	Crop         string    `json:"crop"`
	PlantingDate time.Time `json:"plantingDate"`
	FarmName     string    `json:"farmName"`
	Tasks        []Task    `json:"tasks"`
}

// Reminder is a standalone one-shot alert not tied to a crop schedule.
// FireTime is an absolute instant in epoch milliseconds; Unit is kept for
// display only. NotificationID is the dispatcher id used for cancellation;
// records persisted before ids existed carry an empty one.
type Reminder struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	FireTime       int64  `json:"time"`
	Unit           string `json:"unit"`
	NotificationID string `json:"notificationId,omitempty"`
}

// KVEntry backs the device-style key-value store. Each key holds one
// serialized collection.
type KVEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// PendingNotification is a one-shot notification registered with the
// dispatcher and not yet delivered. The dispatch loop sends due rows and
// marks them Sent; Cancel marks them Canceled without deleting history.
type PendingNotification struct {
	gorm.Model
	Title    string
	Body     string
	FireAt   time.Time
	Sent     bool
	SentAt   *time.Time
	Canceled bool
}
