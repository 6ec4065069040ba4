package Notifications

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"CropCare/Models"
)

// Pending is a scheduled, undelivered notification as reported by
// ListScheduled. Title and Body are exposed for content matching.
type Pending struct {
	ID     string
	Title  string
	Body   string
	FireAt time.Time
}

// Dispatcher registers one-shot notifications for future delivery.
// Scheduling is fallible at every call: the device token can be revoked
// between checks, so callers must not assume a prior grant still holds.
type Dispatcher interface {
	ScheduleAt(title, body string, at time.Time) (string, error)
	ScheduleAfter(title, body string, delay time.Duration) (string, error)
	Cancel(id string) error
	ListScheduled() ([]Pending, error)
	PermissionGranted() bool
}

// Sender is the delivery channel behind the dispatcher.
type Sender interface {
	Ready() bool
	Send(title, body string) error
}

// FCMDispatcher persists notifications as PendingNotification rows; the
// cron dispatch loop delivers due rows through the Sender. Registration
// and delivery being decoupled is what lets notifications survive
// restarts.
type FCMDispatcher struct {
	DB     *gorm.DB
	Sender Sender
	Now    func() time.Time
}

func NewFCMDispatcher(db *gorm.DB, sender Sender) *FCMDispatcher {
	return &FCMDispatcher{DB: db, Sender: sender, Now: time.Now}
}

// PermissionGranted reports whether delivery is possible: Firebase is up
// and the install has registered a device token.
func (d *FCMDispatcher) PermissionGranted() bool {
	if d.Sender == nil || !d.Sender.Ready() {
		return false
	}
	return Models.CurrentToken(d.DB) != ""
}

// ScheduleAt registers a notification to fire at an absolute time and
// returns its id. Past fire times are accepted; the dispatch loop sends
// them on its next tick.
func (d *FCMDispatcher) ScheduleAt(title, body string, at time.Time) (string, error) {
	if !d.PermissionGranted() {
		return "", errors.New("notification permission not granted")
	}
	row := Models.PendingNotification{
		Title:  title,
		Body:   body,
		FireAt: at,
	}
	if err := d.DB.Create(&row).Error; err != nil {
		return "", fmt.Errorf("registering notification: %w", err)
	}
	return strconv.FormatUint(uint64(row.ID), 10), nil
}

// ScheduleAfter registers a notification to fire after a relative delay.
func (d *FCMDispatcher) ScheduleAfter(title, body string, delay time.Duration) (string, error) {
	return d.ScheduleAt(title, body, d.Now().Add(delay))
}

// Cancel removes a scheduled notification. Unknown or already-sent ids
// are a no-op, not an error.
func (d *FCMDispatcher) Cancel(id string) error {
	rowID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil
	}
	return d.DB.Model(&Models.PendingNotification{}).
		Where("id = ? AND sent = ?", rowID, false).
		Update("canceled", true).Error
}

// ListScheduled returns every notification still waiting to fire.
func (d *FCMDispatcher) ListScheduled() ([]Pending, error) {
	var rows []Models.PendingNotification
	err := d.DB.Where("sent = ? AND canceled = ?", false, false).
		Order("fire_at").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	pending := make([]Pending, 0, len(rows))
	for _, row := range rows {
		pending = append(pending, Pending{
			ID:     strconv.FormatUint(uint64(row.ID), 10),
			Title:  row.Title,
			Body:   row.Body,
			FireAt: row.FireAt,
		})
	}
	return pending, nil
}
