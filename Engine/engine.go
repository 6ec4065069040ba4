package Engine

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"CropCare/Catalog"
	"CropCare/Models"
	"CropCare/Notifications"
	"CropCare/Store"
	"CropCare/TimeUtils"
)

// Notification titles and the day-before body template, kept verbatim
// from the app.
const (
	taskAlertTitle   = "Kazi mu bijyanye n’ubuhinzi"
	dayBeforeTitle   = "Ikibutsa ku kazi k'ejo"
	dayBeforeBodyFmt = "Ejo uzakora: %s"
	missingFieldsMsg = "Nyamuneka wujuje ibisabwa byose."
	unknownCropMsg   = "Igihingwa wahisemo ntikizwi."
)

// ErrDispatch is returned when the schedule or reminder was persisted but
// one or more notification registrations failed. The caller surfaces a
// single generic alert; details go to the log only.
var ErrDispatch = errors.New("Gukora amamenyesha byananiranye.")

// ErrNotFound is returned when a deletion target no longer exists.
var ErrNotFound = errors.New("record not found")

// Engine orchestrates the catalog, store and dispatcher. The store is the
// source of truth: the in-memory lists are caches resynced from it after
// every successful mutation, never hand-patched. All mutations are
// serialized through one mutex because the store contract is
// read-whole / modify / write-whole.
type Engine struct {
	mu         sync.Mutex
	store      *Store.ScheduleStore
	dispatcher Notifications.Dispatcher
	now        func() time.Time

	schedules []Models.Schedule
	reminders []Models.Reminder
}

func New(store *Store.ScheduleStore, dispatcher Notifications.Dispatcher) *Engine {
	e := &Engine{
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
	e.schedules = store.LoadSchedules()
	e.reminders = store.LoadReminders()
	return e
}

// Schedules returns the cached schedule list.
func (e *Engine) Schedules() []Models.Schedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Models.Schedule, len(e.schedules))
	copy(out, e.schedules)
	return out
}

// Reminders returns the cached reminder list, sorted descending by fire
// time.
func (e *Engine) Reminders() []Models.Reminder {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Models.Reminder, len(e.reminders))
	copy(out, e.reminders)
	return out
}

// CreateSchedule validates the submission, generates the task list,
// persists the grown collection, then registers two notifications per
// task: one at the task date and one a day before. The schedule is
// persisted before any dispatch call so a partial dispatch failure never
// loses it; tasks whose registration failed are left without ids for
// RetryFailedDispatches to pick up, and ErrDispatch is returned.
func (e *Engine) CreateSchedule(crop string, plantingDate time.Time, farmName string) (Models.Schedule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if crop == "" || farmName == "" || plantingDate.IsZero() {
		return Models.Schedule{}, &ValidationError{Message: missingFieldsMsg}
	}
	if !Catalog.Supported(crop) {
		return Models.Schedule{}, &ValidationError{Field: "crop", Message: unknownCropMsg}
	}

	planned := Catalog.GenerateTasks(crop, plantingDate)
	schedule := Models.Schedule{
		Crop:         crop,
		PlantingDate: plantingDate,
		FarmName:     farmName,
		Tasks:        make([]Models.Task, 0, len(planned)),
	}
	for _, p := range planned {
		schedule.Tasks = append(schedule.Tasks, Models.Task{Date: p.Date, Description: p.Description})
	}

	schedules := e.store.LoadSchedules()
	schedules = append(schedules, schedule)
	if err := e.store.SaveSchedules(schedules); err != nil {
		return Models.Schedule{}, fmt.Errorf("saving schedules: %w", err)
	}

	dispatchFailed := false
	created := &schedules[len(schedules)-1]
	for i := range created.Tasks {
		ids, err := e.dispatchTask(&created.Tasks[i])
		// Keep partial ids from a half-failed pair so deletion and retry
		// can still reach the alert that did get registered.
		created.Tasks[i].NotificationIDs = ids
		if err != nil {
			log.Printf("Error scheduling notifications for task %q: %v", created.Tasks[i].Description, err)
			dispatchFailed = true
		}
	}

	// Second save records the dispatcher ids next to each task.
	if err := e.store.SaveSchedules(schedules); err != nil {
		return Models.Schedule{}, fmt.Errorf("saving schedules: %w", err)
	}

	e.schedules = e.store.LoadSchedules()
	result := e.schedules[len(e.schedules)-1]
	if dispatchFailed {
		return result, ErrDispatch
	}
	return result, nil
}

// dispatchTask registers the exact-time and day-before alerts for one
// task. Past dates are still registered; there is no backward-time guard.
func (e *Engine) dispatchTask(task *Models.Task) ([]string, error) {
	exactID, err := e.dispatcher.ScheduleAt(taskAlertTitle, task.Description, task.Date)
	if err != nil {
		return nil, err
	}
	dayBefore := TimeUtils.AddDays(task.Date, -1)
	beforeID, err := e.dispatcher.ScheduleAt(dayBeforeTitle, fmt.Sprintf(dayBeforeBodyFmt, task.Description), dayBefore)
	if err != nil {
		return []string{exactID}, err
	}
	return []string{exactID, beforeID}, nil
}

// DeleteSchedule removes the schedule at index, persists the reduced
// collection, and cancels every notification registered for its tasks.
func (e *Engine) DeleteSchedule(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	schedules := e.store.LoadSchedules()
	if index < 0 || index >= len(schedules) {
		return ErrNotFound
	}
	removed := schedules[index]
	schedules = append(schedules[:index], schedules[index+1:]...)
	if err := e.store.SaveSchedules(schedules); err != nil {
		return fmt.Errorf("saving schedules: %w", err)
	}

	for _, task := range removed.Tasks {
		for _, id := range task.NotificationIDs {
			if err := e.dispatcher.Cancel(id); err != nil {
				log.Printf("Error cancelling notification %s: %v", id, err)
			}
		}
	}

	e.schedules = e.store.LoadSchedules()
	return nil
}

// RetryFailedDispatches re-registers notifications for tasks whose
// earlier dispatch attempt left them without a full id pair. Returns the
// number of tasks repaired.
func (e *Engine) RetryFailedDispatches() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	schedules := e.store.LoadSchedules()
	repaired := 0
	for si := range schedules {
		for ti := range schedules[si].Tasks {
			task := &schedules[si].Tasks[ti]
			if len(task.NotificationIDs) == 2 {
				continue
			}
			// Drop any half-registered alert before re-registering the pair.
			for _, id := range task.NotificationIDs {
				if err := e.dispatcher.Cancel(id); err != nil {
					log.Printf("Error cancelling notification %s: %v", id, err)
				}
			}
			ids, err := e.dispatchTask(task)
			task.NotificationIDs = ids
			if err != nil {
				log.Printf("Retry dispatch for task %q failed: %v", task.Description, err)
				continue
			}
			repaired++
		}
	}
	if err := e.store.SaveSchedules(schedules); err != nil {
		return repaired, fmt.Errorf("saving schedules: %w", err)
	}
	e.schedules = e.store.LoadSchedules()
	return repaired, nil
}

// CreateReminder validates the submission, registers a one-shot
// notification after the computed delay, and persists the reminder with
// an absolute fire time in epoch milliseconds. The list is kept sorted
// descending by fire time.
func (e *Engine) CreateReminder(title, body string, amount float64, unit string) (Models.Reminder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateReminder(ReminderInput{Title: title, Body: body, Amount: amount, Unit: unit}); err != nil {
		return Models.Reminder{}, err
	}

	delaySeconds := int64(amount * float64(TimeUtils.UnitToSeconds(unit)))
	id, err := e.dispatcher.ScheduleAfter(title, body, time.Duration(delaySeconds)*time.Second)
	if err != nil {
		log.Printf("Error setting reminder: %v", err)
		return Models.Reminder{}, ErrDispatch
	}

	reminder := Models.Reminder{
		Title:          title,
		Body:           body,
		FireTime:       e.now().UnixMilli() + delaySeconds*1000,
		Unit:           unit,
		NotificationID: id,
	}

	reminders := e.store.LoadReminders()
	reminders = append(reminders, reminder)
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].FireTime > reminders[j].FireTime
	})
	if err := e.store.SaveReminders(reminders); err != nil {
		return Models.Reminder{}, fmt.Errorf("saving reminders: %w", err)
	}

	e.reminders = e.store.LoadReminders()
	return reminder, nil
}

// DeleteReminder removes the first value-equal entry and cancels its
// notification: by stored id when the record has one, otherwise by
// scanning the pending list for a title+body match (records persisted
// before ids existed).
func (e *Engine) DeleteReminder(target Models.Reminder) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reminders := e.store.LoadReminders()
	index := -1
	for i, r := range reminders {
		if r == target {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotFound
	}

	reminders = append(reminders[:index], reminders[index+1:]...)
	if err := e.store.SaveReminders(reminders); err != nil {
		return fmt.Errorf("saving reminders: %w", err)
	}

	if target.NotificationID != "" {
		if err := e.dispatcher.Cancel(target.NotificationID); err != nil {
			log.Printf("Error cancelling reminder notification: %v", err)
		}
	} else {
		e.cancelByContent(target.Title, target.Body)
	}

	e.reminders = e.store.LoadReminders()
	return nil
}

// cancelByContent is the legacy best-effort cancellation path for
// reminders without a stored id. Ambiguous when two reminders share a
// title and body; the first pending match is cancelled.
func (e *Engine) cancelByContent(title, body string) {
	pending, err := e.dispatcher.ListScheduled()
	if err != nil {
		log.Printf("Error fetching scheduled notifications: %v", err)
		return
	}
	for _, p := range pending {
		if p.Title == title && p.Body == body {
			if err := e.dispatcher.Cancel(p.ID); err != nil {
				log.Printf("Error cancelling reminder notification: %v", err)
			}
			return
		}
	}
}

// TimeRemaining renders the time left before a reminder fires. Derived
// on every read, never persisted.
func (e *Engine) TimeRemaining(r Models.Reminder) string {
	return TimeUtils.FormatRemaining(time.UnixMilli(r.FireTime), e.now())
}
