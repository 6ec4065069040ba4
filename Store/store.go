package Store

import (
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"CropCare/Models"
)

const (
	schedulesKey = "schedules"
	remindersKey = "reminders"
)

// KV is durable key-value storage scoped to this install. Each key holds
// one serialized collection which is always read and written whole.
type KV struct {
	DB *gorm.DB
}

func NewKV(db *gorm.DB) *KV {
	return &KV{DB: db}
}

// Get returns the bytes stored under key. The second return is false when
// the key has never been written.
func (kv *KV) Get(key string) ([]byte, bool, error) {
	var entry Models.KVEntry
	err := kv.DB.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

// Set overwrites the bytes stored under key.
func (kv *KV) Set(key string, value []byte) error {
	entry := Models.KVEntry{Key: key, Value: value}
	return kv.DB.Save(&entry).Error
}

// ScheduleStore persists the schedule and reminder collections as JSON
// arrays (dates as ISO-8601 strings). It owns both collections; callers
// read-modify-write the whole array.
type ScheduleStore struct {
	kv *KV
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{kv: NewKV(db)}
}

// LoadSchedules returns every persisted schedule. Missing or corrupt data
// degrades to an empty list; the failure is only logged.
func (s *ScheduleStore) LoadSchedules() []Models.Schedule {
	raw, found, err := s.kv.Get(schedulesKey)
	if err != nil {
		log.Println("Error loading schedules:", err)
		return []Models.Schedule{}
	}
	if !found {
		return []Models.Schedule{}
	}
	var schedules []Models.Schedule
	if err := json.Unmarshal(raw, &schedules); err != nil {
		log.Println("Error decoding schedules:", err)
		return []Models.Schedule{}
	}
	return schedules
}

// SaveSchedules replaces the persisted schedule collection.
func (s *ScheduleStore) SaveSchedules(schedules []Models.Schedule) error {
	raw, err := json.Marshal(schedules)
	if err != nil {
		return err
	}
	return s.kv.Set(schedulesKey, raw)
}

// LoadReminders returns every persisted reminder, same degradation
// contract as LoadSchedules.
func (s *ScheduleStore) LoadReminders() []Models.Reminder {
	raw, found, err := s.kv.Get(remindersKey)
	if err != nil {
		log.Println("Error loading reminders:", err)
		return []Models.Reminder{}
	}
	if !found {
		return []Models.Reminder{}
	}
	var reminders []Models.Reminder
	if err := json.Unmarshal(raw, &reminders); err != nil {
		log.Println("Error decoding reminders:", err)
		return []Models.Reminder{}
	}
	return reminders
}

// SaveReminders replaces the persisted reminder collection.
func (s *ScheduleStore) SaveReminders(reminders []Models.Reminder) error {
	raw, err := json.Marshal(reminders)
	if err != nil {
		return err
	}
	return s.kv.Set(remindersKey, raw)
}
