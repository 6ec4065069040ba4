package Store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"CropCare/Models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Models.KVEntry{}))
	return db
}

func TestKVRoundTrip(t *testing.T) {
	kv := NewKV(openTestDB(t))

	_, found, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set("k", []byte("v1")))
	raw, found, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v1"), raw)

	// Set overwrites
	require.NoError(t, kv.Set("k", []byte("v2")))
	raw, _, err = kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), raw)
}

func TestScheduleRoundTrip(t *testing.T) {
	store := NewScheduleStore(openTestDB(t))

	planting := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	schedules := []Models.Schedule{
		{
			Crop:         "Ibirayi",
			PlantingDate: planting,
			FarmName:     "Plot A",
			Tasks: []Models.Task{
				{Date: planting, Description: "Gutera Ibirayi", NotificationIDs: []string{"1", "2"}},
				{Date: planting.AddDate(0, 0, 14), Description: "Gukuraho ibyatsi no kurwanya udukoko"},
			},
		},
	}
	require.NoError(t, store.SaveSchedules(schedules))

	loaded := store.LoadSchedules()
	require.Len(t, loaded, 1)
	assert.Equal(t, "Ibirayi", loaded[0].Crop)
	assert.Equal(t, "Plot A", loaded[0].FarmName)
	assert.True(t, planting.Equal(loaded[0].PlantingDate))
	require.Len(t, loaded[0].Tasks, 2)
	assert.True(t, planting.AddDate(0, 0, 14).Equal(loaded[0].Tasks[1].Date))
	assert.Equal(t, []string{"1", "2"}, loaded[0].Tasks[0].NotificationIDs)
}

func TestLoadSchedulesEmptyWhenNothingPersisted(t *testing.T) {
	store := NewScheduleStore(openTestDB(t))
	assert.Empty(t, store.LoadSchedules())
	assert.Empty(t, store.LoadReminders())
}

func TestLoadSchedulesCorruptPayloadDegradesToEmpty(t *testing.T) {
	db := openTestDB(t)
	kv := NewKV(db)
	require.NoError(t, kv.Set("schedules", []byte("{not json")))
	require.NoError(t, kv.Set("reminders", []byte("[3, 4")))

	store := NewScheduleStore(db)
	assert.Empty(t, store.LoadSchedules())
	assert.Empty(t, store.LoadReminders())
}

func TestReminderRoundTrip(t *testing.T) {
	store := NewScheduleStore(openTestDB(t))

	reminders := []Models.Reminder{
		{Title: "R2D2", Body: "Water the field", FireTime: 1757937600000, Unit: "days", NotificationID: "7"},
		{Title: "Old", Body: "No id record", FireTime: 1757937500000, Unit: "weeks"},
	}
	require.NoError(t, store.SaveReminders(reminders))

	loaded := store.LoadReminders()
	require.Len(t, loaded, 2)
	assert.Equal(t, reminders, loaded)
}
