package CronJobs

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

type recordingSender struct {
	sent []string
	fail bool
}

func (s *recordingSender) Ready() bool { return true }

func (s *recordingSender) Send(title, body string) error {
	if s.fail {
		return assert.AnError
	}
	s.sent = append(s.sent, title+"|"+body)
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Models.PendingNotification{}))
	return db
}

func TestRunOnceSendsDueRows(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	rows := []Models.PendingNotification{
		{Title: "due", Body: "a", FireAt: now.Add(-time.Minute)},
		{Title: "due-too", Body: "b", FireAt: now},
		{Title: "future", Body: "c", FireAt: now.Add(time.Hour)},
		{Title: "canceled", Body: "d", FireAt: now.Add(-time.Hour), Canceled: true},
	}
	require.NoError(t, db.Create(&rows).Error)

	sender := &recordingSender{}
	loop := NewDispatchLoop(db, sender, 60, false)
	loop.now = func() time.Time { return now }

	loop.RunOnce()

	assert.Equal(t, []string{"due|a", "due-too|b"}, sender.sent)

	var sent []Models.PendingNotification
	require.NoError(t, db.Where("sent = ?", true).Order("fire_at").Find(&sent).Error)
	require.Len(t, sent, 2)
	assert.Equal(t, "due", sent[0].Title)
	require.NotNil(t, sent[0].SentAt)
	assert.True(t, now.Equal(*sent[0].SentAt))

	// A second run finds nothing left to send
	loop.RunOnce()
	assert.Len(t, sender.sent, 2)
}

func TestRunOnceLeavesFailedRowsPending(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&Models.PendingNotification{Title: "due", Body: "a", FireAt: now.Add(-time.Minute)}).Error)

	sender := &recordingSender{fail: true}
	loop := NewDispatchLoop(db, sender, 60, false)
	loop.now = func() time.Time { return now }

	loop.RunOnce()

	var row Models.PendingNotification
	require.NoError(t, db.First(&row).Error)
	assert.False(t, row.Sent)

	// Next tick, with the channel back, delivers it
	sender.fail = false
	loop.RunOnce()
	require.NoError(t, db.First(&row).Error)
	assert.True(t, row.Sent)
}
