package Models

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the sqlite database at path and migrates every entity.
// Call once at startup before any store or dispatcher is built.
func Connect(path string) error {
	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = connection

	if err := DB.AutoMigrate(
		&KVEntry{},
		&FCMToken{},
		&PendingNotification{},
	); err != nil {
		log.Println("auto-migrate:", err)
		return err
	}
	return nil
}
