package Config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("FIREBASE_CREDENTIALS_FILE", "")
	t.Setenv("DISPATCH_INTERVAL_SECONDS", "")

	cfg := Load()
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "database.db", cfg.DBPath)
	assert.Equal(t, "serviceAccountKey.json", cfg.FirebaseCredentialsFile)
	assert.Equal(t, 60, cfg.DispatchIntervalSeconds)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/cropcare.db")
	t.Setenv("DISPATCH_INTERVAL_SECONDS", "15")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/tmp/cropcare.db", cfg.DBPath)
	assert.Equal(t, 15, cfg.DispatchIntervalSeconds)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("DISPATCH_INTERVAL_SECONDS", "not-a-number")
	assert.Equal(t, 60, Load().DispatchIntervalSeconds)

	t.Setenv("DISPATCH_INTERVAL_SECONDS", "-5")
	assert.Equal(t, 60, Load().DispatchIntervalSeconds)
}
