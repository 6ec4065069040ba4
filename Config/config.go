package Config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment with a
// .env fallback.
type Config struct {
	Port                    string
	DBPath                  string
	FirebaseCredentialsFile string
	DispatchIntervalSeconds int
}

// Load reads configuration, applying defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file loaded:", err)
	}

	cfg := Config{
		Port:                    getEnv("PORT", "3001"),
		DBPath:                  getEnv("DB_PATH", "database.db"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json"),
		DispatchIntervalSeconds: getEnvInt("DISPATCH_INTERVAL_SECONDS", 60),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		log.Printf("Invalid %s value %q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
