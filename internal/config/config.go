package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string

	DBPath string

	EnableBackup          bool
	BackupInterval        time.Duration
	GoogleCredentialsFile string
	GoogleDriveFolderID   string

	LogLevel string
}

// LoadConfig reads an optional .env file and then the environment. Only the
// Telegram token is mandatory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:         os.Getenv("TELEGRAM_TOKEN"),
		DBPath:                getEnv("DB_PATH", "./data/countbook.db"),
		EnableBackup:          os.Getenv("ENABLE_BACKUP") != "",
		BackupInterval:        getEnvDuration("BACKUP_INTERVAL", 24*time.Hour),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		GoogleDriveFolderID:   os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	if cfg.EnableBackup && cfg.GoogleCredentialsFile == "" {
		return nil, fmt.Errorf("ENABLE_BACKUP is set but GOOGLE_CREDENTIALS_FILE is not")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
