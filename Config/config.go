package Config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port   string `validate:"required"`
	APIKey string `validate:"required"`

	// IANA timezone the unit operates in; dates and cron firing times are
	// resolved against it.
	Timezone            string `validate:"required"`
	MorningReminderTime string `validate:"required,datetime=15:04"`
	EveningReminderTime string `validate:"required,datetime=15:04"`

	FirebaseCredentialsFile string `validate:"required"`
	FirebaseProjectID       string

	DatabasePath string `validate:"required"`

	SlackBotToken     string
	SlackAlertChannel string `validate:"required_with=SlackBotToken"`
}

// Load reads the .env file (if present), applies defaults, and validates the
// result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "3001"),
		APIKey:                  getEnv("API_KEY", ""),
		Timezone:                getEnv("TIMEZONE", "America/New_York"),
		MorningReminderTime:     getEnv("MORNING_REMINDER_TIME", "07:00"),
		EveningReminderTime:     getEnv("EVENING_REMINDER_TIME", "19:00"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "./serviceAccountKey.json"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		DatabasePath:            getEnv("DATABASE_PATH", "garrison.db"),
		SlackBotToken:           getEnv("SLACK_BOT_TOKEN", ""),
		SlackAlertChannel:       getEnv("SLACK_ALERT_CHANNEL", ""),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
