package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Telegram front-end. Empty token disables it (console mode only).
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// Speech recognition for voice notes. Empty key disables transcription;
	// text input still works.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// Storage
	DataPath    string `env:"ATM_DATA_PATH" envDefault:"data/atm.json"`
	JournalPath string `env:"ATM_JOURNAL_PATH" envDefault:"data/journal.db"`

	// Utterance journal for dictionary tuning. Empty disables it.
	TranscriptLogPath string `env:"ATM_TRANSCRIPT_LOG_PATH"`

	// Factory overrides, applied only when no saved snapshot exists.
	PIN     string `env:"ATM_PIN" envDefault:"1234"`
	Balance int64  `env:"ATM_BALANCE" envDefault:"50000"`

	// Background snapshot flush schedule (robfig/cron spec).
	SnapshotCron string `env:"ATM_SNAPSHOT_CRON" envDefault:"@every 5m"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
