package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	DBPath        string `envconfig:"DB_PATH" default:"bot.db"`
	Debug         bool   `envconfig:"DEBUG"`
}

// Load reads the configuration from the environment, with .env as a
// fallback for local runs.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
