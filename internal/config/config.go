package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	WebhookURL string // IFTTT Maker webhook; empty disables notification
	LogDir     string // rotating JSON log directory; empty means console only
}

// FromEnv reads the process environment once. Callers pass the result down
// instead of consulting the environment again.
func FromEnv() Config {
	return Config{
		WebhookURL: strings.TrimSpace(os.Getenv("IFTTT_WEBHOOK_URL")),
		LogDir:     strings.TrimSpace(os.Getenv("LOG_DIR")),
	}
}

// Load applies an optional dotenv file, then reads the environment.
// Variables already set in the environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(), nil
}
