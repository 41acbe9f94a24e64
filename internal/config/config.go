package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string // empty: in-memory store

	LogLevel  string
	LogFormat string

	// Sheet source
	SheetID         string
	SheetsBaseURL   string
	SheetLayoutFile string // optional JSON file replacing the built-in tab layouts
	FetchTimeout    time.Duration

	// Import pacing
	SyncInterval time.Duration // 0 disables the background sync
	BatchSize    int
	BatchPause   time.Duration

	WebhookAPIKey string

	// Redis is optional; it backs the cross-instance run lock and the last report.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RunLockTTL    time.Duration

	CVFetchTimeout time.Duration

	// EnvFile is the .env file that was loaded, "" when none was found.
	EnvFile string
}

// LoadDefaults fills c with the production defaults.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.SheetsBaseURL = "https://docs.google.com"
	c.FetchTimeout = 10 * time.Second
	c.SyncInterval = 5 * time.Minute
	c.BatchSize = 25
	c.BatchPause = 300 * time.Millisecond
	c.RunLockTTL = 10 * time.Minute
	c.CVFetchTimeout = 30 * time.Second
}

// LoadConfig reads .env (falling back to ../../.env) and overlays the
// process environment on top of the defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	for _, path := range []string{".env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			cfg.EnvFile = path
			break
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadEnv() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("DATABASE_URL", &c.DatabaseURL)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("SHEET_ID", &c.SheetID)
	str("SHEETS_BASE_URL", &c.SheetsBaseURL)
	str("SHEET_LAYOUT_FILE", &c.SheetLayoutFile)
	str("WEBHOOK_API_KEY", &c.WebhookAPIKey)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"FETCH_TIMEOUT", &c.FetchTimeout},
		{"SYNC_INTERVAL", &c.SyncInterval},
		{"BATCH_PAUSE", &c.BatchPause},
		{"RUN_LOCK_TTL", &c.RunLockTTL},
		{"CV_FETCH_TIMEOUT", &c.CVFetchTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		if parsed < 0 {
			return fmt.Errorf("%s: must not be negative", d.key)
		}
		*d.dst = parsed
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"BATCH_SIZE", &c.BatchSize},
		{"REDIS_DB", &c.RedisDB},
	}
	for _, n := range ints {
		v := os.Getenv(n.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", n.key, err)
		}
		*n.dst = parsed
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE: must be positive, got %d", c.BatchSize)
	}
	return nil
}

// SheetURL is the CSV export endpoint of the configured spreadsheet, without
// the sheet name.
func (c *Config) SheetURL() string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq", c.SheetsBaseURL, c.SheetID)
}
