package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DefaultMaxPages int
	Headless        bool

	// Browser/session tuning.
	NavigationTimeout time.Duration
	ProbeSelector     string
	ProbeTimeout      time.Duration
	SettleDelay       time.Duration
	PageDelayMin      time.Duration
	PageDelayMax      time.Duration

	// Optional snapshot of completed results; empty disables it.
	DatabaseURL string
}

func DefaultConfig() *Config {
	return &Config{
		Port:              "3000",
		DefaultMaxPages:   1,
		Headless:          true,
		NavigationTimeout: 60 * time.Second,
		ProbeSelector:     "a[href]",
		ProbeTimeout:      10 * time.Second,
		SettleDelay:       3 * time.Second,
		PageDelayMin:      2 * time.Second,
		PageDelayMax:      5 * time.Second,
	}
}

// FromEnv loads .env if present and overlays environment values
// onto the defaults.
func FromEnv() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}
	if v := os.Getenv("MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultMaxPages = n
		}
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	return cfg
}
