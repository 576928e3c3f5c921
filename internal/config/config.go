package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// maxReminderTick is half the scheduler's one-minute match window; a coarser
// tick could step over a slot.
const maxReminderTick = 30 * time.Second

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken      string        `envconfig:"BOT_TOKEN" required:"true"`
	StoreDriver   string        `envconfig:"STORE_DRIVER" default:"sqlite"` // sqlite|postgres|memory
	DBPath        string        `envconfig:"DB_PATH" default:"./data/diary.db"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`    // debug|info|warn|error
	LogEncoding   string        `envconfig:"LOG_ENCODING" default:"json"` // json|console
	HTTPAddr      string        `envconfig:"HTTP_ADDR" default:":8080"`   // healthz + metrics
	ReminderTick  time.Duration `envconfig:"REMINDER_TICK" default:"30s"`
	SessionIdle   time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"24h"`
	MetricsNS     string        `envconfig:"METRICS_NAMESPACE" default:"bpdiary"`
	DebugTelegram bool          `envconfig:"DEBUG_TELEGRAM" default:"false"`
}

// Load reads an optional .env file, then environment variables into Config.
func Load() (Config, error) {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}
	switch c.StoreDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.LogEncoding {
	case "json", "console":
	default:
		return fmt.Errorf("unknown LOG_ENCODING %q", c.LogEncoding)
	}
	if c.ReminderTick <= 0 || c.ReminderTick > maxReminderTick {
		return fmt.Errorf("REMINDER_TICK must be in (0, %s], got %s", maxReminderTick, c.ReminderTick)
	}
	if c.SessionIdle < 0 {
		return errors.New("SESSION_IDLE_TIMEOUT must not be negative")
	}
	return nil
}
