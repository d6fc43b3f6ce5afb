package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port            string        `env:"PORT" envDefault:"8501"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:8501"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	CorporateDomain string        `env:"CORPORATE_DOMAIN" envDefault:"expocci.com"`
	Shows           []string      `env:"SHOWS" envSeparator:"," envDefault:"Miami Boat Show 2025,New York Auto Show 2025,Paris Expo 2025"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	FrontendDir     string        `env:"FRONTEND_DIR"`

	Accounts AccountsConfig
	Sheets   SheetsConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Feedback FeedbackConfig
}

// AccountsConfig holds the credential store location
type AccountsConfig struct {
	UsersFile string `env:"USERS_FILE" envDefault:"users.json"`
}

// SheetsConfig holds spreadsheet backend configuration
type SheetsConfig struct {
	Backend          string        `env:"SHEETS_BACKEND" envDefault:"google"`
	CredentialsFile  string        `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	OrdersSheetID    string        `env:"ORDERS_SHEET_ID"`
	ChecklistSheetID string        `env:"CHECKLIST_SHEET_ID"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

// RedisConfig holds the optional session store connection
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"PG_HOST"`
	Port     string `env:"PG_PORT" envDefault:"5432"`
	Username string `env:"PG_USERNAME" envDefault:"postgres"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE" envDefault:"orders_app"`
	Debug    bool   `env:"DB_DEBUG" envDefault:"false"`
	// Embedded starts a local PostgreSQL process instead of dialing Host
	Embedded bool   `env:"PG_EMBEDDED" envDefault:"false"`
	DataPath string `env:"PG_DATA_PATH" envDefault:"./db_data"`
}

// FeedbackConfig holds the file-backed feedback log location
type FeedbackConfig struct {
	File string `env:"FEEDBACK_FILE" envDefault:"feedback.json"`
}

// Enabled reports whether feedback should be stored in PostgreSQL
func (d DatabaseConfig) Enabled() bool {
	return d.Host != "" || d.Embedded
}

// Enabled reports whether sessions should live in Redis
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Load loads configuration from the environment and an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express
func (c *Config) Validate() error {
	switch c.Sheets.Backend {
	case "google":
		if c.Sheets.OrdersSheetID == "" {
			return fmt.Errorf("ORDERS_SHEET_ID is required for the google sheets backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown SHEETS_BACKEND %q", c.Sheets.Backend)
	}

	shows := c.Shows[:0]
	for _, s := range c.Shows {
		if s = strings.TrimSpace(s); s != "" {
			shows = append(shows, s)
		}
	}
	if len(shows) == 0 {
		return fmt.Errorf("SHOWS must name at least one show")
	}
	c.Shows = shows

	c.CorporateDomain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.CorporateDomain)), "@")
	return nil
}

// DefaultShow is the show activated for a fresh session
func (c *Config) DefaultShow() string {
	return c.Shows[0]
}

// HasShow reports whether name is one of the configured shows
func (c *Config) HasShow(name string) bool {
	for _, s := range c.Shows {
		if s == name {
			return true
		}
	}
	return false
}
