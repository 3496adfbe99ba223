package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/eagl/console/internal/store"
	"github.com/eagl/console/pkg/apiclient"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

const (
	maxHTTPTimeout = 2 * time.Minute
	configDirName  = "eagl"
)

type Config struct {
	// Environment supplied API base
	APIBaseURL    string        `env:"EAGL_API_BASE_URL"`
	// Older name for EAGL_API_BASE_URL
	APIURL        string        `env:"EAGL_API_URL"`
	// URL or file of the runtime config document
	RuntimeConfig string        `env:"EAGL_RUNTIME_CONFIG"`
	// memory, file or sqlite
	Store         string        `env:"EAGL_STORE" envDefault:"file"`
	// Record file or database (default: user config dir)
	StorePath     string        `env:"EAGL_STORE_PATH"`
	// Seals the stored record when set
	MasterKey     string        `env:"EAGL_MASTER_KEY"`
	// File holding the master key, wins over EAGL_MASTER_KEY
	MasterKeyPath string        `env:"EAGL_MASTER_KEY_PATH"`
	// Per request timeout
	HTTPTimeout   time.Duration `env:"EAGL_HTTP_TIMEOUT" envDefault:"10s"`
	// Requests per second, 0 disables pacing
	RateLimit     float64       `env:"EAGL_RATE_LIMIT" envDefault:"0"`
	RateBurst     int           `env:"EAGL_RATE_BURST" envDefault:"5"`
	// Keep the session when revalidation can't reach the API
	SoftRefresh   bool          `env:"EAGL_SOFT_REFRESH" envDefault:"false"`
	Env           string        `env:"ENV" envDefault:"prod"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"text"`

	// LogOutput overrides where logs go. Defaults to stderr.
	LogOutput io.Writer
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	c.APIBaseURL = strings.TrimSpace(c.APIBaseURL)
	c.APIURL = strings.TrimSpace(c.APIURL)
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store == "" {
		c.Store = store.DriverFile
	}

	if c.StorePath == "" {
		c.StorePath = defaultStorePath(c.Store)
	}
	if expanded, err := homedir.Expand(c.StorePath); err == nil {
		c.StorePath = expanded
	}
	if c.MasterKeyPath != "" {
		if expanded, err := homedir.Expand(c.MasterKeyPath); err == nil {
			c.MasterKeyPath = expanded
		}
	}

	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = apiclient.DefaultTimeout
	}
	c.HTTPTimeout = min(c.HTTPTimeout, maxHTTPTimeout)

	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	c.RateBurst = max(c.RateBurst, 1)

	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// EnvBase is the environment supplied API base, preferring EAGL_API_BASE_URL.
func (c Config) EnvBase() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return c.APIURL
}

// Sealed reports whether the stored record will be encrypted.
func (c Config) Sealed() bool {
	return c.MasterKey != "" || c.MasterKeyPath != ""
}

func defaultStorePath(driver string) string {
	name := "session.json"
	if driver == store.DriverSQLite {
		name = "session.db"
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join("~", ".config")
	}
	return filepath.Join(dir, configDirName, name)
}
