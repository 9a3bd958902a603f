package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/dataflow/internal/client/session"
)

// Config holds runtime settings for the dataflow CLI.
type Config struct {
	// APIBaseURL is the root of the accounts backend, e.g. http://localhost:3000.
	APIBaseURL string
	// DataDir holds the local database and, for the file store, the token.
	DataDir string
	// SessionStore selects where the token is kept: sqlite, file or memory.
	SessionStore string
	// RequestTimeout bounds every backend round trip.
	RequestTimeout time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.DataDir = ".dataflow"
	c.SessionStore = string(session.KindSQLite)
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds the configuration from os.Args and the process
// environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}

// Load applies defaults, then the config file named by -c/-config, then
// environment variables, then flags. Later sources override earlier ones.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args, lookupEnv); err != nil {
		return nil, err
	}
	parseEnv(cfg, lookupEnv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api url %q: %w", c.APIBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api url %q: must be an absolute http(s) URL", c.APIBaseURL)
	}

	if _, err := session.ParseKind(c.SessionStore); err != nil {
		return err
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}

	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data dir must not be empty")
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}

	return nil
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "dataflow.db")
}

// TokenPath is where the file session store keeps the token.
func (c *Config) TokenPath() string {
	return filepath.Join(c.DataDir, "token")
}
