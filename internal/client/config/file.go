package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/dataflow/internal/flagx"
	"github.com/dmitrijs2005/dataflow/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape, shared by the JSON and YAML loaders.
// Empty fields leave the current value untouched.
type fileConfig struct {
	APIBaseURL     string         `json:"api_url" yaml:"api_url"`
	DataDir        string         `json:"data_dir" yaml:"data_dir"`
	SessionStore   string         `json:"session_store" yaml:"session_store"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with its value; unknown variables become "".
func expandEnvVars(s string, lookupEnv func(string) (string, bool)) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		v, _ := lookupEnv(name)
		return v
	})
}

// parseFile overlays cfg with the file named by -c/-config, if any. Files
// ending in .yaml or .yml are YAML, everything else JSON.
func parseFile(cfg *Config, args []string, lookupEnv func(string) (string, bool)) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	expanded := []byte(expandEnvVars(string(data), lookupEnv))

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, &fc); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(expanded, &fc); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.SessionStore != "" {
		cfg.SessionStore = fc.SessionStore
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
}
