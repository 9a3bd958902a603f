package config

import "time"

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "DATAFLOW_API_URL"
	EnvDataDir        = "DATAFLOW_DATA_DIR"
	EnvSessionStore   = "DATAFLOW_SESSION_STORE"
	EnvRequestTimeout = "DATAFLOW_REQUEST_TIMEOUT"
	EnvLogLevel       = "DATAFLOW_LOG_LEVEL"
	EnvLogFormat      = "DATAFLOW_LOG_FORMAT"
)

// parseEnv overlays cfg with non-empty environment variables. A timeout that
// does not parse as a Go duration is ignored.
func parseEnv(cfg *Config, lookupEnv func(string) (string, bool)) {
	set := func(name string, dst *string) {
		if v, ok := lookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	set(EnvAPIURL, &cfg.APIBaseURL)
	set(EnvDataDir, &cfg.DataDir)
	set(EnvSessionStore, &cfg.SessionStore)
	set(EnvLogLevel, &cfg.LogLevel)
	set(EnvLogFormat, &cfg.LogFormat)

	if v, ok := lookupEnv(EnvRequestTimeout); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
