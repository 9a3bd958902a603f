// Package config loads runtime configuration for the dataflow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are YAML, anything else JSON. ${VAR} references are
//     expanded from the environment before decoding.
//  3. DATAFLOW_* environment variables (see env.go).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the accounts API
//	-d string   local data directory
//	-s string   session store: sqlite, file or memory
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds:
//
//	api_url: https://api.example.com
//	data_dir: ${HOME}/.dataflow
//	session_store: sqlite
//	request_timeout: 10s
//	log_level: info
//	log_format: text
package config
