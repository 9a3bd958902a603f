package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/dataflow/internal/flagx"
)

// FlagsWithValue lists every flag that takes a value, including the config
// file flags. The CLI uses it to find the positional command after them.
var FlagsWithValue = []string{"-a", "-d", "-s", "-t", "-l", "-c", "-config", "--config"}

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the accounts API
//	-d string   local data directory
//	-s string   session store: sqlite, file or memory
//	-t int      request timeout in seconds
//	-l string   log level
//
// args are filtered with flagx.FilterArgs first so the config file flag and
// the positional command do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("dataflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the accounts API")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.SessionStore, "s", cfg.SessionStore, "session store (sqlite, file, memory)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// the int flag cannot carry sub-second values, so only an explicit -t wins
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
