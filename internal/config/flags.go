package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/edutalk/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-d string   database DSN
//	-l int      simulated latency (in milliseconds)
//	-v string   log level
//	-f string   log format
//
// Unknown flags are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-v", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	latency := fs.Int("l", int(cfg.SimulatedLatency.Milliseconds()), "simulated login/signup latency (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SimulatedLatency = time.Duration(*latency) * time.Millisecond
}
