package config

import "time"

// Config holds runtime settings for the EduTalk client.
//
// SimulatedLatency is the pause login and signup take before resolving; it
// models the round trip of a remote call and can be set to zero in tests.
type Config struct {
	DatabaseDSN      string
	SimulatedLatency time.Duration
	LogLevel         string
	LogFormat        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "edutalk.db"
	c.SimulatedLatency = time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config from defaults, then overlays the optional
// config file, the environment and finally the flags found in args (usually
// os.Args[1:]). Malformed input panics.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
