package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/edutalk/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

// fileConfig is the DTO cleanenv fills from the config file and environment.
// Empty fields mean "not provided" and leave the runtime Config untouched.
// SimulatedLatency uses Go duration syntax, e.g. "750ms" or "1s".
type fileConfig struct {
	DatabaseDSN      string `json:"database_dsn" yaml:"database_dsn" env:"EDUTALK_DB_DSN"`
	SimulatedLatency string `json:"simulated_latency" yaml:"simulated_latency" env:"EDUTALK_LATENCY"`
	LogLevel         string `json:"log_level" yaml:"log_level" env:"EDUTALK_LOG_LEVEL"`
	LogFormat        string `json:"log_format" yaml:"log_format" env:"EDUTALK_LOG_FORMAT"`
}

// parseFile overlays cfg with the config file named by -c/-config (if any)
// and with EDUTALK_* environment variables. It panics on read or parse errors.
func parseFile(cfg *Config, args []string) {
	var fc fileConfig

	var err error
	if path := flagx.ConfigPath(args); path != "" {
		err = cleanenv.ReadConfig(path, &fc)
	} else {
		err = cleanenv.ReadEnv(&fc)
	}
	if err != nil {
		panic(err)
	}

	if err := fc.applyTo(cfg); err != nil {
		panic(err)
	}
}

func (fc *fileConfig) applyTo(cfg *Config) error {
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SimulatedLatency != "" {
		d, err := time.ParseDuration(fc.SimulatedLatency)
		if err != nil {
			return fmt.Errorf("simulated_latency: %w", err)
		}
		cfg.SimulatedLatency = d
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	return nil
}
