// Package config loads runtime configuration for the EduTalk terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Environment variables.
//  4. Command-line flags, which override everything else.
//
// Files and environment are read through cleanenv; only values that are
// actually present overlay the previous stage.
//
// Supported flags
//
//	-d string   database DSN (SQLite file path or "file:" URI)
//	-l int      simulated latency of login/signup, in milliseconds
//	-v string   log level: debug, info, warn, error
//	-f string   log format: text or json
//
// Environment
//
//	EDUTALK_DB_DSN, EDUTALK_LATENCY ("750ms"), EDUTALK_LOG_LEVEL, EDUTALK_LOG_FORMAT
//
// # File schema
//
//	database_dsn: data/edutalk.db
//	simulated_latency: 1s
//	log_level: info
//	log_format: text
package config
