package server

import (
	"os"
	"strconv"
)

const (
	// DefaultAddr is the listen address used when CHATD_ADDR is unset.
	DefaultAddr = ":8888"
	// DefaultMaxClients bounds concurrent authenticated sessions.
	DefaultMaxClients = 4
	// DefaultLogLevel is a logrus level name.
	DefaultLogLevel = "info"
)

// Config holds the server settings.
type Config struct {
	Addr       string
	MaxClients int
	LogLevel   string
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{
		Addr:       DefaultAddr,
		MaxClients: DefaultMaxClients,
		LogLevel:   DefaultLogLevel,
	}
}

// NewConfigFromEnv builds a Config from CHATD_ADDR, CHATD_MAX_CLIENTS and
// CHATD_LOG_LEVEL, falling back to the defaults for anything unset or
// unparsable.
func NewConfigFromEnv() *Config {
	cfg := NewConfig()

	if addr := os.Getenv("CHATD_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if v := os.Getenv("CHATD_MAX_CLIENTS"); v != "" {
		cfg.MaxClients = parsePositiveInt(v, cfg.MaxClients)
	}
	if lvl := os.Getenv("CHATD_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg
}

func parsePositiveInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
		return parsed
	}
	return fallback
}
