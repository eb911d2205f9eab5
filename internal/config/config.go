// Package config reads server settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/fatih/color"
)

type Config struct {
	Port        string // PORT
	DataDir     string // DATA_DIR, card catalog CSVs
	MaxSessions int    // MAX_SESSIONS, 0 for no limit
}

func Default() Config {
	return Config{
		Port:        "8080",
		DataDir:     "data",
		MaxSessions: 1024,
	}
}

// Load starts from Default and applies any variables that are set.
// A malformed number keeps the default and prints a warning.
func Load() Config {
	return load(os.Getenv)
}

func load(getenv func(string) string) Config {
	cfg := Default()
	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := getenv("MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			color.Yellow("MAX_SESSIONS=%q is not a non-negative integer, using %d", v, cfg.MaxSessions)
		} else {
			cfg.MaxSessions = n
		}
	}
	return cfg
}
