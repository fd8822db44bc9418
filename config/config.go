// Package config loads solver defaults from the environment and an
// optional config file.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the tunable defaults of the CLI and shell. Every field can
// be overridden per invocation by a flag or shell command.
type Config struct {
	// LogLevel is a zerolog level name (debug, info, warn, ...).
	LogLevel string
	// DefaultAlgorithm is used when no algorithm flag is given.
	DefaultAlgorithm string
	// DefaultHeuristic is the heuristic id for informed strategies.
	DefaultHeuristic string
	// SearchOrder is the generator direction order (e.g. "UDLR", "R").
	SearchOrder string
	// SMAMemoryLimit caps SMA*'s resident nodes; 0 derives it from RAM.
	SMAMemoryLimit int
}

// Load reads configuration from NPUZZLE_* environment variables and, if
// present, an npuzzle.yaml file in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("npuzzle")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("default-algorithm", "astar")
	v.SetDefault("default-heuristic", "MD")
	v.SetDefault("search-order", "UDLR")
	v.SetDefault("sma-memory-limit", 0)

	v.SetConfigName("npuzzle")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		LogLevel:         v.GetString("log-level"),
		DefaultAlgorithm: v.GetString("default-algorithm"),
		DefaultHeuristic: v.GetString("default-heuristic"),
		SearchOrder:      v.GetString("search-order"),
		SMAMemoryLimit:   v.GetInt("sma-memory-limit"),
	}, nil
}
