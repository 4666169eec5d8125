// SPDX-License-Identifier: MIT

// Package config loads the settings shared by the mtuq command.
//
// Sources are applied in order, later ones overriding earlier ones:
//  1. built-in defaults (Default);
//  2. an optional YAML file;
//  3. a .env file in the working directory, if present;
//  4. MTUQ_* environment variables;
//
// and the result is validated with go-playground/validator.
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config holds every tunable of the pipeline and the command.
type Config struct {
	LogLevel      string  `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat     string  `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json"`
	Variance      float64 `yaml:"variance" envconfig:"VARIANCE" validate:"gt=0"`
	KernelScale   float64 `yaml:"kernel_scale" envconfig:"KERNEL_SCALE" validate:"gt=0"`
	RawKernel     bool    `yaml:"raw_kernel" envconfig:"RAW_KERNEL"`
	RateTolerance float64 `yaml:"rate_tolerance" envconfig:"RATE_TOLERANCE" validate:"gte=0,lt=1"`
	CachePath     string  `yaml:"cache_path" envconfig:"CACHE_PATH"`
	Concurrency   int     `yaml:"concurrency" envconfig:"CONCURRENCY" validate:"gte=0"`
	DefaultFormat string  `yaml:"default_format" envconfig:"DEFAULT_FORMAT" validate:"oneof=png jpg jpeg pdf eps ps svg tif tiff bmp"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Variance:      1,
		KernelScale:   0.5,
		DefaultFormat: "png",
	}
}

// Level returns LogLevel as a slog.Level.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}

	return l
}

// Stage names the loading step that failed.
type Stage string

const (
	StageYAML     Stage = "yaml"
	StageDotenv   Stage = "dotenv"
	StageEnv      Stage = "env"
	StageValidate Stage = "validate"
)

// ConfigError reports the failing stage and its cause.
type ConfigError struct {
	Stage  Stage
	Source string // file path, when there is one
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("config: %s %s: %v", e.Stage, e.Source, e.Err)
	}

	return fmt.Sprintf("config: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the cause.
func (e *ConfigError) Unwrap() error { return e.Err }
