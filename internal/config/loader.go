// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. MTUQ_VARIANCE.
const EnvPrefix = "MTUQ"

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty), ./.env and the environment.
func Load(path string) (*Config, error) {
	return load(path, ".env")
}

func load(path, dotenv string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return nil, &ConfigError{Stage: StageYAML, Source: path, Err: err}
		}
	}

	// A missing .env is fine; existing variables are never overridden.
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigError{Stage: StageDotenv, Source: dotenv, Err: err}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, &ConfigError{Stage: StageEnv, Err: err}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, &ConfigError{Stage: StageValidate, Err: err}
	}

	return &cfg, nil
}

func readYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
