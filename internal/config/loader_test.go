// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// unsetAfter removes variables a .env file may have injected.
func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_Precedence(t *testing.T) {
	yml := writeFile(t, "mtuq.yaml", "variance: 0.25\nkernel_scale: 1\nconcurrency: 4\nlog_level: debug\n")
	dotenv := writeFile(t, ".env", "MTUQ_CONCURRENCY=8\nMTUQ_DEFAULT_FORMAT=pdf\n")
	unsetAfter(t, "MTUQ_CONCURRENCY", "MTUQ_DEFAULT_FORMAT")
	t.Setenv("MTUQ_DEFAULT_FORMAT", "svg")

	cfg, err := load(yml, dotenv)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Variance, "yaml over default")
	assert.Equal(t, 1.0, cfg.KernelScale)
	assert.Equal(t, 8, cfg.Concurrency, "dotenv over yaml")
	assert.Equal(t, "svg", cfg.DefaultFormat, "environment over dotenv")
	assert.Equal(t, "text", cfg.LogFormat, "default kept")
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoad_Errors(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent.env")
	cases := []struct {
		name  string
		setup func(t *testing.T) string
		stage Stage
	}{
		{"MissingYAML", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, StageYAML},
		{"UnknownKey", func(t *testing.T) string { return writeFile(t, "c.yaml", "varianse: 1\n") }, StageYAML},
		{"BadEnvValue", func(t *testing.T) string { t.Setenv("MTUQ_VARIANCE", "lots"); return "" }, StageEnv},
		{"NonPositiveVariance", func(t *testing.T) string { return writeFile(t, "c.yaml", "variance: 0\n") }, StageValidate},
		{"BadFormat", func(t *testing.T) string { t.Setenv("MTUQ_DEFAULT_FORMAT", "gif"); return "" }, StageValidate},
		{"BadTolerance", func(t *testing.T) string { return writeFile(t, "c.yaml", "rate_tolerance: 1.5\n") }, StageValidate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(tc.setup(t), absent)
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tc.stage, ce.Stage)
		})
	}
}

func TestLoad_EmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := load(writeFile(t, "empty.yaml", ""), filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}
