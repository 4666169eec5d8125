// SPDX-License-Identifier: MIT

package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurinj/mtuq/internal/logging"
)

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, slog.LevelInfo, "json").Info("converted", "points", 9)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "converted", rec["msg"])
	assert.Equal(t, 9.0, rec["points"])

	buf.Reset()
	logging.New(&buf, slog.LevelInfo, "text").Info("converted", "points", 9)
	assert.Contains(t, buf.String(), "msg=converted points=9")
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, slog.LevelWarn, "text")
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
