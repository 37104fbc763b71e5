// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info().Msg("hidden")
	logger.Warn().Str("range", "/buyer/order").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"range":"/buyer/order"`)
	assert.Contains(t, out, `"time":`)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "Console")

	logger.Debug().Msg("details")
	assert.Contains(t, buf.String(), "details")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "loud", "json")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = New(&buf, "", "json")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestResolve(t *testing.T) {
	env := map[string]string{EnvLogLevel: "debug"}
	getenv := func(k string) string { return env[k] }

	assert.Equal(t, "error", Resolve("error", getenv, EnvLogLevel, DefaultLevel))
	assert.Equal(t, "debug", Resolve("", getenv, EnvLogLevel, DefaultLevel))
	assert.Equal(t, DefaultFormat, Resolve("", getenv, EnvLogFormat, DefaultFormat))
	assert.Equal(t, DefaultFormat, Resolve("", nil, EnvLogFormat, DefaultFormat))
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, "info", "json"))

	logger := From(ctx)
	logger.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	nop := From(context.Background())
	assert.Equal(t, zerolog.Disabled, nop.GetLevel())
}
