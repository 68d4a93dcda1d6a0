package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONIncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf, Component: ComponentEngine})
	l.Info("ran", FieldTrials, 500)

	out := buf.String()
	assert.Contains(t, out, `"component":"engine"`)
	assert.Contains(t, out, `"trials":500`)
	assert.Equal(t, 1, strings.Count(out, `"component"`))
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf}).WithComponent(ComponentAPI)
	l.Warn("slow")
	assert.Equal(t, ComponentAPI, l.Component())
	assert.Contains(t, buf.String(), "component=api")
	assert.NotContains(t, buf.String(), "component=app")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestPrintfAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	p := New(Config{Level: slog.LevelWarn, Output: &buf}).Printf()
	p.Infof("hidden %d", 1)
	p.Warnf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard()
	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}
