package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel(" WARNING "))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel("verbose"))
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, WARN)

	l.Info("goal %d saved", 1)
	require.Empty(t, buf.String())

	l.Warn("failed to remove %s", "old.png")
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "failed to remove old.png")
}

func TestSetLevelAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, ERROR)
	l.SetLevel(DEBUG)
	require.Equal(t, DEBUG, l.GetLevel())

	l.With("component", "users").Debug("loaded")
	require.Contains(t, buf.String(), "component=users")
	require.Contains(t, buf.String(), "msg=loaded")
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, INFO)
	code := -1
	l.exitFn = func(c int) { code = c }

	l.Fatal("cannot open %s", "uploads")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "cannot open uploads")
}
