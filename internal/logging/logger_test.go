package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Level: "nope"})
	assert.Error(t, err)
	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
	l, err := New(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core).Named("top").With(String("molecule", "Protein_A"))
	l.Warn("skipped residue", String("residue", "XYZ"), Int("resid", 12), Err(errors.New("boom")))
	l.Debug("beads", Float64("fc", 500), Bool("elastic", true), Strings("names", []string{"BB"}))

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "skipped residue", entry.Message)
	assert.Equal(t, "top", entry.LoggerName)
	ctx := entry.ContextMap()
	assert.Equal(t, "Protein_A", ctx["molecule"])
	assert.Equal(t, "XYZ", ctx["residue"])
	assert.EqualValues(t, 12, ctx["resid"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNop(t *testing.T) {
	l := OrNop(nil)
	assert.NotPanics(t, func() {
		l.With(Int("a", 1)).Named("x").Info("hi")
	})
	assert.NoError(t, l.Sync())
}
