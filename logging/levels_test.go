package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"trace", TraceLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := LevelFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFromStringInvalid(t *testing.T) {
	_, err := LevelFromString("verbose")
	assert.Error(t, err)
}

func TestTraceLevelBelowDebug(t *testing.T) {
	assert.Less(t, TraceLevel, zapcore.DebugLevel)
}

func TestLevelTextRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		want Level
	}{
		{"trace", Level(TraceLevel)},
		{"debug", Level(zapcore.DebugLevel)},
		{"warn", Level(zapcore.WarnLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var l Level
			require.NoError(t, l.UnmarshalText([]byte(tt.text)))
			assert.Equal(t, tt.want, l)

			out, err := l.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.text, string(out))
		})
	}

	var l Level
	assert.Error(t, l.UnmarshalText([]byte("verbose")))
}

func TestLevelEnabled(t *testing.T) {
	l := Level(zapcore.InfoLevel)
	assert.True(t, l.Enabled(zapcore.InfoLevel))
	assert.True(t, l.Enabled(zapcore.ErrorLevel))
	assert.False(t, l.Enabled(zapcore.DebugLevel))
	assert.Equal(t, zapcore.InfoLevel, l.Zap())
}
