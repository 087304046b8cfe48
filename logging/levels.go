// logging/levels.go
package logging

import (
	"go.uber.org/zap/zapcore"
)

// TraceLevel is a custom level below Debug for ultra-verbose logging.
// Value: -2 (Debug is -1, Info is 0)
//
// Use for:
//   - Function entry/exit
//   - Wire-level data
//   - Almost always filtered in production
const TraceLevel = zapcore.Level(-2)

// LevelFromString parses a string into a zapcore.Level, supporting "trace".
func LevelFromString(level string) (zapcore.Level, error) {
	if level == "trace" {
		return TraceLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

// Level is the config-facing level type. Its textual form is
// zapcore.Level's plus "trace", so the trace level can be set from YAML or
// environment variables.
type Level zapcore.Level

// Zap returns the underlying zapcore.Level.
func (l Level) Zap() zapcore.Level {
	return zapcore.Level(l)
}

// Enabled implements zapcore.LevelEnabler.
func (l Level) Enabled(lvl zapcore.Level) bool {
	return lvl >= zapcore.Level(l)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := LevelFromString(string(text))
	if err != nil {
		return err
	}
	*l = Level(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if zapcore.Level(l) == TraceLevel {
		return []byte("trace"), nil
	}
	return zapcore.Level(l).MarshalText()
}
