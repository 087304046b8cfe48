// logging/testing.go
package logging

import (
	"regexp"
	"strings"
	"testing"

	"github.com/clywell/clywell-logging/redact"
	"go.uber.org/zap/zapcore"
)

// TestLogger wraps Logger with an in-memory capture for assertions. All
// levels down to Trace are captured; the default enrichers are active, so
// captured entries carry CorrelationId/RequestId the way production ones
// would.
type TestLogger struct {
	*Logger
	capture *Capture
}

// NewTestLogger creates a logger for testing with full observation.
func NewTestLogger() *TestLogger {
	core, capture := NewCapture(TraceLevel)
	return &TestLogger{
		Logger:  NewFromCore(core),
		capture: capture,
	}
}

// Capture returns the underlying capture for direct queries.
func (t *TestLogger) Capture() *Capture {
	return t.capture
}

// All returns all captured entries.
func (t *TestLogger) All() []Entry {
	return t.capture.All()
}

// Reset clears all captured entries.
func (t *TestLogger) Reset() {
	t.capture.Clear()
}

// ShouldHaveLogged fails the test unless at least one entry exists at
// exactly the given level. The failure names the expected level, the actual
// count, and a sample of what was captured.
func (t *TestLogger) ShouldHaveLogged(tb testing.TB, level zapcore.Level) {
	tb.Helper()
	if n := t.capture.CountAt(level); n == 0 {
		tb.Errorf("expected at least one log at %v, got 0 (captured %d total: %s)",
			level, t.capture.Count(), t.sample())
	}
}

// ShouldNotHaveLogged fails the test if any entry exists at exactly the
// given level.
func (t *TestLogger) ShouldNotHaveLogged(tb testing.TB, level zapcore.Level) {
	tb.Helper()
	if n := t.capture.CountAt(level); n != 0 {
		tb.Errorf("expected no logs at %v, got %d: %s", level, n, t.sample())
	}
}

// ShouldHaveLoggedMessage fails the test unless an entry's message contains
// msgContains (case-insensitive), optionally restricted to a level.
func (t *TestLogger) ShouldHaveLoggedMessage(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	for _, e := range t.capture.MessageContains(msgContains) {
		if e.Level == level {
			return
		}
	}
	tb.Errorf("expected log at %v containing %q, captured %d total: %s",
		level, msgContains, t.capture.Count(), t.sample())
}

// ShouldHaveProperty fails the test unless an entry whose message contains
// msgContains also carries the named property with expected in its string
// rendering.
func (t *TestLogger) ShouldHaveProperty(tb testing.TB, msgContains, name, expected string) {
	tb.Helper()
	if name == "" {
		tb.Fatalf("property name cannot be empty")
	}
	for _, e := range t.capture.MessageContains(msgContains) {
		if f, ok := e.Property(name); ok && strings.Contains(fieldValueString(f), expected) {
			return
		}
	}
	tb.Errorf("property %q=%q not found on any entry matching %q (captured %d total: %s)",
		name, expected, msgContains, t.capture.Count(), t.sample())
}

// sample renders up to three captured messages for failure output.
func (t *TestLogger) sample() string {
	entries := t.capture.All()
	msgs := make([]string, 0, 3)
	for i, e := range entries {
		if i == 3 {
			msgs = append(msgs, "...")
			break
		}
		msgs = append(msgs, e.Level.String()+": "+e.Message)
	}
	if len(msgs) == 0 {
		return "(nothing captured)"
	}
	return "[" + strings.Join(msgs, "; ") + "]"
}

// AssertNoSecrets verifies no sensitive data leaked into captured entries.
func (t *TestLogger) AssertNoSecrets(tb testing.TB) {
	tb.Helper()
	sensitiveKeys := []string{"password", "secret", "token", "api_key", "authorization", "bearer", "credential", "private_key"}
	sensitivePatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)bearer\s+\S+`),
		regexp.MustCompile(`(?i)api[_-]?key[=:]\s*\S+`),
	}

	for _, entry := range t.capture.All() {
		for _, re := range sensitivePatterns {
			if re.MatchString(entry.Message) {
				tb.Errorf("sensitive pattern in message: %q", entry.Message)
			}
		}

		for _, field := range entry.Fields {
			keyLower := strings.ToLower(field.Key)
			for _, sensitive := range sensitiveKeys {
				if strings.Contains(keyLower, sensitive) {
					if field.Type == zapcore.StringType {
						if !strings.Contains(field.String, redact.Token) && field.String != "" {
							tb.Errorf("sensitive field %q not redacted: %q", field.Key, field.String)
						}
					}
				}
			}

			if field.Type == zapcore.StringType {
				for _, re := range sensitivePatterns {
					if re.MatchString(field.String) {
						tb.Errorf("sensitive pattern in field %q: %q", field.Key, field.String)
					}
				}
			}
		}
	}
}
