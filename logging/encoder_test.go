package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/clywell/clywell-logging/config"
	"github.com/clywell/clywell-logging/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newTestRedactingEncoder(t *testing.T) *RedactingEncoder {
	t.Helper()
	base := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return NewRedactingEncoder(base, redact.Default(), []string{"password", "api_key"})
}

func encode(t *testing.T, enc zapcore.Encoder, msg string, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := enc.EncodeEntry(zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Now(),
		Message: msg,
	}, fields)
	require.NoError(t, err)
	return buf.String()
}

func TestRedactingEncoderMessage(t *testing.T) {
	enc := newTestRedactingEncoder(t)

	out := encode(t, enc, "login with password: secret123")
	assert.Contains(t, out, redact.Token)
	assert.NotContains(t, out, "secret123")
}

func TestRedactingEncoderCallSiteFields(t *testing.T) {
	enc := newTestRedactingEncoder(t)

	fields := []zapcore.Field{
		zap.String("note", "card 4532-1234-5678-9010"),
		zap.String("clean", "nothing here"),
	}
	out := encode(t, enc, "payment", fields...)
	assert.Contains(t, out, redact.Token)
	assert.NotContains(t, out, "4532-1234-5678-9010")
	assert.Contains(t, out, "nothing here")

	// The caller's slice is untouched.
	assert.Equal(t, "card 4532-1234-5678-9010", fields[0].String)
}

func TestRedactingEncoderDenyListedKey(t *testing.T) {
	enc := newTestRedactingEncoder(t)

	out := encode(t, enc, "auth", zap.String("password", "hunter2"))
	assert.Contains(t, out, redact.Token)
	assert.NotContains(t, out, "hunter2")

	// Deny list is case-insensitive on the key.
	out = encode(t, enc, "auth", zap.String("API_KEY", "abc"))
	assert.NotContains(t, out, `"abc"`)
}

func TestRedactingEncoderCleanPassThrough(t *testing.T) {
	enc := newTestRedactingEncoder(t)

	out := encode(t, enc, "all fine", zap.String("user", "alice"))
	assert.NotContains(t, out, redact.Token)
	assert.Contains(t, out, "alice")
}

func TestRedactingEncoderWithFields(t *testing.T) {
	// Fields attached via With() route through the encoder's AddString.
	base := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	enc := NewRedactingEncoder(base, redact.Default(), []string{"password"})

	var buf bytes.Buffer
	core := zapcore.NewCore(enc, zapcore.AddSync(&buf), zapcore.DebugLevel)
	logger := zap.New(core).With(zap.String("password", "hunter2"))

	logger.Info("child logger write")
	require.NoError(t, core.Sync())

	out := buf.String()
	assert.Contains(t, out, redact.Token)
	assert.NotContains(t, out, "hunter2")
}

func TestRedactingEncoderNilRedactor(t *testing.T) {
	base := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	enc := NewRedactingEncoder(base, nil, []string{"password"})

	out := encode(t, enc, "password: plain-stays", zap.String("password", "gone"))
	assert.Contains(t, out, "plain-stays", "no pattern policy, message untouched")
	assert.NotContains(t, out, "gone", "deny list still applies")
}

func TestRedactingEncoderClone(t *testing.T) {
	enc := newTestRedactingEncoder(t)
	clone, ok := enc.Clone().(*RedactingEncoder)
	require.True(t, ok)

	out := encode(t, clone, "auth", zap.String("password", "hunter2"))
	assert.NotContains(t, out, "hunter2")
}

func TestSecretField(t *testing.T) {
	tl := NewTestLogger()
	tl.Info(nil, "configured", Secret("api_token", config.Secret("super-secret")))

	entries := tl.All()
	require.Len(t, entries, 1)
	// The secret value itself never reaches the sink.
	for _, f := range entries[0].Fields {
		assert.NotContains(t, fieldValueString(f), "super-secret")
	}
}

func TestRedactedStringField(t *testing.T) {
	f := RedactedString("authorization", "Bearer abc123")
	assert.Equal(t, zapcore.StringType, f.Type)
	assert.Contains(t, f.String, redact.Token)
	assert.NotContains(t, f.String, "abc123")
}
