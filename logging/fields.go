// logging/fields.go
package logging

import (
	"fmt"
	"strconv"

	"github.com/clywell/clywell-logging/config"
	"github.com/clywell/clywell-logging/redact"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// secretMarshaler wraps config.Secret for Zap object marshaling.
type secretMarshaler struct {
	key string
	val config.Secret
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s *secretMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString(s.key, fmt.Sprintf("%s:%d", redact.Token, len(s.val.Value())))
	return nil
}

// Secret creates a Zap field for config.Secret. Only the value's length
// survives into the log.
func Secret(key string, val config.Secret) zap.Field {
	return zap.Object(key, &secretMarshaler{key: key, val: val})
}

// RedactedString creates a Zap field carrying the redaction token and the
// original value's length, for values known sensitive at the call site.
func RedactedString(key, val string) zap.Field {
	return zap.String(key, redact.Token+":"+strconv.Itoa(len(val)))
}
