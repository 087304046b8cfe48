// logging/encoder.go
package logging

import (
	"strings"

	"github.com/clywell/clywell-logging/redact"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// RedactingEncoder wraps a zapcore.Encoder so every scalar string value,
// field values and the entry message alike, passes through a redact.Redactor
// before being persisted. Field names on the deny list are redacted
// wholesale regardless of content.
type RedactingEncoder struct {
	zapcore.Encoder
	redactor   *redact.Redactor
	denyFields map[string]bool
}

// NewRedactingEncoder wraps base with the given policy. redactor may be nil
// to redact by field name only; denyFields may be empty.
func NewRedactingEncoder(base zapcore.Encoder, redactor *redact.Redactor, denyFields []string) *RedactingEncoder {
	deny := make(map[string]bool, len(denyFields))
	for _, f := range denyFields {
		deny[strings.ToLower(f)] = true
	}
	return &RedactingEncoder{
		Encoder:    base,
		redactor:   redactor,
		denyFields: deny,
	}
}

// shouldRedactKey returns true if the key's value is dropped unconditionally.
func (e *RedactingEncoder) shouldRedactKey(key string) bool {
	return e.denyFields[strings.ToLower(key)]
}

// transform applies the pattern policy to a single value.
func (e *RedactingEncoder) transform(val string) (string, bool) {
	if e.redactor == nil {
		return val, false
	}
	return e.redactor.Transform(val)
}

// AddString redacts deny-listed field names and matched value patterns.
func (e *RedactingEncoder) AddString(key, val string) {
	if e.shouldRedactKey(key) {
		e.Encoder.AddString(key, redact.Token)
		return
	}
	if out, changed := e.transform(val); changed {
		e.Encoder.AddString(key, out)
		return
	}
	e.Encoder.AddString(key, val)
}

// AddByteString redacts deny-listed field names and matched value patterns.
func (e *RedactingEncoder) AddByteString(key string, val []byte) {
	if e.shouldRedactKey(key) {
		e.Encoder.AddByteString(key, []byte(redact.Token))
		return
	}
	if out, changed := e.transform(string(val)); changed {
		e.Encoder.AddByteString(key, []byte(out))
		return
	}
	e.Encoder.AddByteString(key, val)
}

// AddBinary redacts deny-listed field names.
func (e *RedactingEncoder) AddBinary(key string, val []byte) {
	if e.shouldRedactKey(key) {
		e.Encoder.AddBinary(key, []byte(redact.Token))
		return
	}
	e.Encoder.AddBinary(key, val)
}

// AddReflected redacts deny-listed field names. The whole reflected value is
// replaced when the key is sensitive; deep inspection of reflected structs
// is out of scope for the encoder.
func (e *RedactingEncoder) AddReflected(key string, val interface{}) error {
	if e.shouldRedactKey(key) {
		e.Encoder.AddString(key, redact.Token)
		return nil
	}
	return e.Encoder.AddReflected(key, val)
}

// AddArray redacts deny-listed field names.
func (e *RedactingEncoder) AddArray(key string, arr zapcore.ArrayMarshaler) error {
	if e.shouldRedactKey(key) {
		e.Encoder.AddString(key, redact.Token)
		return nil
	}
	return e.Encoder.AddArray(key, arr)
}

// AddObject redacts deny-listed field names.
func (e *RedactingEncoder) AddObject(key string, obj zapcore.ObjectMarshaler) error {
	if e.shouldRedactKey(key) {
		e.Encoder.AddString(key, redact.Token)
		return nil
	}
	return e.Encoder.AddObject(key, obj)
}

// EncodeEntry redacts the message and call-site string fields before
// delegating. Fields attached via With() route through the Add* methods
// instead. The fields slice is only copied when something actually matched.
func (e *RedactingEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	if out, changed := e.transform(ent.Message); changed {
		ent.Message = out
	}

	for i := range fields {
		f := fields[i]
		redacted, hit := e.redactField(f)
		if !hit {
			continue
		}
		// First hit: copy so the caller's slice is untouched.
		copied := make([]zapcore.Field, len(fields))
		copy(copied, fields)
		copied[i] = redacted
		for j := i + 1; j < len(copied); j++ {
			if rf, ok := e.redactField(copied[j]); ok {
				copied[j] = rf
			}
		}
		fields = copied
		break
	}

	return e.Encoder.EncodeEntry(ent, fields)
}

// redactField rewrites a single string-valued field per policy.
func (e *RedactingEncoder) redactField(f zapcore.Field) (zapcore.Field, bool) {
	if f.Type != zapcore.StringType {
		return f, false
	}
	if e.shouldRedactKey(f.Key) {
		f.String = redact.Token
		return f, true
	}
	if out, changed := e.transform(f.String); changed {
		f.String = out
		return f, true
	}
	return f, false
}

// Clone creates a copy of the encoder.
func (e *RedactingEncoder) Clone() zapcore.Encoder {
	return &RedactingEncoder{
		Encoder:    e.Encoder.Clone(),
		redactor:   e.redactor,
		denyFields: e.denyFields,
	}
}
