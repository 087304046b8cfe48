// logging/capture.go
package logging

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is one captured log event.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Fields  []zapcore.Field
}

// Property returns the named field, if the entry carries it.
func (e Entry) Property(name string) (zapcore.Field, bool) {
	for _, f := range e.Fields {
		if f.Key == name {
			return f, true
		}
	}
	return zapcore.Field{}, false
}

// Err returns the first error-typed field's value, or nil.
func (e Entry) Err() error {
	for _, f := range e.Fields {
		if f.Type == zapcore.ErrorType {
			if err, ok := f.Interface.(error); ok {
				return err
			}
		}
	}
	return nil
}

// Capture is an ordered, thread-safe, append-only buffer of log entries,
// used by tests. Every query returns a point-in-time copy, so callers can
// iterate results while other goroutines keep emitting. The internal lock
// is released before any caller-supplied predicate runs.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

// NewCapture returns a zapcore.Core that appends everything at or above
// enab into the returned Capture.
func NewCapture(enab zapcore.LevelEnabler) (zapcore.Core, *Capture) {
	buf := &Capture{}
	return &captureCore{LevelEnabler: enab, buf: buf}, buf
}

func (c *Capture) add(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
}

// snapshot copies the buffer out under the lock.
func (c *Capture) snapshot() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// All returns a copy of every captured entry, in emission order.
func (c *Capture) All() []Entry {
	return c.snapshot()
}

// Count returns the total number of captured entries.
func (c *Capture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CountAt returns the number of entries at exactly the given level.
func (c *Capture) CountAt(level zapcore.Level) int {
	return len(c.At(level))
}

// Filter returns the entries matching pred. The buffer lock is not held
// while pred runs.
func (c *Capture) Filter(pred func(Entry) bool) []Entry {
	snap := c.snapshot()
	out := make([]Entry, 0, len(snap))
	for _, e := range snap {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// At returns the entries at exactly the given level.
func (c *Capture) At(level zapcore.Level) []Entry {
	return c.Filter(func(e Entry) bool { return e.Level == level })
}

// AtOrAbove returns the entries at or above the given level.
func (c *Capture) AtOrAbove(level zapcore.Level) []Entry {
	return c.Filter(func(e Entry) bool { return e.Level >= level })
}

// MessageContains returns the entries whose message contains sub,
// case-insensitively.
func (c *Capture) MessageContains(sub string) []Entry {
	lower := strings.ToLower(sub)
	return c.Filter(func(e Entry) bool {
		return strings.Contains(strings.ToLower(e.Message), lower)
	})
}

// WithProperty returns the entries carrying a field with the given name.
// Panics if name is empty.
func (c *Capture) WithProperty(name string) []Entry {
	if name == "" {
		panic("logging: property name cannot be empty")
	}
	return c.Filter(func(e Entry) bool {
		_, ok := e.Property(name)
		return ok
	})
}

// WithPropertyValue returns the entries whose named field's string
// rendering contains sub. Panics if name is empty.
func (c *Capture) WithPropertyValue(name, sub string) []Entry {
	if name == "" {
		panic("logging: property name cannot be empty")
	}
	return c.Filter(func(e Entry) bool {
		f, ok := e.Property(name)
		return ok && strings.Contains(fieldValueString(f), sub)
	})
}

// WithErrorType returns the entries carrying an error field whose dynamic
// type matches target's.
func (c *Capture) WithErrorType(target error) []Entry {
	if target == nil {
		panic("logging: target error cannot be nil")
	}
	want := reflect.TypeOf(target)
	return c.Filter(func(e Entry) bool {
		err := e.Err()
		return err != nil && reflect.TypeOf(err) == want
	})
}

// TakeAll removes every entry from the buffer and returns them, in
// emission order. Ownership of the returned slice passes to the caller.
func (c *Capture) TakeAll() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.entries
	c.entries = nil
	return out
}

// Clear empties the buffer.
func (c *Capture) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// fieldValueString renders a field value for substring matching.
func fieldValueString(f zapcore.Field) string {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.BoolType:
		return strconv.FormatBool(f.Integer == 1)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return strconv.FormatInt(f.Integer, 10)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return strconv.FormatUint(uint64(f.Integer), 10)
	case zapcore.Float64Type:
		return strconv.FormatFloat(math.Float64frombits(uint64(f.Integer)), 'f', -1, 64)
	case zapcore.Float32Type:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(f.Integer))), 'f', -1, 32)
	case zapcore.ByteStringType:
		if b, ok := f.Interface.([]byte); ok {
			return string(b)
		}
		return ""
	case zapcore.DurationType:
		return time.Duration(f.Integer).String()
	case zapcore.TimeType:
		ts := time.Unix(0, f.Integer)
		if loc, ok := f.Interface.(*time.Location); ok && loc != nil {
			ts = ts.In(loc)
		}
		return ts.String()
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return err.Error()
		}
		return ""
	case zapcore.StringerType:
		if s, ok := f.Interface.(fmt.Stringer); ok {
			return s.String()
		}
		return ""
	default:
		return fmt.Sprint(f.Interface)
	}
}

// captureCore adapts a Capture to zapcore.Core, accumulating With fields
// the way zaptest/observer does.
type captureCore struct {
	zapcore.LevelEnabler
	buf  *Capture
	with []zapcore.Field
}

func (c *captureCore) With(fields []zapcore.Field) zapcore.Core {
	combined := make([]zapcore.Field, 0, len(c.with)+len(fields))
	combined = append(combined, c.with...)
	combined = append(combined, fields...)
	return &captureCore{
		LevelEnabler: c.LevelEnabler,
		buf:          c.buf,
		with:         combined,
	}
}

func (c *captureCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *captureCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.with)+len(fields))
	all = append(all, c.with...)
	all = append(all, fields...)
	c.buf.add(Entry{
		Time:    ent.Time,
		Level:   ent.Level,
		Message: ent.Message,
		Fields:  all,
	})
	return nil
}

func (c *captureCore) Sync() error { return nil }
