// logging/config.go
package logging

import (
	"fmt"
	"time"

	"github.com/clywell/clywell-logging/config"
	"github.com/clywell/clywell-logging/redact"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level      Level             `koanf:"level"`
	Format     string            `koanf:"format"`
	Output     OutputConfig      `koanf:"output"`
	Sampling   SamplingConfig    `koanf:"sampling"`
	Caller     CallerConfig      `koanf:"caller"`
	Stacktrace StacktraceConfig  `koanf:"stacktrace"`
	Fields     map[string]string `koanf:"fields"`
	Redaction  RedactionConfig   `koanf:"redaction"`
}

// OutputConfig controls where logs are written.
type OutputConfig struct {
	Stdout bool `koanf:"stdout"`
	OTEL   bool `koanf:"otel"`
}

// SamplingConfig controls log volume reduction.
type SamplingConfig struct {
	Enabled bool            `koanf:"enabled"`
	Tick    config.Duration `koanf:"tick"`

	Initial    int `koanf:"initial"`
	Thereafter int `koanf:"thereafter"`
}

// CallerConfig controls caller information in logs.
type CallerConfig struct {
	Enabled bool `koanf:"enabled"`
	Skip    int  `koanf:"skip"`
}

// StacktraceConfig controls stacktrace inclusion.
type StacktraceConfig struct {
	Level zapcore.Level `koanf:"level"`
}

// RedactionConfig controls sensitive-data redaction. The five built-in
// rules are enabled unless individually switched off; Patterns appends
// custom rules after the built-ins, in order.
type RedactionConfig struct {
	Enabled bool `koanf:"enabled"`

	DisableCreditCard      bool `koanf:"disable_credit_card"`
	DisableSSN             bool `koanf:"disable_ssn"`
	DisablePassword        bool `koanf:"disable_password"`
	DisableAPIKey          bool `koanf:"disable_api_key"`
	DisableEmailCredential bool `koanf:"disable_email_credential"`

	// Fields are field names whose values are redacted wholesale,
	// regardless of content.
	Fields []string `koanf:"fields"`

	// Patterns are additional custom regex rules.
	Patterns []string `koanf:"patterns"`
}

// buildRedactor assembles the redactor this config describes.
// Returns nil when redaction is disabled.
func (c RedactionConfig) buildRedactor() (*redact.Redactor, error) {
	if !c.Enabled {
		return nil, nil
	}
	b := redact.NewBuilder()
	if c.DisableCreditCard {
		b.DisableCreditCard()
	}
	if c.DisableSSN {
		b.DisableSSN()
	}
	if c.DisablePassword {
		b.DisablePassword()
	}
	if c.DisableAPIKey {
		b.DisableAPIKey()
	}
	if c.DisableEmailCredential {
		b.DisableEmailCredential()
	}
	for i, p := range c.Patterns {
		b.WithPattern(fmt.Sprintf("custom-%d", i), p)
	}
	return b.Build()
}

// NewDefaultConfig returns config with production-ready defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Level:  Level(zapcore.InfoLevel),
		Format: "json",
		Output: OutputConfig{
			Stdout: true,
			OTEL:   false,
		},
		Sampling: SamplingConfig{
			Enabled:    true,
			Tick:       config.Duration(time.Second),
			Initial:    100,
			Thereafter: 10,
		},
		Caller: CallerConfig{
			Enabled: true,
			Skip:    1,
		},
		Stacktrace: StacktraceConfig{
			Level: zapcore.ErrorLevel,
		},
		Redaction: RedactionConfig{
			Enabled: true,
			Fields: []string{
				"password", "secret", "token", "api_key",
				"authorization", "bearer", "credential", "private_key",
			},
		},
	}
}

// LoadConfig loads configuration from an optional YAML file, then overrides
// with CLYWELL_LOGGING_* environment variables, on top of defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := config.Load(path, "CLYWELL_LOGGING_", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks config for errors. Redaction patterns are compiled here
// so a malformed pattern surfaces at configuration time.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be 'json' or 'console', got %q", c.Format)
	}
	if !c.Output.Stdout && !c.Output.OTEL {
		return fmt.Errorf("at least one output must be enabled (stdout or otel)")
	}
	if c.Sampling.Enabled {
		if c.Sampling.Tick.Duration() <= 0 {
			return fmt.Errorf("sampling tick must be > 0 when sampling enabled")
		}
		if c.Sampling.Initial < 0 || c.Sampling.Thereafter < 0 {
			return fmt.Errorf("sampling counts must be >= 0")
		}
	}

	if c.Caller.Enabled && c.Caller.Skip < 0 {
		return fmt.Errorf("caller skip must be >= 0, got %d", c.Caller.Skip)
	}

	if _, err := c.Redaction.buildRedactor(); err != nil {
		return err
	}

	if c.Fields != nil {
		for k, v := range c.Fields {
			if k == "" {
				return fmt.Errorf("field key cannot be empty")
			}
			if v == "" {
				return fmt.Errorf("field %q has empty value", k)
			}
		}
	}

	return nil
}
