// logging/otel.go
package logging

import (
	"fmt"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

const instrumentationName = "github.com/clywell/clywell-logging"

// newDualCore creates a core with stdout and/or OTEL outputs. The stdout
// path carries the redacting encoder; the OTEL bridge receives fields after
// the enrichers but without pattern redaction, which is why OTEL output is
// opt-in.
func newDualCore(cfg *Config, otelProvider log.LoggerProvider) (zapcore.Core, error) {
	cores := make([]zapcore.Core, 0, 2)

	if cfg.Output.Stdout {
		var encoder zapcore.Encoder = newEncoder(cfg.Format)
		if cfg.Redaction.Enabled {
			redactor, err := cfg.Redaction.buildRedactor()
			if err != nil {
				return nil, fmt.Errorf("failed to build redaction policy: %w", err)
			}
			encoder = NewRedactingEncoder(encoder, redactor, cfg.Redaction.Fields)
		}
		writer := zapcore.AddSync(os.Stdout)
		cores = append(cores, zapcore.NewCore(encoder, writer, cfg.Level))
	}

	if cfg.Output.OTEL && otelProvider != nil {
		otelCore := otelzap.NewCore(instrumentationName,
			otelzap.WithLoggerProvider(otelProvider),
		)
		cores = append(cores, otelCore)
	}

	if len(cores) == 0 {
		return nil, fmt.Errorf("at least one output must be enabled and available")
	}

	var core zapcore.Core
	if len(cores) == 1 {
		core = cores[0]
	} else {
		core = zapcore.NewTee(cores...)
	}

	return newSampledCore(core, cfg.Sampling), nil
}
