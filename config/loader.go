// Package config provides configuration primitives and loading for
// clywell-logging: redaction-safe value types plus a koanf-based loader
// that layers YAML files under environment variable overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Load populates out from an optional YAML file and environment variables.
//
// Precedence (highest to lowest):
//  1. Environment variables carrying envPrefix (e.g. CLYWELL_LOGGING_LEVEL)
//  2. YAML config file (if path is non-empty and the file exists)
//  3. Whatever defaults out already carries
//
// Environment variables are stripped of the prefix, lowercased, and mapped
// with the first underscore becoming the section separator:
//
//	CLYWELL_LOGGING_LEVEL          -> level            (prefix CLYWELL_LOGGING_)
//	CLYWELL_LOGGING_OUTPUT_STDOUT  -> output.stdout
//	CLYWELL_LOGGING_SAMPLING_TICK  -> sampling.tick
//
// out must be a pointer to a struct with koanf tags.
func Load(path, envPrefix string, out any) error {
	if out == nil {
		return fmt.Errorf("config: out cannot be nil")
	}

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			// Open once and read via the descriptor to avoid a TOCTOU race
			// between the size check and the read.
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("config: failed to open %s: %w", path, err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("config: failed to stat %s: %w", path, err)
			}
			if info.Size() > maxConfigFileSize {
				return fmt.Errorf("config: file %s exceeds %d bytes", path, maxConfigFileSize)
			}

			content, err := io.ReadAll(f)
			if err != nil {
				return fmt.Errorf("config: failed to read %s: %w", path, err)
			}

			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
		}
	}

	if envPrefix != "" {
		if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
			s = strings.TrimPrefix(s, envPrefix)
			s = strings.ToLower(s)
			// First underscore separates the section from the field;
			// remaining underscores stay part of the field name so keys
			// like output_stdout survive the mapping.
			parts := strings.SplitN(s, "_", 2)
			return strings.Join(parts, ".")
		}), nil); err != nil {
			return fmt.Errorf("config: failed to load environment: %w", err)
		}
	}

	if err := k.Unmarshal("", out); err != nil {
		return fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	return nil
}
