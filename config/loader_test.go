package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Level  string        `koanf:"level"`
	Tick   Duration      `koanf:"tick"`
	Token  Secret        `koanf:"token"`
	Output testOutputCfg `koanf:"output"`
}

type testOutputCfg struct {
	Stdout bool `koanf:"stdout"`
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfigFile(t, `
level: debug
tick: 5s
token: sekrit
output:
  stdout: true
`)

	var cfg testConfig
	require.NoError(t, Load(path, "", &cfg))

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, 5*time.Second, cfg.Tick.Duration())
	assert.Equal(t, "sekrit", cfg.Token.Value())
	assert.True(t, cfg.Output.Stdout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "level: info\n")

	t.Setenv("TESTAPP_LEVEL", "warn")
	t.Setenv("TESTAPP_OUTPUT_STDOUT", "true")
	t.Setenv("TESTAPP_TICK", "250ms")

	var cfg testConfig
	require.NoError(t, Load(path, "TESTAPP_", &cfg))

	assert.Equal(t, "warn", cfg.Level, "env wins over file")
	assert.True(t, cfg.Output.Stdout, "first underscore maps to the nested section")
	assert.Equal(t, 250*time.Millisecond, cfg.Tick.Duration())
}

func TestLoadKeepsPresetDefaults(t *testing.T) {
	cfg := testConfig{Level: "info", Output: testOutputCfg{Stdout: true}}
	require.NoError(t, Load("", "", &cfg))

	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.Output.Stdout)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	var cfg testConfig
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "absent.yaml"), "", &cfg))
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Run("nil out", func(t *testing.T) {
		assert.Error(t, Load("", "", nil))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfigFile(t, "level: [unclosed\n")
		var cfg testConfig
		assert.Error(t, Load(path, "", &cfg))
	})

	t.Run("negative duration", func(t *testing.T) {
		path := writeConfigFile(t, "tick: -3s\n")
		var cfg testConfig
		assert.Error(t, Load(path, "", &cfg))
	})

	t.Run("oversized file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "big.yaml")
		big := make([]byte, maxConfigFileSize+1)
		for i := range big {
			big[i] = '#'
		}
		require.NoError(t, os.WriteFile(path, big, 0o600))
		var cfg testConfig
		assert.Error(t, Load(path, "", &cfg))
	})
}
