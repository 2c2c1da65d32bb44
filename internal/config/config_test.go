package config

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/joyprog/internal/config/loader"
)

func memFS(files map[string]string) loader.FileSystem {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return loader.FSFS{FS: m}
}

func TestDefaults(t *testing.T) {
	cfg := New(WithEnv(false))
	require.NoError(t, cfg.Load())

	assert.Empty(t, cfg.Profiles().Dirs)
	assert.Equal(t, ".profile", cfg.Profiles().Extension)
	assert.Equal(t, ".", cfg.Output().Dir)
	assert.Equal(t, LoggingConfig{Level: "info", Format: "text"}, cfg.Logging())
	assert.True(t, cfg.Check().Enabled)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch().Debounce)
}

func TestLoadFile(t *testing.T) {
	fsys := memFS(map[string]string{"config.toml": `
[profiles]
dirs = ["profiles", "more"]

[output]
dir = "out"

[check]
enabled = false

[watch]
debounce = 50
`})

	cfg := New(WithFile("config.toml"), WithFS(fsys), WithEnv(false))
	require.NoError(t, cfg.Load())

	assert.Equal(t, []string{"profiles", "more"}, cfg.Profiles().Dirs)
	assert.Equal(t, ".profile", cfg.Profiles().Extension)
	assert.Equal(t, "out", cfg.Output().Dir)
	assert.False(t, cfg.Check().Enabled)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch().Debounce)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg := New(WithFile("absent.toml"), WithFS(memFS(nil)), WithEnv(false))
	require.NoError(t, cfg.Load())
	assert.Equal(t, ".", cfg.Output().Dir)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("JOYPROG_OUTPUT_DIR", "from-env")
	t.Setenv("JOYPROG_LOG_FORMAT", "json")

	fsys := memFS(map[string]string{"config.toml": "[output]\ndir = \"from-file\"\n"})
	cfg := New(WithFile("config.toml"), WithFS(fsys))
	require.NoError(t, cfg.Load())

	assert.Equal(t, "from-env", cfg.Output().Dir)
	assert.Equal(t, "json", cfg.Logging().Format)
}

func TestSetOverridesEverything(t *testing.T) {
	t.Setenv("JOYPROG_LOG_LEVEL", "warn")

	cfg := New()
	require.NoError(t, cfg.Load())
	assert.Equal(t, "warn", cfg.Logging().Level)

	require.NoError(t, cfg.Set("logging.level", "debug"))
	assert.Equal(t, "debug", cfg.Logging().Level)

	assert.ErrorIs(t, cfg.Set("logging.colour", "red"), ErrSettingNotFound)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"wrong type", "[output]\ndir = 3\n", ErrTypeMismatch},
		{"empty extension", "[profiles]\nextension = \"\"\n", ErrValidationFailed},
		{"bad duration", "[watch]\ndebounce = \"soon\"\n", ErrValidationFailed},
		{"negative duration", "[watch]\ndebounce = \"-1s\"\n", ErrValidationFailed},
		{"mixed list", "[profiles]\ndirs = [\"a\", 1]\n", ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := memFS(map[string]string{"config.toml": tt.content})
			cfg := New(WithFile("config.toml"), WithFS(fsys), WithEnv(false))
			assert.ErrorIs(t, cfg.Load(), tt.want)
		})
	}
}

func TestLoadParseError(t *testing.T) {
	fsys := memFS(map[string]string{"config.toml": "[output\n"})
	cfg := New(WithFile("config.toml"), WithFS(fsys), WithEnv(false))

	err := cfg.Load()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "config.toml", perr.Path)
	assert.Positive(t, perr.Line)
}
