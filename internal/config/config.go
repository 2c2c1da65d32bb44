package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/joyprog/internal/config/loader"
)

// FileName is the name of the config file in the user config directory.
const FileName = "config.toml"

// Config holds the layered configuration.
type Config struct {
	path   string
	fs     loader.FileSystem
	useEnv bool

	defaults  map[string]any
	file      map[string]any
	env       map[string]any
	overrides map[string]any
	merged    map[string]any
}

// Option configures a Config.
type Option func(*Config)

// WithFile sets the config file to load. An empty path loads no file.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS sets the file system the config file is read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// New creates a Config holding only the defaults. Call Load to read the
// file and environment layers.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		useEnv:    true,
		defaults:  defaultConfig(),
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.merge()
	return c
}

// DefaultPath returns the config file in the user config directory, or
// an empty string if there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "joyprog", FileName)
}

// Load reads the file and environment layers and validates the result.
func (c *Config) Load() error {
	if c.path != "" {
		file, err := loader.NewTOMLLoaderWithFS(c.fs, c.path).Load()
		if err != nil {
			return err
		}
		c.file = file
	}

	if c.useEnv {
		env, err := loader.NewEnvLoader(loader.Prefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		c.env = env
	}

	c.merge()
	return c.Validate()
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) merge() {
	merged := loader.Clone(c.defaults)
	for _, layer := range []map[string]any{c.file, c.env, c.overrides} {
		merged = loader.DeepMerge(merged, loader.Clone(layer))
	}
	c.merged = merged
}

// Set overrides a setting. Overrides take precedence over every other
// layer.
func (c *Config) Set(path string, value any) error {
	if _, ok := loader.GetByPath(c.defaults, path); !ok {
		return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	setPath(c.overrides, path, value)
	c.merge()
	return nil
}

// Get returns the merged value of a setting.
func (c *Config) Get(path string) (any, bool) {
	return loader.GetByPath(c.merged, path)
}

func (c *Config) lookup(path string) (any, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return v, nil
}

// GetString returns a string setting.
func (c *Config) GetString(path string) (string, error) {
	v, err := c.lookup(path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(path string) (bool, error) {
	v, err := c.lookup(path)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	}
	return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
}

// GetDuration returns a duration setting. Strings are parsed with
// time.ParseDuration and integers are taken as milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, err := c.lookup(path)
	if err != nil {
		return 0, err
	}
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case int64:
		return time.Duration(d) * time.Millisecond, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: "not a duration", Value: d}
		}
		return parsed, nil
	}
	return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
}

// GetStringSlice returns a list setting. A single string is returned as
// a one-element list.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, err := c.lookup(path)
	if err != nil {
		return nil, err
	}
	switch list := v.(type) {
	case string:
		return []string{list}, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: "[]" + typeName(item)}
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
}

// Validate checks that every known setting holds a usable value.
func (c *Config) Validate() error {
	if _, err := c.GetStringSlice("profiles.dirs"); err != nil {
		return err
	}
	ext, err := c.GetString("profiles.extension")
	if err != nil {
		return err
	}
	if ext == "" {
		return &ValidationError{Path: "profiles.extension", Message: "must not be empty", Value: ext}
	}
	if _, err := c.GetString("output.dir"); err != nil {
		return err
	}
	for _, path := range []string{"logging.level", "logging.format"} {
		if _, err := c.GetString(path); err != nil {
			return err
		}
	}
	if _, err := c.GetBool("check.enabled"); err != nil {
		return err
	}
	d, err := c.GetDuration("watch.debounce")
	if err != nil {
		return err
	}
	if d < 0 {
		return &ValidationError{Path: "watch.debounce", Message: "must not be negative", Value: d}
	}
	return nil
}

func defaultConfig() map[string]any {
	return map[string]any{
		"profiles": map[string]any{
			"dirs":      []any{},
			"extension": ".profile",
		},
		"output": map[string]any{
			"dir": ".",
		},
		"logging": map[string]any{
			"level":  "info",
			"format": "text",
		},
		"check": map[string]any{
			"enabled": true,
		},
		"watch": map[string]any{
			"debounce": "200ms",
		},
	}
}

func setPath(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case int64, int:
		return "int"
	case float64:
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
