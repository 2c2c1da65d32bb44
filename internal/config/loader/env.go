package loader

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Prefix is the prefix of every joyprog environment variable.
const Prefix = "JOYPROG_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "JOYPROG_")
	mapping map[string]string // Env var -> config path
	lists   map[string]bool   // Env vars holding path lists
}

// NewEnvLoader creates an environment variable loader. The prefix should
// include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lists: map[string]bool{
			prefix + "PROFILE_DIRS": true,
		},
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "PROFILE_DIRS":      "profiles.dirs",
		prefix + "PROFILE_EXTENSION": "profiles.extension",
		prefix + "OUTPUT_DIR":        "output.dir",
		prefix + "LOG_LEVEL":         "logging.level",
		prefix + "LOG_FORMAT":        "logging.format",
		prefix + "CHECK":             "check.enabled",
		prefix + "WATCH_DEBOUNCE":    "watch.debounce",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		val, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		if l.lists[env] {
			setByPath(config, path, splitList(val))
			continue
		}
		setByPath(config, path, parseValue(val))
	}

	// Unmapped variables follow the section_setting_name convention.
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		setByPath(config, l.envToPath(name), parseValue(value))
	}

	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// envToPath converts JOYPROG_WATCH_MAX_DELAY to watch.maxDelay.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + setting
}

func splitList(s string) []any {
	var list []any
	for _, p := range filepath.SplitList(s) {
		if p != "" {
			list = append(list, p)
		}
	}
	return list
}

// parseValue converts an environment value to the type TOML would have
// produced for it.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// GetByPath returns the value at a dot-separated path.
func GetByPath(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = data
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
