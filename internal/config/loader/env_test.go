package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("JOYPROG_LOG_LEVEL", "debug")
	t.Setenv("JOYPROG_CHECK", "no")
	t.Setenv("JOYPROG_WATCH_DEBOUNCE", "1s")
	t.Setenv("JOYPROG_PROFILE_DIRS", "/a"+string(os.PathListSeparator)+"/b")

	config, err := NewEnvLoader(Prefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, ok := GetByPath(config, "logging.level"); !ok || v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
	if v, ok := GetByPath(config, "check.enabled"); !ok || v != false {
		t.Errorf("check.enabled = %v, want false", v)
	}
	if v, ok := GetByPath(config, "watch.debounce"); !ok || v != time.Second {
		t.Errorf("watch.debounce = %v (%T), want 1s", v, v)
	}
	dirs, _ := GetByPath(config, "profiles.dirs")
	if list, ok := dirs.([]any); !ok || len(list) != 2 || list[0] != filepath.FromSlash("/a") {
		t.Errorf("profiles.dirs = %v, want [/a /b]", dirs)
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	t.Setenv("JOYPROG_OUTPUT_FILE_MODE", "420")

	config, err := NewEnvLoader(Prefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, ok := GetByPath(config, "output.fileMode"); !ok || v != int64(420) {
		t.Errorf("output.fileMode = %v (%T), want 420", v, v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader(Prefix)

	tests := []struct {
		env      string
		expected string
	}{
		{"JOYPROG_OUTPUT_DIR", "output.dir"},
		{"JOYPROG_WATCH_MAX_DELAY", "watch.maxDelay"},
		{"JOYPROG_SIMPLE", "simple"},
	}

	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"yes", true},
		{"OFF", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"300ms", 300 * time.Millisecond},
		{"json", "json"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
