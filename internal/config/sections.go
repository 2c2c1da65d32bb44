package config

import "time"

// Section accessors return snapshot structs filled from the merged
// configuration. They assume Load validated the settings and fall back
// to zero values otherwise.

// ProfilesConfig locates profile documents.
type ProfilesConfig struct {
	// Dirs are the directories searched by commands given no arguments.
	Dirs []string
	// Extension is the file name extension of profile documents.
	Extension string
}

// OutputConfig controls where compiled payloads are written.
type OutputConfig struct {
	Dir string
}

// LoggingConfig selects the log level and format.
type LoggingConfig struct {
	Level  string
	Format string
}

// CheckConfig controls the verification of generated code.
type CheckConfig struct {
	Enabled bool
}

// WatchConfig controls recompilation on change.
type WatchConfig struct {
	// Debounce is how long a file must stay unchanged before it is
	// recompiled.
	Debounce time.Duration
}

// Profiles returns the profiles section.
func (c *Config) Profiles() ProfilesConfig {
	dirs, _ := c.GetStringSlice("profiles.dirs")
	ext, _ := c.GetString("profiles.extension")
	return ProfilesConfig{Dirs: dirs, Extension: ext}
}

// Output returns the output section.
func (c *Config) Output() OutputConfig {
	dir, _ := c.GetString("output.dir")
	return OutputConfig{Dir: dir}
}

// Logging returns the logging section.
func (c *Config) Logging() LoggingConfig {
	level, _ := c.GetString("logging.level")
	format, _ := c.GetString("logging.format")
	return LoggingConfig{Level: level, Format: format}
}

// Check returns the check section.
func (c *Config) Check() CheckConfig {
	enabled, _ := c.GetBool("check.enabled")
	return CheckConfig{Enabled: enabled}
}

// Watch returns the watch section.
func (c *Config) Watch() WatchConfig {
	d, _ := c.GetDuration("watch.debounce")
	return WatchConfig{Debounce: d}
}
