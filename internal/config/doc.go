// Package config provides the configuration of the joyprog tool.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← Highest priority (Set)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← JOYPROG_*
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/joyprog/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile(path))
//	if err := cfg.Load(); err != nil {
//	    return err
//	}
//	out := cfg.Output().Dir
//
// The file format is TOML:
//
//	[profiles]
//	dirs = ["/usr/share/jsprog/profiles"]
//	extension = ".profile"
//
//	[output]
//	dir = "compiled"
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[check]
//	enabled = true
//
//	[watch]
//	debounce = "200ms"
package config
