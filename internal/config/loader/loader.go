// Package loader reads joyprog configuration sources into plain maps.
//
// A TOML file and the JOYPROG_ environment variables are each loaded into
// a map[string]any keyed by section; the config package merges them.
package loader

import (
	"io/fs"
	"os"
)

// Loader is the interface for configuration sources.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist.
	Load() (map[string]any, error)
}

// FileSystem is the file access a file loader needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// FSFS adapts an fs.FS, such as an fstest.MapFS, to FileSystem.
type FSFS struct {
	FS fs.FS
}

// ReadFile reads the entire file at path.
func (f FSFS) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(f.FS, path)
}
