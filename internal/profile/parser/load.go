package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/joyprog/internal/logging"
	"github.com/dshills/joyprog/internal/profile"
)

// DefaultExtension is the file name extension of profile documents.
const DefaultExtension = ".profile"

// Loaded is a profile loaded from a directory with the path it came from.
type Loaded struct {
	Path    string
	Profile *profile.Profile
}

// Failure is a document that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// LoadOption configures LoadDir.
type LoadOption func(*loadConfig)

type loadConfig struct {
	ext    string
	logger logrus.FieldLogger
}

// WithExtension sets the extension of the files to load.
func WithExtension(ext string) LoadOption {
	return func(c *loadConfig) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.ext = ext
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l logrus.FieldLogger) LoadOption {
	return func(c *loadConfig) {
		c.logger = l
	}
}

// LoadDir parses every profile document in dir, in name order. A document
// that fails to parse is logged, recorded as a Failure and skipped; the
// other documents are still loaded. Subdirectories are not descended into.
// An error is returned only if the directory cannot be read.
func LoadDir(dir string, opts ...LoadOption) ([]Loaded, []Failure, error) {
	cfg := loadConfig{ext: DefaultExtension}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Discard()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load profiles from %s: %w", dir, err)
	}

	var (
		loaded   []Loaded
		failures []Failure
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), cfg.ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		prof, err := ParseFile(path)
		if err != nil {
			cfg.logger.WithFields(logrus.Fields{
				"document": path,
				"error":    err,
			}).Warn("Skipping profile that failed to load")
			failures = append(failures, Failure{Path: path, Err: err})
			continue
		}

		cfg.logger.WithFields(logrus.Fields{
			"document": path,
			"profile":  prof.Name,
			"keys":     len(prof.KeyProfiles()),
		}).Debug("Loaded profile")
		loaded = append(loaded, Loaded{Path: path, Profile: prof})
	}
	return loaded, failures, nil
}
