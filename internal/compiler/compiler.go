// Package compiler drives the profile compiler over files and
// directories: each document is parsed, its generated code optionally
// checked, and its daemon payload written to the output directory.
//
// Documents are independent. A failing document is logged and reported
// in its Result while the others are still compiled.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/joyprog/internal/logging"
	"github.com/dshills/joyprog/internal/profile"
	"github.com/dshills/joyprog/internal/profile/parser"
	"github.com/dshills/joyprog/internal/script"
)

// OutputExtension is the extension of written daemon payloads.
const OutputExtension = ".xml"

// Compiler compiles profile documents.
type Compiler struct {
	outDir string
	ext    string
	check  bool
	write  bool
	logger logrus.FieldLogger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOutputDir sets the directory payloads are written to.
func WithOutputDir(dir string) Option {
	return func(c *Compiler) {
		c.outDir = dir
	}
}

// WithExtension sets the extension of documents picked up from
// directories.
func WithExtension(ext string) Option {
	return func(c *Compiler) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.ext = ext
	}
}

// WithCheck enables verification of the generated code.
func WithCheck(enable bool) Option {
	return func(c *Compiler) {
		c.check = enable
	}
}

// WithWrite controls whether payloads are written. Without writing the
// compiler only validates.
func WithWrite(enable bool) Option {
	return func(c *Compiler) {
		c.write = enable
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// New creates a Compiler. By default it writes payloads to the current
// directory and checks generated code.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		outDir: ".",
		ext:    parser.DefaultExtension,
		check:  true,
		write:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// Result is the outcome for one document.
type Result struct {
	Source  string
	Output  string
	Profile *profile.Profile
	Err     error
}

// OK returns true if the document compiled.
func (r Result) OK() bool {
	return r.Err == nil
}

// OutputPath returns the payload path for a source document.
func (c *Compiler) OutputPath(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.outDir, base+OutputExtension)
}

// Compile compiles every given file and every matching document in the
// given directories. It returns ErrFailed, alongside the full results,
// if any document failed.
func (c *Compiler) Compile(ctx context.Context, paths []string) ([]Result, error) {
	sources, err := c.Expand(paths)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoInput
	}

	results := make([]Result, 0, len(sources))
	failed := 0
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := c.CompileFile(src)
		if !res.OK() {
			failed++
		}
		results = append(results, res)
	}

	c.logger.WithFields(logrus.Fields{
		"documents": len(results),
		"failed":    failed,
	}).Info("Compilation finished")

	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", ErrFailed, failed, len(results))
	}
	return results, nil
}

// Expand resolves paths to the list of documents to compile. Directories
// contribute their documents with the configured extension in name
// order; files are taken as given.
func (c *Compiler) Expand(paths []string) ([]string, error) {
	var sources []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			sources = append(sources, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), c.ext) {
				sources = append(sources, filepath.Join(path, entry.Name()))
			}
		}
	}
	return sources, nil
}

// CompileFile compiles a single document.
func (c *Compiler) CompileFile(source string) Result {
	res := Result{Source: source}
	log := c.logger.WithField("document", source)

	prof, err := parser.ParseFile(source)
	if err != nil {
		res.Err = err
		log.WithError(err).Error("Profile failed to parse")
		return res
	}
	res.Profile = prof

	if c.check {
		if _, err := script.CheckProfile(prof); err != nil {
			res.Err = err
			log.WithError(err).Error("Generated code failed verification")
			return res
		}
	}

	var buf bytes.Buffer
	if err := prof.WriteDaemonXML(&buf); err != nil {
		res.Err = err
		log.WithError(err).Error("Profile failed to compile")
		return res
	}

	if c.write {
		out := c.OutputPath(source)
		if err := writeFile(out, buf.Bytes()); err != nil {
			res.Err = err
			log.WithError(err).Error("Payload could not be written")
			return res
		}
		res.Output = out
	}

	log.WithFields(logrus.Fields{
		"profile": prof.Name,
		"keys":    len(prof.KeyProfiles()),
		"output":  res.Output,
	}).Debug("Profile compiled")
	return res
}

// Remove deletes the payload compiled from source, if any.
func (c *Compiler) Remove(source string) error {
	err := os.Remove(c.OutputPath(source))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// writeFile writes atomically using a temp file and rename.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
