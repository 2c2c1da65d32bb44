package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSNotifySource implements Source using fsnotify. It watches
// directories without descending into subdirectories and reports only
// files with the configured extension.
type FSNotifySource struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	ext     string
	paths   map[string]bool

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFSNotifySource creates a source reporting changes to files ending
// in ext. An empty ext reports every file.
func NewFSNotifySource(ext string) (*FSNotifySource, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &FSNotifySource{
		watcher: fsw,
		ext:     ext,
		paths:   make(map[string]bool),
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		closeCh: make(chan struct{}),
	}

	s.closedWg.Add(1)
	go s.processLoop()

	return s, nil
}

// Add starts watching a directory.
func (s *FSNotifySource) Add(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	if s.paths[absPath] {
		return nil
	}

	if err := s.watcher.Add(absPath); err != nil {
		return err
	}
	s.paths[absPath] = true
	return nil
}

// Events returns the event channel.
func (s *FSNotifySource) Events() <-chan Event {
	return s.events
}

// Errors returns the error channel.
func (s *FSNotifySource) Errors() <-chan error {
	return s.errors
}

// Close stops the source.
func (s *FSNotifySource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.closeCh)
	s.mu.Unlock()

	s.closedWg.Wait()

	close(s.events)
	close(s.errors)

	return s.watcher.Close()
}

func (s *FSNotifySource) processLoop() {
	defer s.closedWg.Done()

	for {
		select {
		case <-s.closeCh:
			return

		case fsEvent, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleFSEvent(fsEvent)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			select {
			case s.errors <- err:
			default:
				// Channel full, drop error
			}
		}
	}
}

func (s *FSNotifySource) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}
	if s.ext != "" && !strings.HasSuffix(fsEvent.Name, s.ext) {
		return
	}

	event := Event{
		Path:      fsEvent.Name,
		Op:        op,
		Timestamp: time.Now(),
	}
	select {
	case s.events <- event:
	case <-s.closeCh:
	}
}

// convertOp converts fsnotify.Op to Op. Chmod is not reported.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

// Ensure FSNotifySource implements Source.
var _ Source = (*FSNotifySource)(nil)
