package watcher

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/joyprog/internal/logging"
)

// DefaultDebounceDelay is used when no delay is configured.
const DefaultDebounceDelay = 200 * time.Millisecond

// Watcher debounces the events of a Source. Multiple rapid changes to the
// same file are coalesced into one event delivered after the file has
// been quiet for the debounce delay.
type Watcher struct {
	src    Source
	delay  time.Duration
	logger logrus.FieldLogger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger source errors are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates a Watcher reading from src.
func New(src Source, opts ...Option) *Watcher {
	w := &Watcher{src: src, delay: DefaultDebounceDelay}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.Discard()
	}
	return w
}

// pendingEvent tracks a debounced event.
type pendingEvent struct {
	event Event
	timer *time.Timer
}

// Run delivers settled events to fn until ctx is cancelled or the source
// is closed. fn runs on the goroutine calling Run, one event at a time.
// Run returns ctx.Err() on cancellation and nil when the source closes.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	pending := make(map[string]*pendingEvent)
	ready := make(chan string)
	done := make(chan struct{})

	defer func() {
		close(done)
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.src.Events():
			if !ok {
				return nil
			}
			if p, exists := pending[event.Path]; exists {
				p.event.Op |= event.Op
				p.event.Timestamp = event.Timestamp
				p.timer.Reset(w.delay)
				continue
			}
			path := event.Path
			pending[path] = &pendingEvent{
				event: event,
				timer: time.AfterFunc(w.delay, func() {
					select {
					case ready <- path:
					case <-done:
					}
				}),
			}

		case path := <-ready:
			p, exists := pending[path]
			if !exists {
				continue
			}
			delete(pending, path)
			fn(p.event)

		case err, ok := <-w.src.Errors():
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("File watcher error")
		}
	}
}
