package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// mockSource is a Source fed by the test.
type mockSource struct {
	once   sync.Once
	events chan Event
	errors chan error
}

func newMockSource() *mockSource {
	return &mockSource{
		events: make(chan Event, 100),
		errors: make(chan error, 100),
	}
}

func (m *mockSource) Events() <-chan Event { return m.events }
func (m *mockSource) Errors() <-chan error { return m.errors }

func (m *mockSource) Close() error {
	m.once.Do(func() {
		close(m.events)
		close(m.errors)
	})
	return nil
}

func (m *mockSource) send(path string, op Op) {
	m.events <- Event{Path: path, Op: op, Timestamp: time.Now()}
}

func TestWatcherCoalescesEvents(t *testing.T) {
	src := newMockSource()
	w := New(src, WithDebounceDelay(30*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got := make(chan Event, 10)
	go func() {
		_ = w.Run(ctx, func(e Event) { got <- e })
	}()

	src.send("/p/a.profile", OpCreate)
	src.send("/p/a.profile", OpWrite)
	src.send("/p/a.profile", OpWrite)

	select {
	case e := <-got:
		if e.Path != "/p/a.profile" {
			t.Errorf("Path = %q, want /p/a.profile", e.Path)
		}
		if !e.Op.Has(OpCreate) || !e.Op.Has(OpWrite) {
			t.Errorf("Op = %b, want CREATE|WRITE", e.Op)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}

	select {
	case e := <-got:
		t.Errorf("unexpected second event %+v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherSeparatePaths(t *testing.T) {
	src := newMockSource()
	w := New(src, WithDebounceDelay(20*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got := make(chan Event, 10)
	go func() {
		_ = w.Run(ctx, func(e Event) { got <- e })
	}()

	src.send("/p/a.profile", OpWrite)
	src.send("/p/b.profile", OpWrite)

	seen := map[string]bool{}
	for len(seen) < 2 {
		select {
		case e := <-got:
			seen[e.Path] = true
		case <-ctx.Done():
			t.Fatalf("timed out, saw %v", seen)
		}
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	src := newMockSource()
	w := New(src)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, func(Event) {})
	}()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherStopsOnClose(t *testing.T) {
	src := newMockSource()
	w := New(src)

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(context.Background(), func(Event) {})
	}()

	_ = src.Close()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after close")
	}
}

func TestWatcherLogsErrors(t *testing.T) {
	src := newMockSource()
	logger, hook := test.NewNullLogger()
	w := New(src, WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx, func(Event) {})
		close(done)
	}()

	src.errors <- errors.New("queue overflow")

	deadline := time.After(time.Second)
	for hook.LastEntry() == nil {
		select {
		case <-deadline:
			t.Fatal("error was not logged")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	entry := hook.LastEntry()
	if entry.Level != logrus.WarnLevel {
		t.Errorf("Level = %v, want warning", entry.Level)
	}
	if err, _ := entry.Data[logrus.ErrorKey].(error); err == nil || err.Error() != "queue overflow" {
		t.Errorf("error field = %v, want queue overflow", entry.Data[logrus.ErrorKey])
	}
}

func TestOp(t *testing.T) {
	tests := []struct {
		op   Op
		gone bool
	}{
		{OpCreate, false},
		{OpWrite, false},
		{OpRemove, true},
		{OpRename, true},
		{OpRemove | OpCreate, false},
	}

	for _, tt := range tests {
		if got := tt.op.Gone(); got != tt.gone {
			t.Errorf("%b.Gone() = %v, want %v", tt.op, got, tt.gone)
		}
	}

	if OpWrite.String() != "WRITE" {
		t.Errorf("OpWrite.String() = %q", OpWrite.String())
	}
}
