package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFSNotifySourceReportsMatchingFiles(t *testing.T) {
	dir := t.TempDir()

	src, err := NewFSNotifySource(".profile")
	if err != nil {
		t.Fatalf("NewFSNotifySource() error = %v", err)
	}
	defer src.Close()

	if err := src.Add(dir); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "pad.profile")
	if err := os.WriteFile(want, []byte("<joystickProfile/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-src.Events():
			if filepath.Ext(e.Path) != ".profile" {
				t.Fatalf("unexpected event for %s", e.Path)
			}
			if e.Path == want {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestFSNotifySourceAddErrors(t *testing.T) {
	src, err := NewFSNotifySource("")
	if err != nil {
		t.Fatalf("NewFSNotifySource() error = %v", err)
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "a.profile")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := src.Add(filepath.Join(dir, "missing")); !errors.Is(err, ErrPathNotExist) {
		t.Errorf("Add(missing) = %v, want ErrPathNotExist", err)
	}
	if err := src.Add(file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Add(file) = %v, want ErrNotDirectory", err)
	}
	if err := src.Add(dir); err != nil {
		t.Errorf("Add(dir) = %v", err)
	}
	if err := src.Add(dir); err != nil {
		t.Errorf("second Add(dir) = %v", err)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := src.Add(dir); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Add after Close = %v, want ErrWatcherClosed", err)
	}
}
