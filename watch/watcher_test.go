package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewed.txt")
	if err := os.WriteFile(path, []byte("initial\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("changed\n"), 0644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewed.txt")
	if err := os.WriteFile(path, []byte("initial\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise\n"), 0644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case <-w.Changes():
		t.Error("unexpected notification for sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent", "file.txt")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewed.txt")
	if err := os.WriteFile(path, []byte("initial\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	for i := 0; i < 10; i++ {
		if err := os.WriteFile(path, []byte("burst\n"), 0644); err != nil {
			t.Fatalf("rewrite fixture: %v", err)
		}
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}
	// The channel holds at most one pending notification
	if len(w.Changes()) > 1 {
		t.Errorf("expected coalesced notifications, %d pending", len(w.Changes()))
	}
}
