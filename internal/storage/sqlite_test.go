package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	records := []Session{
		{User: "alice", View: "menu", Backend: "tcell", Frames: 600, LastFPS: 60, DurationMs: 10000, EndReason: EndQuit},
		{User: "bob", View: "ship", Backend: "ssh", Frames: 300, LastFPS: 30, DurationMs: 10000, EndReason: EndQuit},
		{User: "alice", View: "menu", Backend: "tea", Frames: 10, LastFPS: 0, DurationMs: 200, EndReason: EndError},
	}
	for _, rec := range records {
		id, err := store.SaveSession(rec)
		if err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("SaveSession() id = %d", id)
		}
	}

	recent, err := store.RecentSessions(2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(recent))
	}

	// Newest first
	if recent[0].Backend != "tea" || recent[0].EndReason != EndError {
		t.Errorf("Expected newest session first, got %+v", recent[0])
	}
	if recent[1].User != "bob" || recent[1].Frames != 300 {
		t.Errorf("Unexpected second session %+v", recent[1])
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreViewStats(t *testing.T) {
	store := openTestStore(t)

	for _, rec := range []Session{
		{View: "menu", Backend: "tcell", Frames: 100, LastFPS: 60, EndReason: EndQuit},
		{View: "menu", Backend: "tcell", Frames: 50, LastFPS: 40, EndReason: EndQuit},
		{View: "ship", Backend: "ssh", Frames: 10, LastFPS: 30, EndReason: EndQuit},
	} {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	stats, err := store.AllViewStats()
	if err != nil {
		t.Fatalf("AllViewStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 views, got %d", len(stats))
	}

	menu := stats["menu"]
	if menu.Sessions != 2 || menu.TotalFrames != 150 || menu.AvgFPS != 50 {
		t.Errorf("Unexpected menu stats %+v", menu)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(Session{View: "ship", Backend: "tcell", EndReason: EndQuit}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if err := store.ClearSessions(); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	recent, err := store.RecentSessions(0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no sessions after clear, got %d", len(recent))
	}
}

func TestSessionFinish(t *testing.T) {
	start := time.Now().Add(-2 * time.Second)
	base := Session{User: "alice", View: "ship", Backend: "tcell"}

	ok := base.Finish(start, 120, 60, nil)
	if ok.EndReason != EndQuit || ok.Frames != 120 || ok.LastFPS != 60 {
		t.Errorf("Finish() = %+v", ok)
	}
	if ok.DurationMs < 2000 {
		t.Errorf("DurationMs = %d, expected at least 2000", ok.DurationMs)
	}
	if ok.User != "alice" || ok.View != "ship" {
		t.Error("Finish() should keep the identifying fields")
	}

	failed := base.Finish(start, 1, 0, errors.New("boom"))
	if failed.EndReason != EndError {
		t.Errorf("EndReason = %s, expected %s", failed.EndReason, EndError)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
