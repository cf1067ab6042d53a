package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ftp-m3u/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// setupTestDB creates a fresh database in a temporary directory.
func setupTestDB(t testing.TB) (db *Database, dbPath string) {
	t.Helper()

	dbPath = filepath.Join(t.TempDir(), "test.db")
	db, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db, dbPath
}

func TestNewCreatesDatabaseFile(t *testing.T) {
	db, dbPath := setupTestDB(t)

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", db.Path(), dbPath)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewMissingDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "test.db")

	if _, err := New(context.Background(), dbPath); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewReopensExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	db, err := New(ctx, dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := db.CreateServer(ctx, FTPServer{Name: "NAS", Host: "nas.local"}); err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err = New(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	servers, err := db.ListServers(ctx)
	if err != nil {
		t.Fatalf("ListServers failed: %v", err)
	}
	if len(servers) != 1 {
		t.Errorf("expected 1 server after reopen, got %d", len(servers))
	}
}

func TestRecordQueryMetrics(t *testing.T) {
	before := testutil.ToFloat64(metrics.DBQueryTotal.WithLabelValues("test_operation", "error"))

	recordQuery("test_operation", time.Now(), errors.New("boom"))

	after := testutil.ToFloat64(metrics.DBQueryTotal.WithLabelValues("test_operation", "error"))
	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1", after-before)
	}
}

func TestGetStats(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.CreateServer(ctx, FTPServer{Name: "A", Host: "a"}); err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}
	for _, name := range []string{"one", "two"} {
		if _, err := db.CreatePlaylist(ctx, Playlist{Name: name, Content: "#EXTM3U\n"}); err != nil {
			t.Fatalf("CreatePlaylist failed: %v", err)
		}
	}

	stats := db.GetStats()
	if stats.TotalServers != 1 || stats.TotalPlaylists != 2 || stats.ActiveSessions != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}

	provided := MetricsProvider{DB: db}.GetStats()
	if provided.TotalPlaylists != 2 {
		t.Errorf("MetricsProvider TotalPlaylists = %d, want 2", provided.TotalPlaylists)
	}
}
