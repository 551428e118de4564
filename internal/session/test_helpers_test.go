package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hearthd/hearth-core/internal/infrastructure/database"
	_ "github.com/hearthd/hearth-core/migrations"
)

// testRepo opens a temp-file SQLite database with migrations applied
// and returns a credential repository backed by it.
func testRepo(t *testing.T) *SQLiteCredentialRepository {
	t.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return NewCredentialRepository(db.DB)
}

// testManager creates a manager over a fresh test repository.
func testManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	return NewManager(testRepo(t), ttl)
}
