package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/database"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// setupFileTestDB opens a file-backed database, the configuration the
// server runs with. Unlike :memory:, the connection pool is not capped at
// one, so it exercises real write contention.
func setupFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "store_test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *model.User {
	t.Helper()
	hash := "$2a$10$test-hash"
	user, err := NewUserStore(db).Create(email, email, &hash)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}
