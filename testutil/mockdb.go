package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the ItemTable table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ItemTable (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create ItemTable table: %v", err)
	}

	return db
}

// CreateDBFile returns a path for a fresh database file inside t.TempDir
func CreateDBFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "chats.db")
}

// InsertItem stores a raw value under key
func InsertItem(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	insertSQL := "INSERT OR REPLACE INTO ItemTable (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, key, value); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}
}

// ReadItem returns the raw value under key
func ReadItem(t *testing.T, db *sql.DB, key string) (string, bool) {
	t.Helper()
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		t.Fatalf("Failed to read item: %v", err)
	}
	return value.String, value.Valid
}
