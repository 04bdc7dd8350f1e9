package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenForTesting opens a migrated database in a per-test temp directory. The
// database is closed when the test completes.
func OpenForTesting(t testing.TB) *sql.DB {
	t.Helper()

	d, err := Open(filepath.Join(t.TempDir(), "ecoleta.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	return d
}
