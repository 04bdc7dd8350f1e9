package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	assert.NoError(t, d.Ping())
}

func TestMigrationsApply(t *testing.T) {
	d := OpenForTesting(t)

	for _, table := range []string{"items", "points", "point_items"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	var count int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM items").Scan(&count))
	assert.Equal(t, 6, count)
}

func TestSeededItems(t *testing.T) {
	d := OpenForTesting(t)

	var title, image string
	err := d.QueryRow("SELECT title, image FROM items WHERE id = 1").Scan(&title, &image)
	require.NoError(t, err)
	assert.Equal(t, "Lâmpadas", title)
	assert.Equal(t, "lampadas.svg", image)
}

func TestForeignKeysEnforced(t *testing.T) {
	d := OpenForTesting(t)

	_, err := d.Exec("INSERT INTO point_items (point_id, item_id) VALUES (999, 999)")
	assert.Error(t, err)
}
