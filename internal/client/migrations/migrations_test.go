package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const latestVersion = 6

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func indexExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func openFileDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUp_CreatesCollectionsAndIndexes(t *testing.T) {
	ctx := context.Background()
	db := openFileDB(t)

	require.NoError(t, Up(ctx, db))

	for _, table := range []string{"goose_db_version", "notes", "folders", "images", "tags", "note_tags", "metadata"} {
		require.True(t, tableExists(t, db, table), "table %s", table)
	}
	for _, idx := range []string{"notes_by_updated", "folders_by_name", "images_by_note", "tags_by_name", "note_tags_by_tag"} {
		require.True(t, indexExists(t, db, idx), "index %s", idx)
	}

	v, err := Version(ctx, db)
	require.NoError(t, err)
	require.EqualValues(t, latestVersion, v)
}

func TestUp_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openFileDB(t)

	require.NoError(t, Up(ctx, db))

	_, err := db.Exec(`INSERT INTO notes (id, created_at, updated_at) VALUES ('keep', 1, 1)`)
	require.NoError(t, err)

	require.NoError(t, Up(ctx, db), "second run must be a no-op")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n))
	require.Equal(t, 1, n, "existing data must survive a re-run")

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM goose_db_version WHERE version_id > 0`).Scan(&applied))
	require.Equal(t, latestVersion, applied, "each version is recorded exactly once")
}
