package images

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

func TestUpsertGetDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	img := &models.NoteImage{ID: "i1", NoteID: "n1", Name: "cat.png", MimeType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}, CreatedAt: 7}
	require.NoError(t, r.Upsert(ctx, img))

	got, err := r.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, img, got)

	require.NoError(t, r.DeleteByID(ctx, "i1"))
	_, err = r.GetByID(ctx, "i1")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.DeleteByID(ctx, "i1"), "deleting a missing image is not an error")
}

func TestListByNote(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.NoteImage{ID: "b", NoteID: "n1", Data: []byte{1}, CreatedAt: 2}))
	require.NoError(t, r.Upsert(ctx, &models.NoteImage{ID: "a", NoteID: "n1", Data: []byte{2}, CreatedAt: 1}))
	require.NoError(t, r.Upsert(ctx, &models.NoteImage{ID: "c", NoteID: "n2", Data: []byte{3}, CreatedAt: 3}))

	got, err := r.ListByNote(ctx, "n1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	none, err := r.ListByNote(ctx, "n3")
	require.NoError(t, err)
	assert.Empty(t, none)
}
