package notes

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// Repository describes the note queries the store relies on.
type Repository interface {
	// Upsert inserts the note or fully replaces the row with the same id,
	// including its tag set.
	Upsert(ctx context.Context, note *models.Note) error

	// GetByID returns the note, tombstone or not, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// ListActive returns every non-deleted note.
	ListActive(ctx context.Context) ([]models.Note, error)

	// ListActiveInFolder returns non-deleted notes whose folder is folderID.
	ListActiveInFolder(ctx context.Context, folderID string) ([]models.Note, error)

	// ListActiveUnfiled returns non-deleted notes without a folder.
	ListActiveUnfiled(ctx context.Context) ([]models.Note, error)

	// ListActiveByTag returns non-deleted notes carrying tagID.
	ListActiveByTag(ctx context.Context, tagID string) ([]models.Note, error)

	// ListUnsynced returns all notes, tombstones included, with synced=0.
	ListUnsynced(ctx context.Context) ([]models.Note, error)

	// SoftDelete tombstones the note and stamps updatedAt. Missing ids are ignored.
	SoftDelete(ctx context.Context, id string, updatedAt int64) error

	// MarkSynced flips synced=1 and nothing else. Missing ids are ignored.
	MarkSynced(ctx context.Context, id string) error
}
