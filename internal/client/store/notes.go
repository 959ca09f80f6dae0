package store

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// ListNotes returns every non-deleted note regardless of folder, most
// recently updated first.
func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	return normalized(s.notes.ListActive(ctx))
}

// ListNotesInFolder returns the non-deleted notes filed under folderID.
func (s *Store) ListNotesInFolder(ctx context.Context, folderID string) ([]models.Note, error) {
	return normalized(s.notes.ListActiveInFolder(ctx, folderID))
}

// ListUnfiledNotes returns the non-deleted notes that belong to no folder.
func (s *Store) ListUnfiledNotes(ctx context.Context) ([]models.Note, error) {
	return normalized(s.notes.ListActiveUnfiled(ctx))
}

func (s *Store) ListNotesByTag(ctx context.Context, tagID string) ([]models.Note, error) {
	return normalized(s.notes.ListActiveByTag(ctx, tagID))
}

// GetNote returns the stored record as written, tombstones included.
func (s *Store) GetNote(ctx context.Context, id string) (*models.Note, error) {
	return absent(s.notes.GetByID(ctx, id))
}

// PutNote inserts or fully replaces a note and its tag set atomically.
// The tag set is stored without duplicates, and an empty set as nil; the
// cleaned set is written back to n so it matches what GetNote returns.
func (s *Store) PutNote(ctx context.Context, n *models.Note) error {
	n.TagIDs = uniqueTags(n.TagIDs)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return notes.NewSQLiteRepository(tx).Upsert(ctx, n)
	})
}

func (s *Store) SoftDeleteNote(ctx context.Context, id string) error {
	return s.notes.SoftDelete(ctx, id, s.clock.NowMillis())
}

// ListUnsyncedNotes returns notes pending sync, tombstones included, oldest
// change first.
func (s *Store) ListUnsyncedNotes(ctx context.Context) ([]models.Note, error) {
	return s.notes.ListUnsynced(ctx)
}

// MarkNoteSynced acknowledges a sync without touching any other field.
func (s *Store) MarkNoteSynced(ctx context.Context, id string) error {
	return s.notes.MarkSynced(ctx, id)
}

// NewNote builds an unsaved note stamped with a fresh id and the current time.
func (s *Store) NewNote(title, folderID string) *models.Note {
	if title == "" {
		title = common.DefaultNoteTitle
	}
	now := s.clock.NowMillis()
	return &models.Note{
		ID:        s.ids.NewID(),
		Title:     title,
		Priority:  models.DefaultPriority,
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks an edited note as changed. Call it before PutNote.
func (s *Store) Touch(n *models.Note) {
	n.UpdatedAt = s.clock.NowMillis()
	n.Synced = false
}

func normalized(list []models.Note, err error) ([]models.Note, error) {
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = list[i].Normalized()
	}
	return list, nil
}

// uniqueTags keeps the first occurrence of each id, in order.
func uniqueTags(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
