package store

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// ListFolders returns the non-deleted folders by name.
func (s *Store) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folders.ListActive(ctx)
}

func (s *Store) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return absent(s.folders.GetByID(ctx, id))
}

func (s *Store) PutFolder(ctx context.Context, f *models.Folder) error {
	return s.folders.Upsert(ctx, f)
}

// SoftDeleteFolder tombstones the folder. Its notes keep their folder id, so
// they still list under ListNotesInFolder(id) and never count as unfiled.
func (s *Store) SoftDeleteFolder(ctx context.Context, id string) error {
	return s.folders.SoftDelete(ctx, id)
}

func (s *Store) NewFolder(name string) *models.Folder {
	return &models.Folder{
		ID:        s.ids.NewID(),
		Name:      name,
		CreatedAt: s.clock.NowMillis(),
	}
}
