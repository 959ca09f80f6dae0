package store

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// ListTags returns the non-deleted tags by name.
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.ListActive(ctx)
}

func (s *Store) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	return absent(s.tags.GetByID(ctx, id))
}

func (s *Store) PutTag(ctx context.Context, t *models.Tag) error {
	return s.tags.Upsert(ctx, t)
}

func (s *Store) SoftDeleteTag(ctx context.Context, id string) error {
	return s.tags.SoftDelete(ctx, id)
}

func (s *Store) NewTag(name, color string) *models.Tag {
	return &models.Tag{
		ID:        s.ids.NewID(),
		Name:      name,
		Color:     color,
		CreatedAt: s.clock.NowMillis(),
	}
}
