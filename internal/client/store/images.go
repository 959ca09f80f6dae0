package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/markdown"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

func (s *Store) PutImage(ctx context.Context, img *models.NoteImage) error {
	return s.images.Upsert(ctx, img)
}

func (s *Store) GetImage(ctx context.Context, id string) (*models.NoteImage, error) {
	return absent(s.images.GetByID(ctx, id))
}

func (s *Store) ListImagesByNote(ctx context.Context, noteID string) ([]models.NoteImage, error) {
	return s.images.ListByNote(ctx, noteID)
}

// DeleteImage removes the image permanently.
func (s *Store) DeleteImage(ctx context.Context, id string) error {
	return s.images.DeleteByID(ctx, id)
}

// DeleteImagesByNote removes every image of the note. Deletions run
// concurrently and a failed one does not stop the rest; all failures are
// returned combined.
func (s *Store) DeleteImagesByNote(ctx context.Context, noteID string) error {
	list, err := s.images.ListByNote(ctx, noteID)
	if err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		errs error
		g    errgroup.Group
	)
	g.SetLimit(s.imageWorkers)

	for _, img := range list {
		id := img.ID
		g.Go(func() error {
			if err := s.images.DeleteByID(ctx, id); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("image %s: %w", id, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if errs != nil {
		s.log.Warn(ctx, "image cleanup incomplete",
			"note_id", noteID, "failed", len(multierr.Errors(errs)), "total", len(list))
	}
	return errs
}

// UnreferencedImages lists the images of a note whose content no longer
// refers to them. If the note itself is gone, all of its images qualify.
func (s *Store) UnreferencedImages(ctx context.Context, noteID string) ([]models.NoteImage, error) {
	note, err := s.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	list, err := s.images.ListByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return list, nil
	}

	refs := make(map[string]struct{})
	for _, id := range markdown.ImageRefs(note.Content) {
		refs[id] = struct{}{}
	}

	var out []models.NoteImage
	for _, img := range list {
		if _, ok := refs[img.ID]; !ok {
			out = append(out, img)
		}
	}
	return out, nil
}

// NewImage builds an unsaved image owned by noteID.
func (s *Store) NewImage(noteID, name, mimeType string, data []byte) *models.NoteImage {
	return &models.NoteImage{
		ID:        s.ids.NewID(),
		NoteID:    noteID,
		Name:      name,
		MimeType:  mimeType,
		Data:      data,
		CreatedAt: s.clock.NowMillis(),
	}
}
