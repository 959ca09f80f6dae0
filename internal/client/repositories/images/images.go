// Package images persists binary note attachments. Unlike notes and folders,
// images are removed physically.
package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

type Repository interface {
	Upsert(ctx context.Context, img *models.NoteImage) error
	GetByID(ctx context.Context, id string) (*models.NoteImage, error)
	ListByNote(ctx context.Context, noteID string) ([]models.NoteImage, error)
	DeleteByID(ctx context.Context, id string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, img *models.NoteImage) error {
	query := `INSERT INTO images (id, note_id, name, mime_type, data, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET note_id = excluded.note_id,
				name = excluded.name,
				mime_type = excluded.mime_type,
				data = excluded.data,
				created_at = excluded.created_at
	`
	_, err := r.db.ExecContext(ctx, query, img.ID, img.NoteID, img.Name, img.MimeType, img.Data, img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert image: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.NoteImage, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, note_id, name, mime_type, data, created_at FROM images WHERE id = ?`, id)

	var img models.NoteImage
	err := row.Scan(&img.ID, &img.NoteID, &img.Name, &img.MimeType, &img.Data, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &img, nil
}

// ListByNote returns the images of a note in upload order.
func (r *SQLiteRepository) ListByNote(ctx context.Context, noteID string) ([]models.NoteImage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, note_id, name, mime_type, data, created_at FROM images
		WHERE note_id = ?
		ORDER BY created_at ASC, id ASC`, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	defer rows.Close()

	var result []models.NoteImage
	for rows.Next() {
		var img models.NoteImage
		if err := rows.Scan(&img.ID, &img.NoteID, &img.Name, &img.MimeType, &img.Data, &img.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
