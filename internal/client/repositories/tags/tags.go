// Package tags persists note tags in SQLite. Assignments live with the notes
// (see package notes); this package only owns the tag records.
package tags

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
	Upsert(ctx context.Context, t *models.Tag) error
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	ListActive(ctx context.Context) ([]models.Tag, error)
	SoftDelete(ctx context.Context, id string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, t *models.Tag) error {
	query := `INSERT INTO tags (id, name, color, created_at, synced, deleted)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				color = excluded.color,
				created_at = excluded.created_at,
				synced = excluded.synced,
				deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Color, t.CreatedAt, t.Synced, t.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert tag: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at, synced, deleted FROM tags WHERE id = ?`, id)

	var t models.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.Synced, &t.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &t, nil
}

func (r *SQLiteRepository) ListActive(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, created_at, synced, deleted FROM tags
		WHERE deleted = 0
		ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer rows.Close()

	var result []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.Synced, &t.Deleted); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SoftDelete tombstones the tag. Existing assignments stay in note_tags.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tags SET deleted = 1, synced = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
