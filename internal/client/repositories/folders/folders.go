// Package folders persists note folders in SQLite. Listings skip tombstones
// and follow the folders_by_name index.
package folders

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
	Upsert(ctx context.Context, f *models.Folder) error
	GetByID(ctx context.Context, id string) (*models.Folder, error)
	ListActive(ctx context.Context) ([]models.Folder, error)
	SoftDelete(ctx context.Context, id string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, f *models.Folder) error {
	query := `INSERT INTO folders (id, name, created_at, synced, deleted)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				created_at = excluded.created_at,
				synced = excluded.synced,
				deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.Name, f.CreatedAt, f.Synced, f.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert folder: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, synced, deleted FROM folders WHERE id = ?`, id)

	var f models.Folder
	err := row.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.Synced, &f.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &f, nil
}

// ListActive returns non-deleted folders by name ascending.
func (r *SQLiteRepository) ListActive(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, synced, deleted FROM folders
		WHERE deleted = 0
		ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.Synced, &f.Deleted); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SoftDelete tombstones the folder. Notes that point at it are left alone.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE folders SET deleted = 1, synced = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}
