package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

const noteColumns = `id, title, content, priority, folder_id, created_at, updated_at, synced, deleted`

// tagQueryChunk bounds the number of bound parameters per tag lookup.
const tagQueryChunk = 500

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Upsert touches two tables; run it inside dbx.WithTx for atomicity.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, n *models.Note) error {
	query := `INSERT INTO notes (` + noteColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title,
				content = excluded.content,
				priority = excluded.priority,
				folder_id = excluded.folder_id,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				synced = excluded.synced,
				deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Content, dbx.NullString(string(n.Priority)), dbx.NullString(n.FolderID),
		n.CreatedAt, n.UpdatedAt, n.Synced, n.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, n.ID); err != nil {
		return fmt.Errorf("failed to clear note tags: %w", err)
	}
	for pos, tagID := range n.TagIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id, position) VALUES (?, ?, ?)`,
			n.ID, tagID, pos)
		if err != nil {
			return fmt.Errorf("failed to insert note tag: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)

	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}

	list := []models.Note{*n}
	if err := r.attachTags(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *SQLiteRepository) ListActive(ctx context.Context) ([]models.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes
		WHERE deleted = 0
		ORDER BY updated_at DESC, id DESC`)
}

func (r *SQLiteRepository) ListActiveInFolder(ctx context.Context, folderID string) ([]models.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes
		WHERE deleted = 0 AND folder_id = ?
		ORDER BY updated_at DESC, id DESC`, folderID)
}

func (r *SQLiteRepository) ListActiveUnfiled(ctx context.Context) ([]models.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes
		WHERE deleted = 0 AND folder_id IS NULL
		ORDER BY updated_at DESC, id DESC`)
}

// ListActiveByTag lists nothing for a soft-deleted tag. Ids with no tag row
// still match.
func (r *SQLiteRepository) ListActiveByTag(ctx context.Context, tagID string) ([]models.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes
		WHERE deleted = 0 AND id IN (SELECT note_id FROM note_tags WHERE tag_id = ?)
			AND NOT EXISTS (SELECT 1 FROM tags WHERE tags.id = ? AND tags.deleted = 1)
		ORDER BY updated_at DESC, id DESC`, tagID, tagID)
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]models.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes
		WHERE synced = 0
		ORDER BY updated_at ASC, id ASC`)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string, updatedAt int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET deleted = 1, synced = 0, updated_at = ? WHERE id = ?`, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notes SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark note synced: %w", err)
	}
	return nil
}

// list runs a note query and fills in tag sets. Rows are closed before the
// tag lookup so the repository works over a single connection.
func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := r.attachTags(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) attachTags(ctx context.Context, list []models.Note) error {
	if len(list) == 0 {
		return nil
	}

	index := make(map[string]int, len(list))
	for i := range list {
		index[list[i].ID] = i
	}

	for start := 0; start < len(list); start += tagQueryChunk {
		end := min(start+tagQueryChunk, len(list))

		args := make([]any, 0, end-start)
		for _, n := range list[start:end] {
			args = append(args, n.ID)
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")

		rows, err := r.db.QueryContext(ctx,
			`SELECT note_id, tag_id FROM note_tags WHERE note_id IN (`+placeholders+`) ORDER BY note_id, position`,
			args...)
		if err != nil {
			return fmt.Errorf("failed to select note tags: %w", err)
		}

		for rows.Next() {
			var noteID, tagID string
			if err := rows.Scan(&noteID, &tagID); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan note tag: %w", err)
			}
			if i, ok := index[noteID]; ok {
				list[i].TagIDs = append(list[i].TagIDs, tagID)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*models.Note, error) {
	var (
		n        models.Note
		priority sql.NullString
		folderID sql.NullString
	)
	err := s.Scan(&n.ID, &n.Title, &n.Content, &priority, &folderID,
		&n.CreatedAt, &n.UpdatedAt, &n.Synced, &n.Deleted)
	if err != nil {
		return nil, err
	}
	n.Priority = models.Priority(dbx.StringOrEmpty(priority))
	n.FolderID = dbx.StringOrEmpty(folderID)
	return &n, nil
}
