package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/remote/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// PostgresRemote mirrors notes into a PostgreSQL table. A batch is written in
// one transaction; an older copy never overwrites a newer one.
type PostgresRemote struct {
	db *sql.DB
}

// OpenPostgres connects with the pgx driver and applies the remote schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRemote, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	p, err := goose.NewProvider(database.DialectPostgres, db, migrations.Migrations)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration setup error: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return NewPostgres(db), nil
}

func NewPostgres(db *sql.DB) *PostgresRemote {
	return &PostgresRemote{db: db}
}

func (r *PostgresRemote) Name() string { return KindPostgres }

func (r *PostgresRemote) Close() error { return r.db.Close() }

const upsertNote = `
	INSERT INTO notes (id, title, content, priority, folder_id, tag_ids, created_at, updated_at, deleted)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id)
	DO UPDATE SET
		title = EXCLUDED.title,
		content = EXCLUDED.content,
		priority = EXCLUDED.priority,
		folder_id = EXCLUDED.folder_id,
		tag_ids = EXCLUDED.tag_ids,
		updated_at = EXCLUDED.updated_at,
		deleted = EXCLUDED.deleted
		WHERE notes.updated_at <= EXCLUDED.updated_at;
`

func (r *PostgresRemote) Push(ctx context.Context, notes []models.Note) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, n := range notes {
			doc := toDocument(n)
			if doc.TagIDs == nil {
				doc.TagIDs = []string{}
			}
			tags, err := json.Marshal(doc.TagIDs)
			if err != nil {
				return fmt.Errorf("failed to encode tags of %s: %w", n.ID, err)
			}
			_, err = tx.ExecContext(ctx, upsertNote,
				doc.ID, doc.Title, doc.Content, doc.Priority, dbx.NullString(doc.FolderID),
				string(tags), doc.CreatedAt, doc.UpdatedAt, doc.Deleted)
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
		return nil
	})
}
