package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/folders"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/images"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/tags"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"

	_ "modernc.org/sqlite"
)

// Store is the local note store. It is safe for concurrent use; access to
// the database is serialized over a single connection.
type Store struct {
	db *sql.DB

	notes    notes.Repository
	folders  folders.Repository
	tags     tags.Repository
	images   images.Repository
	metadata metadata.Repository

	clock Clock
	ids   IDGenerator
	log   logging.Logger

	// imageWorkers bounds DeleteImagesByNote fan-out.
	imageWorkers int
}

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithImageWorkers sets how many image deletions may run at once.
func WithImageWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.imageWorkers = n
		}
	}
}

// Open opens (creating if needed) the SQLite database at dsn, brings its
// schema up to date and returns a ready store. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := New(db, opts...)
	s.log.Debug(ctx, "store opened", "dsn", dsn)
	return s, nil
}

// New wraps an already migrated database.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:           db,
		notes:        notes.NewSQLiteRepository(db),
		folders:      folders.NewSQLiteRepository(db),
		tags:         tags.NewSQLiteRepository(db),
		images:       images.NewSQLiteRepository(db),
		metadata:     metadata.NewSQLiteRepository(db),
		clock:        SystemClock,
		ids:          UUIDGenerator,
		log:          logging.Discard(),
		imageWorkers: 4,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("module", "store")
	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SchemaVersion reports the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	return migrations.Version(ctx, s.db)
}

// absent turns the repositories' ErrNotFound into the store's nil, nil.
func absent[T any](v *T, err error) (*T, error) {
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
