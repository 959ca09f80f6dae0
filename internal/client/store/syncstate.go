package store

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// SyncState describes the last successful sync pass.
type SyncState struct {
	At    int64
	Notes int64
}

// RecordSync stores the completion time and size of a sync pass. Both keys
// are written in one transaction.
func (s *Store) RecordSync(ctx context.Context, at int64, count int) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.SetInt64(ctx, metadata.KeyLastSyncAt, at); err != nil {
			return err
		}
		return repo.SetInt64(ctx, metadata.KeyLastSyncCount, int64(count))
	})
}

// LastSync returns nil when no pass has completed yet.
func (s *Store) LastSync(ctx context.Context) (*SyncState, error) {
	at, ok, err := s.metadata.GetInt64(ctx, metadata.KeyLastSyncAt)
	if err != nil || !ok {
		return nil, err
	}
	n, _, err := s.metadata.GetInt64(ctx, metadata.KeyLastSyncCount)
	if err != nil {
		return nil, err
	}
	return &SyncState{At: at, Notes: n}, nil
}
