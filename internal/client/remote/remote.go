// Package remote holds the targets a sync pass pushes notes to.
//
// Push receives every pending note, tombstones included, and either accepts
// the whole batch or returns an error; the caller marks notes synced only
// after a successful push.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type Remote interface {
	Push(ctx context.Context, notes []models.Note) error
	Name() string
}

// Kinds accepted by New.
const (
	KindNone     = "none"
	KindS3       = "s3"
	KindPostgres = "postgres"
)

var ErrUnknownKind = errors.New("unknown remote kind")

type Config struct {
	Kind string

	// SimulatedDelay makes the placeholder remote sleep before accepting.
	SimulatedDelay time.Duration

	S3 S3Config

	PostgresDSN string
}

// New builds the remote selected by cfg.Kind. An empty kind means none.
func New(ctx context.Context, cfg Config) (Remote, error) {
	switch cfg.Kind {
	case "", KindNone:
		return &Noop{Delay: cfg.SimulatedDelay}, nil
	case KindS3:
		return NewS3(ctx, cfg.S3)
	case KindPostgres:
		return OpenPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

// Noop accepts every push. It stands in for a backend that does not exist yet.
type Noop struct {
	Delay time.Duration
}

func (n *Noop) Name() string { return KindNone }

func (n *Noop) Push(ctx context.Context, _ []models.Note) error {
	if n.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(n.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// noteDocument is the wire shape of a pushed note.
type noteDocument struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Priority  string   `json:"priority"`
	FolderID  string   `json:"folderId,omitempty"`
	TagIDs    []string `json:"tagIds,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	Deleted   bool     `json:"deleted"`
}

func toDocument(n models.Note) noteDocument {
	return noteDocument{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Priority:  string(n.Priority.OrDefault()),
		FolderID:  n.FolderID,
		TagIDs:    n.TagIDs,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Deleted:   n.Deleted,
	}
}
