package remote

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsNoop(t *testing.T) {
	for _, kind := range []string{"", KindNone} {
		r, err := New(context.Background(), Config{Kind: kind, SimulatedDelay: time.Millisecond})
		require.NoError(t, err)
		n, ok := r.(*Noop)
		require.True(t, ok)
		assert.Equal(t, time.Millisecond, n.Delay)
		assert.Equal(t, KindNone, r.Name())
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "ftp"})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNoop_Push(t *testing.T) {
	notes := []models.Note{{ID: "a"}}

	require.NoError(t, (&Noop{}).Push(context.Background(), notes))
	require.NoError(t, (&Noop{Delay: time.Millisecond}).Push(context.Background(), notes))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&Noop{Delay: time.Hour}).Push(ctx, notes)
	require.ErrorIs(t, err, context.Canceled)
}

func TestToDocument_NormalizesPriority(t *testing.T) {
	doc := toDocument(models.Note{ID: "x", Deleted: true})
	assert.Equal(t, "medium", doc.Priority)
	assert.True(t, doc.Deleted)
}
