// Package syncer pushes locally changed notes to a remote and reports
// whether a sync pass is running.
//
// A pass fetches every unsynced note, pushes them in one call and then marks
// them synced one at a time. Errors are logged and absorbed: notes that were
// not marked stay pending for the next pass, and subscribers always see the
// pass end.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/remote"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Connectivity is the online signal the coordinator follows.
type Connectivity interface {
	Online() bool
	OnOnline(fn func()) (remove func())
}

// NoteSource is the slice of the local store a pass needs.
type NoteSource interface {
	ListUnsyncedNotes(ctx context.Context) ([]models.Note, error)
	MarkNoteSynced(ctx context.Context, id string) error
}

// syncRecorder is implemented by sources that remember completed passes.
type syncRecorder interface {
	RecordSync(ctx context.Context, at int64, count int) error
}

type Coordinator struct {
	source  NoteSource
	remote  remote.Remote
	net     Connectivity
	log     logging.Logger
	timeout time.Duration
	now     func() int64

	mu      sync.Mutex
	syncing bool

	subMu   sync.Mutex
	subs    map[int]func(bool)
	nextSub int
}

type Option func(*Coordinator)

func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithRemoteTimeout bounds each Push. Zero disables the bound.
func WithRemoteTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithClock sets the millisecond clock used to stamp completed passes.
func WithClock(now func() int64) Option {
	return func(c *Coordinator) { c.now = now }
}

func New(source NoteSource, r remote.Remote, net Connectivity, opts ...Option) *Coordinator {
	c := &Coordinator{
		source:  source,
		remote:  r,
		net:     net,
		log:     logging.Discard(),
		timeout: 30 * time.Second,
		now:     func() int64 { return time.Now().UnixMilli() },
		subs:    make(map[int]func(bool)),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("module", "syncer", "remote", r.Name())
	return c
}

func (c *Coordinator) IsSyncing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncing
}

// TriggerSync runs one pass in the calling goroutine. It does nothing and
// returns false when offline or when another pass is already running.
func (c *Coordinator) TriggerSync(ctx context.Context) bool {
	if !c.net.Online() {
		c.log.Debug(ctx, "sync skipped", "reason", "offline")
		return false
	}

	c.mu.Lock()
	if c.syncing {
		c.mu.Unlock()
		c.log.Debug(ctx, "sync skipped", "reason", "already running")
		return false
	}
	c.syncing = true
	c.mu.Unlock()

	c.emit(ctx, true)
	defer func() {
		c.mu.Lock()
		c.syncing = false
		c.mu.Unlock()
		c.emit(ctx, false)
	}()

	c.pass(ctx)
	return true
}

func (c *Coordinator) pass(ctx context.Context) {
	notes, err := c.source.ListUnsyncedNotes(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to list unsynced notes", "error", err)
		return
	}
	if len(notes) == 0 {
		c.log.Debug(ctx, "nothing to sync")
		return
	}

	pushCtx, cancel := ctx, context.CancelFunc(func() {})
	if c.timeout > 0 {
		pushCtx, cancel = context.WithTimeout(ctx, c.timeout)
	}
	err = c.remote.Push(pushCtx, notes)
	cancel()
	if err != nil {
		c.log.Warn(ctx, "sync failed", "notes", len(notes), "error", err)
		return
	}

	marked := 0
	for _, n := range notes {
		if err := c.source.MarkNoteSynced(ctx, n.ID); err != nil {
			c.log.Error(ctx, "failed to mark note synced", "id", n.ID, "marked", marked, "error", err)
			return
		}
		marked++
	}
	c.log.Info(ctx, "sync complete", "notes", marked)

	if rec, ok := c.source.(syncRecorder); ok {
		if err := rec.RecordSync(ctx, c.now(), marked); err != nil {
			c.log.Warn(ctx, "failed to record sync", "error", err)
		}
	}
}

// Subscribe registers fn for every Idle/Syncing transition. Nothing is sent
// on registration. The returned function unsubscribes and may be called more
// than once, including from inside fn.
func (c *Coordinator) Subscribe(fn func(syncing bool)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// emit calls a snapshot of the subscribers outside the lock. A panicking
// subscriber is logged and skipped.
func (c *Coordinator) emit(ctx context.Context, syncing bool) {
	c.subMu.Lock()
	snapshot := make([]func(bool), 0, len(c.subs))
	for id := 0; id < c.nextSub; id++ {
		if fn, ok := c.subs[id]; ok {
			snapshot = append(snapshot, fn)
		}
	}
	c.subMu.Unlock()

	for _, fn := range snapshot {
		c.notify(ctx, fn, syncing)
	}
}

func (c *Coordinator) notify(ctx context.Context, fn func(bool), syncing bool) {
	defer func() {
		if p := recover(); p != nil {
			c.log.Error(ctx, "sync subscriber panicked", "panic", p)
		}
	}()
	fn(syncing)
}

// Start makes every offline to online transition run a pass. The pass runs
// in the goroutine that reports the transition. Call the returned function
// to stop.
func (c *Coordinator) Start(ctx context.Context) (stop func()) {
	return c.net.OnOnline(func() {
		if ctx.Err() != nil {
			return
		}
		c.TriggerSync(ctx)
	})
}
