package netwatch

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Prober reports whether the backend answers. Any error means offline.
type Prober interface {
	Probe(ctx context.Context) error
}

const (
	defaultInterval = 3 * time.Second
	defaultTimeout  = 3 * time.Second
)

type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// Watcher polls a Prober and keeps the current mode. It starts offline.
type Watcher struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	mu    sync.Mutex
	mode  Mode
	hooks hookSet
}

// NewWatcher returns an offline watcher. Non-positive interval and timeout
// fall back to the defaults.
func NewWatcher(p Prober, interval, timeout time.Duration, log logging.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Watcher{
		prober:   p,
		interval: interval,
		timeout:  timeout,
		log:      log.With("module", "netwatch"),
		mode:     ModeOffline,
	}
}

func (w *Watcher) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

func (w *Watcher) Online() bool {
	return w.Mode() == ModeOnline
}

func (w *Watcher) OnOnline(fn func()) (remove func()) {
	return w.hooks.add(fn)
}

// Check probes once and updates the mode.
func (w *Watcher) Check(ctx context.Context) Mode {
	probeCtx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.prober.Probe(probeCtx)
	cancel()

	mode := ModeOnline
	if err != nil {
		mode = ModeOffline
	}
	w.setMode(ctx, mode, err)
	return mode
}

func (w *Watcher) setMode(ctx context.Context, mode Mode, cause error) {
	w.mu.Lock()
	prev := w.mode
	w.mode = mode
	w.mu.Unlock()

	if prev == mode {
		return
	}
	if cause != nil {
		w.log.Info(ctx, "switched mode", "mode", mode, "error", cause)
	} else {
		w.log.Info(ctx, "switched mode", "mode", mode)
	}
	if mode == ModeOnline {
		w.hooks.fire()
	}
}

// Run probes immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
