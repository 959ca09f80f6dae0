package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/netwatch"
	"github.com/dmitrijs2005/gophnotes/internal/client/remote"
	"github.com/dmitrijs2005/gophnotes/internal/client/store"
	"github.com/dmitrijs2005/gophnotes/internal/client/syncer"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type App struct {
	store   *store.Store
	sync    *syncer.Coordinator
	net     syncer.Connectivity
	watcher *netwatch.Watcher
	closers []io.Closer

	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

// NewApp opens the local store and connects the configured remote and
// connectivity signal. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureDBDir(c.DBPath); err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, c.DBPath, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	closers := []io.Closer{st}

	rem, err := remote.New(ctx, c.Remote())
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("error initializing remote: %w", err)
	}
	if cl, ok := rem.(io.Closer); ok {
		closers = append(closers, cl)
	}

	var (
		conn    syncer.Connectivity
		watcher *netwatch.Watcher
	)
	if c.HealthAddr != "" {
		prober, err := netwatch.NewGRPCHealthProber(c.HealthAddr, c.HealthService)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		closers = append(closers, prober)
		watcher = netwatch.NewWatcher(prober, c.OnlineCheckInterval, 0, log)
		conn = watcher
	} else {
		conn = netwatch.NewStatic(true)
	}

	coord := syncer.New(st, rem, conn,
		syncer.WithLogger(log),
		syncer.WithRemoteTimeout(c.RemoteTimeout))

	a := newApp(st, coord, conn, os.Stdin, os.Stdout, log)
	a.watcher = watcher
	a.closers = closers
	return a, nil
}

func newApp(st *store.Store, coord *syncer.Coordinator, conn syncer.Connectivity, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		store:  st,
		sync:   coord,
		net:    conn,
		reader: bufio.NewReader(in),
		out:    out,
		log:    log.With("module", "cli"),
	}
}

func (a *App) Close() error {
	closeAll(a.closers)
	return nil
}

func closeAll(cs []io.Closer) {
	for i := len(cs) - 1; i >= 0; i-- {
		_ = cs[i].Close()
	}
}

// Run starts the connectivity watcher and the REPL and blocks until the user
// leaves or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.watcher != nil {
		go a.watcher.Run(ctx)
	}
	stop := a.sync.Start(ctx)
	defer stop()

	unsubscribe := a.sync.Subscribe(func(syncing bool) {
		a.log.Debug(ctx, "sync state changed", "syncing", syncing)
	})
	defer unsubscribe()

	statusFn := func() string { return "" }
	if interactive() {
		printlnFn("Welcome to gophnotes (type 'help' for commands)")
		statusFn = func() string { return fmt.Sprintf("notes (%s)> ", a.mode()) }
	}

	runREPL(ctx, a, statusFn, a.reader)
}

func (a *App) mode() netwatch.Mode {
	if a.net.Online() {
		return netwatch.ModeOnline
	}
	return netwatch.ModeOffline
}

// afterChange pushes local edits right away when the backend is reachable.
func (a *App) afterChange(ctx context.Context) {
	if a.net.Online() {
		a.sync.TriggerSync(ctx)
	}
}
