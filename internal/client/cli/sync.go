package cli

import (
	"context"
	"fmt"
)

func (a *App) Sync(ctx context.Context, _ []string) error {
	if !a.net.Online() {
		fmt.Fprintln(a.out, "Offline: changes stay queued until the backend is reachable.")
		return nil
	}
	if !a.sync.TriggerSync(ctx) {
		fmt.Fprintln(a.out, "A sync is already running.")
		return nil
	}
	pending, err := a.store.ListUnsyncedNotes(ctx)
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		fmt.Fprintf(a.out, "Sync incomplete: %d note(s) still pending.\n", len(pending))
		return nil
	}
	fmt.Fprintln(a.out, "Everything is synced.")
	return nil
}

func (a *App) Status(ctx context.Context, _ []string) error {
	pending, err := a.store.ListUnsyncedNotes(ctx)
	if err != nil {
		return err
	}
	last, err := a.store.LastSync(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "mode: %s\n", a.mode())
	fmt.Fprintf(a.out, "syncing: %t\n", a.sync.IsSyncing())
	fmt.Fprintf(a.out, "pending notes: %d\n", len(pending))
	if last != nil {
		fmt.Fprintf(a.out, "last sync: %s (%d notes)\n", formatTime(last.At), last.Notes)
	} else {
		fmt.Fprintln(a.out, "last sync: never")
	}
	v, err := a.store.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "schema version: %d\n", v)
	return nil
}
