// Package cli provides the interactive notes command-line client.
//
// It wires configuration, the local store, the sync coordinator and a
// connectivity signal into a small REPL. Edits are saved locally first and
// pushed opportunistically: every mutating command triggers a sync pass when
// online, and a background watcher triggers one whenever the backend comes
// back.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
