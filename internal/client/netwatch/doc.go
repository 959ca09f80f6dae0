// Package netwatch tracks whether the sync backend is reachable.
//
// A Watcher probes periodically and fires its OnOnline hooks on every
// offline to online transition. Static is a manually driven signal for setups
// without a probe endpoint.
package netwatch
