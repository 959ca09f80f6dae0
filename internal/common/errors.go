// Package common defines sentinel errors shared by the gophnotes client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound is returned by repositories when a row with the requested
	// id does not exist. The store turns it into an absent result.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable reports that a remote endpoint could not be reached.
	ErrUnavailable = errors.New("remote unavailable")
)
