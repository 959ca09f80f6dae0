// Package models defines the client-side entities kept in the local store:
// notes, folders, tags and the images embedded in note content.
package models

// Priority ranks a note. The zero value means the record predates priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is reported for notes stored without a priority.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// OrDefault returns p, or DefaultPriority when p is empty.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return DefaultPriority
	}
	return p
}

// ParsePriority accepts the textual priority names; ok is false otherwise.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(s)
	return p, p.Valid()
}

// Note is a Markdown document owned by the local store.
//
// Timestamps are unix milliseconds. UpdatedAt orders listings.
type Note struct {
	// ID is an opaque identifier, immutable once created.
	ID string

	Title   string
	Content string

	// Priority may be empty for legacy records; listings normalize it.
	Priority Priority

	// FolderID is empty for unfiled notes.
	FolderID string

	// TagIDs is the ordered tag set of the note.
	TagIDs []string

	CreatedAt int64
	UpdatedAt int64

	// Synced is false whenever the local record diverged from the last
	// acknowledged remote state.
	Synced bool

	// Deleted marks a tombstone.
	Deleted bool
}

// Normalized returns a copy of n with an empty priority replaced by the default.
func (n Note) Normalized() Note {
	n.Priority = n.Priority.OrDefault()
	return n
}

// Unfiled reports whether the note belongs to no folder.
func (n Note) Unfiled() bool {
	return n.FolderID == ""
}
