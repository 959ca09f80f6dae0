package models

// Tag labels notes; a note may carry many tags.
type Tag struct {
	ID   string
	Name string

	// Color is a CSS color such as "#ef4444".
	Color string

	CreatedAt int64
	Synced    bool
	Deleted   bool
}
