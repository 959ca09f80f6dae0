package models

// Folder groups notes. Deleting a folder does not touch its notes.
type Folder struct {
	ID        string
	Name      string
	CreatedAt int64
	Synced    bool
	Deleted   bool
}
