package models

// NoteImage is a binary attachment owned by one note and referenced from its
// content as idb://<ID>.
type NoteImage struct {
	ID        string
	NoteID    string
	Name      string
	MimeType  string
	Data      []byte
	CreatedAt int64
}
