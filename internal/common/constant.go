package common

// ImageURIScheme prefixes image references embedded in note content; the
// remainder of the URI is the image id.
const ImageURIScheme = "idb://"

// DefaultNoteTitle is shown for notes created without a title.
const DefaultNoteTitle = "Untitled note"
