// Package store is the local note store: notes, folders, tags and note images
// persisted in an embedded SQLite database.
//
// A Store is created with Open, which applies pending migrations, and is then
// passed explicitly to the sync coordinator and the CLI. Listings never
// include soft-deleted records; direct lookups by id do. Getters report a
// missing record as nil with a nil error, and deletes or sync marks on a
// missing id are no-ops. Storage failures are returned to the caller.
package store
