// Package notes provides the SQLite persistence layer for notes and their
// tag assignments.
//
// # Data Model
//
// Rows live in the notes table (indexed by updated_at) and tag assignments
// in note_tags (keyed by note and tag, indexed by tag). Tombstones keep
// deleted=1 and are never removed by this package; the "active" listings skip
// them while GetByID and ListUnsynced still see them.
//
// # Ordering
//
// Every active listing is ordered by updated_at descending, ties broken by id
// descending, which is the ascending index order read backwards.
//
// Typical Usage
//
//	repo := notes.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, note)
//	list, _ := repo.ListActive(ctx)
//	_ = repo.SoftDelete(ctx, id, now)
package notes
