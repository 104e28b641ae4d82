// Package store persists catalog videos in SQL and is the only code that
// knows the table layout.
//
// A Video lives in one row of the videos table. Its three artwork slots map
// to their own nullable columns (thumb_path, thumb_half_path, banner_path) so
// the slots never collide even though they share a shape. The primary media
// and the trailer each map to a column group prefixed media_ or trailer_;
// a slot is absent when its id column is NULL. Category, genre, and cast
// member references live in one linking table each, keyed by
// (video_id, position), so insertion order and duplicates survive a reload.
//
// The schema is derived entirely from schema.sql. There is no migration
// history: a version mismatch is reported as ErrSchemaMismatch and the
// caller resets the database. Reset drops and recreates every table.
//
// All reads and writes go through Do or View. Each scopes a transaction and,
// for SQLite, an advisory file lock to a single unit of work and releases both
// on every exit path.
package store
