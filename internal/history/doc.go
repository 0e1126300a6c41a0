// Package history persists comparison results in a SQLite database.
//
// The store lives at <state_dir>/history.db. Results are kept whole as JSON
// next to the columns needed for listing and cache lookups, so a rerun with
// identical episodes and settings can reuse a stored result. Writers hold an
// advisory file lock so concurrent CLI invocations serialize their writes.
package history
