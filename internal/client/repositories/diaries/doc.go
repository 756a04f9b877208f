// Package diaries persists the diary records of the Record Store in the
// local SQLite database.
//
// The repository works on whole snapshots: ReplaceAll rewrites the table
// keeping the store order (newest first) in a position column, and GetAll
// reads it back in that order. Images and emotions are stored as JSON
// arrays. Callers that need atomicity pass a transaction as the dbx.DBTX.
package diaries
