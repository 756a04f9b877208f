// Package store is the local record store of tripdiary: the authoritative,
// process-lifetime view of diaries and folders that every reader goes
// through.
//
// # Properties
//
// The store never talks to the network and never fails: lookups of missing
// records return nil, removals and updates of missing records are no-ops.
// That makes it the target the sync services always fall back to when the
// backend is unreachable.
//
// Collections are kept newest-first, so index 0 is the latest record and
// "latest" queries need no sorting.
//
// # Concurrency
//
// A Store is safe for concurrent use. Every mutation is applied atomically
// under a lock, so a read that follows a write always observes it.
// Subscribers are notified after the lock is released, in the goroutine that
// performed the mutation.
//
// Typical usage
//
//	s := store.New()
//	d := s.AddDiary(models.NewDiary{FolderID: "42", Date: "2025-01-01"})
//	latest := s.LatestDiary()          // == d
//	list := s.DiariesByFolderID("42")  // newest first
package store
