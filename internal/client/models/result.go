package models

// SyncState tells whether a create reached the server.
type SyncState int

const (
	// Confirmed: the server accepted the record.
	Confirmed SyncState = iota + 1
	// LocalOnly: the server call failed; the record lives only in the local store.
	LocalOnly
)

func (s SyncState) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case LocalOnly:
		return "local-only"
	default:
		return "unknown"
	}
}

// Result is what a create returns. The record is always stored locally;
// State and Reason say whether the server knows about it.
type Result[T any] struct {
	Record T
	State  SyncState
	// ServerID is the identifier the server returned, if any.
	ServerID string
	// Reason is the failure that downgraded the create to LocalOnly.
	Reason error
}

func ConfirmedResult[T any](record T, serverID string) Result[T] {
	return Result[T]{Record: record, State: Confirmed, ServerID: serverID}
}

func LocalOnlyResult[T any](record T, reason error) Result[T] {
	return Result[T]{Record: record, State: LocalOnly, Reason: reason}
}

func (r Result[T]) IsConfirmed() bool { return r.State == Confirmed }

// ListOutcome describes a list refresh. Refresh failures never surface as
// errors; Reason keeps them for callers that want a "stale" hint.
type ListOutcome struct {
	// Replaced is true when the local list was swapped for the server's.
	Replaced bool
	// Count is the number of items the server returned.
	Count  int
	Reason error
}
