package metadata

import (
	"context"
)

// Keys used by the client.
const (
	KeySavedAt       = "saved_at"
	KeyDraftFolderID = "draft_folder_id"
)

// Repository is a small key/value table for client state that is not part
// of the Record Store. Get returns "" for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
