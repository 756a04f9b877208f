package client

import (
	"context"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// Client is the contract the sync services depend on. HTTPClient is the
// production implementation; tests substitute fakes.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	ListFolders(ctx context.Context) (*FolderList, error)
	// CreateFolder returns the server-assigned ID when the response carried
	// one, nil otherwise.
	CreateFolder(ctx context.Context, p models.FolderParams) (*int64, error)
	GetFolderDetail(ctx context.Context, folderID string) (*FolderDetail, error)
	UpdateFolder(ctx context.Context, folderID int64, p models.FolderPatch) error
	DeleteFolder(ctx context.Context, folderID int64) error

	CreateDiary(ctx context.Context, req CreateDiaryRequest) (*CreatedDiary, error)
	GetDiary(ctx context.Context, diaryID string) (*DiaryDetail, error)

	ListPublicDiaries(ctx context.Context) ([]models.PublicDiary, error)
}
