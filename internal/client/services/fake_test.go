package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// fakeClient embeds the interface; calls that a test did not stub panic.
type fakeClient struct {
	client.Client

	mu sync.Mutex

	PingErr error
	pings   atomic.Int32

	List    *client.FolderList
	ListErr error

	CreatedFolderID *int64
	CreateFolderErr error
	createFolders   atomic.Int32
	// gate blocks CreateFolder/CreateDiary until closed when non-nil
	gate chan struct{}

	Detail    *client.FolderDetail
	DetailErr error

	UpdateErr error
	DeleteErr error

	Created        *client.CreatedDiary
	CreateDiaryErr error
	createDiaries  atomic.Int32
	LastDiaryReq   client.CreateDiaryRequest
	uploadDeadline bool

	DiaryDetail *client.DiaryDetail
	DiaryErr    error

	Feed    []models.PublicDiary
	FeedErr error
}

func (f *fakeClient) wait(ctx context.Context) error {
	if f.gate == nil {
		return nil
	}
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Ping(ctx context.Context) error {
	f.pings.Add(1)
	return f.PingErr
}

func (f *fakeClient) ListFolders(ctx context.Context) (*client.FolderList, error) {
	return f.List, f.ListErr
}

func (f *fakeClient) CreateFolder(ctx context.Context, p models.FolderParams) (*int64, error) {
	f.createFolders.Add(1)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.CreatedFolderID, f.CreateFolderErr
}

func (f *fakeClient) GetFolderDetail(ctx context.Context, folderID string) (*client.FolderDetail, error) {
	return f.Detail, f.DetailErr
}

func (f *fakeClient) UpdateFolder(ctx context.Context, folderID int64, p models.FolderPatch) error {
	return f.UpdateErr
}

func (f *fakeClient) DeleteFolder(ctx context.Context, folderID int64) error {
	return f.DeleteErr
}

func (f *fakeClient) CreateDiary(ctx context.Context, req client.CreateDiaryRequest) (*client.CreatedDiary, error) {
	f.createDiaries.Add(1)
	_, hasDeadline := ctx.Deadline()
	f.mu.Lock()
	f.LastDiaryReq = req
	f.uploadDeadline = hasDeadline
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.Created, f.CreateDiaryErr
}

func (f *fakeClient) GetDiary(ctx context.Context, diaryID string) (*client.DiaryDetail, error) {
	return f.DiaryDetail, f.DiaryErr
}

func (f *fakeClient) ListPublicDiaries(ctx context.Context) ([]models.PublicDiary, error) {
	return f.Feed, f.FeedErr
}

// passthrough is an ImagePreparer that uploads the URIs as given.
type passthrough struct{ cleaned atomic.Int32 }

func (p *passthrough) Prepare(ctx context.Context, uris []string) ([]string, func()) {
	return append([]string(nil), uris...), func() { p.cleaned.Add(1) }
}
