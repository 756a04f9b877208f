package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/draft"
	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/dmitrijs2005/tripdiary/internal/client/store"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
	"golang.org/x/sync/singleflight"
)

var (
	ErrIncompleteDraft = errors.New("draft needs a folder and a date")
	ErrFolderNotSynced = errors.New("folder id is not numeric")
)

// ImagePreparer turns draft image URIs into files ready for upload.
type ImagePreparer interface {
	Prepare(ctx context.Context, uris []string) (paths []string, cleanup func())
}

type DiaryService interface {
	// Submit uploads the draft and stores the resulting diary. The record is
	// stored even when the upload fails; only an incomplete draft is an
	// error. The draft is reset afterwards, keeping its folder.
	Submit(ctx context.Context, d *draft.Diary) (models.Result[models.Diary], error)
	// Fetch reads a diary from the server without touching the store.
	Fetch(ctx context.Context, id string) (*models.Diary, error)
}

type diaryService struct {
	client   client.Client
	store    *store.Store
	images   ImagePreparer
	timeouts Timeouts
	log      logging.Logger

	inflight singleflight.Group
}

func NewDiaryService(c client.Client, st *store.Store, images ImagePreparer, t Timeouts, l logging.Logger) DiaryService {
	return &diaryService{client: c, store: st, images: images, timeouts: t, log: l.With("module", "diaries")}
}

func (s *diaryService) Submit(ctx context.Context, d *draft.Diary) (models.Result[models.Diary], error) {
	st := d.State()
	if st.FolderID == "" || st.Date == "" {
		return models.Result[models.Diary]{}, ErrIncompleteDraft
	}

	v, _, shared := s.inflight.Do(st.Fingerprint(), func() (any, error) {
		res := s.submit(ctx, st)
		d.Reset()
		return res, nil
	})
	if shared {
		s.log.Debug(ctx, "diary submit collapsed with an in-flight upload", "draft", st.ID)
	}
	return v.(models.Result[models.Diary]), nil
}

func (s *diaryService) submit(ctx context.Context, st draft.State) models.Result[models.Diary] {
	nd := models.NewDiary{
		FolderID:   st.FolderID,
		Date:       st.Date,
		Images:     st.Images,
		Emotions:   st.Emotions,
		Visibility: st.Visibility,
	}

	created, err := s.upload(ctx, st)
	if err != nil {
		nd.Title = models.PlaceholderTitle(st.Date)
		nd.Content = models.PlaceholderContent(st.Date)
		diary := s.store.AddDiary(nd)
		s.log.Warn(ctx, "diary stored locally only", "diaryId", diary.ID, "error", err)
		return models.LocalOnlyResult(diary, err)
	}

	nd.ID = created.DiaryID
	nd.Title = created.Title
	if nd.Title == "" {
		nd.Title = models.PlaceholderTitle(st.Date)
	}
	nd.Content = created.Content
	if nd.Content == "" {
		nd.Content = models.PlaceholderContent(st.Date)
	}
	diary := s.store.AddDiary(nd)
	s.log.Info(ctx, "diary created", "diaryId", diary.ID, "images", len(st.Images))
	return models.ConfirmedResult(diary, created.DiaryID)
}

func (s *diaryService) upload(ctx context.Context, st draft.State) (*client.CreatedDiary, error) {
	folderID, err := strconv.ParseInt(st.FolderID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFolderNotSynced, st.FolderID)
	}

	s.probe(ctx)

	paths, cleanup := s.images.Prepare(ctx, st.Images)
	defer cleanup()

	uctx, cancel := withTimeout(ctx, s.timeouts.Upload)
	defer cancel()

	return s.client.CreateDiary(uctx, client.CreateDiaryRequest{
		FolderID:   folderID,
		Date:       st.Date,
		Visibility: st.Visibility,
		Emotions:   st.Emotions,
		Images:     paths,
	})
}

// probe checks the backend before a long upload. The result is only logged.
func (s *diaryService) probe(ctx context.Context) {
	pctx, cancel := withTimeout(ctx, s.timeouts.Health)
	defer cancel()

	if err := s.client.Ping(pctx); err != nil {
		s.log.Warn(ctx, "health check before upload failed", "error", err)
	}
}

func (s *diaryService) Fetch(ctx context.Context, id string) (*models.Diary, error) {
	fctx, cancel := withTimeout(ctx, s.timeouts.Detail)
	defer cancel()

	detail, err := s.client.GetDiary(fctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch diary %s: %w", id, err)
	}

	d := detail.Diary()
	if local := s.store.DiaryByID(d.ID); local != nil {
		d.FolderID = local.FolderID
	}
	return &d, nil
}
