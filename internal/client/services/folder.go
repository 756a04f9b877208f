package services

import (
	"cmp"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/dmitrijs2005/tripdiary/internal/client/store"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

// Status is the observable state of the folder service.
type Status struct {
	Loading bool
	Err     error
}

// DetailError is returned when a folder detail could not be fetched or
// decoded. It unwraps to the transport error.
type DetailError struct {
	FolderID string
	Err      error
}

func (e *DetailError) Error() string {
	return fmt.Sprintf("folder %s detail: %v", e.FolderID, e.Err)
}

func (e *DetailError) Unwrap() error { return e.Err }

type FolderService interface {
	// Refresh replaces the local folder list with the server's. Empty
	// answers and failures keep the local list; the outcome says which.
	Refresh(ctx context.Context) models.ListOutcome
	// Create always stores a folder locally and reports whether the server
	// confirmed it.
	Create(ctx context.Context, p models.FolderParams) models.Result[models.Folder]
	// Detail fetches a folder with its diaries and merges diaries missing
	// from the store, matching on (date, title).
	Detail(ctx context.Context, folderID string) (*client.FolderDetail, error)
	Update(ctx context.Context, id int64, p models.FolderPatch) error
	Delete(ctx context.Context, id int64) error
	Status() Status
	Thumbnail(f models.Folder) string
}

type folderService struct {
	client   client.Client
	store    *store.Store
	timeouts Timeouts
	log      logging.Logger

	inflight singleflight.Group

	mu      sync.Mutex
	loading int
	err     error
}

func NewFolderService(c client.Client, st *store.Store, t Timeouts, l logging.Logger) FolderService {
	return &folderService{client: c, store: st, timeouts: t, log: l.With("module", "folders")}
}

func (s *folderService) begin() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
}

func (s *folderService) end(err error) {
	s.mu.Lock()
	s.loading--
	s.err = err
	s.mu.Unlock()
}

func (s *folderService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Loading: s.loading > 0, Err: s.err}
}

func (s *folderService) Refresh(ctx context.Context) models.ListOutcome {
	s.begin()
	// a failed refresh is not an error state
	defer s.end(nil)

	ctx, cancel := withTimeout(ctx, s.timeouts.List)
	defer cancel()

	list, err := s.client.ListFolders(ctx)
	if err != nil {
		s.log.Warn(ctx, "folder list refresh failed, keeping local list", "error", err)
		return models.ListOutcome{Reason: err}
	}
	if len(list.Folders) == 0 {
		s.log.Info(ctx, "server returned no folders, keeping local list", "shape", list.Shape.String())
		return models.ListOutcome{}
	}

	folders := slices.Clone(list.Folders)
	slices.SortStableFunc(folders, func(a, b models.Folder) int { return cmp.Compare(b.ID, a.ID) })
	s.store.ReplaceFolders(folders)

	s.log.Info(ctx, "folder list refreshed", "count", len(folders), "shape", list.Shape.String())
	return models.ListOutcome{Replaced: true, Count: len(folders)}
}

// paramsKey identifies a create request for the in-flight guard.
func paramsKey(p models.FolderParams) string {
	b, _ := json.Marshal(p)
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (s *folderService) Create(ctx context.Context, p models.FolderParams) models.Result[models.Folder] {
	v, _, shared := s.inflight.Do(paramsKey(p), func() (any, error) {
		return s.create(ctx, p), nil
	})
	if shared {
		s.log.Debug(ctx, "folder create collapsed with an in-flight request", "title", p.Title)
	}
	return v.(models.Result[models.Folder])
}

func (s *folderService) create(ctx context.Context, p models.FolderParams) models.Result[models.Folder] {
	s.begin()

	cctx, cancel := withTimeout(ctx, s.timeouts.Create)
	defer cancel()

	serverID, err := s.client.CreateFolder(cctx, p)
	s.end(nil)

	nf := models.NewFolder{Title: p.Title, StartDate: p.StartDate, EndDate: p.EndDate}
	if err == nil && serverID != nil {
		nf.ID = *serverID
	}
	folder := s.store.AddFolder(nf)

	if err != nil {
		s.log.Warn(ctx, "folder stored locally only", "folderId", folder.ID, "error", err)
		return models.LocalOnlyResult(folder, err)
	}

	id := ""
	if serverID != nil {
		id = strconv.FormatInt(*serverID, 10)
	}
	s.log.Info(ctx, "folder created", "folderId", folder.ID)
	return models.ConfirmedResult(folder, id)
}

func (s *folderService) Detail(ctx context.Context, folderID string) (*client.FolderDetail, error) {
	s.begin()

	dctx, cancel := withTimeout(ctx, s.timeouts.Detail)
	defer cancel()

	detail, err := s.client.GetFolderDetail(dctx, folderID)
	if err != nil {
		derr := &DetailError{FolderID: folderID, Err: err}
		s.end(derr)
		return nil, derr
	}
	s.end(nil)

	added := s.reconcile(folderID, detail.Diaries)
	s.log.Debug(ctx, "folder detail fetched", "folderId", folderID, "shape", detail.Shape.String(),
		"diaries", len(detail.Diaries), "added", added)
	return detail, nil
}

// reconcile inserts server diaries that have no local twin: neither a
// record with the same ID anywhere in the store nor one with the same
// (date, title) in the folder. Existing records are never touched. The
// store is consulted after every insert, so repeated entries in one answer
// are merged too.
func (s *folderService) reconcile(folderID string, diaries []client.ServerDiary) int {
	added := 0
	for _, sd := range diaries {
		if sd.DiaryID != "" && s.store.DiaryByID(string(sd.DiaryID)) != nil {
			continue
		}
		if s.store.FindDiary(folderID, sd.TravelDate, sd.Title) != nil {
			continue
		}
		nd := models.NewDiary{
			ID:       string(sd.DiaryID),
			FolderID: folderID,
			Date:     sd.TravelDate,
			Title:    sd.Title,
			Content:  sd.Content,
			Emotions: sd.Hashtags,
		}
		if sd.ImageURL != "" {
			nd.Images = []string{sd.ImageURL}
		}
		s.store.AddDiary(nd)
		added++
	}
	return added
}

func (s *folderService) Update(ctx context.Context, id int64, p models.FolderPatch) error {
	if p.IsEmpty() {
		return nil
	}
	s.begin()

	uctx, cancel := withTimeout(ctx, s.timeouts.Create)
	defer cancel()

	if err := s.client.UpdateFolder(uctx, id, p); err != nil {
		err = fmt.Errorf("update folder %d: %w", id, err)
		s.end(err)
		return err
	}
	s.end(nil)
	s.store.UpdateFolder(id, p)
	return nil
}

func (s *folderService) Delete(ctx context.Context, id int64) error {
	s.begin()

	dctx, cancel := withTimeout(ctx, s.timeouts.Create)
	defer cancel()

	if err := s.client.DeleteFolder(dctx, id); err != nil {
		err = fmt.Errorf("delete folder %d: %w", id, err)
		s.end(err)
		return err
	}
	s.end(nil)
	s.store.RemoveFolder(id)
	return nil
}

// Thumbnail is the folder image, or else the first image of the folder's
// newest diary that has one.
func (s *folderService) Thumbnail(f models.Folder) string {
	if f.Image != "" {
		return f.Image
	}
	for _, d := range s.store.DiariesByFolderID(strconv.FormatInt(f.ID, 10)) {
		if len(d.Images) > 0 {
			return d.Images[0]
		}
	}
	return ""
}
