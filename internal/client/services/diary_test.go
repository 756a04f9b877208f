package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/draft"
	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/dmitrijs2005/tripdiary/internal/client/store"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiaryService(fc *fakeClient, t Timeouts) (DiaryService, *store.Store, *passthrough) {
	st := store.New()
	images := &passthrough{}
	return NewDiaryService(fc, st, images, t, logging.Discard()), st, images
}

func filledDraft() *draft.Diary {
	d := draft.NewDiary()
	d.SetFolderID("42")
	d.SetSelectedDay(2)
	d.SetDate("2024-05-02")
	d.SetImages([]string{"file:///a.jpg", "file:///b.png"})
	d.SetEmotions([]string{"happy", "excited"})
	d.SetVisibility(models.VisibilityPrivate)
	return d
}

func TestSubmit_IncompleteDraft(t *testing.T) {
	fc := &fakeClient{}
	svc, st, _ := newDiaryService(fc, DefaultTimeouts())

	d := draft.NewDiary()
	d.SetDate("2024-05-02")
	_, err := svc.Submit(context.Background(), d)
	require.ErrorIs(t, err, ErrIncompleteDraft)

	assert.Empty(t, st.Diaries())
	assert.Equal(t, int32(0), fc.createDiaries.Load())
}

func TestSubmit_Confirmed(t *testing.T) {
	fc := &fakeClient{Created: &client.CreatedDiary{DiaryID: "900", Title: "Sunny day"}}
	svc, st, images := newDiaryService(fc, DefaultTimeouts())
	d := filledDraft()

	res, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, res.IsConfirmed())
	assert.Equal(t, "900", res.ServerID)
	assert.Equal(t, "900", res.Record.ID)
	assert.Equal(t, "Sunny day", res.Record.Title)
	assert.Equal(t, models.PlaceholderContent("2024-05-02"), res.Record.Content)
	assert.Equal(t, "42", res.Record.FolderID)
	assert.Equal(t, []string{"file:///a.jpg", "file:///b.png"}, res.Record.Images)

	assert.Equal(t, int64(42), fc.LastDiaryReq.FolderID)
	assert.Equal(t, models.VisibilityPrivate, fc.LastDiaryReq.Visibility)
	assert.Equal(t, int32(1), fc.pings.Load())
	assert.Equal(t, int32(1), images.cleaned.Load())

	assert.Equal(t, "900", st.LatestDiary().ID)

	after := d.State()
	assert.Equal(t, "42", after.FolderID)
	assert.Empty(t, after.Images)
	assert.Empty(t, after.Date)
}

func TestSubmit_FailureStoresPlaceholderLocally(t *testing.T) {
	fc := &fakeClient{CreateDiaryErr: client.ErrUnavailable, PingErr: client.ErrUnavailable}
	svc, st, _ := newDiaryService(fc, DefaultTimeouts())

	res, err := svc.Submit(context.Background(), filledDraft())
	require.NoError(t, err)
	assert.Equal(t, models.LocalOnly, res.State)
	assert.ErrorIs(t, res.Reason, client.ErrUnavailable)
	assert.Equal(t, models.PlaceholderTitle("2024-05-02"), res.Record.Title)
	assert.Equal(t, []string{"excited", "happy"}, sorted(res.Record.Emotions))

	require.NotNil(t, st.DiaryByID(res.Record.ID))
}

func TestSubmit_NonNumericFolderIsLocalOnly(t *testing.T) {
	fc := &fakeClient{}
	svc, st, _ := newDiaryService(fc, DefaultTimeouts())
	d := filledDraft()
	d.SetFolderID("local-folder")

	res, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.ErrorIs(t, res.Reason, ErrFolderNotSynced)
	assert.Equal(t, int32(0), fc.createDiaries.Load())
	assert.Len(t, st.DiariesByFolderID("local-folder"), 1)
}

func TestSubmit_UploadTimeoutPolicy(t *testing.T) {
	fc := &fakeClient{Created: &client.CreatedDiary{DiaryID: "1"}}
	svc, _, _ := newDiaryService(fc, DefaultTimeouts())
	_, err := svc.Submit(context.Background(), filledDraft())
	require.NoError(t, err)
	fc.mu.Lock()
	assert.False(t, fc.uploadDeadline, "zero upload timeout waits indefinitely")
	fc.mu.Unlock()

	timeouts := DefaultTimeouts()
	timeouts.Upload = time.Minute
	svc, _, _ = newDiaryService(fc, timeouts)
	_, err = svc.Submit(context.Background(), filledDraft())
	require.NoError(t, err)
	fc.mu.Lock()
	assert.True(t, fc.uploadDeadline)
	fc.mu.Unlock()
}

func TestSubmit_UploadTimeoutExpiryFallsBack(t *testing.T) {
	fc := &fakeClient{gate: make(chan struct{}), Created: &client.CreatedDiary{DiaryID: "1"}}
	timeouts := DefaultTimeouts()
	timeouts.Upload = 20 * time.Millisecond
	svc, _, _ := newDiaryService(fc, timeouts)

	res, err := svc.Submit(context.Background(), filledDraft())
	require.NoError(t, err)
	assert.Equal(t, models.LocalOnly, res.State)
	assert.ErrorIs(t, res.Reason, context.DeadlineExceeded)
}

func TestSubmit_ConcurrentSubmitsAreCollapsed(t *testing.T) {
	fc := &fakeClient{gate: make(chan struct{}), Created: &client.CreatedDiary{DiaryID: "77"}}
	svc, st, _ := newDiaryService(fc, DefaultTimeouts())
	d := filledDraft()

	var wg sync.WaitGroup
	results := make([]models.Result[models.Diary], 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.Submit(context.Background(), d)
		}()
	}

	require.Eventually(t, func() bool { return fc.createDiaries.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(fc.gate)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), fc.createDiaries.Load())
	assert.Len(t, st.Diaries(), 1)
	assert.Equal(t, results[0].Record.ID, results[1].Record.ID)
}

func TestFetch(t *testing.T) {
	fc := &fakeClient{DiaryDetail: &client.DiaryDetail{DiaryID: "5", TravelDate: "2024-05-01", Title: "t", Visibility: "PRIVATE"}}
	svc, st, _ := newDiaryService(fc, DefaultTimeouts())
	st.AddDiary(models.NewDiary{ID: "5", FolderID: "9"})

	d, err := svc.Fetch(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "9", d.FolderID)
	assert.Equal(t, models.VisibilityPrivate, d.Visibility)
	assert.Equal(t, "", st.DiaryByID("5").Title, "fetch does not write to the store")

	fc.DiaryErr = &client.StatusError{Code: 404}
	_, err = svc.Fetch(context.Background(), "6")
	require.ErrorIs(t, err, client.ErrNotFound)
}
