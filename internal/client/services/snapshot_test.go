package services

import (
	"context"
	"path/filepath"
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

func TestSnapshot_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repos, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "diary.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	st := store.New()
	st.AddFolder(models.NewFolder{ID: 3, Title: "Busan", StartDate: "2024-05-01", EndDate: "2024-05-03"})
	older := st.AddDiary(models.NewDiary{FolderID: "3", Date: "2024-05-01", Title: "first", Emotions: []string{"calm"}})
	newer := st.AddDiary(models.NewDiary{FolderID: "3", Date: "2024-05-02", Title: "second"})
	d := draft.NewDiary()
	d.SetFolderID("3")

	require.NoError(t, NewSnapshotService(repos.DB, st, d, logging.Discard()).Save(ctx))

	st2 := store.New()
	d2 := draft.NewDiary()
	restored, err := NewSnapshotService(repos.DB, st2, d2, logging.Discard()).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, restored.Diaries)
	assert.Equal(t, 1, restored.Folders)
	assert.WithinDuration(t, time.Now(), restored.SavedAt, time.Minute)

	got := st2.DiariesByFolderID("3")
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
	assert.Equal(t, []string{"calm"}, got[1].Emotions)
	assert.True(t, older.CreatedAt.Equal(got[1].CreatedAt))
	assert.Equal(t, "Busan", st2.FolderByID(3).Title)
	assert.Equal(t, "3", d2.State().FolderID)
}

func TestSnapshot_WithoutDatabase(t *testing.T) {
	svc := NewSnapshotService(nil, store.New(), draft.NewDiary(), logging.Discard())

	require.ErrorIs(t, svc.Save(context.Background()), client.ErrLocalDataNotAvailable)
	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}
