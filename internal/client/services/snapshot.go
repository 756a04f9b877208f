package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/draft"
	"github.com/dmitrijs2005/tripdiary/internal/client/repositories/diaries"
	"github.com/dmitrijs2005/tripdiary/internal/client/repositories/folders"
	"github.com/dmitrijs2005/tripdiary/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tripdiary/internal/client/store"
	"github.com/dmitrijs2005/tripdiary/internal/dbx"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
)

// Restored summarises a snapshot load.
type Restored struct {
	Diaries int
	Folders int
	SavedAt time.Time
}

// SnapshotService copies the Record Store to and from the local database.
// With a nil database both operations return client.ErrLocalDataNotAvailable.
type SnapshotService interface {
	Save(ctx context.Context) error
	Load(ctx context.Context) (Restored, error)
}

type snapshotService struct {
	db    *sql.DB
	store *store.Store
	draft *draft.Diary
	now   func() time.Time
	log   logging.Logger
}

func NewSnapshotService(db *sql.DB, st *store.Store, d *draft.Diary, l logging.Logger) SnapshotService {
	return &snapshotService{db: db, store: st, draft: d, now: time.Now, log: l.With("module", "snapshot")}
}

func (s *snapshotService) Save(ctx context.Context) error {
	if s.db == nil {
		return client.ErrLocalDataNotAvailable
	}

	ds, fs := s.store.Snapshot()
	folderID := s.draft.State().FolderID

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := diaries.NewSQLiteRepository(tx).ReplaceAll(ctx, ds); err != nil {
			return err
		}
		if err := folders.NewSQLiteRepository(tx).ReplaceAll(ctx, fs); err != nil {
			return err
		}
		meta := metadata.NewSQLiteRepository(tx)
		if err := meta.Set(ctx, metadata.KeyDraftFolderID, folderID); err != nil {
			return err
		}
		return meta.Set(ctx, metadata.KeySavedAt, s.now().UTC().Format(time.RFC3339))
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.log.Info(ctx, "snapshot saved", "diaries", len(ds), "folders", len(fs))
	return nil
}

func (s *snapshotService) Load(ctx context.Context) (Restored, error) {
	if s.db == nil {
		return Restored{}, client.ErrLocalDataNotAvailable
	}

	ds, err := diaries.NewSQLiteRepository(s.db).GetAll(ctx)
	if err != nil {
		return Restored{}, fmt.Errorf("load diaries: %w", err)
	}
	fs, err := folders.NewSQLiteRepository(s.db).GetAll(ctx)
	if err != nil {
		return Restored{}, fmt.Errorf("load folders: %w", err)
	}

	meta := metadata.NewSQLiteRepository(s.db)
	folderID, err := meta.Get(ctx, metadata.KeyDraftFolderID)
	if err != nil {
		return Restored{}, err
	}
	savedAt, err := meta.Get(ctx, metadata.KeySavedAt)
	if err != nil {
		return Restored{}, err
	}

	s.store.Restore(ds, fs)
	if folderID != "" {
		s.draft.SetFolderID(folderID)
	}

	out := Restored{Diaries: len(ds), Folders: len(fs)}
	if savedAt != "" {
		// an unreadable timestamp only loses the "saved at" hint
		out.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	}
	s.log.Info(ctx, "snapshot restored", "diaries", out.Diaries, "folders", out.Folders)
	return out, nil
}
