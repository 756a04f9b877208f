package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/config"
	"github.com/dmitrijs2005/tripdiary/internal/client/draft"
	"github.com/dmitrijs2005/tripdiary/internal/client/services"
	"github.com/dmitrijs2005/tripdiary/internal/client/store"
	"github.com/dmitrijs2005/tripdiary/internal/imagex"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App is one client session. Every service is created once in NewApp and
// shared by the commands.
type App struct {
	config *config.Config
	log    logging.Logger

	store *store.Store
	draft *draft.Diary
	form  *draft.FolderForm

	folderService   services.FolderService
	diaryService    services.DiaryService
	feedService     services.FeedService
	healthService   services.HealthService
	snapshotService services.SnapshotService

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode

	closeDB func() error
}

func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(client.Options{
		BaseURL:           c.BaseURL,
		FolderPath:        c.FolderPath,
		DiaryPath:         c.DiaryPath,
		FeedPath:          c.FeedPath,
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.Burst,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		config: c,
		log:    l.With("module", "cli"),
		store:  store.New(),
		draft:  draft.NewDiary(),
		form:   draft.NewFolderForm(),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		mode:   ModeOffline,
	}

	t := services.Timeouts{
		List:   c.ListTimeout,
		Create: c.CreateTimeout,
		Detail: c.DetailTimeout,
		Health: c.HealthTimeout,
		Upload: c.UploadTimeout,
	}
	images := imagex.NewPreparer(imagex.Options{
		MaxBytes:     c.MaxUploadBytes,
		MaxDimension: c.MaxImageDimension,
		BaseDir:      c.WorkDir,
	}, l)

	a.folderService = services.NewFolderService(apiClient, a.store, t, l)
	a.diaryService = services.NewDiaryService(apiClient, a.store, images, t, l)
	a.feedService = services.NewFeedService(apiClient, t, l)
	a.healthService = services.NewHealthService(apiClient, t)

	if c.DatabaseDSN == "" {
		a.snapshotService = services.NewSnapshotService(nil, a.store, a.draft, l)
		return a, nil
	}

	repos, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		_ = apiClient.Close()
		return nil, err
	}
	a.closeDB = repos.Close
	a.snapshotService = services.NewSnapshotService(repos.DB, a.store, a.draft, l)

	if restored, err := a.snapshotService.Load(ctx); err != nil {
		a.log.Warn(ctx, "could not restore snapshot", "error", err)
	} else if restored.Diaries+restored.Folders > 0 {
		a.log.Info(ctx, "snapshot restored", "diaries", restored.Diaries,
			"folders", restored.Folders, "savedAt", restored.SavedAt)
	}
	return a, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "switched mode", "mode", string(mode))
	}
}

func (a *App) getStatus() string {
	return "(" + string(a.Mode()) + ")"
}

// Run starts the online watcher and the REPL and blocks until the user
// exits. The snapshot is saved on the way out.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.log.Info(ctx, "Welcome to tripdiary (type 'help' for commands)")

	if err := a.healthService.Ping(ctx); err == nil {
		a.setMode(ctx, ModeOnline)
		a.folderService.Refresh(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, stdinIsTerminal())
}

func (a *App) close(ctx context.Context) {
	if err := a.snapshotService.Save(ctx); err != nil && !errors.Is(err, client.ErrLocalDataNotAvailable) {
		a.log.Error(ctx, "could not save snapshot", "error", err)
	}
	if a.closeDB != nil {
		_ = a.closeDB()
	}
	_ = a.healthService.Close(ctx)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done and switches the mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.healthService.Ping(ctx); err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
