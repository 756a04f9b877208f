package store

import (
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// EventKind names the mutation a subscriber is told about.
type EventKind int

const (
	DiaryAdded EventKind = iota + 1
	DiaryUpdated
	DiaryRemoved
	FolderAdded
	FolderUpdated
	FolderRemoved
	FoldersReplaced
	Restored
)

// Event is delivered to subscribers after a mutation. ID is empty for bulk
// events (FoldersReplaced, Restored).
type Event struct {
	Kind EventKind
	ID   string
}

type Option func(*Store)

// WithClock replaces time.Now, which drives local IDs and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	diaries []models.Diary
	folders []models.Folder

	// last issued local IDs, to keep them strictly increasing within a
	// millisecond
	lastDiaryID  int64
	lastFolderID int64

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

func New(opts ...Option) *Store {
	s := &Store{now: time.Now, subs: make(map[int]func(Event))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every subsequent mutation and returns a
// function that removes it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// nextLocalID returns a wall-clock millisecond value above last.
func (s *Store) nextLocalID(last *int64) int64 {
	id := s.now().UnixMilli()
	if id <= *last {
		id = *last + 1
	}
	*last = id
	return id
}

// ---------- diaries ----------

// AddDiary stores a new diary at the head of the collection and returns it.
// Without nd.ID a local time-based ID is assigned. If nd.ID already exists
// the stored record takes the new field values in place and keeps its
// CreatedAt.
func (s *Store) AddDiary(nd models.NewDiary) models.Diary {
	s.mu.Lock()

	vis := nd.Visibility
	if vis == "" {
		vis = models.VisibilityPublic
	}
	d := models.Diary{
		ID:         nd.ID,
		FolderID:   nd.FolderID,
		Date:       nd.Date,
		Title:      nd.Title,
		Content:    nd.Content,
		Images:     slices.Clone(nd.Images),
		Emotions:   models.UniqueStrings(nd.Emotions),
		Visibility: vis,
	}
	if d.Images == nil {
		d.Images = []string{}
	}

	kind := DiaryAdded
	if i := s.diaryIndex(d.ID); d.ID != "" && i >= 0 {
		d.CreatedAt = s.diaries[i].CreatedAt
		s.diaries[i] = d
		kind = DiaryUpdated
	} else {
		if d.ID == "" {
			d.ID = s.newDiaryID()
		}
		d.CreatedAt = s.now().UTC()
		s.diaries = slices.Insert(s.diaries, 0, d)
	}
	out := d.Clone()
	s.mu.Unlock()

	s.notify(Event{Kind: kind, ID: out.ID})
	return out
}

func (s *Store) newDiaryID() string {
	for {
		id := strconv.FormatInt(s.nextLocalID(&s.lastDiaryID), 10)
		if s.diaryIndex(id) < 0 {
			return id
		}
	}
}

func (s *Store) diaryIndex(id string) int {
	return slices.IndexFunc(s.diaries, func(d models.Diary) bool { return d.ID == id })
}

// RemoveDiary deletes the diary with id. Missing ids are ignored.
func (s *Store) RemoveDiary(id string) {
	s.mu.Lock()
	i := s.diaryIndex(id)
	if i >= 0 {
		s.diaries = slices.Delete(s.diaries, i, i+1)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.notify(Event{Kind: DiaryRemoved, ID: id})
	}
}

// UpdateDiary merges p into the diary with id and reports whether it existed.
func (s *Store) UpdateDiary(id string, p models.DiaryPatch) bool {
	s.mu.Lock()
	i := s.diaryIndex(id)
	if i >= 0 {
		p.Apply(&s.diaries[i])
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.notify(Event{Kind: DiaryUpdated, ID: id})
	return true
}

// DiariesByFolderID returns the folder's diaries, newest first.
func (s *Store) DiariesByFolderID(folderID string) []models.Diary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Diary{}
	for _, d := range s.diaries {
		if d.FolderID == folderID {
			out = append(out, d.Clone())
		}
	}
	return out
}

func (s *Store) DiaryByID(id string) *models.Diary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.diaryIndex(id); i >= 0 {
		d := s.diaries[i].Clone()
		return &d
	}
	return nil
}

func (s *Store) LatestDiary() *models.Diary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.diaries) == 0 {
		return nil
	}
	d := s.diaries[0].Clone()
	return &d
}

// FindDiary looks a diary up by its natural key inside a folder. Server
// diaries are reconciled against local ones with it.
func (s *Store) FindDiary(folderID, date, title string) *models.Diary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.diaries {
		if d.FolderID == folderID && d.Date == date && d.Title == title {
			c := d.Clone()
			return &c
		}
	}
	return nil
}

func (s *Store) Diaries() []models.Diary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.diaries, models.Diary.Clone)
}

// ---------- folders ----------

// AddFolder stores a folder at the head of the list. A zero nf.ID gets a
// local time-based ID; an ID that already exists is overwritten in place.
func (s *Store) AddFolder(nf models.NewFolder) models.Folder {
	s.mu.Lock()

	f := models.Folder{
		ID:        nf.ID,
		Title:     nf.Title,
		StartDate: nf.StartDate,
		EndDate:   nf.EndDate,
		Image:     nf.Image,
		Tags:      slices.Clone(nf.Tags),
	}
	if f.EndDate == "" {
		f.EndDate = f.StartDate
	}

	kind := FolderAdded
	if i := s.folderIndex(f.ID); f.ID != 0 && i >= 0 {
		s.folders[i] = f
		kind = FolderUpdated
	} else {
		if f.ID == 0 {
			f.ID = s.newFolderID()
		}
		s.folders = slices.Insert(s.folders, 0, f)
	}
	out := f.Clone()
	s.mu.Unlock()

	s.notify(Event{Kind: kind, ID: strconv.FormatInt(out.ID, 10)})
	return out
}

func (s *Store) newFolderID() int64 {
	for {
		id := s.nextLocalID(&s.lastFolderID)
		if s.folderIndex(id) < 0 {
			return id
		}
	}
}

func (s *Store) folderIndex(id int64) int {
	return slices.IndexFunc(s.folders, func(f models.Folder) bool { return f.ID == id })
}

func (s *Store) RemoveFolder(id int64) {
	s.mu.Lock()
	i := s.folderIndex(id)
	if i >= 0 {
		s.folders = slices.Delete(s.folders, i, i+1)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.notify(Event{Kind: FolderRemoved, ID: strconv.FormatInt(id, 10)})
	}
}

func (s *Store) UpdateFolder(id int64, p models.FolderPatch) bool {
	s.mu.Lock()
	i := s.folderIndex(id)
	if i >= 0 {
		p.Apply(&s.folders[i])
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.notify(Event{Kind: FolderUpdated, ID: strconv.FormatInt(id, 10)})
	return true
}

func (s *Store) LatestFolder() *models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.folders) == 0 {
		return nil
	}
	f := s.folders[0].Clone()
	return &f
}

func (s *Store) FolderByID(id int64) *models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.folderIndex(id); i >= 0 {
		f := s.folders[i].Clone()
		return &f
	}
	return nil
}

func (s *Store) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.folders, models.Folder.Clone)
}

// ReplaceFolders swaps the whole folder list for fs, kept in the given order.
func (s *Store) ReplaceFolders(fs []models.Folder) {
	s.mu.Lock()
	s.folders = cloneAll(fs, models.Folder.Clone)
	s.mu.Unlock()

	s.notify(Event{Kind: FoldersReplaced})
}

// ---------- snapshots ----------

// Snapshot returns copies of both collections, newest first.
func (s *Store) Snapshot() ([]models.Diary, []models.Folder) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.diaries, models.Diary.Clone), cloneAll(s.folders, models.Folder.Clone)
}

// Restore replaces both collections, e.g. with a snapshot loaded at startup.
// Records must already be ordered newest first.
func (s *Store) Restore(diaries []models.Diary, folders []models.Folder) {
	s.mu.Lock()
	s.diaries = cloneAll(diaries, models.Diary.Clone)
	s.folders = cloneAll(folders, models.Folder.Clone)
	s.mu.Unlock()

	s.notify(Event{Kind: Restored})
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}
