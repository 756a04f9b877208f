package draft

import (
	"encoding/hex"
	"encoding/json"
	"slices"
	"sync"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// State is an immutable copy of a Diary draft.
type State struct {
	// ID identifies this draft instance; it changes on every Reset.
	ID          string
	Images      []string
	Visibility  models.Visibility
	SelectedDay int // 0 when no day has been picked
	Date        string
	FolderID    string
	Emotions    []string
}

// Diary is the diary-creation draft. It is safe for concurrent use.
type Diary struct {
	mu sync.Mutex
	s  State
}

func NewDiary() *Diary {
	d := &Diary{}
	d.s = initialState("")
	return d
}

func initialState(folderID string) State {
	return State{
		ID:         uuid.NewString(),
		Images:     []string{},
		Visibility: models.VisibilityPublic,
		FolderID:   folderID,
		Emotions:   []string{},
	}
}

// State returns a copy of the current draft.
func (d *Diary) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.clone()
}

func (s State) clone() State {
	s.Images = slices.Clone(s.Images)
	s.Emotions = slices.Clone(s.Emotions)
	return s
}

// Reset restores every field to its initial value except FolderID.
func (d *Diary) Reset() {
	d.mu.Lock()
	d.s = initialState(d.s.FolderID)
	d.mu.Unlock()
}

// ---------- images (ordered set of URIs) ----------

func (d *Diary) SetImages(uris []string) {
	d.mu.Lock()
	d.s.Images = models.UniqueStrings(uris)
	d.mu.Unlock()
}

func (d *Diary) AddImage(uri string) {
	d.mu.Lock()
	d.s.Images = addUnique(d.s.Images, uri)
	d.mu.Unlock()
}

func (d *Diary) RemoveImage(uri string) {
	d.mu.Lock()
	d.s.Images = remove(d.s.Images, uri)
	d.mu.Unlock()
}

// ToggleImage adds uri when absent and removes it when present.
func (d *Diary) ToggleImage(uri string) {
	d.mu.Lock()
	d.s.Images = toggle(d.s.Images, uri)
	d.mu.Unlock()
}

// ---------- scalar fields ----------

func (d *Diary) SetVisibility(v models.Visibility) {
	d.mu.Lock()
	d.s.Visibility = v
	d.mu.Unlock()
}

func (d *Diary) SetSelectedDay(day int) {
	d.mu.Lock()
	d.s.SelectedDay = day
	d.mu.Unlock()
}

func (d *Diary) SetDate(date string) {
	d.mu.Lock()
	d.s.Date = date
	d.mu.Unlock()
}

func (d *Diary) SetFolderID(id string) {
	d.mu.Lock()
	d.s.FolderID = id
	d.mu.Unlock()
}

// ---------- emotions (set) ----------

func (d *Diary) SetEmotions(emotions []string) {
	d.mu.Lock()
	d.s.Emotions = models.UniqueStrings(emotions)
	d.mu.Unlock()
}

func (d *Diary) AddEmotion(e string) {
	d.mu.Lock()
	d.s.Emotions = addUnique(d.s.Emotions, e)
	d.mu.Unlock()
}

func (d *Diary) RemoveEmotion(e string) {
	d.mu.Lock()
	d.s.Emotions = remove(d.s.Emotions, e)
	d.mu.Unlock()
}

func (d *Diary) ToggleEmotion(e string) {
	d.mu.Lock()
	d.s.Emotions = toggle(d.s.Emotions, e)
	d.mu.Unlock()
}

// Fingerprint identifies one submission of this draft: the draft ID plus
// its content, hashed with BLAKE2b-256. Two submits of an unchanged draft
// share a fingerprint.
func (s State) Fingerprint() string {
	emotions := slices.Clone(s.Emotions)
	slices.Sort(emotions)

	b, _ := json.Marshal(struct {
		ID         string   `json:"id"`
		FolderID   string   `json:"folderId"`
		Date       string   `json:"date"`
		Visibility string   `json:"visibility"`
		Images     []string `json:"images"`
		Emotions   []string `json:"emotions"`
	}{s.ID, s.FolderID, s.Date, string(s.Visibility), s.Images, emotions})

	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func addUnique(xs []string, x string) []string {
	if slices.Contains(xs, x) {
		return xs
	}
	return append(slices.Clone(xs), x)
}

func remove(xs []string, x string) []string {
	return slices.DeleteFunc(slices.Clone(xs), func(v string) bool { return v == x })
}

func toggle(xs []string, x string) []string {
	if slices.Contains(xs, x) {
		return remove(xs, x)
	}
	return append(slices.Clone(xs), x)
}
