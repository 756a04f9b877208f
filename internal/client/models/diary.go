// Package models defines the client-side records of tripdiary: diaries,
// folders, public feed items and the outcome types returned by the sync
// services.
package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for diary and folder dates.
const DateLayout = "2006-01-02"

// Visibility controls whether a diary shows up in the public feed.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

var (
	ErrInvalidVisibility = errors.New("visibility must be public or private")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
)

// ParseVisibility accepts either case ("public", "PUBLIC").
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
}

// Wire is the form the backend expects: PUBLIC or PRIVATE.
func (v Visibility) Wire() string {
	return strings.ToUpper(string(v))
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Diary is a single day's travel entry.
type Diary struct {
	// ID is unique within the store. Assigned by the server when the upload
	// was confirmed, otherwise a local time-based value.
	ID string `json:"id"`

	// FolderID references the owning folder. Not enforced: orphans are kept.
	FolderID string `json:"folderId"`

	// Date is the trip day, YYYY-MM-DD.
	Date string `json:"date"`

	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`

	// Images are local paths or remote URLs, in display order.
	Images []string `json:"images"`

	// Emotions is a set of tags; order carries no meaning.
	Emotions []string `json:"emotions"`

	Visibility Visibility `json:"visibility"`

	// CreatedAt is stamped on insertion and never changes afterwards.
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers can't mutate store internals.
func (d Diary) Clone() Diary {
	d.Images = slices.Clone(d.Images)
	d.Emotions = slices.Clone(d.Emotions)
	return d
}

// NewDiary is the input of a diary insert. ID is optional.
type NewDiary struct {
	ID         string
	FolderID   string
	Date       string
	Title      string
	Content    string
	Images     []string
	Emotions   []string
	Visibility Visibility
}

// DiaryPatch lists the fields an update may touch. Nil means "leave as is".
// ID and CreatedAt are deliberately absent.
type DiaryPatch struct {
	FolderID   *string
	Date       *string
	Title      *string
	Content    *string
	Images     *[]string
	Emotions   *[]string
	Visibility *Visibility
}

func (p DiaryPatch) Apply(d *Diary) {
	if p.FolderID != nil {
		d.FolderID = *p.FolderID
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Images != nil {
		d.Images = slices.Clone(*p.Images)
	}
	if p.Emotions != nil {
		d.Emotions = UniqueStrings(*p.Emotions)
	}
	if p.Visibility != nil {
		d.Visibility = *p.Visibility
	}
}

// UniqueStrings drops repeated values, keeping first occurrences in order.
func UniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// PlaceholderTitle and PlaceholderContent fill diaries the server did not
// describe.
func PlaceholderTitle(date string) string {
	return fmt.Sprintf("Travel diary of %s", date)
}

func PlaceholderContent(date string) string {
	return fmt.Sprintf("A travel diary recorded on %s.", date)
}
