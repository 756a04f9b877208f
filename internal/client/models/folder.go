package models

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidDay = errors.New("trip day must be 1 or more")

// Folder groups the diaries of one trip.
type Folder struct {
	// ID is server-assigned, or a local time-based value for folders created
	// while offline.
	ID        int64    `json:"folderId"`
	Title     string   `json:"title"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Image     string   `json:"image,omitempty"`
	Tags      []string `json:"tag,omitempty"`
}

func (f Folder) Clone() Folder {
	f.Tags = slices.Clone(f.Tags)
	return f
}

// NewFolder is the input of a folder insert. A zero ID asks the store to
// assign one; an empty EndDate becomes StartDate.
type NewFolder struct {
	ID        int64
	Title     string
	StartDate string
	EndDate   string
	Image     string
	Tags      []string
}

type FolderPatch struct {
	Title     *string   `json:"title,omitempty"`
	StartDate *string   `json:"startDate,omitempty"`
	EndDate   *string   `json:"endDate,omitempty"`
	Image     *string   `json:"image,omitempty"`
	Tags      *[]string `json:"tag,omitempty"`
}

func (p FolderPatch) Apply(f *Folder) {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.StartDate != nil {
		f.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		f.EndDate = *p.EndDate
	}
	if p.Image != nil {
		f.Image = *p.Image
	}
	if p.Tags != nil {
		f.Tags = slices.Clone(*p.Tags)
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p FolderPatch) IsEmpty() bool {
	return p.Title == nil && p.StartDate == nil && p.EndDate == nil && p.Image == nil && p.Tags == nil
}

// MaxTripDays caps the number of day slots offered for a trip.
const MaxTripDays = 30

// TripDays is the inclusive number of days between StartDate and EndDate,
// capped at MaxTripDays. Unparseable dates yield 1.
func (f Folder) TripDays() int {
	start, err := ParseDate(f.StartDate)
	if err != nil {
		return 1
	}
	end, err := ParseDate(f.EndDate)
	if err != nil {
		return 1
	}
	diff := int(end.Sub(start).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return min(diff+1, MaxTripDays)
}

// DateForDay maps a 1-based trip day to its calendar date: day 1 is
// StartDate.
func (f Folder) DateForDay(day int) (string, error) {
	if day < 1 {
		return "", fmt.Errorf("%w: day %d", ErrInvalidDay, day)
	}
	start, err := ParseDate(f.StartDate)
	if err != nil {
		return "", err
	}
	return start.AddDate(0, 0, day-1).Format(DateLayout), nil
}

// FolderParams is what the folder form hands to the create call.
type FolderParams struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
