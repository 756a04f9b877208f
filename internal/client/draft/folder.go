package draft

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// MaxTitleLength is the longest folder title the form accepts, in runes.
const MaxTitleLength = 15

var (
	ErrTitleRequired  = errors.New("folder title is required")
	ErrTitleTooLong   = fmt.Errorf("folder title is longer than %d characters", MaxTitleLength)
	ErrStartRequired  = errors.New("trip start date is required")
	ErrEndBeforeStart = errors.New("trip end date is before its start date")
)

// FolderForm collects the title and date range of a new folder.
type FolderForm struct {
	mu        sync.Mutex
	title     string
	startDate string
	endDate   string
}

func NewFolderForm() *FolderForm {
	return &FolderForm{}
}

func (f *FolderForm) SetTitle(title string) {
	f.mu.Lock()
	f.title = strings.TrimSpace(title)
	f.mu.Unlock()
}

func (f *FolderForm) SetStartDate(date string) {
	f.mu.Lock()
	f.startDate = date
	f.mu.Unlock()
}

func (f *FolderForm) SetEndDate(date string) {
	f.mu.Lock()
	f.endDate = date
	f.mu.Unlock()
}

// ResetDates clears the range but keeps the title.
func (f *FolderForm) ResetDates() {
	f.mu.Lock()
	f.startDate, f.endDate = "", ""
	f.mu.Unlock()
}

func (f *FolderForm) ResetAll() {
	f.mu.Lock()
	f.title, f.startDate, f.endDate = "", "", ""
	f.mu.Unlock()
}

// Params validates the form and returns create parameters. A missing end
// date means a one-day trip.
func (f *FolderForm) Params() (models.FolderParams, error) {
	f.mu.Lock()
	p := models.FolderParams{Title: f.title, StartDate: f.startDate, EndDate: f.endDate}
	f.mu.Unlock()

	if p.Title == "" {
		return p, ErrTitleRequired
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLength {
		return p, ErrTitleTooLong
	}
	if p.StartDate == "" {
		return p, ErrStartRequired
	}
	start, err := models.ParseDate(p.StartDate)
	if err != nil {
		return p, err
	}
	if p.EndDate == "" {
		p.EndDate = p.StartDate
		return p, nil
	}
	end, err := models.ParseDate(p.EndDate)
	if err != nil {
		return p, err
	}
	if end.Before(start) {
		return p, ErrEndBeforeStart
	}
	return p, nil
}
