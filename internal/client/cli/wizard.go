package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

var errCancelled = errors.New("wizard cancelled")

// Wizard walks through the diary screens: folder, trip day, photos,
// emotions and visibility, then submits the draft. The draft survives a
// cancelled or failed run, so the next run starts from it.
func (a *App) Wizard(ctx context.Context) error {
	folder, err := a.wizardFolder()
	if err != nil {
		return a.wizardAbort(err)
	}
	if err := a.wizardDay(folder); err != nil {
		return a.wizardAbort(err)
	}
	if err := a.wizardPhotos(); err != nil {
		return a.wizardAbort(err)
	}
	if err := a.wizardEmotions(); err != nil {
		return a.wizardAbort(err)
	}
	if err := a.wizardVisibility(); err != nil {
		return a.wizardAbort(err)
	}

	ok, err := Confirm(a.reader, "Submit this diary?", a.out)
	if err != nil {
		return a.wizardAbort(err)
	}
	if !ok {
		return a.wizardAbort(errCancelled)
	}

	res, err := a.diaryService.Submit(ctx, a.draft)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	a.printCreated("Diary", res.Record.ID, res.State, res.Reason)
	printDiary(a.out, res.Record)
	return nil
}

func (a *App) wizardAbort(err error) error {
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(a.out, "Cancelled, your draft is kept.")
	} else {
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func (a *App) wizardFolder() (models.Folder, error) {
	current := a.draft.State().FolderID
	if current == "" {
		if latest := a.store.LatestFolder(); latest != nil {
			current = strconv.FormatInt(latest.ID, 10)
		}
	}

	answer, err := GetDefaultText(a.reader, "Folder id", current, a.out)
	if err != nil {
		return models.Folder{}, err
	}
	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		return models.Folder{}, fmt.Errorf("folder id %q is not a number", answer)
	}
	f := a.store.FolderByID(id)
	if f == nil {
		return models.Folder{}, fmt.Errorf("folder %d not found, run 'folders' first", id)
	}

	a.draft.SetFolderID(answer)
	return *f, nil
}

func (a *App) wizardDay(f models.Folder) error {
	days := f.TripDays()
	def := ""
	if s := a.draft.State(); s.SelectedDay > 0 {
		def = strconv.Itoa(s.SelectedDay)
	}

	answer, err := GetDefaultText(a.reader, fmt.Sprintf("Trip day (1-%d)", days), def, a.out)
	if err != nil {
		return err
	}
	day, err := strconv.Atoi(answer)
	if err != nil || day < 1 || day > days {
		return fmt.Errorf("day must be between 1 and %d", days)
	}

	date, err := f.DateForDay(day)
	if err != nil {
		return err
	}
	a.draft.SetSelectedDay(day)
	a.draft.SetDate(date)
	fmt.Fprintf(a.out, "Day %d is %s.\n", day, date)
	return nil
}

// wizardPhotos toggles each entered path: a new one is added, one already
// in the draft is removed.
func (a *App) wizardPhotos() error {
	if imgs := a.draft.State().Images; len(imgs) > 0 {
		fmt.Fprintf(a.out, "Photos so far: %s\n", strings.Join(imgs, ", "))
	}
	paths, err := GetLines(a.reader, "Photo paths (enter a listed one again to remove it)", a.out)
	if err != nil {
		return err
	}
	for _, p := range paths {
		a.draft.ToggleImage(p)
	}
	return nil
}

func (a *App) wizardEmotions() error {
	current := strings.Join(a.draft.State().Emotions, ", ")
	answer, err := GetDefaultText(a.reader, "Emotions, comma separated", current, a.out)
	if err != nil {
		return err
	}
	a.draft.SetEmotions(SplitList(answer))
	return nil
}

func (a *App) wizardVisibility() error {
	current := string(a.draft.State().Visibility)
	answer, err := GetDefaultText(a.reader, "Visibility (public/private)", current, a.out)
	if err != nil {
		return err
	}
	v, err := models.ParseVisibility(answer)
	if err != nil {
		return err
	}
	a.draft.SetVisibility(v)
	return nil
}
