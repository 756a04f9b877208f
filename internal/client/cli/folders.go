package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tripdiary/internal/client/draft"
	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

var errUsage = errors.New("usage")

// Folders refreshes the folder list when online and prints the local list.
func (a *App) Folders(ctx context.Context) error {
	if a.Mode() == ModeOnline {
		if out := a.folderService.Refresh(ctx); out.Reason != nil {
			fmt.Fprintln(a.out, "(server unavailable, showing saved folders)")
		}
	}

	folders := a.store.Folders()
	if len(folders) == 0 {
		fmt.Fprintln(a.out, "No folders yet. Create one with 'newfolder'.")
		return nil
	}
	for _, f := range folders {
		a.printFolder(f)
	}
	return nil
}

func (a *App) printFolder(f models.Folder) {
	fmt.Fprintf(a.out, "%d\t%s\t%s ~ %s\t%d day(s)", f.ID, f.Title, f.StartDate, f.EndDate, f.TripDays())
	if thumb := a.folderService.Thumbnail(f); thumb != "" {
		fmt.Fprintf(a.out, "\t%s", thumb)
	}
	fmt.Fprintln(a.out)
}

// NewFolder runs the folder form and creates the folder.
func (a *App) NewFolder(ctx context.Context) error {
	a.form.ResetAll()

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title (up to %d characters)", draft.MaxTitleLength), a.out)
	if err != nil {
		return err
	}
	a.form.SetTitle(title)

	start, err := GetSimpleText(a.reader, "Start date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	a.form.SetStartDate(start)

	end, err := GetSimpleText(a.reader, "End date (YYYY-MM-DD, empty for a one-day trip)", a.out)
	if err != nil {
		return err
	}
	a.form.SetEndDate(end)

	params, err := a.form.Params()
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	res := a.folderService.Create(ctx, params)
	a.form.ResetAll()
	a.printCreated("Folder", strconv.FormatInt(res.Record.ID, 10), res.State, res.Reason)
	return nil
}

func (a *App) printCreated(what, id string, state models.SyncState, reason error) {
	if state == models.Confirmed {
		fmt.Fprintf(a.out, "%s %s saved.\n", what, id)
		return
	}
	fmt.Fprintf(a.out, "%s %s saved on this device (pending sync: %v).\n", what, id, reason)
}

// Open fetches a folder with its diaries, falling back to local data, and
// makes it the wizard's folder.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: open <folderId>")
		return errUsage
	}
	folderID := args[0]

	if _, err := a.folderService.Detail(ctx, folderID); err != nil {
		a.log.Warn(ctx, "folder detail unavailable", "folderId", folderID, "error", err)
		fmt.Fprintln(a.out, "(server unavailable, showing saved diaries)")
	}

	if id, err := strconv.ParseInt(folderID, 10, 64); err == nil {
		if f := a.store.FolderByID(id); f != nil {
			a.printFolder(*f)
		}
	}
	a.draft.SetFolderID(folderID)

	return a.Diaries(ctx, []string{folderID})
}
