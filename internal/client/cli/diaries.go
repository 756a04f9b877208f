package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// Diaries lists stored diaries, all of them or those of one folder.
func (a *App) Diaries(ctx context.Context, args []string) error {
	var list []models.Diary
	if len(args) > 0 {
		list = a.store.DiariesByFolderID(args[0])
	} else {
		list = a.store.Diaries()
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No diaries.")
		return nil
	}
	for _, d := range list {
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", d.ID, d.Date, d.Visibility, d.Title)
	}
	return nil
}

// Show prints a stored diary, or fetches it from the server when it is not
// stored locally.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: show <diaryId>")
		return errUsage
	}

	d := a.store.DiaryByID(args[0])
	if d == nil {
		fetched, err := a.diaryService.Fetch(ctx, args[0])
		if err != nil {
			a.log.Error(ctx, "show diary", "diaryId", args[0], "error", err)
			fmt.Fprintln(a.out, "Diary not found.")
			return err
		}
		d = fetched
	}

	printDiary(a.out, *d)
	return nil
}

func printDiary(w io.Writer, d models.Diary) {
	fmt.Fprintf(w, "Title:      %s\n", d.Title)
	fmt.Fprintf(w, "Date:       %s\n", d.Date)
	if d.FolderID != "" {
		fmt.Fprintf(w, "Folder:     %s\n", d.FolderID)
	}
	fmt.Fprintf(w, "Visibility: %s\n", d.Visibility)
	if len(d.Emotions) > 0 {
		fmt.Fprintf(w, "Emotions:   %s\n", strings.Join(d.Emotions, ", "))
	}
	for _, img := range d.Images {
		fmt.Fprintf(w, "Photo:      %s\n", img)
	}
	fmt.Fprintf(w, "\n%s\n", d.Content)
}
