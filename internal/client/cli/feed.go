package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// Feed prints the public diaries; with a number it shows only the best n.
func (a *App) Feed(ctx context.Context, args []string) error {
	var (
		items []models.PublicDiary
		err   error
	)
	if len(args) > 0 {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil || n < 0 {
			fmt.Fprintln(a.out, "Usage: feed [n]")
			return errUsage
		}
		items, err = a.feedService.Best(ctx, n)
	} else {
		items, err = a.feedService.Public(ctx)
	}
	if err != nil {
		a.log.Error(ctx, "feed", "error", err)
		fmt.Fprintln(a.out, "The feed is unavailable right now.")
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing shared yet.")
		return nil
	}
	for _, it := range items {
		when := ""
		if !it.CreatedAt.IsZero() {
			when = it.CreatedAt.Format(models.DateLayout)
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", it.ID, when, it.AuthorNickname, it.Content)
	}
	return nil
}

// Save writes the local snapshot.
func (a *App) Save(ctx context.Context) error {
	if err := a.snapshotService.Save(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not save:", err)
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}
