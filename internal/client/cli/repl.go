package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	Folders(ctx context.Context) error
	NewFolder(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Diaries(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Wizard(ctx context.Context) error
	Feed(ctx context.Context, args []string) error
	Save(ctx context.Context) error
}

const helpText = `Available commands:
  folders              list trip folders (refreshed from the server when online)
  newfolder            create a trip folder
  open <folderId>      show a folder with its diaries
  diaries [folderId]   list stored diaries
  show <diaryId>       show one diary
  wizard               write a diary for a trip day
  feed [n]             public diaries, optionally only the first n
  save                 save the local snapshot
  exit | quit          leave the program`

// runREPL reads commands line by line from reader and dispatches them to
// a. The prompt is printed only when prompt is true, so piped input stays
// quiet. The loop exits on EOF, on "exit"/"quit", or when ctx is done.
//
// Errors returned by handlers are ignored here; handlers report their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			printlnFn(fmt.Sprintf("diary %s > ", statusFn()))
		}

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "folders", "f":
			_ = a.Folders(ctx)

		case "newfolder":
			_ = a.NewFolder(ctx)

		case "open":
			_ = a.Open(ctx, args)

		case "diaries", "d":
			_ = a.Diaries(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "wizard", "w":
			_ = a.Wizard(ctx)

		case "feed":
			_ = a.Feed(ctx, args)

		case "save":
			_ = a.Save(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
