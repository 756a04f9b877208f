package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) Folders(ctx context.Context) error   { return f.record("folders", nil) }
func (f *fakeExec) NewFolder(ctx context.Context) error { return f.record("newfolder", nil) }
func (f *fakeExec) Open(ctx context.Context, args []string) error {
	return f.record("open", args)
}
func (f *fakeExec) Diaries(ctx context.Context, args []string) error {
	return f.record("diaries", args)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Wizard(ctx context.Context) error { return f.record("wizard", nil) }
func (f *fakeExec) Feed(ctx context.Context, args []string) error {
	return f.record("feed", args)
}
func (f *fakeExec) Save(ctx context.Context) error { return f.record("save", nil) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"folders",
		"",
		"open 42",
		"diaries",
		"d 42",
		"show 7",
		"wizard",
		"feed 3",
		"newfolder",
		"save",
		"foobar",
		"exit",
		"folders",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(online)" }, rdr(input), false)

	assert.Equal(t, []string{"folders", "open", "diaries", "diaries", "show", "wizard", "feed", "newfolder", "save"}, exec.calls)
	assert.Equal(t, []string{"42"}, exec.args[1])
	assert.Empty(t, exec.args[2])
	assert.Equal(t, []string{"42"}, exec.args[3])
	assert.Equal(t, []string{"3"}, exec.args[6])

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Available commands")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "Bye!")
	assert.NotContains(t, joined, "diary (online) >", "no prompt without a terminal")
}

func TestRunREPL_PromptAndEOF(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(offline)" }, rdr("folders"), true)

	assert.Equal(t, []string{"folders"}, exec.calls)
	assert.Contains(t, *out, "diary (offline) > ")
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("folders\n"), false)
	assert.Empty(t, exec.calls)
}
