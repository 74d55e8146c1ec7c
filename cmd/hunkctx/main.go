// Command hunkctx adds context lines to a minimal unified-diff hunk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/hunkctx"
	"github.com/fwojciec/hunkctx/batch"
	"github.com/fwojciec/hunkctx/bubbletea"
	"github.com/fwojciec/hunkctx/chroma"
	"github.com/fwojciec/hunkctx/fs"
	"github.com/fwojciec/hunkctx/gitdiff"
	"github.com/fwojciec/hunkctx/lipgloss"
	"github.com/muesli/termenv"
)

// ErrNoChanges is returned when the input contains no hunk.
var ErrNoChanges = errors.New("no changes to expand")

// ErrNoBefore is returned when no pre-change file is given and the input
// does not name one.
var ErrNoBefore = errors.New("no pre-change file: pass -before or a patch with file headers")

// DefaultContext is the context width used when neither -U nor
// HUNKCTX_CONTEXT is set.
const DefaultContext = 3

// App expands one or more hunks against a pre-change file.
type App struct {
	// Input is read when HunkPaths is empty.
	Input     io.Reader
	HunkPaths []string

	// BeforePath is the pre-change file. If empty, the path named in the
	// hunk's file headers is used.
	BeforePath string

	Context int
	Line    int // Overrides the hunk's start line when positive
	Binary  bool
	Verify  bool
	Jobs    int

	Reader  hunkctx.HunkReader
	Content hunkctx.ContentProvider

	// Log receives one summary line per hunk when set.
	Log io.Writer
}

// Run reads every hunk, expands it and returns the results in input order
// along with the pre-change file each hunk was expanded against.
func (a *App) Run(ctx context.Context) ([]hunkctx.Hunk, []string, error) {
	reqs, err := a.readRequests()
	if err != nil {
		return nil, nil, err
	}

	cache := make(map[string][]string)
	for i := range reqs {
		req := &reqs[i]
		path := a.BeforePath
		if path == "" {
			path = req.Path
		}
		if path == "" {
			return nil, nil, ErrNoBefore
		}
		lines, ok := cache[path]
		if !ok {
			if lines, err = a.Content.Lines(ctx, path); err != nil {
				return nil, nil, fmt.Errorf("reading pre-change file: %w", err)
			}
			cache[path] = lines
		}
		req.Path = path
		req.Before = lines
		req.Context = a.Context
		req.Binary = req.Binary || a.Binary
		if a.Line > 0 {
			req.StartLine = a.Line
		}
	}

	hunks, err := batch.ExpandAll(ctx, reqs, a.Jobs)
	if err != nil {
		return nil, nil, err
	}

	paths := make([]string, len(reqs))
	for i, h := range hunks {
		paths[i] = reqs[i].Path
		if a.Verify {
			if err := gitdiff.Verify(h); err != nil {
				return nil, nil, fmt.Errorf("hunk %d: %w", i, err)
			}
		}
		if a.Log != nil {
			header, _, _ := strings.Cut(h.Diff, "\n")
			fmt.Fprintf(a.Log, "%s: %s\n", paths[i], header)
		}
	}
	return hunks, paths, nil
}

func (a *App) readRequests() ([]hunkctx.Request, error) {
	if len(a.HunkPaths) == 0 {
		req, err := a.read(a.Input)
		if err != nil {
			return nil, err
		}
		return []hunkctx.Request{*req}, nil
	}

	reqs := make([]hunkctx.Request, 0, len(a.HunkPaths))
	for _, p := range a.HunkPaths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		req, err := a.read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		reqs = append(reqs, *req)
	}
	return reqs, nil
}

func (a *App) read(r io.Reader) (*hunkctx.Request, error) {
	req, err := a.Reader.Read(r)
	if errors.Is(err, gitdiff.ErrNoHunk) {
		return nil, ErrNoChanges
	}
	return req, err
}

// options holds the flags that only affect output.
type options struct {
	color string
	view  bool
}

// parseFlags builds an App from command line arguments. The context width
// defaults to HUNKCTX_CONTEXT when set.
func parseFlags(args []string, getenv func(string) string, stderr io.Writer) (*App, *options, error) {
	defaultContext := DefaultContext
	if v := getenv("HUNKCTX_CONTEXT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, nil, fmt.Errorf("invalid HUNKCTX_CONTEXT %q", v)
		}
		defaultContext = n
	}

	app := &App{}
	opts := &options{}
	var name string

	fset := flag.NewFlagSet("hunkctx", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprintln(stderr, "usage: hunkctx [flags] [hunk-file ...]")
		fset.PrintDefaults()
	}
	fset.IntVar(&app.Context, "U", defaultContext, "number of context lines")
	fset.StringVar(&app.BeforePath, "before", "", "pre-change file (default: path from the hunk's file headers)")
	fset.IntVar(&app.Line, "line", 0, "1-based start line of the hunk (default: from the hunk header)")
	fset.BoolVar(&app.Binary, "binary", false, "mark hunks as binary")
	fset.BoolVar(&app.Verify, "verify", false, "re-parse expanded hunks and check their headers")
	fset.IntVar(&app.Jobs, "j", 0, "maximum hunks expanded in parallel (0 means no limit)")
	fset.StringVar(&name, "name", "", "file name reported for bare hunks (default: -before)")
	fset.StringVar(&opts.color, "color", "auto", "colorize output: auto, always or never")
	fset.BoolVar(&opts.view, "view", false, "open an interactive pager")
	verbose := fset.Bool("v", false, "print a summary line per hunk to stderr")
	if err := fset.Parse(args); err != nil {
		return nil, nil, err
	}

	switch opts.color {
	case "auto", "always", "never":
	default:
		return nil, nil, fmt.Errorf("invalid -color %q", opts.color)
	}
	if app.Context < 0 {
		return nil, nil, fmt.Errorf("invalid -U %d", app.Context)
	}
	if name == "" {
		name = app.BeforePath
	}

	app.HunkPaths = fset.Args()
	app.Reader = gitdiff.NewHunkReader(name)
	app.Content = fs.NewContentProvider("")
	if *verbose {
		app.Log = stderr
	}
	return app, opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "hunkctx: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app, opts, err := parseFlags(args, os.Getenv, stderr)
	if err != nil {
		return err
	}
	app.Input = stdin

	hunks, paths, err := app.Run(ctx)
	if err != nil {
		return err
	}

	renderer := lg.NewRenderer(stdout)
	if opts.color == "always" && renderer.ColorProfile() == termenv.Ascii {
		renderer.SetColorProfile(termenv.ANSI256)
	}
	r := lipgloss.NewRenderer(renderer, lipgloss.DefaultTheme(),
		lipgloss.WithSyntax(chroma.NewTokenizer(chroma.DefaultPalette), chroma.NewDetector()))

	if opts.view {
		return bubbletea.NewViewer(r).View(ctx, hunks, paths[0])
	}
	return write(stdout, hunks, paths, r, opts.color != "never" && renderer.ColorProfile() != termenv.Ascii)
}

// write prints hunks either as plain unified-diff text or rendered.
func write(w io.Writer, hunks []hunkctx.Hunk, paths []string, r hunkctx.Renderer, color bool) error {
	for i, h := range hunks {
		out := h.Diff
		if color {
			out = r.Render(h, paths[i])
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
