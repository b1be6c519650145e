package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/Makepad-fr/headlines/internal/config"
	"github.com/Makepad-fr/headlines/internal/newsapi"
	"github.com/Makepad-fr/headlines/internal/screen"
	"github.com/Makepad-fr/headlines/internal/ui"
)

// Options carry the resolved config and where output goes.
type Options struct {
	Config config.Config
	Out    io.Writer // defaults to os.Stdout
	Err    io.Writer // defaults to os.Stderr
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	ui.SetTheme(opt.Config.Theme)

	cmd := "tui"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "tui":
		return doTUI(opt)

	case "ls":
		if len(args) > 1 {
			ui.Fail(opt.Err, "usage: headlines ls")
			return 2
		}
		return doList(opt)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `headlines - top news headlines in your terminal

Usage:
  headlines [flags] [subcommand]

Subcommands:
  tui        Interactive screen (default)
  ls         Fetch once and print the cards
  help       Show this help

Flags:
  -theme <classic|neon|mono>   Colour theme
  -country <code>              Two-letter country code (default us)
  -color <auto|always|never>   Colour output

Environment:
  HEADLINES_API_KEY (or NEWS_API_KEY)   newsapi.org credential
  HEADLINES_CONFIG                      Path to a TOML config file
  HEADLINES_DEBUG_LOG                   Write diagnostics to this file

Examples:
  headlines
  headlines -country gb ls
  NEWS_API_KEY=... headlines -theme neon
`)
}

// -------------- subcommand impls ----------------

func doTUI(opt Options) int {
	logger, closeLog, err := newLogger(opt.Config)
	if err != nil {
		ui.Fail(opt.Err, "log: "+err.Error())
		return 1
	}
	defer closeLog()

	m := screen.New(newClient(opt.Config, logger), screen.Options{
		Theme:   ui.ThemeByName(opt.Config.Theme),
		Country: opt.Config.Country,
		Logger:  logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if fm, ok := final.(screen.Model); ok {
		fm.Close()
	}
	if err != nil {
		ui.Fail(opt.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

// doList is the non-interactive rendering of the same screen: one fetch,
// then either the cards or the error, on stdout/stderr.
func doList(opt Options) int {
	logger, closeLog, err := newLogger(opt.Config)
	if err != nil {
		ui.Fail(opt.Err, "log: "+err.Error())
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	articles, err := newClient(opt.Config, logger).TopHeadlines(ctx)
	if err != nil {
		ui.Fail(opt.Err, "fetch: "+err.Error())
		return 1
	}

	width := termWidth(opt.Out)
	t := ui.Current()
	n := len(articles)
	summary := fmt.Sprintf("%s  %s  %s",
		t.Title.Render("Top headlines"),
		t.Accent.Render(strings.ToUpper(opt.Config.Country)),
		t.Muted.Render(fmt.Sprintf("%d total", n)),
	)
	fmt.Fprintln(opt.Out, ui.Panel(t, []string{summary}))
	fmt.Fprintln(opt.Out, screen.RenderList(t, width, articles))
	return 0
}

func newClient(c config.Config, logger *slog.Logger) *newsapi.Client {
	return newsapi.New(c.APIKey,
		newsapi.WithBaseURL(c.BaseURL),
		newsapi.WithCountry(c.Country),
		newsapi.WithTimeout(c.Timeout),
		newsapi.WithLogger(logger),
	)
}

// newLogger writes to the debug log file when one is configured; stdout
// belongs to the screen.
func newLogger(c config.Config) (*slog.Logger, func(), error) {
	if c.DebugLog == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(c.DebugLog, "headlines")
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func termWidth(w io.Writer) int {
	const fallback = 80
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
		return tw
	}
	return fallback
}
