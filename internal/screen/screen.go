// Package screen is the headlines screen: one fetch on start, then either a
// scrollable list of cards or an error message.
package screen

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/headlines/internal/model"
	"github.com/Makepad-fr/headlines/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	genericError = "Something went wrong while loading headlines."
)

// generations numbers fetches across every screen in the process, so a
// result can only ever settle the model that started it.
var generations atomic.Uint64

// Fetcher is the one collaborator the screen has.
type Fetcher interface {
	TopHeadlines(ctx context.Context) ([]model.Article, error)
}

type Options struct {
	Theme   ui.Theme
	Country string // shown in the header only
	Logger  *slog.Logger
}

// headlinesMsg carries a settled fetch back into the event loop.
type headlinesMsg struct {
	gen      uint64
	articles []model.Article
	err      error
}

// Model implements tea.Model.
type Model struct {
	fetcher Fetcher
	theme   ui.Theme
	country string
	logger  *slog.Logger

	state State
	// gen identifies the outstanding fetch; results from any other
	// generation, or after Close, are dropped.
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	width, height int
	spinner       spinner.Model
	viewport      viewport.Model
	help          help.Model
	keys          keyMap
}

// New returns a screen in the Loading state. The fetch starts with Init.
func New(f Fetcher, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Theme.Name == "" {
		opts.Theme = ui.ThemeByName("classic")
	}
	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = opts.Theme.Accent

	m := Model{
		fetcher:  f,
		theme:    opts.Theme,
		country:  opts.Country,
		logger:   opts.Logger,
		state:    LoadingState{},
		gen:      generations.Add(1),
		ctx:      ctx,
		cancel:   cancel,
		width:    defaultWidth,
		height:   defaultHeight,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight),
		help:     help.New(),
		keys:     defaultKeys(),
	}
	m.layout()
	return m
}

// State returns the current screen state.
func (m Model) State() State { return m.state }

// Close tears the screen down: the outstanding request is cancelled and any
// result that still arrives is ignored.
func (m *Model) Close() {
	m.closed = true
	m.cancel()
}

func (m Model) Init() tea.Cmd {
	m.logger.Debug("fetching headlines", slog.Uint64("gen", m.gen))
	return tea.Batch(m.spinner.Tick, fetchHeadlines(m.ctx, m.fetcher, m.gen))
}

func fetchHeadlines(ctx context.Context, f Fetcher, gen uint64) tea.Cmd {
	return func() tea.Msg {
		articles, err := f.TopHeadlines(ctx)
		return headlinesMsg{gen: gen, articles: articles, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case headlinesMsg:
		return m.settle(msg), nil

	case spinner.TickMsg:
		// Stop ticking once loading is over.
		if _, loading := m.state.(LoadingState); !loading || m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}
		if _, loaded := m.state.(LoadedState); !loaded {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	if _, loaded := m.state.(LoadedState); loaded {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// settle applies a fetch result. It is the only place the state leaves
// Loading, and it does so at most once per generation.
func (m Model) settle(msg headlinesMsg) Model {
	if m.closed || msg.gen != m.gen {
		m.logger.Debug("dropping stale headlines result",
			slog.Uint64("gen", msg.gen),
			slog.Uint64("current", m.gen),
			slog.Bool("closed", m.closed))
		return m
	}
	if _, loading := m.state.(LoadingState); !loading {
		return m
	}

	if msg.err != nil {
		m.logger.Warn("headlines fetch failed", slog.String("error", msg.err.Error()))
		m.state = ErrorState{Message: errorMessage(msg.err)}
		return m
	}

	articles := msg.articles
	if articles == nil {
		articles = []model.Article{}
	}
	m.logger.Info("headlines loaded", slog.Int("articles", len(articles)))
	m.state = LoadedState{Articles: articles}
	m.layout()
	m.viewport.GotoTop()
	return m
}

func errorMessage(err error) string {
	if s := strings.TrimSpace(err.Error()); s != "" {
		return s
	}
	return genericError
}

// layout sizes the viewport to what the header and help leave over and
// re-renders the cards for the current width.
func (m *Model) layout() {
	chrome := 1 + lipgloss.Height(m.help.View(m.keys))
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.help.Width = m.width
	if s, ok := m.state.(LoadedState); ok {
		m.viewport.SetContent(RenderList(m.theme, m.width, s.Articles))
	}
}

func (m Model) View() string {
	switch s := m.state.(type) {
	case ErrorState:
		return errorView(m.theme, m.width, m.height, s.Message, m.quitHint())
	case LoadedState:
		return lipgloss.JoinVertical(lipgloss.Left,
			header(m.theme, m.country, len(s.Articles), m.viewport.ScrollPercent()),
			m.viewport.View(),
			m.help.View(m.keys),
		)
	default:
		loading := m.spinner.View() + " " + m.theme.Muted.Render("Loading headlines…")
		return centered(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, loading, "", m.quitHint()))
	}
}

// quitHint is the only key that matters before the list is up.
func (m Model) quitHint() string {
	return m.help.ShortHelpView([]key.Binding{m.keys.Quit})
}
