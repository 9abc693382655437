// Package tui provides the interactive terminal browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/details"
	"github.com/lepinkainen/marquee/internal/search"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

const (
	defaultListWidth  = 80
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

// SearchController drives the search session.
type SearchController interface {
	SetRawText(text string)
	NextPage()
	PrevPage()
	Snapshot() search.Session
	Updates() <-chan search.Session
}

// TrendingController loads the trending list.
type TrendingController interface {
	Load(ctx context.Context) search.TrendingSession
	Reload(ctx context.Context) search.TrendingSession
}

type sessionMsg search.Session

type updatesClosedMsg struct{}

type trendingMsg search.TrendingSession

// detailsMsg carries the sequence number of the request that produced it.
type detailsMsg struct {
	seq  uint64
	view details.View
}

type model struct {
	ctx      context.Context
	search   SearchController
	trending TrendingController
	fetcher  details.Fetcher

	input   textinput.Model
	spinner spinner.Model
	list    list.Model

	session search.Session
	trend   search.TrendingSession

	// detail is non-nil while the details screen is open.
	detail        *details.View
	detailLoading bool
	detailTitle   string
	detailSeq     uint64
}

func newModel(ctx context.Context, sc SearchController, tc TrendingController, fetcher details.Fetcher) *model {
	input := textinput.New()
	input.Placeholder = "Search through thousands of movies"
	input.Prompt = "🔍 "
	input.CharLimit = 120
	input.Width = defaultListWidth - 4
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	l := list.New(nil, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	m := &model{
		ctx:      ctx,
		search:   sc,
		trending: tc,
		fetcher:  fetcher,
		input:    input,
		spinner:  spin,
		list:     l,
	}
	m.applySession(sc.Snapshot())
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.waitForSession(),
		m.loadTrending(false),
	)
}

func (m *model) waitForSession() tea.Cmd {
	updates := m.search.Updates()
	return func() tea.Msg {
		session, ok := <-updates
		if !ok {
			return updatesClosedMsg{}
		}
		return sessionMsg(session)
	}
}

func (m *model) loadTrending(reload bool) tea.Cmd {
	ctx, tc := m.ctx, m.trending
	return func() tea.Msg {
		if reload {
			return trendingMsg(tc.Reload(ctx))
		}
		return trendingMsg(tc.Load(ctx))
	}
}

func (m *model) loadDetails(movie tmdb.Movie) tea.Cmd {
	m.detailSeq++
	seq, ctx, fetcher := m.detailSeq, m.ctx, m.fetcher
	entries := m.trend.Items
	return func() tea.Msg {
		return detailsMsg{seq: seq, view: details.Load(ctx, fetcher, movie.ID, entries)}
	}
}

func (m *model) applySession(session search.Session) tea.Cmd {
	m.session = session
	return m.list.SetItems(toItems(session.Results))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionMsg:
		cmd := m.applySession(search.Session(msg))
		return m, tea.Batch(cmd, m.waitForSession())

	case updatesClosedMsg:
		return m, nil

	case trendingMsg:
		m.trend = search.TrendingSession(msg)
		return m, nil

	case detailsMsg:
		// The user left the screen or asked for another movie meanwhile.
		if !m.detailLoading || msg.seq != m.detailSeq {
			return m, nil
		}
		view := msg.view
		m.detail = &view
		m.detailLoading = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-12, 5)
		m.list.SetSize(width, height)
		m.input.Width = width - 4
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.detail != nil || m.detailLoading {
		switch msg.String() {
		case "esc", "backspace", "q":
			m.detail = nil
			m.detailLoading = false
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		if m.input.Value() == "" {
			return m, tea.Quit
		}
		m.input.SetValue("")
		m.search.SetRawText("")
		m.session = m.search.Snapshot()
		return m, nil

	case "enter":
		selected, ok := m.list.SelectedItem().(movieItem)
		if !ok {
			return m, nil
		}
		m.detailLoading = true
		m.detailTitle = selected.Movie.Title
		return m, m.loadDetails(selected.Movie)

	case "tab", "pgdown":
		m.search.NextPage()
		return m, m.applySession(m.search.Snapshot())

	case "shift+tab", "pgup":
		m.search.PrevPage()
		return m, m.applySession(m.search.Snapshot())

	case "up", "down":
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case "ctrl+r":
		return m, m.loadTrending(true)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.search.SetRawText(value)
		m.session = m.search.Snapshot()
	}
	return m, cmd
}

// Browse runs the interactive browser until the user quits.
func Browse(ctx context.Context, sc SearchController, tc TrendingController, fetcher details.Fetcher) error {
	m := newModel(ctx, sc, tc, fetcher)
	finalModel, err := runProgram(m)
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	if _, ok := finalModel.(*model); !ok {
		return fmt.Errorf("unexpected program result")
	}
	return nil
}
