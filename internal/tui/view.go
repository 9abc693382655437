package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/details"
	"github.com/lepinkainen/marquee/internal/search"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("161")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	pageStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252"))

	currentPageStyle = pageStyle.Copy().
				Background(lipgloss.Color("214")).
				Foreground(lipgloss.Color("0")).
				Bold(true)

	disabledPageStyle = pageStyle.Copy().
				Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Width(22)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

func (m *model) View() string {
	if m.detail != nil || m.detailLoading {
		return m.detailView()
	}

	sections := []string{
		headerStyle.Render("Find Movies You'll Enjoy Without the Hassle"),
		renderTrending(m.trend),
		"",
		m.input.View(),
		"",
		m.resultsView(),
		renderPager(m.session.Window()),
		helpStyle.Render("Type to search | Up/Down select | Enter details | Tab/Shift+Tab page | Ctrl+R refresh trending | Esc clear/quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) resultsView() string {
	title := "Popular Movies"
	if m.session.Query.SettledText != "" {
		title = fmt.Sprintf("Results for %q", m.session.Query.SettledText)
	}
	heading := sectionStyle.Render(title)

	switch {
	case m.session.Loading:
		return lipgloss.JoinVertical(lipgloss.Left, heading, m.spinner.View()+" Loading...")
	case m.session.Err != "":
		return lipgloss.JoinVertical(lipgloss.Left, heading, errorStyle.Render(m.session.Err))
	case len(m.session.Results) == 0:
		return lipgloss.JoinVertical(lipgloss.Left, heading, mutedStyle.Render("No movies found."))
	default:
		return lipgloss.JoinVertical(lipgloss.Left, heading, m.list.View())
	}
}

func renderTrending(trend search.TrendingSession) string {
	heading := sectionStyle.Render("Trending Movies")
	switch {
	case trend.Err != "":
		return lipgloss.JoinVertical(lipgloss.Left, heading, errorStyle.Render(trend.Err))
	case !trend.Loaded:
		return lipgloss.JoinVertical(lipgloss.Left, heading, mutedStyle.Render("Loading..."))
	case len(trend.Items) == 0:
		return lipgloss.JoinVertical(lipgloss.Left, heading, mutedStyle.Render("No trending searches yet."))
	}

	parts := make([]string, 0, len(trend.Items))
	for _, item := range trend.Items {
		parts = append(parts, fmt.Sprintf("%d. %s", item.Rank, item.Title))
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, strings.Join(parts, "   "))
}

// renderPager draws "Prev 1 2 3 4 5 Next" with the current page highlighted.
func renderPager(window search.PageWindow) string {
	parts := make([]string, 0, window.Total+2)

	prev := pageStyle
	if !window.HasPrev() {
		prev = disabledPageStyle
	}
	parts = append(parts, prev.Render("Prev"))

	for _, page := range window.Pages() {
		style := pageStyle
		if page == window.Current {
			style = currentPageStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d", page)))
	}

	next := pageStyle
	if !window.HasNext() {
		next = disabledPageStyle
	}
	parts = append(parts, next.Render("Next"))

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *model) detailView() string {
	back := helpStyle.Render("Esc back to results")

	if m.detailLoading {
		return lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render(m.detailTitle),
			m.spinner.View()+" Loading...",
			back,
		)
	}

	view := m.detail
	if view.Err != "" {
		return lipgloss.JoinVertical(lipgloss.Left, errorStyle.Render(view.Err), back)
	}

	movie := view.Movie
	lines := []string{
		headerStyle.Render(movie.Title),
		details.Header(movie),
		fmt.Sprintf("Rating %s   Trending %s",
			details.FormatRating(movie.VoteAverage, movie.VoteCount),
			details.FormatRank(view.Rank)),
	}
	if movie.Homepage != "" {
		lines = append(lines, mutedStyle.Render(movie.Homepage))
	}
	lines = append(lines, "")
	for _, row := range details.Rows(movie) {
		lines = append(lines, labelStyle.Render(row.Label)+row.Value)
	}
	lines = append(lines, back)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
