package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

type movieItem struct {
	tmdb.Movie
}

func (i movieItem) Title() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(i.Movie.Title), i.Year())
}

func (i movieItem) FilterValue() string {
	return i.Movie.Title
}

func (i movieItem) Description() string {
	return i.Overview
}

func toItems(movies []tmdb.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{Movie: movie}
	}
	return items
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	titleStyle    lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	overviewStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		overviewStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

// movieDelegate renders one boxed card per movie.
type movieDelegate struct {
	styles itemStyles
}

func newDelegate() movieDelegate {
	return movieDelegate{styles: newItemStyles()}
}

func (d movieDelegate) Height() int                         { return 4 }
func (d movieDelegate) Spacing() int                        { return 1 }
func (d movieDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d movieDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	movie, ok := item.(movieItem)
	if !ok {
		return
	}

	width := m.Width() - 4
	titleLine := d.styles.titleStyle.Render(movie.Title())
	ratingLine := d.styles.ratingStyle.Render(formatRating(movie.VoteAverage)) + "  " +
		d.styles.metadataStyle.Render(formatMetadata(movie.Movie, width-12))
	overviewLine := d.styles.overviewStyle.Render(truncateText(movie.Overview, width))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, ratingLine, overviewLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

func formatRating(average float64) string {
	if average == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f/10", average)
}

// formatMetadata creates the metadata line with language, vote count and popularity
func formatMetadata(movie tmdb.Movie, availableWidth int) string {
	var parts []string

	if movie.OriginalLanguage != "" {
		parts = append(parts, strings.ToUpper(movie.OriginalLanguage))
	}
	if movie.VoteCount > 0 {
		parts = append(parts, formatVoteCount(movie.VoteCount))
	}
	if movie.Popularity > 0 {
		parts = append(parts, fmt.Sprintf("📊%.1f", movie.Popularity))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 {
		metadata = truncateText(metadata, availableWidth)
	}
	return metadata
}

// formatVoteCount formats vote count in a compact way
func formatVoteCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK votes", float64(count)/1000)
	}
	return fmt.Sprintf("%d votes", count)
}

// truncateText collapses whitespace and cuts value to width terminal cells.
func truncateText(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || lipgloss.Width(value) <= width {
		return value
	}
	if width <= 3 {
		return truncate.String(value, uint(width))
	}
	return truncate.StringWithTail(value, uint(width), "...")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
