package details

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

// NotAvailable is rendered for any missing value.
const NotAvailable = "N/A"

const separator = " • "

// FormatRuntime renders minutes as "2h 35m".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatMoney renders a budget or revenue figure.
func FormatMoney(amount int64) string {
	switch {
	case amount <= 0:
		return NotAvailable
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.2f Billion", float64(amount)/1e9)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.2f Million", float64(amount)/1e6)
	default:
		return "$" + humanize.Comma(amount)
	}
}

// FormatReleaseDate renders a TMDB date (YYYY-MM-DD) as "January 2, 2006".
// Unparseable dates are returned unchanged.
func FormatReleaseDate(date string) string {
	if date == "" {
		return NotAvailable
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// ReleaseYear returns the year part of a TMDB date.
func ReleaseYear(date string) string {
	if len(date) < 4 {
		return NotAvailable
	}
	return date[:4]
}

// Certification maps the adult flag to the label shown in the header.
func Certification(adult bool) string {
	if adult {
		return "R-rated"
	}
	return "PG-13"
}

// FormatRating renders "7.8/10 (12,345)".
func FormatRating(average float64, count int) string {
	if average == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f/10 (%s)", average, humanize.Comma(int64(count)))
}

// JoinNames joins names with a bullet separator.
func JoinNames(names []string) string {
	if len(names) == 0 {
		return NotAvailable
	}
	return strings.Join(names, separator)
}

// Header renders the line under the title: year, certification and runtime.
func Header(m *tmdb.MovieDetails) string {
	return strings.Join([]string{
		ReleaseYear(m.ReleaseDate),
		Certification(m.Adult),
		FormatRuntime(m.Runtime),
	}, separator)
}

// FormatRank renders a trending rank, "N/A" when the movie is not trending.
func FormatRank(rank int) string {
	if rank <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("#%d", rank)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
