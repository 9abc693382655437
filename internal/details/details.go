// Package details loads a single movie's full record and formats it for
// display.
package details

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/trending"
)

// LoadErrorMessage is shown when the details request fails for any reason.
const LoadErrorMessage = "Could not load movie details."

// Fetcher retrieves a movie's full record.
type Fetcher interface {
	GetMovieDetails(ctx context.Context, movieID int) (*tmdb.MovieDetails, error)
}

// View is a loaded details screen. Exactly one of Movie and Err is set.
type View struct {
	Movie *tmdb.MovieDetails
	// Rank is the movie's position in the trending list, 0 when absent.
	Rank int
	Err  string
}

// Load fetches movieID and resolves its trending rank against entries.
func Load(ctx context.Context, fetcher Fetcher, movieID int, entries []trending.Entry) View {
	movie, err := fetcher.GetMovieDetails(ctx, movieID)
	if err != nil {
		slog.Debug("Failed to load movie details", "id", movieID, "error", err)
		return View{Err: LoadErrorMessage}
	}
	return View{Movie: movie, Rank: Rank(entries, movieID)}
}

// Rank returns the 1-based position of movieID in entries, or 0.
func Rank(entries []trending.Entry, movieID int) int {
	for i, entry := range entries {
		if entry.MovieID == movieID {
			return i + 1
		}
	}
	return 0
}

// Row is one labelled line of the details table.
type Row struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Rows returns the details table in display order.
func Rows(m *tmdb.MovieDetails) []Row {
	return []Row{
		{"Genres", JoinNames(genreNames(m.Genres))},
		{"Overview", orNA(m.Overview)},
		{"Release Date", FormatReleaseDate(m.ReleaseDate)},
		{"Countries", JoinNames(countryNames(m.ProductionCountries))},
		{"Status", orNA(m.Status)},
		{"Languages", JoinNames(languageNames(m.SpokenLanguages))},
		{"Budget", FormatMoney(m.Budget)},
		{"Revenue", FormatMoney(m.Revenue)},
		{"Tagline", orNA(m.Tagline)},
		{"Production Companies", JoinNames(companyNames(m.ProductionCompanies))},
	}
}

func genreNames(genres []tmdb.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

func countryNames(countries []tmdb.Country) []string {
	names := make([]string, 0, len(countries))
	for _, c := range countries {
		names = append(names, c.Name)
	}
	return names
}

func languageNames(languages []tmdb.Language) []string {
	names := make([]string, 0, len(languages))
	for _, l := range languages {
		name := l.EnglishName
		if name == "" {
			name = l.Name
		}
		names = append(names, name)
	}
	return names
}

func companyNames(companies []tmdb.Company) []string {
	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}
	return names
}
