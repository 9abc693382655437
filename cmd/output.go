package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/marquee/internal/details"
	"github.com/lepinkainen/marquee/internal/search"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/trending"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// moviesOutput is the machine-readable form of a search or discover call.
type moviesOutput struct {
	Query   string       `json:"query,omitempty" yaml:"query,omitempty"`
	Page    int          `json:"page" yaml:"page"`
	Results []tmdb.Movie `json:"results" yaml:"results"`
}

type detailsOutput struct {
	Movie *tmdb.MovieDetails `json:"movie" yaml:"movie"`
	Rank  int                `json:"trending_rank,omitempty" yaml:"trending_rank,omitempty"`
	Rows  []details.Row      `json:"rows" yaml:"rows"`
}

type trendingOutput struct {
	Entries []trendingRow `json:"entries" yaml:"entries"`
}

type trendingRow struct {
	trending.Entry `yaml:",inline"`
	PosterURL      string `json:"poster_url,omitempty" yaml:"poster_url,omitempty"`
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// printSimpleTable renders a simple table with headers using tablewriter.
func printSimpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	if len(headers) > 0 {
		tw.SetHeader(headers)
	}
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}

func writeMovies(w io.Writer, format string, session search.Session) error {
	if format != FormatTable {
		return writeStructured(w, format, moviesOutput{
			Query:   session.Query.SettledText,
			Page:    session.Query.Page,
			Results: session.Results,
		})
	}

	if len(session.Results) == 0 {
		_, err := fmt.Fprintln(w, "No movies found.")
		return err
	}
	printSimpleTable(w, []string{"ID", "Title", "Year", "Rating", "Votes"}, func(add func(...string)) {
		for _, movie := range session.Results {
			add(
				strconv.Itoa(movie.ID),
				movie.Title,
				movie.Year(),
				details.FormatRating(movie.VoteAverage, movie.VoteCount),
				humanize.Comma(int64(movie.VoteCount)),
			)
		}
	})
	_, err := fmt.Fprintf(w, "Page %d of %d\n", session.Query.Page, session.TotalPages)
	return err
}

func writeTrending(w io.Writer, format string, entries []trending.Entry) error {
	if format != FormatTable {
		rows := make([]trendingRow, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, trendingRow{Entry: entry, PosterURL: entry.PosterURL()})
		}
		return writeStructured(w, format, trendingOutput{Entries: rows})
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No trending searches yet.")
		return err
	}
	printSimpleTable(w, []string{"Rank", "Search", "Count", "Movie", "Poster"}, func(add func(...string)) {
		for _, entry := range entries {
			add(
				strconv.Itoa(entry.Rank),
				entry.SearchTerm,
				humanize.Comma(entry.Count),
				entry.Title,
				entry.PosterURL(),
			)
		}
	})
	return nil
}

func writeDetails(w io.Writer, format string, view details.View) error {
	movie := view.Movie
	if format != FormatTable {
		return writeStructured(w, format, detailsOutput{
			Movie: movie,
			Rank:  view.Rank,
			Rows:  details.Rows(movie),
		})
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", movie.Title, details.Header(movie)); err != nil {
		return err
	}
	printSimpleTable(w, nil, func(add func(...string)) {
		add("Rating", details.FormatRating(movie.VoteAverage, movie.VoteCount))
		add("Trending", details.FormatRank(view.Rank))
		if movie.Homepage != "" {
			add("Homepage", movie.Homepage)
		}
		for _, row := range details.Rows(movie) {
			add(row.Label, row.Value)
		}
	})
	return nil
}
