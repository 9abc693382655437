package tmdb

import (
	"strconv"

	merrors "github.com/lepinkainen/marquee/internal/errors"
)

// Movie is a single movie summary as returned by the search and discover
// endpoints. Only ID and Title are relied upon; the rest is passed through.
type Movie struct {
	ID               int     `json:"id" yaml:"id"`
	Title            string  `json:"title" yaml:"title"`
	OriginalTitle    string  `json:"original_title,omitempty" yaml:"original_title,omitempty"`
	Overview         string  `json:"overview,omitempty" yaml:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty" yaml:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty" yaml:"original_language,omitempty"`
	VoteAverage      float64 `json:"vote_average" yaml:"vote_average"`
	VoteCount        int     `json:"vote_count" yaml:"vote_count"`
	Popularity       float64 `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	Adult            bool    `json:"adult" yaml:"adult"`
	GenreIDs         []int   `json:"genre_ids,omitempty" yaml:"genre_ids,omitempty"`
}

// Year extracts the year from the release date.
func (m Movie) Year() string {
	if m.ReleaseDate == "" {
		return "N/A"
	}
	if len(m.ReleaseDate) >= 4 {
		return m.ReleaseDate[:4]
	}
	return m.ReleaseDate
}

// YearInt returns the release year as int, or 0 when unknown.
func (m Movie) YearInt() int {
	if len(m.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			return year
		}
	}
	return 0
}

// MoviePage is one page of a search or discover listing.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`

	// Logical failure markers. A successful HTTP response may still carry
	// either of these, in which case the page is not usable.
	Response      string `json:"response,omitempty"`
	Error         string `json:"error,omitempty"`
	Success       *bool  `json:"success,omitempty"`
	StatusMessage string `json:"status_message,omitempty"`
}

// serviceError returns a ServiceError when the page is flagged as a
// logical failure, nil otherwise.
func (p *MoviePage) serviceError() error {
	if p.Response == "False" {
		return merrors.NewServiceError(p.Error)
	}
	if p.Success != nil && !*p.Success {
		return merrors.NewServiceError(p.StatusMessage)
	}
	return nil
}

// Genre is a named TMDB genre.
type Genre struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Country is a production country.
type Country struct {
	ISO3166 string `json:"iso_3166_1" yaml:"iso_3166_1"`
	Name    string `json:"name" yaml:"name"`
}

// Language is a spoken language.
type Language struct {
	ISO639      string `json:"iso_639_1" yaml:"iso_639_1"`
	Name        string `json:"name" yaml:"name"`
	EnglishName string `json:"english_name,omitempty" yaml:"english_name,omitempty"`
}

// Company is a production company.
type Company struct {
	ID            int    `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	OriginCountry string `json:"origin_country,omitempty" yaml:"origin_country,omitempty"`
}

// MovieDetails holds the full /movie/{id} payload used by the details view.
type MovieDetails struct {
	ID                  int        `json:"id" yaml:"id"`
	IMDBID              string     `json:"imdb_id,omitempty" yaml:"imdb_id,omitempty"`
	Title               string     `json:"title" yaml:"title"`
	Tagline             string     `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Overview            string     `json:"overview,omitempty" yaml:"overview,omitempty"`
	Homepage            string     `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Status              string     `json:"status,omitempty" yaml:"status,omitempty"`
	ReleaseDate         string     `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Runtime             int        `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Budget              int64      `json:"budget,omitempty" yaml:"budget,omitempty"`
	Revenue             int64      `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	Adult               bool       `json:"adult" yaml:"adult"`
	VoteAverage         float64    `json:"vote_average" yaml:"vote_average"`
	VoteCount           int        `json:"vote_count" yaml:"vote_count"`
	PosterPath          string     `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	BackdropPath        string     `json:"backdrop_path,omitempty" yaml:"backdrop_path,omitempty"`
	Genres              []Genre    `json:"genres,omitempty" yaml:"genres,omitempty"`
	ProductionCountries []Country  `json:"production_countries,omitempty" yaml:"production_countries,omitempty"`
	ProductionCompanies []Company  `json:"production_companies,omitempty" yaml:"production_companies,omitempty"`
	SpokenLanguages     []Language `json:"spoken_languages,omitempty" yaml:"spoken_languages,omitempty"`
}
