package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchMovies runs a free-text movie search and returns the requested page.
// Results are left in API order.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normalizePage(page)))

	endpoint := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())
	return c.getMoviePage(ctx, endpoint)
}

// DiscoverMovies returns a page of movies ordered by descending popularity.
func (c *Client) DiscoverMovies(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("sort-by", "popularity.desc")
	params.Set("page", strconv.Itoa(normalizePage(page)))

	endpoint := fmt.Sprintf("%s/discover/movie?%s", c.baseURL, params.Encode())
	return c.getMoviePage(ctx, endpoint)
}

func (c *Client) getMoviePage(ctx context.Context, endpoint string) (*MoviePage, error) {
	var page MoviePage
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	if err := page.serviceError(); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []Movie{}
	}
	return &page, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
