package tmdb

import (
	"context"
	"fmt"
)

// GetMovieDetails fetches detailed information for a movie by ID.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	endpoint := fmt.Sprintf("%s/movie/%d", c.baseURL, movieID)

	var details MovieDetails
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return &details, nil
}
