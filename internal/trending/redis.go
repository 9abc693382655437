package trending

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

const (
	redisKeyPrefix   = "marquee:trending:"
	redisCountsKey   = redisKeyPrefix + "counts"
	redisMoviePrefix = redisKeyPrefix + "movie:"
)

// RedisStore keeps trending counters in a Redis sorted set so several
// marquee instances can share one ranking. Each term also has a hash with
// the movie it currently points at.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. Close closes the client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// OpenRedis connects to the Redis server at rawURL (redis://...).
func OpenRedis(ctx context.Context, rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStore(client), nil
}

func movieKey(term string) string {
	return redisMoviePrefix + term
}

// RecordSearch increments the counter for the normalized term and points it
// at top, in one MULTI/EXEC transaction.
func (r *RedisStore) RecordSearch(ctx context.Context, term string, top tmdb.Movie) error {
	key := NormalizeTerm(term)
	if key == "" {
		return ErrEmptyTerm
	}

	pipe := r.client.TxPipeline()
	pipe.ZIncrBy(ctx, redisCountsKey, 1, key)
	pipe.HSet(ctx, movieKey(key), map[string]any{
		"movie_id":    top.ID,
		"title":       top.Title,
		"poster_path": top.PosterPath,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record search %q: %w", key, err)
	}
	return nil
}

// Top returns the most searched terms. Members tied with the last one at
// the limit are read too, so equal counts can be ordered by term.
func (r *RedisStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	limit = normalizeLimit(limit)
	scored, err := r.client.ZRevRangeWithScores(ctx, redisCountsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query trending searches: %w", err)
	}
	if len(scored) == 0 {
		return []Entry{}, nil
	}
	if len(scored) == limit {
		cutoff := strconv.FormatFloat(scored[len(scored)-1].Score, 'f', -1, 64)
		scored, err = r.client.ZRevRangeByScoreWithScores(ctx, redisCountsKey, &redis.ZRangeBy{
			Min: cutoff,
			Max: "+inf",
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to query trending searches: %w", err)
		}
	}

	// Redis orders equal scores by member descending; match the SQLite tie-break.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return fmt.Sprint(scored[i].Member) < fmt.Sprint(scored[j].Member)
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	pipe := r.client.Pipeline()
	movies := make([]*redis.MapStringStringCmd, len(scored))
	for i, z := range scored {
		movies[i] = pipe.HGetAll(ctx, movieKey(fmt.Sprint(z.Member)))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to load trending movies: %w", err)
	}

	entries := make([]Entry, 0, len(scored))
	for i, z := range scored {
		fields := movies[i].Val()
		movieID, _ := strconv.Atoi(fields["movie_id"])
		entries = append(entries, Entry{
			SearchTerm: fmt.Sprint(z.Member),
			Count:      int64(z.Score),
			MovieID:    movieID,
			Title:      fields["title"],
			PosterPath: fields["poster_path"],
		})
	}

	return assignRanks(entries), nil
}

// Clear deletes every counter and movie hash and reports how many terms
// were removed.
func (r *RedisStore) Clear(ctx context.Context) (int64, error) {
	terms, err := r.client.ZRange(ctx, redisCountsKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list trending searches: %w", err)
	}

	keys := make([]string, 0, len(terms)+1)
	keys = append(keys, redisCountsKey)
	for _, term := range terms {
		keys = append(keys, movieKey(term))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("failed to delete trending searches: %w", err)
	}
	return int64(len(terms)), nil
}

// Close closes the Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
