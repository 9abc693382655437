package trending

import (
	"context"
	"fmt"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a Store backend.
type Options struct {
	Backend  string
	DBFile   string
	RedisURL string
}

// Open returns the Store for the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendSQLite:
		dbFile := opts.DBFile
		if dbFile == "" {
			dbFile = "./trending.db"
		}
		return NewSQLiteStore(dbFile)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis trending backend requires a redis url (trending.redisurl)")
		}
		return OpenRedis(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown trending backend %q; valid backends are: %s, %s", opts.Backend, BackendSQLite, BackendRedis)
	}
}
