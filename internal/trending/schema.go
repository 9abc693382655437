package trending

// SearchCountsSchema defines the table holding one counter per normalized search term.
const SearchCountsSchema = `
CREATE TABLE IF NOT EXISTS search_counts (
	search_term TEXT PRIMARY KEY NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	movie_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	poster_path TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_search_counts_count ON search_counts(count DESC);
`

const upsertSearchSQL = `
INSERT INTO search_counts (search_term, count, movie_id, title, poster_path, updated_at)
VALUES (?, 1, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(search_term) DO UPDATE SET
	count = search_counts.count + 1,
	movie_id = excluded.movie_id,
	title = excluded.title,
	poster_path = excluded.poster_path,
	updated_at = CURRENT_TIMESTAMP
`

const topSearchesSQL = `
SELECT search_term, count, movie_id, title, poster_path
FROM search_counts
ORDER BY count DESC, search_term ASC
LIMIT ?
`
