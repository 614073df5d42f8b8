package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/bloom"
)

// Expected catalog size used to dimension the bloom pre-filter. Oversizing
// only costs memory.
const (
	bloomExpectedURLs = 100_000
	bloomFPRate       = 0.01
)

// Compile-time interface verification.
var _ wikiharvest.Catalog = (*Catalog)(nil)

// Catalog implements wikiharvest.Catalog using SQLite. A bloom filter over
// recorded URLs answers most negative Has lookups without touching the
// database; the filter is warmed from existing rows on first use.
type Catalog struct {
	db *DB

	mu      sync.Mutex
	filter  *bloom.Filter
	warmed  bool
	warmErr error
}

// NewCatalog creates a new Catalog.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{
		db:     db,
		filter: bloom.NewFilter(bloomExpectedURLs, bloomFPRate),
	}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content []byte) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(content))
	return hex.EncodeToString(b[:])
}

// Record registers a persisted resource under the given source type.
// Re-recording an already-known URL updates its hash and timestamp.
func (c *Catalog) Record(ctx context.Context, resource *wikiharvest.ScrapedResource, sourceType string) error {
	if err := resource.Validate(); err != nil {
		return err
	}
	if err := c.warm(ctx); err != nil {
		return err
	}

	hash := hashContent(resource.Content)
	if resource.Metadata == nil {
		resource.Metadata = make(map[string]string)
	}
	resource.Metadata[wikiharvest.MetaContentHash] = hash

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO resources (id, url, suffix, source_type, content_hash, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			suffix = excluded.suffix,
			source_type = excluded.source_type,
			content_hash = excluded.content_hash,
			recorded_at = excluded.recorded_at
	`, uuid.New().String(), resource.URL, resource.Suffix, sourceType, hash,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.filter.Add(resource.URL)
	c.mu.Unlock()
	return nil
}

// Has reports whether a resource with this URL has been recorded.
func (c *Catalog) Has(ctx context.Context, url string) (bool, error) {
	if err := c.warm(ctx); err != nil {
		return false, err
	}

	c.mu.Lock()
	maybe := c.filter.Test(url)
	c.mu.Unlock()
	if !maybe {
		return false, nil
	}

	// The filter can report false positives, so confirm against the table.
	var one int
	err := c.db.QueryRowContext(ctx, `SELECT 1 FROM resources WHERE url = ?`, url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// URLsBySourceType returns the recorded URLs for a source type, oldest
// first.
func (c *Catalog) URLsBySourceType(ctx context.Context, sourceType string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT url FROM resources WHERE source_type = ? ORDER BY recorded_at, url
	`, sourceType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// warm seeds the bloom filter from rows recorded by earlier runs. Runs once.
func (c *Catalog) warm(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warmed {
		return c.warmErr
	}
	c.warmed = true

	rows, err := c.db.QueryContext(ctx, `SELECT url FROM resources`)
	if err != nil {
		c.warmErr = err
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			c.warmErr = err
			return err
		}
		c.filter.Add(url)
	}
	c.warmErr = rows.Err()
	return c.warmErr
}
