// =============================================================================
// Tributos - Normalized Table Cache
// =============================================================================
//
// Every command run re-executes the pipeline from the source workbooks.
// Parsing XLSX is the expensive step, so normalized tables are memoized
// behind a read-through cache keyed by (path, sheet, mtime). The mtime in the
// key is the invalidation rule: a changed on-disk file gets a new key and the
// stale entry for the old mtime is evicted on the next read.
//
// =============================================================================

package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/fazenda-digital/tributos/internal/types"
)

// Loader produces a normalized table on a cache miss.
type Loader func() (*types.Table, error)

// TableCache is a read-through cache of normalized tables. Safe for
// concurrent use, though command runs are synchronous; the mutex is there so
// the cache makes no assumptions about its callers.
type TableCache struct {
	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	modTime time.Time
	table   *types.Table
}

// New creates an empty cache.
func New() *TableCache {
	return &TableCache{entries: make(map[string]entry)}
}

// Get returns the cached table for (path, sheet) when the stored mtime
// matches, otherwise invokes load and stores the result. Load errors are not
// cached.
func (c *TableCache) Get(path, sheet string, modTime time.Time, load Loader) (*types.Table, error) {
	key := fmt.Sprintf("%s|%s", path, sheet)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.modTime.Equal(modTime) {
		c.mu.Unlock()
		return e.table, nil
	}
	c.mu.Unlock()

	table, err := load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{modTime: modTime, table: table}
	c.mu.Unlock()

	return table, nil
}

// Size returns the number of cached tables.
func (c *TableCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge drops every entry.
func (c *TableCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
