// Package sqlresolver is a side module resolver backed by a SQL query,
// ported from the dicdb_extw.py example: a dictionary that looks its
// replacement up in an external database instead of a static rule file.
package sqlresolver

import (
	"database/sql"
	"sync"
)

// Resolver queries db for the replacement of each probe and remembers the
// answer (including a negative one) so a repeated word in the same run
// costs one round trip, not one per occurrence.
type Resolver struct {
	db    *sql.DB
	query string

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	target string
	found  bool
}

// New builds a Resolver that runs query with probe as its sole placeholder
// argument and expects a single-column result.
func New(db *sql.DB, query string) *Resolver {
	return &Resolver{db: db, query: query, cache: make(map[string]cacheEntry)}
}

// Resolve implements sidemodule.Resolver.
func (r *Resolver) Resolve(probe string) (string, bool) {
	r.mu.Lock()
	if entry, ok := r.cache[probe]; ok {
		r.mu.Unlock()
		return entry.target, entry.found
	}
	r.mu.Unlock()

	var target string
	err := r.db.QueryRow(r.query, probe).Scan(&target)
	entry := cacheEntry{target: target, found: err == nil}

	r.mu.Lock()
	r.cache[probe] = entry
	r.mu.Unlock()

	return entry.target, entry.found
}
