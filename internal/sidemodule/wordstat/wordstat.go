// Package wordstat is a side module resolver ported from the
// wordstat_extw.py example: it never rewrites anything, it just observes
// every word offered to it and keeps a running count, useful for a
// dictionary entry whose only job is instrumentation.
package wordstat

import (
	"context"
	"log/slog"
	"sync"
)

// Counter tallies how many times each distinct word has been observed.
type Counter struct {
	logger *slog.Logger

	mu     sync.Mutex
	counts map[string]int
}

// New builds a Counter that logs each observation through logger.
func New(logger *slog.Logger) *Counter {
	return &Counter{logger: logger, counts: make(map[string]int)}
}

// Resolve implements sidemodule.Resolver. It always declines the match
// (ok=false): its value is the side effect, not a rewrite.
func (c *Counter) Resolve(probe string) (string, bool) {
	c.mu.Lock()
	c.counts[probe]++
	n := c.counts[probe]
	c.mu.Unlock()

	c.logger.LogAttrs(context.Background(), slog.LevelDebug, "word observed",
		slog.String("word", probe), slog.Int("count", n))
	return "", false
}

// Snapshot returns a copy of the current counts.
func (c *Counter) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counts))
	for word, n := range c.counts {
		out[word] = n
	}
	return out
}
