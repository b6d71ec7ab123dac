// Package session keeps parse results in memory for a bounded time so the
// wizard can fetch them again by session id.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
)

// ErrNotFound is returned for session ids that were never stored or have expired.
var ErrNotFound = errors.New("session not found or expired")

// Entry is a stored parse result.
type Entry struct {
	Result       *parser.ParseResult
	Conversation string
	StoredAt     time.Time
}

// Cache is a TTL-bounded map of session id to Entry.
type Cache struct {
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]Entry
}

func New(ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		entries: make(map[string]Entry),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return "session_" + uuid.NewString()
}

// Put stores result under id, replacing any previous entry.
func (c *Cache) Put(id string, result *parser.ParseResult, conversation string) Entry {
	e := Entry{
		Result:       result,
		Conversation: conversation,
		StoredAt:     c.now(),
	}
	c.mu.Lock()
	c.entries[id] = e
	c.mu.Unlock()
	return e
}

// Get returns the entry for id. Entries past their TTL are reported as
// missing even if the sweeper has not removed them yet.
func (c *Cache) Get(id string) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	if c.expired(e) {
		delete(c.entries, id)
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Len reports the number of stored entries, including expired ones not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep removes expired entries and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired entries every interval until ctx is cancelled.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.logger.Info("swept expired sessions", "removed", n)
			}
		}
	}
}

func (c *Cache) expired(e Entry) bool {
	return c.now().Sub(e.StoredAt) > c.ttl
}
