// Package session holds the cached state for the most recently loaded
// project: its assembled context and any analysis results produced since.
//
// The cache intentionally holds at most one entry. Loading a different
// project replaces the previous entry wholesale; there is no LRU and no
// persistence. Entries expire after a fixed window, after which reads
// behave as a miss and the caller must reload.
package session

import (
	"time"

	"github.com/google/uuid"

	"cbx/internal/loader"
)

// AnalysisResult is one stored model answer, held until export or expiry.
type AnalysisResult struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarizes the cache for the getStats operation.
type Stats struct {
	ProjectPath string `json:"projectPath,omitempty"`
	EntryCount  int    `json:"entryCount"`
	FileCount   int    `json:"fileCount"`
	TokenCount  int    `json:"tokenCount"`
	ResultCount int    `json:"resultCount"`
	Age         string `json:"age,omitempty"`
	Approximate bool   `json:"approximate,omitempty"`
}

type entry struct {
	id        string
	context   *loader.Context
	results   []AnalysisResult
	createdAt time.Time
}

// Cache is the single-entry session cache. It is an explicit struct with
// injected lifecycle rather than package-level state, so tests can run
// multiple instances. Access is single-threaded by design; the process
// handles one invocation at a time.
type Cache struct {
	ttl   time.Duration
	now   func() time.Time // injectable clock for expiry tests
	entry *entry
}

// New creates a cache with the given expiry window.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
		now: time.Now,
	}
}

// SetClock overrides the cache clock. Tests only.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// Put stores a freshly loaded context, discarding whatever entry existed
// before, whether for the same path or a different one.
func (c *Cache) Put(ctx *loader.Context) {
	c.entry = &entry{
		id:        uuid.NewString(),
		context:   ctx,
		createdAt: c.now(),
	}
}

// Get returns the cached context for path, or nil on a miss. Expired
// entries are evicted on read and reported as misses.
func (c *Cache) Get(path string) *loader.Context {
	e := c.live()
	if e == nil || e.context.ProjectPath != path {
		return nil
	}
	return e.context
}

// Current returns the cached context regardless of path, or nil if the
// cache is empty or expired.
func (c *Cache) Current() *loader.Context {
	if e := c.live(); e != nil {
		return e.context
	}
	return nil
}

// Remember appends an analysis result to the live entry. A miss (empty or
// expired cache) drops the result; the dispatcher checks for a live
// context before calling the model, so this only happens if the entry
// expired mid-dispatch.
func (c *Cache) Remember(task, query, response string) *AnalysisResult {
	e := c.live()
	if e == nil {
		return nil
	}
	result := AnalysisResult{
		ID:        uuid.NewString(),
		Task:      task,
		Query:     query,
		Response:  response,
		Timestamp: c.now(),
	}
	e.results = append(e.results, result)
	return &result
}

// Results returns the stored analysis results for the live entry.
func (c *Cache) Results() []AnalysisResult {
	if e := c.live(); e != nil {
		return e.results
	}
	return nil
}

// Clear evicts the entry unconditionally.
func (c *Cache) Clear() {
	c.entry = nil
}

// Stats reports on the live entry; an empty or expired cache reports
// zero entries.
func (c *Cache) Stats() Stats {
	e := c.live()
	if e == nil {
		return Stats{}
	}
	return Stats{
		ProjectPath: e.context.ProjectPath,
		EntryCount:  1,
		FileCount:   e.context.FileCount(),
		TokenCount:  e.context.TotalTokens,
		ResultCount: len(e.results),
		Age:         c.now().Sub(e.createdAt).Round(time.Second).String(),
		Approximate: e.context.Approximate,
	}
}

// live returns the entry if present and unexpired, evicting it otherwise.
func (c *Cache) live() *entry {
	if c.entry == nil {
		return nil
	}
	if c.now().Sub(c.entry.createdAt) > c.ttl {
		c.entry = nil
		return nil
	}
	return c.entry
}
