// Package fallback implements the multi-level query-degradation strategy
// used when the backend rejects part of a requested field set.
//
// The strategy walks a fixed sequence of field-set levels (requested → basic
// → minimal → introspected schema), pruning fields the backend has proven
// invalid. Known-bad fields are remembered per entity type in a shared
// BadFieldCache for the lifetime of the process, so no later query attempt
// retries a field that has already been rejected.
package fallback

import (
	"sort"
	"sync"
)

//go:generate mockgen -source=cache.go -destination=../mock/bad_field_cache_mock.go -package=mock

// BadFieldCache remembers which fields the backend has rejected per entity
// type. Implementations must be safe for concurrent use: the cache is shared
// process-wide between all queries.
type BadFieldCache interface {
	// Known returns the sorted set of fields currently believed invalid for
	// entityType. Returns an empty slice when nothing is known.
	Known(entityType string) []string

	// Contains reports whether field is already marked invalid for entityType.
	Contains(entityType, field string) bool

	// Add marks fields as invalid for entityType. Adding an already-known
	// field is a no-op; the bad set only grows until an explicit clear.
	Add(entityType string, fields ...string)

	// Clear forgets all bad fields recorded for entityType.
	Clear(entityType string)

	// ClearAll forgets every bad field for every entity type.
	ClearAll()
}

type memoryBadFieldCache struct {
	mu  sync.RWMutex
	bad map[string]map[string]struct{}
}

// NewMemoryBadFieldCache returns an in-memory BadFieldCache guarded by an
// RWMutex: reads may run concurrently, mutations are exclusive.
func NewMemoryBadFieldCache() BadFieldCache {
	return &memoryBadFieldCache{bad: make(map[string]map[string]struct{})}
}

func (c *memoryBadFieldCache) Known(entityType string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set := c.bad[entityType]
	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (c *memoryBadFieldCache) Contains(entityType, field string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.bad[entityType][field]
	return ok
}

func (c *memoryBadFieldCache) Add(entityType string, fields ...string) {
	if len(fields) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.bad[entityType]
	if !ok {
		set = make(map[string]struct{}, len(fields))
		c.bad[entityType] = set
	}
	for _, f := range fields {
		set[f] = struct{}{}
	}
}

func (c *memoryBadFieldCache) Clear(entityType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.bad, entityType)
}

func (c *memoryBadFieldCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bad = make(map[string]map[string]struct{})
}
