package storage

import (
	"context"
	"sort"
	"sync"

	"verity-hq/scrivener/pkg/audit"
)

// MemoryStorage implements the Storage interface with an in-memory map.
// Intended for tests; bundles do not survive the process.
type MemoryStorage struct {
	bundles map[string]*audit.Bundle
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		bundles: make(map[string]*audit.Bundle),
	}
}

// Store persists a bundle in memory.
func (s *MemoryStorage) Store(ctx context.Context, bundle *audit.Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *bundle
	s.bundles[bundle.ID] = &clone
	return nil
}

// Query retrieves bundles matching the filters, newest first.
func (s *MemoryStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*audit.Bundle{}
	for _, b := range s.bundles {
		if matchesQuery(b, query) {
			clone := *b
			results = append(results, &clone)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].GeneratedAt.After(results[j].GeneratedAt)
	})

	return paginate(results, query), nil
}

// Count returns the number of bundles matching the filters.
func (s *MemoryStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, b := range s.bundles {
		if matchesQuery(b, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes bundles matching the filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *audit.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, b := range s.bundles {
		if matchesQuery(b, query) {
			delete(s.bundles, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close releases nothing for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}

// matchesQuery checks a bundle against query filters. A nil query matches
// everything.
func matchesQuery(b *audit.Bundle, query *audit.Query) bool {
	if query == nil {
		return true
	}
	if query.Start != nil && b.GeneratedAt.Before(*query.Start) {
		return false
	}
	if query.End != nil && b.GeneratedAt.After(*query.End) {
		return false
	}
	if query.ID != "" && b.ID != query.ID {
		return false
	}
	if query.RunID != "" && b.RunID != query.RunID {
		return false
	}
	if query.PolicyID != "" && b.PolicyID != query.PolicyID {
		return false
	}
	if query.FirmName != "" && b.FirmName != query.FirmName {
		return false
	}
	return true
}

// paginate applies offset/limit to a result slice.
func paginate(results []*audit.Bundle, query *audit.Query) []*audit.Bundle {
	if query == nil {
		return results
	}
	start := query.Offset
	if start > len(results) {
		return []*audit.Bundle{}
	}
	results = results[start:]
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results
}
