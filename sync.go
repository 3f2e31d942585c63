package fulltext

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultResultCacheSize is the number of distinct queries a SyncIndex
// remembers when caching is enabled.
const DefaultResultCacheSize = 1024

// SyncIndex guards an Index for use by several goroutines. Mutations take
// the lock exclusively, searches share it. An optional LRU cache keeps the
// slot ids of recent queries; any mutation purges it.
type SyncIndex struct {
	mu    sync.RWMutex
	idx   *Index
	cache *lru.Cache[string, []int]
}

// NewSyncIndex wraps idx. A cacheSize of zero disables result caching,
// a negative one selects DefaultResultCacheSize.
func NewSyncIndex(idx *Index, cacheSize int) (*SyncIndex, error) {
	s := &SyncIndex{idx: idx}
	if cacheSize < 0 {
		cacheSize = DefaultResultCacheSize
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, []int](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Add indexes doc. See Index.Add.
func (s *SyncIndex) Add(doc Value, filter Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.idx.Add(doc, filter)
	if err == nil {
		s.purge()
	}
	return id, err
}

// Remove deletes the document in slot id. See Index.Remove.
func (s *SyncIndex) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.idx.Remove(id)
	if err == nil {
		s.purge()
	}
	return err
}

// Drop clears the index.
func (s *SyncIndex) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idx.Drop()
	s.purge()
}

// Configure merges opts into the configuration. See Index.Configure.
func (s *SyncIndex) Configure(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.idx.Configure(opts)
	if err == nil {
		s.purge()
	}
	return err
}

// Search returns the documents containing query.
func (s *SyncIndex) Search(query Value) []Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.searchIDs(query)
	if len(ids) == 0 {
		return nil
	}
	docs := make([]Value, 0, len(ids))
	for _, id := range ids {
		if doc, ok := s.idx.Get(id); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// SearchText searches for a plain string.
func (s *SyncIndex) SearchText(query string) []Value {
	return s.Search(String(query))
}

// SearchIDs returns the slot ids of the documents containing query.
func (s *SyncIndex) SearchIDs(query Value) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]int(nil), s.searchIDs(query)...)
}

// Get returns the document stored in slot id.
func (s *SyncIndex) Get(id int) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.idx.Get(id)
}

// Len returns the number of stored documents.
func (s *SyncIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.idx.Len()
}

// Stats returns counters describing the index.
func (s *SyncIndex) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.idx.Stats()
}

// searchIDs must be called with at least the read lock held.
func (s *SyncIndex) searchIDs(query Value) []int {
	if s.cache == nil || !query.IsPrimitive() {
		return s.idx.SearchIDs(query)
	}

	key := s.idx.norm.Normalize(query)
	if ids, ok := s.cache.Get(key); ok {
		return ids
	}
	ids := s.idx.SearchIDs(query)
	s.cache.Add(key, ids)
	return ids
}

func (s *SyncIndex) purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}
