package history

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// Backend persists one serialized value per key
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Close() error
}

// Recorder is the capability controllers depend on
type Recorder interface {
	Record(cat Category, value string) error
	List(cat Category) []string
	Filter(cat Category, needle string) []string
}

// Store manages capped, de-duplicated, most-recent-first value lists
type Store struct {
	mu      sync.Mutex
	backend Backend
	limit   int
}

// NewStore wraps a backend. A limit below 1 means DefaultLimit.
func NewStore(backend Backend, limit int) *Store {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Store{backend: backend, limit: limit}
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

// Record moves value to the front of cat, dropping duplicates and the oldest overflow
func (s *Store) Record(cat Category, value string) error {
	if value == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(cat)
	next := make([]string, 0, len(items)+1)
	next = append(next, value)
	for _, item := range items {
		if item != value {
			next = append(next, item)
		}
	}
	if len(next) > s.limit {
		next = next[:s.limit]
	}

	b, err := json.Marshal(next)
	if err != nil {
		return err
	}
	return s.backend.Put(context.Background(), string(cat), string(b))
}

// List returns the stored sequence for cat, or an empty slice
func (s *Store) List(cat Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(cat)
}

// Filter returns entries containing needle, ignoring case, in stored order
func (s *Store) Filter(cat Category, needle string) []string {
	items := s.List(cat)
	if needle == "" {
		return items
	}

	lower := strings.ToLower(needle)
	matched := make([]string, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), lower) {
			matched = append(matched, item)
		}
	}
	return matched
}

// load reads and decodes cat. Unavailable or corrupt data reads as empty.
func (s *Store) load(cat Category) []string {
	raw, ok, err := s.backend.Get(context.Background(), string(cat))
	if err != nil || !ok || raw == "" {
		return []string{}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}

	// Drop anything that would break the list invariants
	seen := make(map[string]bool, len(items))
	clean := items[:0]
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		clean = append(clean, item)
	}
	if len(clean) > s.limit {
		clean = clean[:s.limit]
	}
	return clean
}
