package retained

import "sync"

// Store is a process-scope key-value store for retained controllers.
// It lives outside the screen graph, which is the whole point: entries
// survive destruction and recreation of the screens that use them.
//
// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]any)}
}

// FindOrCreate returns the value stored under tag, creating it with factory
// on first use. The second return value reports whether the factory ran.
// The factory is called with the lock held, so it must not call back into
// the store.
func (s *Store) FindOrCreate(tag string, factory func() any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.entries[tag]; ok {
		return v, false
	}
	v := factory()
	s.entries[tag] = v
	return v, true
}

// Find returns the value stored under tag, if any.
func (s *Store) Find(tag string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[tag]
	return v, ok
}

// Remove deletes the value stored under tag. Hosts call this when their
// stack entry is finishing for good, as opposed to being recreated.
func (s *Store) Remove(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tag)
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
