package corpus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store is the in-memory, authoritative copy of the corpus. It is the only
// component that talks to Storage.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	log     *zap.Logger

	items []Item
	index map[string]int
	dirty bool
}

// NewStore creates an empty store backed by storage. Call Load to fill it.
func NewStore(storage Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		storage: storage,
		log:     log,
		index:   make(map[string]int),
	}
}

// Load replaces the in-memory items with the backend's rows. On failure the
// previous contents are kept and a *PersistenceError is returned.
func (s *Store) Load(ctx context.Context, today time.Time) error {
	records, err := s.storage.Load(ctx)
	if err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}
	items := FromRecords(records, today, s.log)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.index = make(map[string]int, len(items))
	for i, it := range items {
		s.index[it.ID()] = i
	}
	s.dirty = false
	s.log.Info("corpus loaded", zap.Int("rows", len(records)), zap.Int("items", len(items)))
	return nil
}

// Replace swaps in a new item set without touching storage. Items must
// already be normalized; callers usually build them with FromRecords.
func (s *Store) Replace(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Item(nil), items...)
	s.index = make(map[string]int, len(items))
	for i, it := range s.items {
		s.index[it.ID()] = i
	}
	s.dirty = true
}

// Items returns a snapshot of all items in load order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item with the given identity.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Update applies fn to the item with the given identity. Changes to the
// identity or category are rejected and leave the item untouched.
func (s *Store) Update(id string, fn func(*Item)) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return Item{}, ErrUnknownItem
	}
	updated := s.items[i]
	fn(&updated)
	if updated.TargetText != s.items[i].TargetText || updated.Category != s.items[i].Category {
		return s.items[i], ErrImmutableField
	}
	s.items[i] = updated
	s.dirty = true
	return updated, nil
}

// Dirty reports whether there are in-memory changes not yet saved.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Flush saves the whole in-memory corpus. Failures are returned as a
// *PersistenceError and leave the store dirty so a later flush retries.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	records := make([]Record, len(s.items))
	for i, it := range s.items {
		records[i] = ToRecord(it)
	}
	s.mu.RUnlock()

	if err := s.storage.Save(ctx, records); err != nil {
		s.log.Error("corpus flush failed", zap.Error(err), zap.Int("items", len(records)))
		return &PersistenceError{Op: "save", Err: err}
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return nil
}
