package corpus

import (
	"context"
	"sync"
)

// MemoryStorage is a Storage that keeps rows in memory. It backs tests.
type MemoryStorage struct {
	mu      sync.Mutex
	records []Record

	// LoadErr and SaveErr, when set, are returned by the next calls.
	LoadErr error
	SaveErr error

	Saves int
}

// NewMemoryStorage returns a MemoryStorage preloaded with records.
func NewMemoryStorage(records ...Record) *MemoryStorage {
	return &MemoryStorage{records: records}
}

func (m *MemoryStorage) Load(ctx context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]Record(nil), m.records...), nil
}

func (m *MemoryStorage) Save(ctx context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = append([]Record(nil), records...)
	m.Saves++
	return nil
}

// Records returns the last saved rows.
func (m *MemoryStorage) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}
