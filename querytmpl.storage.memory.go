package querytmpl

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of QueryStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu      sync.RWMutex
	queries map[QueryID]*SavedQuery
	closed  bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (QueryStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory saved-query storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		queries: make(map[QueryID]*SavedQuery),
	}
}

// Get retrieves a saved query by ID.
func (s *MemoryStorage) Get(ctx context.Context, id QueryID) (*SavedQuery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	q, ok := s.queries[id]
	if !ok {
		return nil, NewQueryNotFoundError(id)
	}
	return copySavedQuery(q), nil
}

// Save inserts or replaces a saved query.
func (s *MemoryStorage) Save(ctx context.Context, q *SavedQuery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if q == nil {
		return &StorageError{Message: ErrMsgNilSavedQuery}
	}
	if q.ID != "" && !validQueryID(q.ID) {
		return &StorageError{Message: ErrMsgInvalidQueryID, ID: string(q.ID)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	var created time.Time
	if existing, ok := s.queries[q.ID]; ok {
		created = existing.CreatedAt
	}
	prepareSave(q, created)
	s.queries[q.ID] = copySavedQuery(q)
	return nil
}

// Delete removes a saved query by ID.
func (s *MemoryStorage) Delete(ctx context.Context, id QueryID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.queries[id]; !ok {
		return NewQueryNotFoundError(id)
	}
	delete(s.queries, id)
	return nil
}

// List returns saved queries matching the filter.
func (s *MemoryStorage) List(ctx context.Context, filter *QueryFilter) ([]*SavedQuery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	if filter == nil {
		filter = &QueryFilter{}
	}

	results := make([]*SavedQuery, 0, len(s.queries))
	for _, q := range s.queries {
		if matchesFilter(q, filter) {
			results = append(results, copySavedQuery(q))
		}
	}
	return sortAndPage(results, filter), nil
}

// Exists checks if a saved query with the given ID exists.
func (s *MemoryStorage) Exists(ctx context.Context, id QueryID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, ok := s.queries[id]
	return ok, nil
}

// Close marks the storage as closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.queries = nil
	return nil
}
