package querytmpl

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FilesystemStorage stores each saved query as a JSON file.
//
// Directory structure:
//
//	<root>/
//	  q_<uuid>.json
//	  ...
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (QueryStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a new filesystem-based saved-query storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{Message: ErrMsgCreateStorageDir, ID: root, Cause: err}
	}

	return &FilesystemStorage{root: root}, nil
}

// Get retrieves a saved query by ID.
func (s *FilesystemStorage) Get(ctx context.Context, id QueryID) (*SavedQuery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validQueryID(id) {
		return nil, NewQueryNotFoundError(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	return s.load(id)
}

// Save writes a saved query to <root>/<id>.json, replacing any previous file.
func (s *FilesystemStorage) Save(ctx context.Context, q *SavedQuery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if q == nil {
		return &StorageError{Message: ErrMsgNilSavedQuery}
	}
	// Only generated IDs reach the filesystem, so no ID can escape root.
	if q.ID != "" && !validQueryID(q.ID) {
		return &StorageError{Message: ErrMsgInvalidQueryID, ID: string(q.ID)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	var created time.Time
	if q.ID != "" {
		existing, err := s.load(q.ID)
		switch {
		case err == nil:
			created = existing.CreatedAt
		case !IsNotFound(err):
			return err
		}
	}

	stored := copySavedQuery(q)
	prepareSave(stored, created)

	data, err := json.MarshalIndent(stored, "", FilesystemJSONIndent)
	if err != nil {
		return &StorageError{Message: ErrMsgMarshalQuery, ID: string(stored.ID), Cause: err}
	}

	filename := s.path(stored.ID)
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWriteQueryFile, ID: filename, Cause: err}
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Message: ErrMsgWriteQueryFile, ID: filename, Cause: err}
	}

	q.ID = stored.ID
	q.Values = stored.Values.Clone()
	q.CreatedAt = stored.CreatedAt
	q.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a saved query file.
func (s *FilesystemStorage) Delete(ctx context.Context, id QueryID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validQueryID(id) {
		return NewQueryNotFoundError(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewQueryNotFoundError(id)
		}
		return &StorageError{Message: ErrMsgDeleteQueryFile, ID: string(id), Cause: err}
	}
	return nil
}

// List reads every saved query in root and returns those matching the filter.
// Files that are not saved queries are ignored.
func (s *FilesystemStorage) List(ctx context.Context, filter *QueryFilter) ([]*SavedQuery, error) {
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

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadStorageDir, ID: s.root, Cause: err}
	}

	results := make([]*SavedQuery, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FilesystemFileSuffix) {
			continue
		}
		id := QueryID(strings.TrimSuffix(entry.Name(), FilesystemFileSuffix))
		if !validQueryID(id) {
			continue
		}
		q, err := s.load(id)
		if err != nil {
			return nil, err
		}
		if matchesFilter(q, filter) {
			results = append(results, q)
		}
	}
	return sortAndPage(results, filter), nil
}

// Exists checks if a saved query file exists.
func (s *FilesystemStorage) Exists(ctx context.Context, id QueryID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !validQueryID(id) {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, err := os.Stat(s.path(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &StorageError{Message: ErrMsgReadQueryFile, ID: string(id), Cause: err}
}

// Close marks the storage as closed.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Root returns the storage root directory.
func (s *FilesystemStorage) Root() string {
	return s.root
}

func (s *FilesystemStorage) path(id QueryID) string {
	return filepath.Join(s.root, string(id)+FilesystemFileSuffix)
}

// load reads one saved query. Callers hold the lock.
func (s *FilesystemStorage) load(id QueryID) (*SavedQuery, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewQueryNotFoundError(id)
		}
		return nil, &StorageError{Message: ErrMsgReadQueryFile, ID: string(id), Cause: err}
	}

	var q SavedQuery
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, &StorageError{Message: ErrMsgUnmarshalQuery, ID: string(id), Cause: err}
	}
	if q.Values == nil {
		q.Values = Values{}
	}
	return &q, nil
}
