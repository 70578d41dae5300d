package querytmpl

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// QueryID is a unique identifier for a saved query ("q_<uuid>").
type QueryID string

// SavedQuery is a named template together with its positional values.
type SavedQuery struct {
	// ID is the unique identifier, assigned on first save.
	ID QueryID `json:"id" yaml:"id"`

	// Name is an optional display name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Query is the template text with placeholder syntax.
	Query string `json:"query" yaml:"query"`

	// Values holds one value per placeholder, by ordinal.
	Values Values `json:"values" yaml:"values"`

	// BlueprintID is the stable ID of the blueprint this query was created from.
	BlueprintID string `json:"blueprint_id,omitempty" yaml:"blueprint_id,omitempty"`

	// CreatedAt is when the query was first saved.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the query was last saved.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// QueryFilter defines filters for listing saved queries.
type QueryFilter struct {
	// NameContains filters to names containing this substring (case-insensitive).
	NameContains string

	// BlueprintID filters to queries created from this blueprint.
	BlueprintID string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip (for pagination).
	Offset int
}

// QueryStorage is the interface for pluggable saved-query backends.
// Implementations must be safe for concurrent use.
type QueryStorage interface {
	// Get retrieves a saved query by ID.
	// Returns a not-found StorageError if the ID doesn't exist.
	Get(ctx context.Context, id QueryID) (*SavedQuery, error)

	// Save inserts or replaces a saved query. An empty ID is assigned a new
	// one. CreatedAt is kept across saves; UpdatedAt is always refreshed. The
	// generated fields are written back to q.
	Save(ctx context.Context, q *SavedQuery) error

	// Delete removes a saved query by ID.
	// Returns a not-found StorageError if the ID doesn't exist.
	Delete(ctx context.Context, id QueryID) error

	// List returns saved queries matching the filter, ordered by name then ID.
	List(ctx context.Context, filter *QueryFilter) ([]*SavedQuery, error)

	// Exists checks if a saved query with the given ID exists.
	Exists(ctx context.Context, id QueryID) (bool, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance with the given connection string.
	// The format of the connection string is driver-specific.
	Open(connectionString string) (QueryStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if the driver is nil or the name is already registered.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
//
// Example:
//
//	storage, err := querytmpl.OpenStorage("memory", "")
//	storage, err := querytmpl.OpenStorage("filesystem", "/var/lib/queries")
//	storage, err := querytmpl.OpenStorage("postgres", "postgres://localhost/queries")
func OpenStorage(driverName, connectionString string) (QueryStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers, sorted.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ImportLegacyQueries saves plain query strings keyed by old identifiers as
// saved queries with no values. Returns the number of queries saved.
func ImportLegacyQueries(ctx context.Context, storage QueryStorage, legacy map[string]string) (int, error) {
	if storage == nil {
		return 0, &StorageError{Message: ErrMsgNilStorage}
	}
	keys := make([]string, 0, len(legacy))
	for k := range legacy {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if err := storage.Save(ctx, &SavedQuery{Query: legacy[k], Values: Values{}}); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}

// generateQueryID generates a unique saved query ID.
func generateQueryID() QueryID {
	return QueryID(QueryIDPrefix + uuid.NewString())
}

// validQueryID reports whether id is a generated ID: the prefix followed by a UUID.
func validQueryID(id QueryID) bool {
	s := string(id)
	if !strings.HasPrefix(s, QueryIDPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(s, QueryIDPrefix))
	return err == nil
}

// prepareSave assigns generated fields to q before it is stored. created is the
// creation time of an existing record, zero for a new one.
func prepareSave(q *SavedQuery, created time.Time) {
	now := time.Now().UTC()
	if q.ID == "" {
		q.ID = generateQueryID()
	}
	if created.IsZero() {
		created = now
	}
	q.CreatedAt = created
	q.UpdatedAt = now
	if q.Values == nil {
		q.Values = Values{}
	}
}

// matchesFilter checks if a saved query matches the filter.
func matchesFilter(q *SavedQuery, filter *QueryFilter) bool {
	if filter.NameContains != "" &&
		!strings.Contains(strings.ToLower(q.Name), strings.ToLower(filter.NameContains)) {
		return false
	}
	if filter.BlueprintID != "" && q.BlueprintID != filter.BlueprintID {
		return false
	}
	return true
}

// sortAndPage orders results by name then ID and applies offset and limit.
func sortAndPage(results []*SavedQuery, filter *QueryFilter) []*SavedQuery {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].ID < results[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return []*SavedQuery{}
		}
		results = results[filter.Offset:]
	}
	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results
}

// copySavedQuery creates a deep copy of a SavedQuery.
func copySavedQuery(q *SavedQuery) *SavedQuery {
	if q == nil {
		return nil
	}
	return &SavedQuery{
		ID:          q.ID,
		Name:        q.Name,
		Query:       q.Query,
		Values:      q.Values.Clone(),
		BlueprintID: q.BlueprintID,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}
