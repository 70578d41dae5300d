package querytmpl

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry maps type names to descriptors. Registration overwrites by name
// (last writer wins) so callers can both bootstrap and customize types.
// It is safe for concurrent use.
type Registry struct {
	types     map[string]TypeDescriptor
	formTypes *FormTypeCatalog
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewRegistry creates a registry populated with the built-in types
// (StringInput, NumberInput, FormTypes, Tags).
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		types:     make(map[string]TypeDescriptor),
		formTypes: NewFormTypeCatalog(FallbackFormTypes()),
		logger:    logger,
	}
	for _, d := range builtinTypes(r.formTypes) {
		r.types[d.TypeName()] = d
	}
	logger.Debug(LogMsgRegistryCreated, zap.Int(LogFieldTypeCount, len(r.types)))
	return r
}

// Register inserts or overwrites a descriptor by its type name.
// Returns an error for a nil descriptor or an empty type name.
func (r *Registry) Register(d TypeDescriptor) error {
	if d == nil {
		return NewNilDescriptorError()
	}
	name := d.TypeName()
	if name == "" {
		return NewEmptyTypeNameError()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		r.logger.Warn(LogMsgTypeOverwritten, zap.String(LogFieldTypeName, name))
	}
	r.types[name] = d
	r.logger.Debug(LogMsgTypeRegistered, zap.String(LogFieldTypeName, name))
	return nil
}

// MustRegister registers a descriptor and panics if registration fails.
func (r *Registry) MustRegister(d TypeDescriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Get retrieves a descriptor by type name.
func (r *Registry) Get(typeName string) (TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.types[typeName]
	return d, ok
}

// IsRegistered checks if a descriptor exists for the type name.
func (r *Registry) IsRegistered(typeName string) bool {
	_, ok := r.Get(typeName)
	return ok
}

// TypeNames returns all registered type names in sorted order.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.types)
}

// FallbackType returns the type used when a placeholder declares none.
func (r *Registry) FallbackType() string {
	return DefaultTypeName
}

// Serialize renders v with the named type's serializer. Unregistered types
// fall back to free-text quoting so compilation never fails on a descriptor
// removed between parse and compile.
func (r *Registry) Serialize(typeName string, v Value) string {
	d, ok := r.Get(typeName)
	if !ok {
		r.logger.Debug(LogMsgUnknownTypeFallback, zap.String(LogFieldTypeName, typeName))
		return SerializeText(v)
	}
	return d.Serialize(v)
}

// DefaultValue returns the named type's default, or empty text when unregistered.
func (r *Registry) DefaultValue(typeName string) Value {
	d, ok := r.Get(typeName)
	if !ok {
		return Text("")
	}
	return d.DefaultValue()
}

// Validate checks v against the named type. Types without a validator, and
// unregistered types, accept every value.
func (r *Registry) Validate(typeName string, v Value) error {
	d, ok := r.Get(typeName)
	if !ok {
		return nil
	}
	validator, ok := d.(Validator)
	if !ok {
		return nil
	}
	return validator.Validate(v)
}

// Constraint describes the values the named type accepts, or "" when the type
// has no validator.
func (r *Registry) Constraint(typeName string) string {
	d, ok := r.Get(typeName)
	if !ok {
		return ""
	}
	if validator, ok := d.(Validator); ok {
		return validator.Constraint()
	}
	return ""
}

// Options returns the choices of an enumerated type, or nil.
func (r *Registry) Options(typeName string) []string {
	d, ok := r.Get(typeName)
	if !ok {
		return nil
	}
	if enum, ok := d.(Enumerated); ok {
		return enum.Options()
	}
	return nil
}

// FormTypes returns the catalog backing the built-in FormTypes type.
func (r *Registry) FormTypes() *FormTypeCatalog {
	return r.formTypes
}

// Reset drops every custom registration and restores the built-in types.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types = make(map[string]TypeDescriptor)
	for _, d := range builtinTypes(r.formTypes) {
		r.types[d.TypeName()] = d
	}
	r.logger.Debug(LogMsgRegistryReset, zap.Int(LogFieldTypeCount, len(r.types)))
}
