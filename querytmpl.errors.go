package querytmpl

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// NewNilDescriptorError creates an error for registering a nil type descriptor
func NewNilDescriptorError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilDescriptor)
}

// NewEmptyTypeNameError creates an error for registering a descriptor without a name
func NewEmptyTypeNameError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgEmptyTypeName)
}

// NewValueValidationError creates the error a built-in validator returns for a
// value that does not satisfy its type.
func NewValueValidationError(typeName, msg string) error {
	return cuserr.NewValidationError(ErrCodeValidation, msg).
		WithMetadata(MetaKeyTypeName, typeName)
}

// NewValueConversionError creates an error for a Go value that has no Value equivalent
func NewValueConversionError(v any) error {
	return cuserr.NewValidationError(ErrCodeValue, ErrMsgValueConversion).
		WithMetadata(MetaKeyValueType, fmt.Sprintf("%T", v))
}

// NewValueListElementError creates an error for a non-string list element
func NewValueListElementError(index int, v any) error {
	return cuserr.NewValidationError(ErrCodeValue, ErrMsgValueListElement).
		WithMetadata(MetaKeyIndex, strconv.Itoa(index)).
		WithMetadata(MetaKeyValueType, fmt.Sprintf("%T", v))
}

// NewBlueprintError creates a blueprint validation error
func NewBlueprintError(msg, blueprintID string) error {
	return cuserr.NewValidationError(ErrCodeBlueprint, msg).
		WithMetadata(MetaKeyBlueprintID, blueprintID)
}

// NewBlueprintParseError wraps a YAML decoding failure
func NewBlueprintParseError(msg string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeBlueprint, msg)
}

// NewCatalogError creates a form type catalog error, wrapping cause when present
func NewCatalogError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeCatalog, msg)
	}
	return cuserr.NewValidationError(ErrCodeCatalog, msg)
}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	ID      string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := e.Message
	if e.ID != "" {
		msg += ": " + e.ID
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageDriverNotFoundError creates an error for a missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{Message: ErrMsgStorageDriverNotFound, ID: name}
}

// NewQueryNotFoundError creates an error for a saved query that does not exist.
func NewQueryNotFoundError(id QueryID) error {
	return &StorageError{Message: ErrMsgQueryNotFound, ID: string(id)}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// IsNotFound reports whether err is a saved-query-not-found storage error.
func IsNotFound(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Message == ErrMsgQueryNotFound
}

// IsStorageClosed reports whether err was returned by a closed storage.
func IsStorageClosed(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Message == ErrMsgStorageClosed
}
