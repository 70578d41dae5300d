package querytmpl

import "time"

// Placeholder syntax constants
const (
	PlaceholderOpen      = "{"
	PlaceholderClose     = "}"
	PlaceholderSeparator = ":"
	EscapedOpen          = `\{`
	EscapedClose         = `\}`
)

// Built-in type names
const (
	TypeStringInput = "StringInput"
	TypeNumberInput = "NumberInput"
	TypeFormTypes   = "FormTypes"
	TypeTags        = "Tags"

	// DefaultTypeName is used when a placeholder omits its type segment
	DefaultTypeName = TypeStringInput
)

// Built-in type display names
const (
	DisplayNameStringInput = "Text Input"
	DisplayNameNumberInput = "Number Input"
	DisplayNameFormTypes   = "Form Type"
	DisplayNameTags        = "Tags"
)

// Serialization constants
const (
	QuoteChar       = "'"
	QuoteEscaped    = "''"
	EmptyQuoted     = "''"
	NumberZero      = "0"
	ListSeparator   = ","
	TypeNameJoinSep = ", "
	TypeNameSegment = 1
	DefaultSegment  = 2
)

// Parse error messages (user facing, part of the result contract)
const (
	ErrMsgEmptyDefinition   = "Empty parameter definition"
	ErrMsgMissingLabel      = "Parameter must have a label"
	ErrMsgUnmatchedOpening  = "Unmatched opening brace"
	ErrMsgUnmatchedClosing  = "Unmatched closing brace"
	ErrFmtInvalidType       = "Invalid component type: %s. Valid types are: %s"
	ErrFmtParameterExpects  = "Parameter %q expects %s, got: %s"
	ErrFmtFallbackConstrain = "a valid %s"
)

// Validation messages for built-in types
const (
	ErrMsgValueNotNumber = "Value must be a number"
	ErrMsgValueNotTags   = "Value must be a list of tags"

	ConstraintNumber = "a number"
	ConstraintTags   = "a list of tags or a comma-separated string"
)

// Registry error messages
const (
	ErrMsgNilDescriptor    = "type descriptor cannot be nil"
	ErrMsgEmptyTypeName    = "type descriptor name cannot be empty"
	ErrMsgValueConversion  = "unsupported value type"
	ErrMsgValueListElement = "list values may only contain strings"
)

// Error code constants for categorization
const (
	ErrCodeRegistry   = "QUERYTMPL_REGISTRY"
	ErrCodeValidation = "QUERYTMPL_VALIDATION"
	ErrCodeValue      = "QUERYTMPL_VALUE"
	ErrCodeBlueprint  = "QUERYTMPL_BLUEPRINT"
	ErrCodeCatalog    = "QUERYTMPL_CATALOG"
)

// Metadata keys used on errors
const (
	MetaKeyTypeName    = "type_name"
	MetaKeyValueType   = "value_type"
	MetaKeyIndex       = "index"
	MetaKeyBlueprintID = "blueprint_id"
)

// Value kind names
const (
	ValueKindNameText   = "text"
	ValueKindNameNumber = "number"
	ValueKindNameList   = "list"
)

// Log message constants
const (
	LogMsgRegistryCreated     = "type registry created"
	LogMsgTypeRegistered      = "type registered"
	LogMsgTypeOverwritten     = "type registration overwrote existing descriptor"
	LogMsgRegistryReset       = "type registry reset to built-ins"
	LogMsgUnknownTypeFallback = "unknown type at compile time, using free-text serializer"
	LogMsgParseStart          = "parsing template"
	LogMsgParseEnd            = "parse complete"
	LogMsgCompileStart        = "compiling template"
	LogMsgCompileEnd          = "compile complete"
	LogMsgCompileSyntax       = "compile aborted on syntax errors"
	LogMsgValidationFailed    = "placeholder value failed validation"
	LogMsgEngineCreated       = "engine created"
	LogMsgBlueprintSkipped    = "blueprint skipped: invalid template"
	LogMsgBlueprintCreated    = "blueprint provisioned"
	LogMsgBlueprintRestored   = "blueprint restored"
)

// Log field names
const (
	LogFieldTypeName     = "type_name"
	LogFieldTypeCount    = "type_count"
	LogFieldSource       = "source_length"
	LogFieldPlaceholders = "placeholder_count"
	LogFieldErrors       = "error_count"
	LogFieldMessages     = "errors"
	LogFieldLabel        = "label"
	LogFieldOrdinal      = "ordinal"
	LogFieldBlueprintID  = "blueprint_id"
	LogFieldQueryID      = "query_id"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Saved query ID constants
const (
	QueryIDPrefix = "q_"
)

// Filesystem storage constants
const (
	FilesystemDirPermissions  = 0755
	FilesystemFilePermissions = 0644
	FilesystemFileSuffix      = ".json"
	FilesystemJSONIndent      = "  "
)

// PostgreSQL storage constants
const (
	PostgresTablePrefix            = "querytmpl_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Storage error messages
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgQueryNotFound           = "saved query not found"
	ErrMsgNilSavedQuery           = "saved query cannot be nil"
	ErrMsgInvalidQueryID          = "invalid saved query ID"
	ErrMsgInvalidStorageRoot      = "storage root directory cannot be empty"
	ErrMsgCreateStorageDir        = "failed to create storage directory"
	ErrMsgReadStorageDir          = "failed to read storage directory"
	ErrMsgReadQueryFile           = "failed to read saved query file"
	ErrMsgWriteQueryFile          = "failed to write saved query file"
	ErrMsgDeleteQueryFile         = "failed to delete saved query file"
	ErrMsgMarshalQuery            = "failed to marshal saved query"
	ErrMsgUnmarshalQuery          = "failed to unmarshal saved query"
)

// PostgreSQL error messages
const (
	ErrMsgPostgresConnectionFailed = "failed to connect to PostgreSQL"
	ErrMsgPostgresQueryFailed      = "PostgreSQL query failed"
	ErrMsgPostgresScanFailed       = "failed to scan PostgreSQL row"
	ErrMsgPostgresMarshalFailed    = "failed to marshal data for PostgreSQL"
	ErrMsgPostgresUnmarshalFailed  = "failed to unmarshal PostgreSQL data"
	ErrMsgPostgresMigrationFailed  = "PostgreSQL migration failed"
	ErrMsgPostgresEmptyConnString  = "PostgreSQL connection string is empty"
	ErrMsgPostgresAlreadyClosed    = "PostgreSQL storage is already closed"
)

// Blueprint error messages
const (
	ErrMsgBlueprintParse    = "failed to parse blueprints"
	ErrMsgBlueprintEmptyID  = "blueprint ID cannot be empty"
	ErrMsgBlueprintDupID    = "duplicate blueprint ID"
	ErrMsgNilStorage        = "storage cannot be nil"
	ErrMsgFormTypesParse    = "failed to parse form types"
	ErrMsgFormTypeEmptyCode = "form type code cannot be empty"
)
