package main

// Command names
const (
	CmdNameParse      = "parse"
	CmdNameCompile    = "compile"
	CmdNameTypes      = "types"
	CmdNameBlueprints = "blueprints"
	CmdNameVersion    = "version"
	CmdNameHelp       = "help"
)

// Flag names - long form
const (
	FlagTemplate    = "template"
	FlagValues      = "values"
	FlagValuesFile  = "values-file"
	FlagInteractive = "interactive"
	FlagOutput      = "output"
	FlagFormat      = "format"
	FlagFormTypes   = "form-types"
	FlagBlueprints  = "file"
	FlagVerbose     = "verbose"
)

// Flag names - short form
const (
	FlagTemplateShort    = "t"
	FlagValuesShort      = "v"
	FlagValuesFileShort  = "f"
	FlagInteractiveShort = "i"
	FlagOutputShort      = "o"
	FlagFormatShort      = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Values file extensions decoded as YAML; anything else is JSON
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgInvalidUsage      = "invalid arguments"
	ErrMsgInvalidValues     = "invalid values"
	ErrMsgConflictingValues = "use either --values or --values-file, not both"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgFormTypesFailed   = "failed to load form types"
	ErrMsgBlueprintsFailed  = "failed to load blueprints"
	ErrMsgPromptFailed      = "interactive input failed"
	ErrMsgPromptAborted     = "aborted"
	ErrMsgInteractiveStdin  = "interactive input cannot read the template from stdin"
	ErrMsgNotANumber        = "value must be a number"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
)

// Help text templates
const (
	HelpMainUsage = `go-querytmpl - Query template CLI

Usage:
    querytmpl <command> [options]

Commands:
    parse       List the placeholders and syntax errors of a template
    compile     Substitute values into a template
    types       List the registered placeholder types
    blueprints  List the built-in saved query blueprints
    version     Show version information
    help        Show help for a command

Use "querytmpl help <command>" for more information about a command.`

	HelpParseUsage = `List the placeholders and syntax errors of a template

Usage:
    querytmpl parse [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)
    --form-types <file>     YAML list of form types offered by FormTypes
    --verbose               Log engine activity to stderr

Examples:
    querytmpl parse -t query.txt
    echo "ticker = {Ticker}" | querytmpl parse -t - -F json`

	HelpCompileUsage = `Substitute values into a template

Usage:
    querytmpl compile [options]

Options:
    -t, --template <file>     Template file (use "-" for stdin)
    -v, --values <json>       JSON array of values, one per placeholder
    -f, --values-file <file>  JSON or YAML file holding the values array
    -i, --interactive         Prompt for each placeholder value (needs a template file, not stdin)
    -o, --output <file>       Output file (default: stdout)
    -F, --format <format>     Output format: text, json (default: text)
    --form-types <file>       YAML list of form types offered by FormTypes
    --verbose                 Log engine activity to stderr

Examples:
    querytmpl compile -t query.txt -v '["MSFT", 50]'
    querytmpl compile -t query.txt -f values.yaml -o compiled.sql
    querytmpl compile -t query.txt -i`

	HelpTypesUsage = `List the registered placeholder types

Usage:
    querytmpl types [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)
    --form-types <file>     YAML list of form types offered by FormTypes`

	HelpBlueprintsUsage = `List saved query blueprints

Usage:
    querytmpl blueprints [options]

Options:
    --file <file>           YAML list of blueprints (default: built-in set)
    -F, --format <format>   Output format: text, json (default: text)`

	HelpVersionUsage = `Show version information

Usage:
    querytmpl version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    querytmpl help [command]

Commands:
    parse       Show help for parse command
    compile     Show help for compile command
    types       Show help for types command
    blueprints  Show help for blueprints command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-querytmpl version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Parse output format templates
const (
	ParseTextValid         = "Template is valid"
	ParseTextPlaceholders  = "Placeholders:"
	ParseTextNone          = "No placeholders"
	ParseTextPlaceholder   = "  [%d] %s (%s) default=%q at %d-%d"
	ParseTextIssueHeader   = "Syntax errors:"
	ParseTextIssueFormat   = "  %s at %d-%d"
	ParseTextErrorSummary  = "%d error(s)"
	CompileTextErrorHeader = "Compile errors:"
	CompileTextErrorFormat = "  %s"
)

// Listing output format templates
const (
	TypesTextFormat      = "%-14s %-14s %s"
	TypesTextOptions     = "%d option(s)"
	BlueprintsTextFormat = "%-28s %s"
	BlueprintsTextQuery  = "    %s"
	PromptLabelFormat    = "%s (%s)"
	PromptTagsHelp       = "One tag per line"
	PromptNumberHelp     = "Leave empty for the default"
	PromptTagsLineSep    = "\n"
)

// CLI metadata
const (
	CLIName        = "querytmpl"
	CLIDescription = "Query template CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
	JSONIndent         = "  "
)
