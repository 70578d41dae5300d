package querytmpl

import (
	"go.uber.org/zap"
)

// Engine is the main entry point for query templating.
// It owns one type registry and the parser and compiler bound to it.
type Engine struct {
	registry *Registry
	parser   *Parser
	compiler *Compiler
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := config.registry
	if registry == nil {
		registry = NewRegistry(logger)
	}
	for _, d := range config.types {
		if err := registry.Register(d); err != nil {
			return nil, err
		}
	}
	if config.formTypes != nil {
		registry.FormTypes().Replace(config.formTypes)
	}

	parser := NewParser(registry, logger)
	engine := &Engine{
		registry: registry,
		parser:   parser,
		compiler: NewCompiler(parser, registry, logger),
		logger:   logger,
	}

	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldTypeCount, registry.Count()))
	return engine, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse extracts the placeholders of template and reports its syntax errors.
func (e *Engine) Parse(template string) *ParseResult {
	return e.parser.Parse(template)
}

// Compile substitutes values into template by placeholder ordinal.
func (e *Engine) Compile(template string, values []Value) *CompileResult {
	return e.compiler.Compile(template, values)
}

// HasPlaceholders reports whether template holds a well-formed placeholder.
func (e *Engine) HasPlaceholders(template string) bool {
	return e.parser.HasPlaceholders(template)
}

// DefaultValues returns the initial value for each placeholder of result.
func (e *Engine) DefaultValues(result *ParseResult) []Value {
	return e.compiler.DefaultValues(result)
}

// Register adds or overwrites a type descriptor.
func (e *Engine) Register(d TypeDescriptor) error {
	return e.registry.Register(d)
}

// MustRegister adds a type descriptor and panics if registration fails.
func (e *Engine) MustRegister(d TypeDescriptor) {
	e.registry.MustRegister(d)
}

// Registry returns the engine's type registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}
