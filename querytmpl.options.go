package querytmpl

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	registry  *Registry
	types     []TypeDescriptor
	formTypes []FormType
	logger    *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		registry: nil,
		logger:   nil,
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithRegistry makes the engine share an existing type registry.
// Default: a fresh registry holding the built-in types
func WithRegistry(registry *Registry) Option {
	return func(c *engineConfig) {
		c.registry = registry
	}
}

// WithTypes registers additional type descriptors at construction.
// Later descriptors overwrite earlier ones and built-ins of the same name.
func WithTypes(types ...TypeDescriptor) Option {
	return func(c *engineConfig) {
		c.types = append(c.types, types...)
	}
}

// WithFormTypes replaces the form types offered by the FormTypes input.
// Default: FallbackFormTypes()
func WithFormTypes(formTypes []FormType) Option {
	return func(c *engineConfig) {
		c.formTypes = formTypes
	}
}
