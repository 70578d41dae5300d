package querytmpl

import (
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FormType is an SEC filing form type offered by the FormTypes input.
type FormType struct {
	Code        string `yaml:"code" json:"code"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// FallbackFormTypes returns the built-in list of common SEC form types.
func FallbackFormTypes() []FormType {
	return []FormType{
		{Code: "10-K", Description: "Annual Report"},
		{Code: "10-Q", Description: "Quarterly Report"},
		{Code: "8-K", Description: "Current Report"},
		{Code: "4", Description: "Statement of Changes in Beneficial Ownership"},
		{Code: "13F-HR", Description: "13F Holdings Report"},
		{Code: "S-1", Description: "Registration Statement"},
		{Code: "DEF 14A", Description: "Proxy Statement"},
		{Code: "10-K/A", Description: "Amended Annual Report"},
		{Code: "10-Q/A", Description: "Amended Quarterly Report"},
		{Code: "8-K/A", Description: "Amended Current Report"},
		{Code: "13D", Description: "Beneficial Ownership Report"},
		{Code: "13G", Description: "Beneficial Ownership Statement"},
		{Code: "SC 13G", Description: "Schedule 13G"},
		{Code: "SC 13D", Description: "Schedule 13D"},
		{Code: "3", Description: "Initial Statement of Beneficial Ownership"},
		{Code: "5", Description: "Annual Statement of Beneficial Ownership"},
		{Code: "6-K", Description: "Foreign Private Issuer Report"},
		{Code: "20-F", Description: "Foreign Private Issuer Annual Report"},
		{Code: "EFFECT", Description: "Notice of Effectiveness"},
		{Code: "NT 10-K", Description: "Notification of Late Filing (10-K)"},
		{Code: "NT 10-Q", Description: "Notification of Late Filing (10-Q)"},
	}
}

// FormTypeCatalog holds the form types offered as choices. Safe for concurrent use.
type FormTypeCatalog struct {
	mu    sync.RWMutex
	types []FormType
}

// NewFormTypeCatalog creates a catalog holding a copy of types.
func NewFormTypeCatalog(types []FormType) *FormTypeCatalog {
	return &FormTypeCatalog{types: append([]FormType(nil), types...)}
}

// All returns a copy of every form type in catalog order.
func (c *FormTypeCatalog) All() []FormType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]FormType(nil), c.types...)
}

// Codes returns the form type codes in catalog order.
func (c *FormTypeCatalog) Codes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	codes := make([]string, len(c.types))
	for i, ft := range c.types {
		codes[i] = ft.Code
	}
	return codes
}

// Search returns the form types whose code, name or description contains
// query, case-insensitively. An empty query returns everything.
func (c *FormTypeCatalog) Search(query string) []FormType {
	if query == "" {
		return c.All()
	}
	needle := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []FormType
	for _, ft := range c.types {
		if strings.Contains(strings.ToLower(ft.Code), needle) ||
			strings.Contains(strings.ToLower(ft.Name), needle) ||
			strings.Contains(strings.ToLower(ft.Description), needle) {
			matches = append(matches, ft)
		}
	}
	return matches
}

// Replace swaps the catalog contents.
func (c *FormTypeCatalog) Replace(types []FormType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.types = append([]FormType(nil), types...)
}

// LoadYAML replaces the catalog with a YAML sequence of form types.
// The catalog is left untouched on error.
func (c *FormTypeCatalog) LoadYAML(data []byte) error {
	var types []FormType
	if err := yaml.Unmarshal(data, &types); err != nil {
		return NewCatalogError(ErrMsgFormTypesParse, err)
	}
	for _, ft := range types {
		if strings.TrimSpace(ft.Code) == "" {
			return NewCatalogError(ErrMsgFormTypeEmptyCode, nil)
		}
	}
	c.Replace(types)
	return nil
}
