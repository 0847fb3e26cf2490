// Package docfill provides custom error types for better error handling and reporting.
package docfill

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigurationError represents a missing or malformed setting or input source.
// It aborts the current operation; retrying without changing the setup fails again.
type ConfigurationError struct {
	Setting string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Setting != "" {
		msg += fmt.Sprintf(" in '%s'", e.Setting)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(setting, message string, cause error) error {
	return &ConfigurationError{
		Setting: setting,
		Message: message,
		Cause:   cause,
	}
}

// EmptyHeaderError is returned when a record source has no header row.
type EmptyHeaderError struct {
	Path string
}

func (e *EmptyHeaderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("headers not found in '%s'", e.Path)
	}
	return "headers not found"
}

// HeaderConflictError is returned when record source headers collide with
// reserved field names.
type HeaderConflictError struct {
	Headers []string
}

func (e *HeaderConflictError) Error() string {
	return fmt.Sprintf("wrong headers: %s", strings.Join(e.Headers, ", "))
}

// NewHeaderConflictError creates a header conflict error with sorted header names
func NewHeaderConflictError(headers []string) error {
	sorted := append([]string(nil), headers...)
	sort.Strings(sorted)
	return &HeaderConflictError{Headers: sorted}
}

// InvalidPluralFormsError is returned when a currency noun is not given as
// exactly three plural forms.
type InvalidPluralFormsError struct {
	Got int
}

func (e *InvalidPluralFormsError) Error() string {
	return fmt.Sprintf("currency plural forms must have 3 elements, got %d", e.Got)
}

// ConversionError reports that the converter did not produce the destination file.
type ConversionError struct {
	Destination string
	Cause       error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversion failed: '%s' was not created: %v", e.Destination, e.Cause)
	}
	return fmt.Sprintf("conversion failed: '%s' was not created", e.Destination)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// Add records an issue.
func (e *ValidationError) Add(field, message string) {
	e.Issues = append(e.Issues, ValidationIssue{Field: field, Message: message})
}

// Err returns e when it holds issues and nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// NewValidationError creates a validation error with a single issue
func NewValidationError(field, message string) error {
	return &ValidationError{Issues: []ValidationIssue{{Field: field, Message: message}}}
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(contextParts)

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	return m.errors
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}
