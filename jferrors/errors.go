package jferrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidPath indicates a path expression could not be parsed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrPropertyAccess indicates a path indexed into an undefined or null value.
	ErrPropertyAccess = errors.New("property access failure")

	// ErrRetrieval indicates a referenced document could not be retrieved.
	ErrRetrieval = errors.New("retrieval error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// InvalidPathError reports a path that the grammar could not fully consume.
type InvalidPathError struct {
	// Path is the original, unnormalized path string
	Path string
	// Offset is the byte offset in the normalized path where matching stopped
	Offset int
}

// Error returns a human-readable error message.
func (e *InvalidPathError) Error() string {
	return "invalid path: " + e.Path
}

// Is reports whether target matches this error type.
func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// PropertyAccessError reports an attempt to read a member or element of an
// undefined or null value while evaluating a path.
type PropertyAccessError struct {
	// Path is the full path being evaluated
	Path string
	// Property is the member name or index that could not be read
	Property string
	// Target is "undefined" or "null"
	Target string
}

// Error returns a human-readable error message.
func (e *PropertyAccessError) Error() string {
	msg := fmt.Sprintf("cannot read property '%s' of %s", e.Property, e.Target)
	if e.Path != "" {
		msg += " in path " + e.Path
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *PropertyAccessError) Is(target error) bool {
	return target == ErrPropertyAccess
}

// RetrievalError represents a failure of the retrieval capability.
type RetrievalError struct {
	// Ref is the full reference, including any fragment
	Ref string
	// Locator is the reference with the fragment removed, as passed to the requester
	Locator string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *RetrievalError) Error() string {
	msg := "retrieval error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}

// ParseError represents a failure to decode a document.
type ParseError struct {
	// Path is the file path, URL or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ResourceLimitError represents a configured limit being exceeded.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded: "extends_depth" or "document_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
