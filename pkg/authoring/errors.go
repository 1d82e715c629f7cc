package authoring

import "fmt"

// UnknownFieldError is returned when an operation references a field that
// is not registered in the catalog's field vocabulary.
type UnknownFieldError struct {
	// Field is the unregistered field name
	Field string
}

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not registered in campos_disponiveis", e.Field)
}

// ConditionError is returned when a rule's condition set fails validation
// against the field vocabulary.
type ConditionError struct {
	// Field is the condition field that failed validation
	Field string

	// Value is the offending condition value, if any
	Value string

	// Message describes the validation failure
	Message string
}

// Error implements the error interface.
func (e *ConditionError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid condition on field %q: value %q %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid condition on field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid condition: %s", e.Message)
}

// DocumentNotFoundError is returned when an operation targets a document
// code that is not registered in the rule matrix.
type DocumentNotFoundError struct {
	// Code is the unregistered document code
	Code string
}

// Error implements the error interface.
func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document %q not found", e.Code)
}

// RuleIndexError is returned when a rule index falls outside a document's
// rule sequence.
type RuleIndexError struct {
	// Code is the document code
	Code string

	// Index is the requested rule index
	Index int

	// Count is the number of rules the document actually has
	Count int
}

// Error implements the error interface.
func (e *RuleIndexError) Error() string {
	return fmt.Sprintf("document %q has %d rules, index %d is out of range", e.Code, e.Count, e.Index)
}

// StoreError is returned when the backing store fails to load or persist
// the catalog blobs.
type StoreError struct {
	// Operation is the store operation that failed ("load", "save")
	Operation string

	// Path is the file involved, if any
	Path string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("catalog store %s failed for %q: %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("catalog store %s failed: %v", e.Operation, e.Cause)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *StoreError) Unwrap() error {
	return e.Cause
}
