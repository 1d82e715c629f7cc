package catalog

import (
	"fmt"
	"strings"
)

// SchemaError represents a structural problem in one of the catalog JSON
// sources, such as a missing top-level key or a condition requirement that
// is neither a value list nor a numeric range.
type SchemaError struct {
	// Source identifies the offending blob ("rules", "types", "normas")
	Source string

	// Path locates the problem inside the source (e.g. "documentos.GAR.regras[0]")
	Path string

	// Message describes the error
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("invalid catalog schema")
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s source", e.Source)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// ErrorList aggregates multiple errors from a single load attempt so the
// caller sees every structural problem at once instead of fixing them one
// by one.
type ErrorList struct {
	Errors []error
}

// Add appends an error to the list. Nil errors are ignored.
func (l *ErrorList) Add(err error) {
	if err != nil {
		l.Errors = append(l.Errors, err)
	}
}

// HasErrors reports whether the list contains any errors.
func (l *ErrorList) HasErrors() bool {
	return len(l.Errors) > 0
}

// Error implements the error interface.
func (l *ErrorList) Error() string {
	if len(l.Errors) == 0 {
		return "no errors"
	}
	if len(l.Errors) == 1 {
		return l.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(l.Errors))
	for _, err := range l.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped errors for use with errors.Is and errors.As.
func (l *ErrorList) Unwrap() []error {
	return l.Errors
}
