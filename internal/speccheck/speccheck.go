// Package speccheck re-validates OpenAPI documents with kin-openapi. The
// generators emit documents from a fixed shape, so a failure here points at
// a generator bug rather than bad user input; the check subcommand reuses it
// for arbitrary documents.
package speccheck

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrorCode categorizes validation errors for clearer handling and messaging.
type ErrorCode string

const (
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
)

// SpecError is a structured error with an optional JSON Pointer locating the
// offending part of the document.
type SpecError struct {
	Code        ErrorCode
	Message     string
	JSONPointer string // e.g. "#/paths/~1todos/get"
	Cause       error
}

func (e *SpecError) Error() string { return e.Message }
func (e *SpecError) Unwrap() error { return e.Cause }

// Validate parses data as an OpenAPI v3 document and validates it. Parse
// failures come back as ParseError, validation findings as ValidationError;
// the parsed document is returned alongside a ValidationError so callers can
// treat findings as warnings.
func Validate(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, &SpecError{
			Code:        ParseError,
			Message:     err.Error(),
			JSONPointer: extractJSONPointer(err),
			Cause:       err,
		}
	}
	if err := doc.Validate(ctx); err != nil {
		return doc, &SpecError{
			Code:        ValidationError,
			Message:     err.Error(),
			JSONPointer: extractJSONPointer(err),
			Cause:       err,
		}
	}
	return doc, nil
}

var jsonPtrRe = regexp.MustCompile(`#/[^\s'"]+`)

func extractJSONPointer(err error) string {
	if err == nil {
		return ""
	}
	// Unwrap MultiError and take the first for brevity.
	if me, ok := err.(openapi3.MultiError); ok {
		if len(me) > 0 {
			return extractJSONPointer(me[0])
		}
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if parts := se.JSONPointer(); len(parts) > 0 {
			return "#/" + strings.Join(parts, "/")
		}
		if se.SchemaField != "" {
			return se.SchemaField
		}
	}
	// Fallback: parse from the error message if a pointer literal appears.
	if m := jsonPtrRe.FindString(err.Error()); m != "" {
		return m
	}
	return ""
}
