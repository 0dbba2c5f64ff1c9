package collections

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCollection  = errors.New("collections: unknown collection")
	ErrSchemaNameRequired = errors.New("collections: schema name is required")
	ErrSchemaNoFields     = errors.New("collections: schema declares no fields")
	ErrDocumentInvalid    = errors.New("collections: document failed validation")
)

// ViolationCode identifies why a field failed validation.
type ViolationCode string

const (
	// MissingField marks a required field absent from the raw document.
	MissingField ViolationCode = "missing_field"
	// TypeMismatch marks a present value whose shape does not match the
	// declared kind and is not coercible.
	TypeMismatch ViolationCode = "type_mismatch"
	// InvalidDate marks a date field whose raw value could not be parsed
	// into a calendar date.
	InvalidDate ViolationCode = "invalid_date"
	// UnknownField marks an undeclared field on a strict schema.
	UnknownField ViolationCode = "unknown_field"
)

// Violation records a single failing field with a human-readable reason.
type Violation struct {
	Field  string
	Code   ViolationCode
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Field, v.Reason, v.Code)
}

// Failure aggregates every violation found in one document. The validator
// never stops at the first failing field, so callers can surface a complete
// report per document.
type Failure struct {
	Collection string
	SourcePath string
	Violations []Violation
}

func (f *Failure) Error() string {
	if f == nil || len(f.Violations) == 0 {
		return ErrDocumentInvalid.Error()
	}
	parts := make([]string, 0, len(f.Violations))
	for _, violation := range f.Violations {
		parts = append(parts, violation.String())
	}
	return fmt.Sprintf("%s: %s: %s", ErrDocumentInvalid.Error(), f.SourcePath, strings.Join(parts, "; "))
}

func (f *Failure) Unwrap() error {
	return ErrDocumentInvalid
}

// UnknownCollectionError captures registry lookups for unregistered names.
type UnknownCollectionError struct {
	Collection string
}

func (e *UnknownCollectionError) Error() string {
	if e == nil || strings.TrimSpace(e.Collection) == "" {
		return ErrUnknownCollection.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnknownCollection.Error(), e.Collection)
}

func (e *UnknownCollectionError) Unwrap() error {
	return ErrUnknownCollection
}
