package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a master value is already present.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoFile is returned when an upload has no file part.
	ErrNoFile = errors.New("no file provided")

	// ErrEmptyFile is returned when an upload has no header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// ValidationError lists the required fields that were empty.
type ValidationError struct {
	Entity EntityKind
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: required field missing: %s", e.Entity, strings.Join(e.Fields, ", "))
}

// MissingColumnsError is returned when an import header lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required column: %s", strings.Join(e.Columns, ", "))
}

// CSVError wraps a parse failure of an uploaded file.
type CSVError struct {
	Err error
}

func (e *CSVError) Error() string {
	return "invalid csv: " + e.Err.Error()
}

func (e *CSVError) Unwrap() error {
	return e.Err
}

// notFound wraps ErrNotFound with the entity and id.
func notFound(kind EntityKind, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
