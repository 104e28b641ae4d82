package store

import (
	"errors"

	"videocatalog/internal/catalog"
)

// ErrNotFound is returned when no video exists for the requested id.
var ErrNotFound = errors.New("video not found")

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrorClassifier allows errors to declare their classification.
type ErrorClassifier interface {
	// ErrorKind returns a string classification of the error, such as
	// "validation" or "not_found".
	ErrorKind() string
}

// Kind classifies err for logging and exit handling. Errors implementing
// ErrorClassifier report their own kind; missing rows are "not_found",
// schema problems are "configuration", everything else is "internal".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrSchemaMismatch):
		return "configuration"
	default:
		return "internal"
	}
}

var _ ErrorClassifier = (*catalog.Error)(nil)
