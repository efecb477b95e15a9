package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrProjectNotFound indicates no project exists with the given id
	ErrProjectNotFound = errors.New("project not found")

	// ErrRepositoryRequired is returned by New when no repository is configured
	ErrRepositoryRequired = errors.New("repository is required")
)

// ValidationError reports a candidate payload that violates the record rules.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StorageError represents a failed read or write in a storage adapter.
// Status and Body are set when the failure is a non-2xx HTTP response.
type StorageError struct {
	Backend string
	Op      string
	Key     string
	Status  int
	Body    string
	Err     error
}

func (e *StorageError) Error() string {
	prefix := fmt.Sprintf("storage operation %s failed on backend %s", e.Op, e.Backend)
	if e.Key != "" {
		prefix += " for key " + e.Key
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %d %s - %s", prefix, e.Status, http.StatusText(e.Status), e.Body)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
