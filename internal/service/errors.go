package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSaveInProgress rejects a second save while one is in flight for
	// the same workflow key. The caller retries when the first one lands.
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrNoGarage is returned when an operation arrives without a tenant.
	ErrNoGarage = errors.New("no garage selected")

	ErrNotFound = errors.New("record not found")
)

// ValidationError carries the complete list of violations so the UI can show
// every problem at once instead of the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// PersistenceError wraps a gateway write failure. It is surfaced generically
// and the operation can be retried by the user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
