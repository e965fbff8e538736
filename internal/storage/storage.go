// Package storage provides the key-value media the portal persists its
// collections into. Every value is an opaque JSON text; callers own the
// encoding.
package storage

import (
	"errors"
	"fmt"
)

// KV is a flat string-to-string medium. Get reports absence through the
// boolean, never through the error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Closer is implemented by drivers holding connections.
type Closer interface {
	Close() error
}

// ErrUnknownDriver is returned by New for an unrecognised driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// DriverError describes a failure inside a storage driver.
type DriverError struct {
	Type    string
	Message string
	Err     error
}

func (e *DriverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// Driver error types
const (
	ErrTypeConnection = "CONNECTION_ERROR"
	ErrTypeQuery      = "QUERY_ERROR"
	ErrTypeTimeout    = "TIMEOUT"
)

func wrapDriverError(errType, message string, err error) *DriverError {
	return &DriverError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}
