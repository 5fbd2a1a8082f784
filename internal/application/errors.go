package application

import (
	"errors"
	"fmt"

	"nikki/internal/domain"
)

// Sentinel errors for store failures. Auth failures end the session; the
// others only fail the current operation.
var (
	ErrAuth       = errors.New("authentication failed")
	ErrConnection = errors.New("connection failed")
	ErrRead       = errors.New("read failed")
	ErrWrite      = errors.New("write failed")
)

// StoreError wraps a failure of the backing sheet with its kind and operation
type StoreError struct {
	Kind error
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// AuthError reports a credential decode or authorization failure
func AuthError(op string, err error) error {
	return &StoreError{Kind: ErrAuth, Op: op, Err: err}
}

// ConnectionError reports a failure to reach the store
func ConnectionError(op string, err error) error {
	return &StoreError{Kind: ErrConnection, Op: op, Err: err}
}

// ReadError reports a failed fetch. A StoreError already classified by the
// backend keeps its kind.
func ReadError(op string, err error) error {
	return storeError(ErrRead, op, err)
}

// WriteError reports a failed append, clear or insert. A StoreError already
// classified by the backend keeps its kind.
func WriteError(op string, err error) error {
	return storeError(ErrWrite, op, err)
}

func storeError(kind error, op string, err error) error {
	var se *StoreError
	if errors.As(err, &se) {
		return &StoreError{Kind: se.Kind, Op: op, Err: se.Err}
	}
	return &StoreError{Kind: kind, Op: op, Err: err}
}

// IsFatal reports whether err should end the session
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuth)
}

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RewriteError is returned when a clear-then-append rewrite stopped part way.
// The sheet then holds the header and Written survivors; Pending lists the
// rows that were lost from the sheet and must be restored by the caller.
type RewriteError struct {
	Header  []string
	Written int
	Pending []domain.Row
	Err     error
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewrite stopped after %d rows, %d rows not stored: %v", e.Written, len(e.Pending), e.Err)
}

func (e *RewriteError) Unwrap() error {
	return e.Err
}
