// Package apperr defines the error kinds the export pipeline and the HTTP
// handlers agree on, and how each maps to an HTTP status.
//
//   - ErrNotFound: a referenced department, event or participant does not exist.
//     Callers degrade (drop the filter, skip the row); it rarely reaches a client.
//   - ErrValidation: bad client input (transaction id, export format, missing field).
//   - ErrCapabilityUnavailable: a known feature is not available in this runtime.
//   - *StoreError: the document store failed. Propagated, never swallowed.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrValidation            = errors.New("validation failed")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
)

// Validation returns an error wrapping ErrValidation with a client-facing message.
func Validation(msg string) error {
	return &messageError{kind: ErrValidation, msg: msg}
}

// Unavailable returns an error wrapping ErrCapabilityUnavailable with an
// actionable message for the operator.
func Unavailable(msg string) error {
	return &messageError{kind: ErrCapabilityUnavailable, msg: msg}
}

type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.kind }

// StoreError wraps a failure of the underlying document store.
type StoreError struct {
	Op         string // get, find, stream, create, update, count
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a *StoreError unless it is nil, already a StoreError, or ErrNotFound.
func Store(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Collection: collection, Err: err}
}

// HTTPStatus maps an error to the response status a handler should send.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message is the text safe to show a client. Validation and capability messages
// are written for users; store failures are not.
func Message(err error) string {
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	if errors.Is(err, ErrNotFound) {
		return "not found"
	}
	return "A database error occurred."
}
