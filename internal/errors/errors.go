// Package errors provides domain-specific error types for chatrelay.
//
// Protocol errors carry the wire code surfaced to clients as "ERR <code>";
// network errors carry structured context (operation, address) for logs.
// The two never mix: a protocol error is the client's fault and is never
// logged as a server failure.
package errors

import (
	"errors"
	"fmt"
)

// ── Protocol errors ──────────────────────────────────────────────────

// ProtocolError is an error with a wire representation.  Its Code is
// sent verbatim to the offending client after the "ERR " prefix.
type ProtocolError struct {
	Code string
}

func (e *ProtocolError) Error() string { return "protocol: " + e.Code }

// Every code a client can observe, one sentinel each.
var (
	ErrInvalidUsername      = &ProtocolError{Code: "invalid-username"}
	ErrUsernameTaken        = &ProtocolError{Code: "username-taken"}
	ErrAlreadyAuthenticated = &ProtocolError{Code: "already-authenticated"}
	ErrNotAuthenticated     = &ProtocolError{Code: "not-authenticated"}
	ErrInvalidCommand       = &ProtocolError{Code: "invalid-command"}
	ErrUnknownCommand       = &ProtocolError{Code: "unknown-command"}
	ErrEmptyMessage         = &ProtocolError{Code: "empty-message"}
	ErrUserNotFound         = &ProtocolError{Code: "user-not-found"}
	ErrServerError          = &ProtocolError{Code: "server-error"}
)

// CodeOf extracts the wire code from err.  Anything that is not a
// ProtocolError collapses to "server-error" — internal details never
// leak onto the wire.
func CodeOf(err error) string {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrServerError.Code
}

// IsProtocol reports whether err is a client-caused protocol error.
func IsProtocol(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// ── Resource errors ──────────────────────────────────────────────────

// NetworkError represents a failure in a per-connection network
// operation.  These tear down a single session, never the process.
type NetworkError struct {
	Op   string // operation: "listen", "accept", "read", "write"
	Addr string // network address involved
	Err  error  // underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Wrap creates a NetworkError for op against addr.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{Op: op, Addr: addr, Err: err}
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use chatrelay/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
