package errors

import "errors"

// This package defines the sentinel errors shared across the application.
// Callers check them with errors.Is() instead of matching on error strings,
// which keeps the session layer decoupled from whoever drives it (the TUI,
// tests, or a future surface).

var (
	// ErrBusy is returned by Session.Submit while a previous submission is
	// still waiting on the answering service. The call has no effect; the
	// user resubmits once the in-flight request settles.
	ErrBusy = errors.New("a request is already in flight")

	// ErrEmptyInput is returned by Session.Submit for input that is empty
	// after trimming whitespace. The call has no effect.
	ErrEmptyInput = errors.New("input is empty")
)
