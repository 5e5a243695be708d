package domain

import "errors"

// Error kinds resolved by the services and mapped to status codes at the
// HTTP boundary. Wrap with fmt.Errorf("...: %w", Err...) to add detail.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
)
