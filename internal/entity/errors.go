package entity

import "errors"

var (
	// ErrNotFound means the addressed record does not exist. Callers map it
	// to a 404; it must never be confused with a connectivity failure.
	ErrNotFound = errors.New("record not found")

	// ErrBackendUnavailable means the storage backend could not be reached
	// or refused the operation for infrastructure reasons. Retryable.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)
