// Package common defines shared constants and sentinel errors used across
// the wotracker server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Authentication errors. ErrInvalidCredentials is returned both for an
	// unknown username and for a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// Session token errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")
	ErrSessionRevoked = errors.New("session revoked")

	// Request validation.
	ErrInvalidInput = errors.New("invalid input")

	// Underlying data-store failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)
