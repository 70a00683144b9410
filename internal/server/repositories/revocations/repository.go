// Package revocations declares and implements the store of signed-out
// session token ids.
package revocations

import (
	"context"
	"time"
)

// Repository records revoked session token ids until their natural expiry.
type Repository interface {
	// Revoke stores tokenID. Revoking an already revoked id is not an error.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether tokenID was revoked and has not yet expired.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// DeleteExpired removes rows whose expiry is before now and returns how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
