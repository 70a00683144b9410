package models

import "time"

// RevokedSession marks a session token id as signed out before its natural
// expiry. Rows are only useful until ExpiresAt.
type RevokedSession struct {
	TokenID   string
	ExpiresAt time.Time
}
