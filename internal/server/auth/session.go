// Package auth issues and validates session tokens.
//
// A session token is an HS256 JWT carrying the identity claims and the
// instant it was issued. The server keeps no session table: on every use
// the token's age is recomputed from its own iat claim and compared to the
// configured maximum age. An optional RevocationStore lets sign-out take
// effect before that.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// maxClockSkew is how far in the future an iat may lie before the token is
// rejected outright.
const maxClockSkew = time.Minute

// Claims is the JWT payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Session is a validated (or freshly issued) session token.
type Session struct {
	Identity  models.Identity
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RevocationStore records signed-out token ids.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SessionManager issues and validates session tokens.
type SessionManager struct {
	secret      []byte
	maxAge      time.Duration
	now         func() time.Time
	revocations RevocationStore
}

// Option customizes a SessionManager.
type Option func(*SessionManager)

// WithClock replaces time.Now. Tests use it to move across the expiry edge.
func WithClock(now func() time.Time) Option {
	return func(m *SessionManager) { m.now = now }
}

// WithRevocationStore enables server-side sign-out.
func WithRevocationStore(s RevocationStore) Option {
	return func(m *SessionManager) { m.revocations = s }
}

// NewSessionManager returns a manager signing with secret. An empty secret
// or a non-positive maxAge is a configuration error.
func NewSessionManager(secret []byte, maxAge time.Duration, opts ...Option) (*SessionManager, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("session max age must be positive, got %s", maxAge)
	}
	m := &SessionManager{secret: secret, maxAge: maxAge, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// MaxAge is the configured session lifetime.
func (m *SessionManager) MaxAge() time.Duration {
	return m.maxAge
}

// Issue signs a new token for identity, stamped with the current instant.
// JWT timestamps have second precision, so the instant is truncated first.
func (m *SessionManager) Issue(identity models.Identity) (string, *Session, error) {
	issuedAt := m.now().Truncate(time.Second)
	session := &Session{
		Identity:  identity,
		TokenID:   uuid.NewString(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(m.maxAge),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.TokenID,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		UserID: identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

// Validate verifies the signature and recomputes the token's age. A token
// older than the maximum age yields common.ErrSessionExpired and no
// identity; the caller must treat the session as absent.
func (m *SessionManager) Validate(ctx context.Context, tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, common.ErrUnauthenticated
	}

	claims := &Claims{}
	// Age is checked below against m.now, so the library's own time
	// validation is switched off.
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing iat", common.ErrInvalidToken)
	}
	issuedAt := claims.IssuedAt.Time
	now := m.now()
	if issuedAt.Sub(now) > maxClockSkew {
		return nil, fmt.Errorf("%w: issued in the future", common.ErrInvalidToken)
	}
	if now.Sub(issuedAt) > m.maxAge {
		return nil, common.ErrSessionExpired
	}

	session := &Session{
		Identity:  models.Identity{ID: claims.UserID, Name: claims.Name, Email: claims.Email},
		TokenID:   claims.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(m.maxAge),
	}
	if session.Identity.IsZero() {
		return nil, fmt.Errorf("%w: no identity claims", common.ErrInvalidToken)
	}

	if m.revocations != nil && session.TokenID != "" {
		revoked, err := m.revocations.IsRevoked(ctx, session.TokenID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
		}
		if revoked {
			return nil, common.ErrSessionRevoked
		}
	}

	return session, nil
}

// Revoke signs the session out server-side. Without a RevocationStore it is
// a no-op: the client discarding the token is the whole sign-out.
func (m *SessionManager) Revoke(ctx context.Context, session *Session) error {
	if m.revocations == nil || session == nil || session.TokenID == "" {
		return nil
	}
	if err := m.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}
