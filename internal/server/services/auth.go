// Package services contains server-side business logic. This file implements
// Authenticator, which verifies credentials against the accounts table and
// issues, validates and revokes session tokens.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/logging"
	"github.com/dmitrijs2005/wotracker/internal/server/auth"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator provides the sign-in surface:
// Authenticate checks credentials, Login also issues a session token,
// Session validates one and Logout revokes it.
type Authenticator struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *auth.SessionManager
	log         logging.Logger
}

// NewAuthenticator constructs an Authenticator over the accounts repository.
func NewAuthenticator(db *sql.DB, m repomanager.RepositoryManager, sessions *auth.SessionManager, log logging.Logger) *Authenticator {
	return &Authenticator{db: db, repomanager: m, sessions: sessions, log: log}
}

// Authenticate looks up exactly one account by userName and compares the
// password. An unknown user and a wrong password both yield
// common.ErrInvalidCredentials. A failed lookup yields a wrapped
// common.ErrStoreUnavailable and is logged.
func (a *Authenticator) Authenticate(ctx context.Context, userName, password string) (models.Identity, error) {
	if userName == "" || password == "" {
		_ = compareHash(dummyHash(), []byte(password))
		return models.Identity{}, common.ErrInvalidCredentials
	}

	repo := a.repomanager.Users(a.db)
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = compareHash(dummyHash(), []byte(password))
			a.log.Info(ctx, "login rejected")
			return models.Identity{}, common.ErrInvalidCredentials
		}
		a.log.Error(ctx, "credential lookup failed", "error", err)
		return models.Identity{}, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if !checkPassword(user.Password, password) {
		a.log.Info(ctx, "login rejected")
		return models.Identity{}, common.ErrInvalidCredentials
	}

	return models.Identity{ID: user.ID, Name: user.DisplayName, Email: user.Email}, nil
}

// Login authenticates and, on success, issues a session token.
func (a *Authenticator) Login(ctx context.Context, userName, password string) (string, *auth.Session, error) {
	identity, err := a.Authenticate(ctx, userName, password)
	if err != nil {
		return "", nil, err
	}
	token, session, err := a.sessions.Issue(identity)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing session token: %w", err)
	}
	a.log.Info(ctx, "session issued", "user_id", identity.ID, "token_id", session.TokenID)
	return token, session, nil
}

// Session validates token. Any failure means the caller has no identity.
func (a *Authenticator) Session(ctx context.Context, token string) (*auth.Session, error) {
	session, err := a.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			a.log.Error(ctx, "revocation check failed", "error", err)
		}
		return nil, err
	}
	return session, nil
}

// Logout revokes session when a revocation store is configured.
func (a *Authenticator) Logout(ctx context.Context, session *auth.Session) error {
	if err := a.sessions.Revoke(ctx, session); err != nil {
		a.log.Error(ctx, "session revocation failed", "error", err)
		return err
	}
	return nil
}

// MaxAge is the lifetime of issued sessions.
func (a *Authenticator) MaxAge() time.Duration {
	return a.sessions.MaxAge()
}

// compareHash is a test seam for bcrypt.CompareHashAndPassword.
var compareHash = bcrypt.CompareHashAndPassword

// checkPassword accepts stored values that are bcrypt hashes as well as the
// legacy verbatim values. Every call costs exactly one bcrypt comparison, as
// do the unknown-user and empty-input rejections in Authenticate.
func checkPassword(stored, candidate string) bool {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return compareHash([]byte(stored), []byte(candidate)) == nil
	}
	_ = compareHash(dummyHash(), []byte(candidate))
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("wotracker"), bcrypt.DefaultCost)
	})
	return dummy
}
