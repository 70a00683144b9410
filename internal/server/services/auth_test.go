package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/server/auth"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthenticator(t *testing.T, rm *fakeRepoManager, opts ...auth.Option) *Authenticator {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	sessions, err := auth.NewSessionManager([]byte("k"), 24*time.Hour, opts...)
	require.NoError(t, err)
	return NewAuthenticator(db, rm, sessions, nopLogger{})
}

func aliceRepo(t *testing.T) *fakeUsersRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUsersRepo{byName: map[string]*models.UserAccount{
		"alice": {ID: "1", UserName: "alice", Password: "plain-pw", DisplayName: "Alice", Email: "alice@example.com"},
		"bob":   {ID: "2", UserName: "bob", Password: string(hash), DisplayName: "Bob", Email: "bob@example.com"},
	}}
}

func TestAuthenticate_PlainPassword(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	id, err := a.Authenticate(context.Background(), "alice", "plain-pw")
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: "1", Name: "Alice", Email: "alice@example.com"}, id)
}

func TestAuthenticate_BcryptPassword(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	id, err := a.Authenticate(context.Background(), "bob", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "2", id.ID)

	_, err = a.Authenticate(context.Background(), "bob", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthenticate_RejectionIsUniform(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	idUnknown, errUnknown := a.Authenticate(context.Background(), "mallory", "plain-pw")
	idWrong, errWrong := a.Authenticate(context.Background(), "alice", "nope")

	require.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, common.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.True(t, idUnknown.IsZero())
	assert.True(t, idWrong.IsZero())
}

func TestAuthenticate_EmptyInput(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	_, err := a.Authenticate(context.Background(), "", "x")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = a.Authenticate(context.Background(), "alice", "")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func countHashCompares(t *testing.T) *int {
	t.Helper()
	n := 0
	orig := compareHash
	compareHash = func(hash, pw []byte) error {
		n++
		return orig(hash, pw)
	}
	t.Cleanup(func() { compareHash = orig })
	return &n
}

func TestAuthenticate_EveryRejectionPaysOneHashCompare(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	cases := []struct{ user, pw string }{
		{"", "x"},
		{"alice", ""},
		{"mallory", "plain-pw"},
		{"alice", "nope"},
		{"bob", "wrong"},
	}
	for _, c := range cases {
		n := countHashCompares(t)
		_, err := a.Authenticate(context.Background(), c.user, c.pw)
		require.ErrorIs(t, err, common.ErrInvalidCredentials, "%s/%s", c.user, c.pw)
		assert.Equal(t, 1, *n, "%s/%s", c.user, c.pw)
	}

	n := countHashCompares(t)
	_, err := a.Authenticate(context.Background(), "alice", "plain-pw")
	require.NoError(t, err)
	assert.Equal(t, 1, *n)
}

func TestAuthenticate_StoreUnavailable(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: &fakeUsersRepo{err: errBoom{}}})

	_, err := a.Authenticate(context.Background(), "alice", "plain-pw")
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, errors.Is(err, common.ErrInvalidCredentials))
}

func TestLogin_IssuesValidSession(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	token, session, err := a.Login(context.Background(), "alice", "plain-pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", session.Identity.Email)
	assert.Equal(t, 24*time.Hour, a.MaxAge())

	got, err := a.Session(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, session.Identity, got.Identity)
	assert.Equal(t, session.TokenID, got.TokenID)
}

func TestLogin_Rejected(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	token, session, err := a.Login(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, session)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)}, auth.WithClock(clock))

	token, _, err := a.Login(context.Background(), "alice", "plain-pw")
	require.NoError(t, err)

	now = now.Add(24*time.Hour + time.Second)
	session, err := a.Session(context.Background(), token)
	assert.ErrorIs(t, err, common.ErrSessionExpired)
	assert.Nil(t, session)
}

func TestLogout_RevokesWhenStoreConfigured(t *testing.T) {
	rev := &fakeRevocationsRepo{}
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t), r: rev}, auth.WithRevocationStore(rev))

	token, session, err := a.Login(context.Background(), "alice", "plain-pw")
	require.NoError(t, err)

	require.NoError(t, a.Logout(context.Background(), session))
	assert.Contains(t, rev.revoked, session.TokenID)

	_, err = a.Session(context.Background(), token)
	assert.ErrorIs(t, err, common.ErrSessionRevoked)
}

func TestLogout_NoStoreIsNoop(t *testing.T) {
	a := newAuthenticator(t, &fakeRepoManager{u: aliceRepo(t)})

	_, session, err := a.Login(context.Background(), "alice", "plain-pw")
	require.NoError(t, err)
	assert.NoError(t, a.Logout(context.Background(), session))
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, checkPassword("pw", "pw"))
	assert.False(t, checkPassword("pw", "PW"))
	assert.True(t, checkPassword(string(hash), "pw"))
	assert.False(t, checkPassword(string(hash), string(hash)))
}
