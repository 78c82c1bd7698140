package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crownstore/internal/common"
)

func TestAuth_RegistrationAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.registerAda(t)

	_, err := f.identity.Register(ctx, adaInput())
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, common.KindConflict, common.KindOf(err))

	s, err := f.auth.Login(ctx, "a@x.com", []byte("abc12345"), false)
	require.NoError(t, err)
	assert.Equal(t, u.ID, s.UserID)
	assert.WithinDuration(t, f.clock.Now().Add(7*24*time.Hour), s.ExpiresAt, time.Second)

	_, err = f.auth.Login(ctx, "a@x.com", []byte("wrong"), false)
	require.ErrorIs(t, err, common.ErrIncorrectPassword)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

func TestAuth_LoginUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), "nobody@x.com", []byte("abc12345"), false)
	require.ErrorIs(t, err, common.ErrEmailNotFound)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestAuth_LoginEmailCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.registerAda(t)

	_, err := f.auth.Login(context.Background(), " A@X.COM ", []byte("abc12345"), true)
	require.NoError(t, err)
}

func TestAuth_FailedLoginKeepsExistingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.registerAda(t)

	_, err := f.auth.Login(ctx, "a@x.com", []byte("abc12345"), false)
	require.NoError(t, err)
	_, err = f.auth.Login(ctx, "a@x.com", []byte("nope1234"), false)
	require.Error(t, err)

	cur, err := f.auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cur.ID)
}

func TestAuth_CurrentUserAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.CurrentUser(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)

	u := f.registerAda(t)
	_, err = f.auth.Login(ctx, "a@x.com", []byte("abc12345"), false)
	require.NoError(t, err)

	cur, err := f.auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.Email, cur.Email)

	require.NoError(t, f.auth.Logout(ctx))
	_, err = f.auth.CurrentUser(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestAuth_LoginWithCorruptStoredHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerAda(t)

	for _, hash := range []string{
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"not-a-hash",
	} {
		all, err := f.users.All(ctx)
		require.NoError(t, err)
		all[0].PasswordHash = hash
		require.NoError(t, f.users.Save(ctx, all))

		require.NotPanics(t, func() {
			_, err = f.auth.Login(ctx, "a@x.com", []byte("abc12345"), false)
		}, hash)
		require.ErrorIs(t, err, common.ErrIncorrectPassword, hash)
	}

	_, err := f.auth.CurrentUser(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}
