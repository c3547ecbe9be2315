package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewKVRepository(kvstore.NewMemoryStore()), []byte("test-secret"))
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "buyer@demo.com", "demo123", "Demo Buyer", "")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "buyer@demo.com", user.Email)
	assert.NotEmpty(t, user.CreatedAt)

	session, err := svc.SignIn(ctx, "buyer@demo.com", "demo123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, user.ID, session.User.ID)
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "", "pw", "", "")
	assert.Error(t, err)

	_, err = svc.SignUp(ctx, "a@b.com", "", "", "")
	assert.Error(t, err)

	_, err = svc.SignUp(ctx, "a@b.com", "pw", "", "")
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, "a@b.com", "pw2", "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "a@b.com", "right", "", "")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@b.com", "right")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "a@b.com", "pw", "A", "")
	require.NoError(t, err)
	session, err := svc.SignIn(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	user, err := svc.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)

	_, err = svc.VerifyToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// a token signed with another key is rejected
	other := NewService(NewKVRepository(kvstore.NewMemoryStore()), []byte("other-secret"))
	_, err = other.VerifyToken(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignOutRevokesToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "a@b.com", "pw", "A", "")
	require.NoError(t, err)
	session, err := svc.SignIn(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, session.AccessToken))

	_, err = svc.VerifyToken(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "a signed-out token must stop verifying")

	// a fresh sign-in issues a new, valid token
	session2, err := svc.SignIn(ctx, "a@b.com", "pw")
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, session2.AccessToken)
	assert.NoError(t, err)
}

func TestBearerToken(t *testing.T) {
	_, err := BearerToken("")
	assert.ErrorIs(t, err, ErrNoAuthHeader)

	_, err = BearerToken("Bearer")
	assert.ErrorIs(t, err, ErrNoToken)

	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}
