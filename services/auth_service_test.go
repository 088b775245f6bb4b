package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	hash, err := hashPassword("secret1")
	require.NoError(t, err)

	captains := newFakeCaptainRepo(
		&models.Captain{ID: 1, Name: "Asha", Email: "asha@college.edu", PasswordHash: hash, Status: models.StatusApproved},
		&models.Captain{ID: 2, Name: "Ravi", Email: "ravi@college.edu", PasswordHash: hash, Status: models.StatusPending},
	)
	return NewAuthService(nil, captains, nil, NewTokenManager("test-secret", time.Hour), session.NewMemoryStore())
}

func TestLoginCaptain(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	res, err := svc.LoginCaptain(ctx, LoginInput{Email: " ASHA@college.edu ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaptain, res.Role)
	assert.NotEmpty(t, res.Token)

	_, err = svc.LoginCaptain(ctx, LoginInput{Email: "asha@college.edu", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginCaptain(ctx, LoginInput{Email: "nobody@college.edu", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginCaptain(ctx, LoginInput{Email: "ravi@college.edu", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountNotApproved)

	_, err = svc.LoginCaptain(ctx, LoginInput{Email: "ravi@college.edu", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "a wrong password never reveals the account status")
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	res, err := svc.LoginCaptain(ctx, LoginInput{Email: "asha@college.edu", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
