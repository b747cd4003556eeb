package application_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventreg/internal/application"
	"eventreg/internal/domain"
	"eventreg/internal/infrastructure/auth"
	"eventreg/internal/infrastructure/sqlite/sqlitetest"
)

func newAccountService(t *testing.T) *application.AccountService {
	t.Helper()
	store := sqlitetest.New(t)
	tokens := auth.NewJWTManager("account-secret", time.Hour, "eventreg-test")
	return application.NewAccountService(store.Users(), auth.BcryptHasher{Cost: 4}, tokens, tokens, zerolog.Nop())
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	user, err := svc.Signup(ctx, `Grace <script>alert(1)</script>Hopper`, "  Grace@Navy.MIL ", "cobol1959")
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.Equal(t, "grace@navy.mil", user.Email)
	assert.NotContains(t, user.Name, "<script>")
	assert.NotEqual(t, "cobol1959", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "GRACE@navy.mil", "cobol1959")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	userID, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	me, err := svc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "grace@navy.mil", me.Email)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	_, err := svc.Signup(ctx, "", "bad", "123")
	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"name": "required", "email": "email", "password": "min"}, verr.Fields)

	_, err = svc.Signup(ctx, "<b></b>", "ok@example.com", "123456")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["name"])

	_, err = svc.Signup(ctx, "Long", "long@example.com", strings.Repeat("x", 73))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "max", verr.Fields["password"])

	_, err = svc.Signup(ctx, "First", "dup@example.com", "123456")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "Second", "DUP@example.com", "654321")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)
	_, err := svc.Signup(ctx, "Alan", "alan@example.com", "enigma")
	require.NoError(t, err)

	for name, creds := range map[string][2]string{
		"wrong password": {"alan@example.com", "bombe!"},
		"unknown email":  {"turing@example.com", "enigma"},
		"empty password": {"alan@example.com", ""},
		"too long":       {"alan@example.com", strings.Repeat("e", 100)},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, creds[0], creds[1])
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestAuthenticateAndMeFailures(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	_, err := svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Me(ctx, 4242)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
