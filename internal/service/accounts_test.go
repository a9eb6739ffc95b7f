package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/repository"
	"github.com/iliyamo/movie-rental-api/internal/repository/memstore"
	"github.com/iliyamo/movie-rental-api/internal/utils"
)

func newAccounts(t *testing.T) (*Accounts, *memstore.Users, *utils.TokenService) {
	t.Helper()
	tokens, err := utils.NewTokenService("test-secret", 0)
	require.NoError(t, err)
	users := memstore.NewUsers()
	return NewAccounts(users, tokens, bcrypt.MinCost), users, tokens
}

func userInput() model.UserInput {
	return model.UserInput{Name: "Mosh", Email: "mosh@example.com", Password: "12345", IsAdmin: true}
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	a, users, tokens := newAccounts(t)
	ctx := context.Background()

	u, token, err := a.Register(ctx, userInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "Mosh", claims.Name)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "12345", stored.PasswordHash)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "12345"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	a, _, _ := newAccounts(t)
	ctx := context.Background()

	_, _, err := a.Register(ctx, userInput())
	require.NoError(t, err)

	again := userInput()
	again.Email = "MOSH@example.com"
	_, _, err = a.Register(ctx, again)
	assert.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestRegisterValidation(t *testing.T) {
	a, _, _ := newAccounts(t)
	in := userInput()
	in.Password = "1234"

	_, _, err := a.Register(context.Background(), in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Violations[0].Field)
}

func TestLogin(t *testing.T) {
	a, _, tokens := newAccounts(t)
	ctx := context.Background()
	u, _, err := a.Register(ctx, userInput())
	require.NoError(t, err)

	token, err := a.Login(ctx, model.LoginInput{Email: "mosh@example.com", Password: "12345"})
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = a.Login(ctx, model.LoginInput{Email: "mosh@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login(ctx, model.LoginInput{Email: "nobody@example.com", Password: "12345"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	a, _, _ := newAccounts(t)
	ctx := context.Background()
	u, _, err := a.Register(ctx, userInput())
	require.NoError(t, err)

	got, err := a.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "mosh@example.com", got.Email)

	_, err = a.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
