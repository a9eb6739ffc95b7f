package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/repository"
	"github.com/iliyamo/movie-rental-api/internal/utils"
	"github.com/iliyamo/movie-rental-api/internal/validation"
)

// UserStore is the persistence contract for users.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Accounts registers users and exchanges credentials for auth tokens.
type Accounts struct {
	users      UserStore
	tokens     *utils.TokenService
	bcryptCost int
}

func NewAccounts(users UserStore, tokens *utils.TokenService, bcryptCost int) *Accounts {
	return &Accounts{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register validates in, enforces email uniqueness, stores the user with a
// hashed password and returns it together with a freshly issued token.
// A taken email yields repository.ErrEmailExists.
func (a *Accounts) Register(ctx context.Context, in model.UserInput) (*model.User, string, error) {
	if err := check(validation.User, in); err != nil {
		return nil, "", err
	}
	// A concurrent registration can still slip past this check; Create then
	// reports the unique index violation as ErrEmailExists.
	if _, err := a.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", repository.ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	hash, err := utils.HashPassword(in.Password, a.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{Name: in.Name, Email: in.Email, PasswordHash: hash, IsAdmin: in.IsAdmin}
	if err := a.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	token, err := a.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks the credentials and returns a token for the matching user.
func (a *Accounts) Login(ctx context.Context, in model.LoginInput) (string, error) {
	if err := check(validation.Login, in); err != nil {
		return "", err
	}
	u, err := a.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, in.Password) {
		return "", ErrInvalidCredentials
	}
	return a.issue(u)
}

// Me returns the user a token was issued for.
func (a *Accounts) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return a.users.GetByID(ctx, id)
}

func (a *Accounts) issue(u *model.User) (string, error) {
	token, err := a.tokens.Issue(utils.Identity{UserID: u.ID, Name: u.Name, IsAdmin: u.IsAdmin})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
