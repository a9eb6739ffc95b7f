package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account as stored in the `users` table.  PasswordHash
// never leaves the server: it is excluded from JSON and handlers respond
// with the value returned by Public.
type User struct {
	ID           uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"-"`
}

// PublicUser is the response shape for a user record.
type PublicUser struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

// Public strips credentials from u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

// UserInput is the registration payload.  Password is the plaintext value
// and is hashed before it reaches storage.
type UserInput struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginInput is the credential payload for POST /api/auth.
type LoginInput struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}
