package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-rental-api/internal/middleware"
	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/service"
)

// AuthHandler serves registration, login and the current-user profile.
type AuthHandler struct {
	Accounts *service.Accounts
	Log      logrus.FieldLogger
}

func NewAuthHandler(accounts *service.Accounts, log logrus.FieldLogger) *AuthHandler {
	if accounts == nil {
		panic("nil accounts passed to NewAuthHandler")
	}
	return &AuthHandler{Accounts: accounts, Log: orStandard(log)}
}

type tokenResp struct {
	Token string `json:"token"`
}

// Register creates the user and answers with its public fields.  The token
// for the new account is sent in the x-auth-token response header.
func (h *AuthHandler) Register(c echo.Context) error {
	var in model.UserInput
	if err := bind(c, &in); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	u, token, err := h.Accounts.Register(ctx, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	c.Response().Header().Set(middleware.TokenHeader, token)
	return c.JSON(http.StatusOK, u.Public())
}

// Login exchanges email and password for a token, returned both in the body
// and in the x-auth-token header.
func (h *AuthHandler) Login(c echo.Context) error {
	var in model.LoginInput
	if err := bind(c, &in); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	token, err := h.Accounts.Login(ctx, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	c.Response().Header().Set(middleware.TokenHeader, token)
	return c.JSON(http.StatusOK, tokenResp{Token: token})
}

// Me returns the profile of the token's bearer.  Must run behind
// middleware.Auth.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied. no token provided"})
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	u, err := h.Accounts.Me(ctx, id)
	if err != nil {
		// A deleted account with a still-valid token gets 404.
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u.Public())
}
