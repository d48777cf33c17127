package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/glassview/internal/middleware"
	"github.com/iliyamo/glassview/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth         *service.AuthService
	CookieSecure bool
}

func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, CookieSecure: cookieSecure}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register: create a regular user.
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.Registration
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, id)
}

// Login: verify credentials, set the session cookie and return the token
// for clients that do not keep cookies.  Accepts JSON or form bodies.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tok, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		MaxAge:   int(h.Auth.TTL() / time.Second),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, tokenResp{AccessToken: tok.Token, TokenType: "bearer"})
}

// Logout: clear the session cookie.  The token itself stays valid until
// it expires; there is no server-side revocation.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"detail": "logged out"})
}

// Me: return the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}
