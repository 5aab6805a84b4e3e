package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.AccountService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, mw Guards) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/firebase", h.FirebaseLogin)
	g.POST("/logout", h.Logout, mw.Required)
}

func sessionResponse(c echo.Context, status int, user *models.User, tokens models.TokenPair) error {
	return success(c, status, echo.Map{"user": user, "tokens": tokens})
}

// Register creates a local account with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, tokens, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return sessionResponse(c, http.StatusCreated, user, tokens)
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, tokens, err := h.accounts.Login(c.Request().Context(), req, viewerFromContext(c))
	if err != nil {
		return err
	}
	return sessionResponse(c, http.StatusOK, user, tokens)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tokens, err := h.accounts.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"tokens": tokens})
}

// FirebaseLogin verifies a Firebase ID token and issues local tokens
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, tokens, err := h.accounts.FirebaseLogin(c.Request().Context(), req.IDToken, viewerFromContext(c))
	if err != nil {
		return err
	}
	return sessionResponse(c, http.StatusOK, user, tokens)
}

// Logout revokes the access token and, if sent, the refresh token
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := claimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := h.accounts.Logout(c.Request().Context(), claims, req.Refresh); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"message": "Successfully logged out"})
}
