package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/labstack/echo/v4"
)

// ClaimsKey is the echo context key holding *models.JwtCustomClaims.
const ClaimsKey = "user"

type authenticator struct {
	tokens    *services.TokenIssuer
	blacklist repositories.TokenBlacklist
}

func bearerToken(c echo.Context) (string, bool, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false, nil
	}
	// Expecting "Bearer <token>"
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", true, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], true, nil
}

func (a authenticator) authenticate(c echo.Context, raw string) error {
	claims, err := a.tokens.Parse(raw, models.TokenTypeAccess)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	revoked, err := a.blacklist.IsRevoked(c.Request().Context(), claims.ID)
	if err != nil {
		logging.Err(err).Str("jti", claims.ID).Msg("token blacklist lookup failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Authentication is temporarily unavailable")
	}
	if revoked {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token has been revoked")
	}
	c.Set(ClaimsKey, claims)
	return nil
}

// JWTAuthMiddleware checks for a valid, unrevoked access token and stores
// its claims in the context.
func JWTAuthMiddleware(tokens *services.TokenIssuer, blacklist repositories.TokenBlacklist) echo.MiddlewareFunc {
	a := authenticator{tokens: tokens, blacklist: blacklist}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, present, err := bearerToken(c)
			if err != nil {
				return err
			}
			if !present {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			if err := a.authenticate(c, raw); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalJWTAuth lets anonymous requests through but still rejects a bad
// token, so a client never silently reads as anonymous.
func OptionalJWTAuth(tokens *services.TokenIssuer, blacklist repositories.TokenBlacklist) echo.MiddlewareFunc {
	a := authenticator{tokens: tokens, blacklist: blacklist}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, present, err := bearerToken(c)
			if err != nil {
				return err
			}
			if present {
				if err := a.authenticate(c, raw); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}
