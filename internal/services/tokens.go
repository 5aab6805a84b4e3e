package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs and verifies HS256 access and refresh tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        Clock
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue returns a fresh access and refresh token for the member.
func (t *TokenIssuer) Issue(u *models.User) (models.TokenPair, error) {
	access, err := t.sign(u, models.TokenTypeAccess, t.accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := t.sign(u, models.TokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (t *TokenIssuer) sign(u *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &models.JwtCustomClaims{
		UserID:    u.ID,
		Email:     u.Email,
		TokenType: tokenType,
		IsStaff:   u.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Parse verifies the signature, expiry and token type.
func (t *TokenIssuer) Parse(raw, tokenType string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, unauthorized("Token has expired")
		}
		return nil, unauthorized("Invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, unauthorized("Invalid token type")
	}
	return claims, nil
}
