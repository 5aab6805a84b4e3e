package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and auth client
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

// Identity is the part of a verified Firebase ID token the backend uses.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	DisplayName   string
}

// InitFirebase initializes the Firebase application and authentication client
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	logging.Info().Msg("Firebase app and auth client initialized")
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient}, nil
}

// VerifyIDToken checks the token signature and expiry with Firebase and
// extracts the identity claims.
func (a *App) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := a.AuthClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify firebase id token: %w", err)
	}
	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]interface{}) *Identity {
	id := &Identity{UID: uid}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["email_verified"].(bool); ok {
		id.EmailVerified = v
	}
	if v, ok := claims["name"].(string); ok {
		id.DisplayName = v
	}
	return id
}
