package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/pkg/firebase"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

const SearchLimit = 20

// IDTokenVerifier checks a third-party identity token.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebase.Identity, error)
}

// AccountService covers registration, login, tokens and the member profile.
type AccountService struct {
	stores    Stores
	tokens    *TokenIssuer
	blacklist repositories.TokenBlacklist
	verifier  IDTokenVerifier
	activity  *ActivityLog
	now       Clock
}

// NewAccountService builds the service. verifier may be nil, which turns
// off Firebase login.
func NewAccountService(stores Stores, tokens *TokenIssuer, blacklist repositories.TokenBlacklist, verifier IDTokenVerifier, activity *ActivityLog) *AccountService {
	return &AccountService{
		stores:    stores,
		tokens:    tokens,
		blacklist: blacklist,
		verifier:  verifier,
		activity:  activity,
		now:       time.Now,
	}
}

func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, models.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.stores.Users.GetUserByEmail(ctx, email); err == nil {
		return nil, models.TokenPair{}, fieldError("email", "A user with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, models.TokenPair{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	user := models.NewUser(email, req.FirstName, req.LastName)
	user.Password = string(hash)
	user.Headline = req.Headline
	user.IsCompanyUser = req.IsCompanyUser
	user.ExperienceLevel = models.ExperienceLevel(req.ExperienceLevel)

	if err := s.stores.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.TokenPair{}, fieldError("email", "A user with this email already exists")
		}
		return nil, models.TokenPair{}, err
	}
	metrics.AuthEvents.WithLabelValues("register", "success").Inc()
	pair, err := s.tokens.Issue(user)
	return user, pair, err
}

// Login checks the password and records the login.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest, viewer models.Viewer) (*models.User, models.TokenPair, error) {
	user, err := s.stores.Users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
			return nil, models.TokenPair{}, unauthorized("Invalid credentials")
		}
		return nil, models.TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
		return nil, models.TokenPair{}, unauthorized("Invalid credentials")
	}
	if !user.IsActive {
		return nil, models.TokenPair{}, unauthorized("Account is disabled")
	}
	return s.startSession(ctx, user, viewer)
}

func (s *AccountService) startSession(ctx context.Context, user *models.User, viewer models.Viewer) (*models.User, models.TokenPair, error) {
	now := s.now()
	if err := s.stores.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, models.TokenPair{}, err
	}
	user.LastLogin = &now
	metrics.AuthEvents.WithLabelValues("login", "success").Inc()
	s.activity.Track(ctx, models.Activity{
		UserID:    user.ID,
		Type:      models.ActivityLogin,
		IPAddress: viewer.IP,
		UserAgent: viewer.UserAgent,
	})
	pair, err := s.tokens.Issue(user)
	return user, pair, err
}

// Refresh rotates the refresh token: the old one is revoked.
func (s *AccountService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	claims, err := s.tokens.Parse(refresh, models.TokenTypeRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return models.TokenPair{}, err
	}
	if revoked {
		return models.TokenPair{}, unauthorized("Token has been revoked")
	}
	user, err := s.stores.Users.GetUserByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return models.TokenPair{}, unauthorized("User not found or inactive")
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return models.TokenPair{}, err
	}
	metrics.AuthEvents.WithLabelValues("refresh", "success").Inc()
	return s.tokens.Issue(user)
}

// Logout revokes the current access token and, when given, the member's
// refresh token.
func (s *AccountService) Logout(ctx context.Context, access *models.JwtCustomClaims, refresh string) error {
	if err := s.blacklist.Revoke(ctx, access.ID, access.ExpiresAt.Time); err != nil {
		return err
	}
	if refresh != "" {
		claims, err := s.tokens.Parse(refresh, models.TokenTypeRefresh)
		if err != nil {
			return err
		}
		if claims.UserID != access.UserID {
			return forbidden("Refresh token belongs to another user")
		}
		if err := s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return err
		}
	}
	metrics.AuthEvents.WithLabelValues("logout", "success").Inc()
	s.activity.trackObject(ctx, access.UserID, models.ActivityLogout, "", 0)
	return nil
}

// FirebaseLogin signs in with a Firebase ID token, linking the Firebase
// account to an existing member by email or creating a new member.
func (s *AccountService) FirebaseLogin(ctx context.Context, idToken string, viewer models.Viewer) (*models.User, models.TokenPair, error) {
	if s.verifier == nil {
		return nil, models.TokenPair{}, &Error{Kind: KindUnavailable, Message: "Firebase login is not configured"}
	}
	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		metrics.AuthEvents.WithLabelValues("firebase", "failure").Inc()
		return nil, models.TokenPair{}, unauthorized("Invalid Firebase ID token")
	}

	user, err := s.stores.Users.GetUserByFirebaseUID(ctx, identity.UID)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.linkFirebase(ctx, identity)
		if err != nil {
			return nil, models.TokenPair{}, err
		}
	default:
		return nil, models.TokenPair{}, err
	}
	if !user.IsActive {
		return nil, models.TokenPair{}, unauthorized("Account is disabled")
	}
	return s.startSession(ctx, user, viewer)
}

func (s *AccountService) linkFirebase(ctx context.Context, identity *firebase.Identity) (*models.User, error) {
	if identity.Email == "" {
		return nil, unauthorized("Firebase account has no email address")
	}
	uid := identity.UID
	user, err := s.stores.Users.GetUserByEmail(ctx, strings.ToLower(identity.Email))
	switch {
	case err == nil:
		user.FirebaseUID = &uid
		return user, s.stores.Users.UpdateUser(ctx, user)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}
	first, last, _ := strings.Cut(strings.TrimSpace(identity.DisplayName), " ")
	user = models.NewUser(identity.Email, first, last)
	user.FirebaseUID = &uid
	user.IsVerified = identity.EmailVerified
	if err := s.stores.Users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	metrics.AuthEvents.WithLabelValues("register", "firebase").Inc()
	return user, nil
}

func (s *AccountService) Me(ctx context.Context, actor uint) (*models.User, error) {
	user, err := s.stores.Users.GetUserByID(ctx, actor)
	return user, storeError(err, "User")
}

func (s *AccountService) ChangePassword(ctx context.Context, actor uint, req models.ChangePasswordRequest) error {
	user, err := s.stores.Users.GetUserByID(ctx, actor)
	if err != nil {
		return storeError(err, "User")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return fieldError("old_password", "Old password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return s.stores.Users.UpdateUser(ctx, user)
}

func (s *AccountService) UpdateProfile(ctx context.Context, actor uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.stores.Users.GetUserByID(ctx, actor)
	if err != nil {
		return nil, storeError(err, "User")
	}
	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setString(&user.Headline, req.Headline)
	setString(&user.Summary, req.Summary)
	setString(&user.Location, req.Location)
	setString(&user.ProfilePictureURL, req.ProfilePictureURL)
	setString(&user.CurrentPosition, req.CurrentPosition)
	setString(&user.Industry, req.Industry)
	if req.ExperienceLevel != nil {
		user.ExperienceLevel = models.ExperienceLevel(*req.ExperienceLevel)
	}
	setBool(&user.PrivacyPublicProfile, req.PrivacyPublicProfile)
	setBool(&user.PrivacyShowConnections, req.PrivacyShowConnections)
	if err := s.stores.Users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.activity.trackObject(ctx, actor, models.ActivityProfileEdit, "user", actor)
	return user, nil
}

func (s *AccountService) ListUsers(ctx context.Context, actor uint, page repositories.Page) ([]models.User, int64, error) {
	return s.stores.Users.ListPublicUsers(ctx, actor, page)
}

// GetUser returns a member profile. Private profiles are only shown to the
// member and their connections.
func (s *AccountService) GetUser(ctx context.Context, viewer, id uint) (*models.User, error) {
	user, err := viewableUser(ctx, s.stores, viewer, id)
	if err != nil {
		return nil, err
	}
	if viewer != id {
		s.activity.trackObject(ctx, viewer, models.ActivityProfileView, "user", id)
	}
	return user, nil
}

// viewableUser loads a member and checks that viewer may see their profile.
func viewableUser(ctx context.Context, stores Stores, viewer, id uint) (*models.User, error) {
	user, err := stores.Users.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User")
	}
	if viewer == id {
		return user, nil
	}
	if !user.IsActive {
		return nil, notFound("User not found")
	}
	blocked, err := stores.Blocks.IsBlockedEither(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, notFound("User not found")
	}
	if !user.PrivacyPublicProfile {
		connected, err := stores.Connections.AreConnected(ctx, viewer, id)
		if err != nil {
			return nil, err
		}
		if !connected {
			return nil, forbidden("This profile is private")
		}
	}
	return user, nil
}

func (s *AccountService) Search(ctx context.Context, actor uint, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}
	s.activity.Track(ctx, models.Activity{
		UserID:   actor,
		Type:     models.ActivitySearch,
		Metadata: map[string]interface{}{"query": query, "scope": "users"},
	})
	users, err := s.stores.Users.SearchUsers(ctx, query, actor, SearchLimit)
	return nonNil(users), err
}
