package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExperienceLevel is the seniority a member or a job posting targets.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceAssociate ExperienceLevel = "associate"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceDirector  ExperienceLevel = "director"
	ExperienceExecutive ExperienceLevel = "executive"
)

// User is a member account (PostgreSQL)
type User struct {
	ID                     uint            `json:"id" gorm:"primaryKey"`
	Email                  string          `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Password               string          `json:"-"` // bcrypt hash
	FirstName              string          `json:"first_name" gorm:"size:30"`
	LastName               string          `json:"last_name" gorm:"size:30"`
	Headline               string          `json:"headline" gorm:"size:200"`
	Summary                string          `json:"summary" gorm:"type:text"`
	Location               string          `json:"location" gorm:"size:100"`
	ProfilePictureURL      string          `json:"profile_picture_url"`
	CurrentPosition        string          `json:"current_position" gorm:"size:100"`
	Industry               string          `json:"industry" gorm:"size:100;index"`
	ExperienceLevel        ExperienceLevel `json:"experience_level" gorm:"size:20"`
	IsCompanyUser          bool            `json:"is_company_user"`
	IsVerified             bool            `json:"is_verified"`
	PrivacyPublicProfile   bool            `json:"privacy_public_profile"`
	PrivacyShowConnections bool            `json:"privacy_show_connections"`
	IsActive               bool            `json:"is_active" gorm:"index"`
	IsStaff                bool            `json:"is_staff"`
	FirebaseUID            *string         `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	LastLogin              *time.Time      `json:"last_login,omitempty"`
	CreatedAt              time.Time       `json:"date_joined"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// NewUser returns an active member with public privacy defaults.
func NewUser(email, firstName, lastName string) *User {
	return &User{
		Email:                  strings.ToLower(strings.TrimSpace(email)),
		FirstName:              firstName,
		LastName:               lastName,
		PrivacyPublicProfile:   true,
		PrivacyShowConnections: true,
		IsActive:               true,
	}
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) Initials() string {
	var b strings.Builder
	if u.FirstName != "" {
		b.WriteString(u.FirstName[:1])
	}
	if u.LastName != "" {
		b.WriteString(u.LastName[:1])
	}
	return strings.ToUpper(b.String())
}

// UserCompact is the author/actor summary embedded in other payloads.
type UserCompact struct {
	ID                uint   `json:"id"`
	FullName          string `json:"full_name"`
	Initials          string `json:"initials"`
	Headline          string `json:"headline,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:                u.ID,
		FullName:          u.FullName(),
		Initials:          u.Initials(),
		Headline:          u.Headline,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	FirstName       string `json:"first_name" validate:"required,min=1,max=30"`
	LastName        string `json:"last_name" validate:"required,min=1,max=30"`
	Headline        string `json:"headline" validate:"max=200"`
	IsCompanyUser   bool   `json:"is_company_user"`
	ExperienceLevel string `json:"experience_level" validate:"omitempty,oneof=entry associate mid director executive"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// UpdateProfileRequest only touches the fields that are present.
type UpdateProfileRequest struct {
	FirstName              *string `json:"first_name" validate:"omitempty,min=1,max=30"`
	LastName               *string `json:"last_name" validate:"omitempty,min=1,max=30"`
	Headline               *string `json:"headline" validate:"omitempty,max=200"`
	Summary                *string `json:"summary" validate:"omitempty,max=5000"`
	Location               *string `json:"location" validate:"omitempty,max=100"`
	ProfilePictureURL      *string `json:"profile_picture_url" validate:"omitempty,url"`
	CurrentPosition        *string `json:"current_position" validate:"omitempty,max=100"`
	Industry               *string `json:"industry" validate:"omitempty,max=100"`
	ExperienceLevel        *string `json:"experience_level" validate:"omitempty,oneof=entry associate mid director executive"`
	PrivacyPublicProfile   *bool   `json:"privacy_public_profile"`
	PrivacyShowConnections *bool   `json:"privacy_show_connections"`
}

// TokenPair is returned by register, login and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	IsStaff   bool   `json:"is_staff,omitempty"`
	jwt.RegisteredClaims
}

// BlacklistedToken records a revoked token id until it would have expired anyway.
type BlacklistedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JTI       string    `json:"jti" gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
