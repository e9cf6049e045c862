package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account holder. Email is stored lowercase; normalization
// happens in the repository on create/update.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:225;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:225;uniqueIndex"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile Profile `json:"profile" gorm:"constraint:OnDelete:CASCADE"`
}

// Author is the compact user representation embedded in posts, comments
// and follower lists.
type Author struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

// ToAuthor flattens a user and its profile into the compact author shape.
// The profile must be preloaded; a zero profile falls back to the username.
func (u *User) ToAuthor() Author {
	name := u.Profile.Name
	if name == "" {
		name = u.Username
	}
	return Author{
		ID:           u.ID,
		Username:     u.Username,
		Name:         name,
		ProfileImage: u.Profile.ProfileImage,
	}
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=225"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	Password2   string `json:"password2" validate:"required"`
}

type SendResetPasswordEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required"`
}

// CredentialsRequest re-checks username/password for account state changes.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
