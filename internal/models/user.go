package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Account roles
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex"` // public handle
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"` // bcrypt hash, never serialized
	Role        string `json:"role" gorm:"size:20;default:user"`
	Suspended   bool   `json:"suspended" gorm:"default:false"`
	Banned      bool   `json:"banned" gorm:"default:false"`
	AvatarPath  string `json:"avatar_path,omitempty"`
	Bio         string `json:"bio,omitempty"`
	FirebaseUID string `json:"-" gorm:"index"` // set for federated accounts
}

// IsModerator reports whether the account holds moderator or admin role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// IsAdmin reports whether the account holds admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserCompact is the embedded author/actor view of an account
type UserCompact struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	AvatarPath string `json:"avatar_path,omitempty"`
}

// ToCompact returns the compact view of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		AvatarPath: u.AvatarPath,
	}
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=2,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for local sign-in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for self-service profile edits
type UpdateProfileRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio  string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// ChangeRoleRequest defines the request body for the admin role-change endpoint
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

// ModerationRequest carries the optional reason for suspend/ban actions
type ModerationRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// PasswordResetInitRequest starts a password reset
type PasswordResetInitRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetCompleteRequest completes a password reset
type PasswordResetCompleteRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// FirebaseLoginRequest defines the request body for federated login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
