package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Username     string
	PhoneNumber  string
	Role         UserRole
	IsActive     bool // false once banned
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

type TokenPurpose string

const (
	TokenPurposeResetPassword TokenPurpose = "reset_password"
	TokenPurposeVerifyEmail   TokenPurpose = "verify_email"
)

// OneTimeToken is a mailed reset or verification token. It is removed on use.
type OneTimeToken struct {
	Token     string
	UserId    uuid.UUID
	Purpose   TokenPurpose
	ExpiresAt time.Time
}
