package dto

import "time"

// Detail codes returned in {"detail": ...} error bodies.
const (
	DetailRegisterUserAlreadyExists    = "REGISTER_USER_ALREADY_EXISTS"
	DetailRegisterInvalidPassword      = "REGISTER_INVALID_PASSWORD"
	DetailLoginBadCredentials          = "LOGIN_BAD_CREDENTIALS"
	DetailLoginUserNotVerified         = "LOGIN_USER_NOT_VERIFIED"
	DetailResetPasswordBadToken        = "RESET_PASSWORD_BAD_TOKEN"
	DetailResetPasswordInvalidPassword = "RESET_PASSWORD_INVALID_PASSWORD"
	DetailVerifyUserBadToken           = "VERIFY_USER_BAD_TOKEN"
	DetailVerifyUserAlreadyVerified    = "VERIFY_USER_ALREADY_VERIFIED"
	DetailUpdateUserEmailAlreadyExists = "UPDATE_USER_EMAIL_ALREADY_EXISTS"
	DetailUpdateUserInvalidPassword    = "UPDATE_USER_INVALID_PASSWORD"
)

// User is the account as seen by the client. Name is the display name.
type User struct {
	Id          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name,omitempty"`
	FullName    string     `json:"full_name,omitempty"`
	Username    string     `json:"username,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsVerified  bool       `json:"is_verified"`
	IsSuperuser bool       `json:"is_superuser"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// DisplayName prefers the full name, then the display name, then the email.
func (u User) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FullName    string `json:"full_name,omitempty"`
	Username    string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserUpdate is used for both PATCH /me and the admin PATCH /users/{id}.
type UserUpdate struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName    *string `json:"full_name,omitempty"`
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    *string `json:"password,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsVerified  *bool   `json:"is_verified,omitempty"`
}

type UserListQuery struct {
	Page       int    `query:"page"`
	Size       int    `query:"size"`
	Search     string `query:"search"`
	IsActive   *bool  `query:"is_active"`
	IsVerified *bool  `query:"is_verified"`
}

type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Pages int    `json:"pages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorDetail is the structured form of "detail" for password policy failures.
type ErrorDetail struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ErrorResponse mirrors the backend's {"detail": <string|ErrorDetail>} body.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}
