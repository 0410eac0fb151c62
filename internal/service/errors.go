package service

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrBadCredentials     = errors.New("bad credentials")
	ErrBadToken           = errors.New("bad or expired token")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidPagination  = errors.New("invalid pagination")

	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name is required")

	ErrEmptyPRD          = errors.New("prd text is empty")
	ErrNoPersonas        = errors.New("no personas selected")
	ErrBrandNameRequired = errors.New("brand name is required")
	ErrBrandColors       = errors.New("brand colors are required")
	ErrNoAPIs            = errors.New("no APIs selected")
	ErrNoProviders       = errors.New("no providers selected")
	ErrPreviewFailed     = errors.New("preview generation failed")
)

// PasswordError is a password policy failure. Reason is shown to the user.
type PasswordError struct {
	Reason string
}

func (e *PasswordError) Error() string {
	return "invalid password: " + e.Reason
}
