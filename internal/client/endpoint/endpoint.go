// Package endpoint maps logical backend operations to REST paths.
//
// Nothing here is validated at runtime: a path that drifts from the backend's
// routes only shows up as a 404 when the call is made.
package endpoint

import "net/url"

// Authentication
const (
	Login              = "/api/v1/auth/login"
	Register           = "/api/v1/auth/register"
	Logout             = "/api/v1/auth/logout"
	ForgotPassword     = "/api/v1/auth/forgot-password"
	ResetPassword      = "/api/v1/auth/reset-password"
	RequestVerifyToken = "/api/v1/auth/request-verify-token"
	Verify             = "/api/v1/auth/verify"
	AuthHealth         = "/api/v1/auth/health"
)

// Current user
const (
	Me             = "/api/v1/auth/me"
	ChangePassword = "/api/v1/auth/me/change-password"
)

// User management (admin)
const Users = "/api/v1/auth/users"

// Projects
const Projects = "/api/v1/projects"

// Health
const Health = "/api/v1/health"

// Wizard features
const (
	UploadPRD                 = "/api/upload_prd"
	GetUserPersonas           = "/api/get_userpersonas"
	UploadUserPersonas        = "/api/upload_userpersonas"
	GetBrandDesign            = "/api/get_branddesign"
	UploadBrandDesign         = "/api/upload_branddesign"
	GetThirdParty             = "/api/get_thirdparty"
	UploadThirdParty          = "/api/upload_thirdparty"
	UploadThirdPartyProviders = "/api/upload_thirdparty_providers"
	GeneratePreview           = "/api/generate_preview"
)

func UserByID(userID string) string {
	return Users + "/" + url.PathEscape(userID)
}

func VerifyUser(userID string) string {
	return UserByID(userID) + "/verify"
}

func BanUser(userID string) string {
	return UserByID(userID) + "/ban"
}

func UnbanUser(userID string) string {
	return UserByID(userID) + "/unban"
}

func ProjectByID(projectID string) string {
	return Projects + "/" + url.PathEscape(projectID)
}

func ProjectStats(projectID string) string {
	return ProjectByID(projectID) + "/stats"
}
