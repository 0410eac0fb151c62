package panel

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"codebenders/internal/client/apiclient"
	"codebenders/internal/client/route"
	"codebenders/internal/dto"
)

const minPasswordLength = 8

var detailMessages = map[string]string{
	dto.DetailRegisterUserAlreadyExists:    "A user with this email already exists.",
	dto.DetailRegisterInvalidPassword:      "Password validation failed.",
	dto.DetailResetPasswordBadToken:        "Invalid or expired reset token. Please request a new password reset.",
	dto.DetailResetPasswordInvalidPassword: "Password validation failed.",
	dto.DetailLoginBadCredentials:          "Invalid email or password.",
	dto.DetailLoginUserNotVerified:         "Please verify your email address before logging in.",
}

type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type ResetForm struct {
	Password        string
	ConfirmPassword string
}

type Auth struct {
	deps *Deps
}

func NewAuth(deps *Deps) *Auth {
	return &Auth{deps: deps}
}

// Login stores the session and goes to the dashboard.
func (a *Auth) Login(ctx context.Context, email, password string) (*dto.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalid("form", "Please fill in all fields")
	}

	res, err := a.deps.Auth.Login(ctx, email, password)
	if err != nil {
		if a.deps.DemoMode && apiclient.IsTransport(err) {
			a.deps.log().Warn(logModule, "Login backend unreachable, using demo session", map[string]interface{}{"email": email})
			return a.demoLogin(ctx, email)
		}
		return nil, err
	}
	if err := live(ctx); err != nil {
		return nil, err
	}

	user := dto.User{Email: email}
	if res.User != nil {
		user = *res.User
	}
	if err := a.deps.State.SetSession(res.AccessToken, user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &user, a.deps.Router.Navigate(route.Dashboard)
}

func (a *Auth) demoLogin(ctx context.Context, email string) (*dto.User, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	ms := a.deps.now().UnixMilli()
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	user := dto.User{
		Id:    fmt.Sprintf("mock-user-%d", ms),
		Email: email,
		Name:  name,
	}
	token := "mock-token-" + base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s%d", email, ms)))

	if err := a.deps.State.SetSession(token, user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &user, a.deps.Router.Navigate(route.Dashboard)
}

// Signup registers the account and returns to the login screen.
func (a *Auth) Signup(ctx context.Context, form SignupForm) (*dto.User, error) {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" || form.Password == "" || form.ConfirmPassword == "" {
		return nil, invalid("form", "Please fill in all fields")
	}
	if form.Password != form.ConfirmPassword {
		return nil, invalid("confirm_password", "Passwords do not match")
	}
	if len(form.Password) < minPasswordLength {
		return nil, invalid("password", "Password must be at least 8 characters long")
	}

	user, err := a.deps.Auth.Register(ctx, &dto.RegisterRequest{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		FullName: strings.TrimSpace(form.Name),
	})
	if err != nil {
		return nil, err
	}
	if err := live(ctx); err != nil {
		return nil, err
	}

	if err := a.deps.State.SetUser(*user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, a.deps.Router.Navigate(route.Login)
}

func (a *Auth) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "Please enter your email address")
	}
	return a.deps.Auth.ForgotPassword(ctx, email)
}

// ResetPassword reads the token from the current route.
func (a *Auth) ResetPassword(ctx context.Context, form ResetForm) error {
	token := a.deps.Router.Param("token")
	if form.Password == "" || form.ConfirmPassword == "" {
		return invalid("form", "Please fill in all fields")
	}
	if form.Password != form.ConfirmPassword {
		return invalid("confirm_password", "Passwords do not match")
	}
	if len(form.Password) < minPasswordLength {
		return invalid("password", "Password must be at least 8 characters long")
	}
	if token == "" {
		return invalid("token", "Invalid or missing reset token. Please request a new password reset.")
	}

	if err := a.deps.Auth.ResetPassword(ctx, token, form.Password); err != nil {
		return err
	}
	if err := live(ctx); err != nil {
		return err
	}
	return a.deps.Router.Navigate(route.Login)
}

// Logout tells the backend when it can, but always clears the local session.
func (a *Auth) Logout(ctx context.Context) error {
	if a.deps.State.Token() != "" {
		if err := a.deps.Auth.Logout(ctx); err != nil {
			a.deps.log().Warn(logModule, "Backend logout failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if err := a.deps.State.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return a.deps.Router.Navigate(route.Login)
}
