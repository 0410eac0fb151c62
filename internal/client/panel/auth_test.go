package panel

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/client/apiclient"
	"codebenders/internal/client/route"
	"codebenders/internal/dto"
)

func TestLoginStoresSessionAndOpensDashboard(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "user@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "Password1", r.PostForm.Get("password"))
		jsonHandler(http.StatusOK, `{"access_token":"abc","user":{"email":"user@example.com"}}`)(w, r)
	})

	user, err := NewAuth(env.deps).Login(context.Background(), "user@example.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)

	assert.Equal(t, "abc", env.deps.State.Token())
	require.NotNil(t, env.deps.State.User())
	assert.Equal(t, "user@example.com", env.deps.State.User().Email)
	assert.Equal(t, route.Dashboard, env.deps.Router.Current().Path)
}

func TestLoginFailureIsSurfaced(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "backend unreachable",
			check: func(t *testing.T, err error) {
				assert.True(t, apiclient.IsTransport(err))
			},
		},
		{
			name:    "bad credentials",
			handler: jsonHandler(http.StatusBadRequest, `{"detail":"LOGIN_BAD_CREDENTIALS"}`),
			check: func(t *testing.T, err error) {
				assert.Equal(t, "Invalid email or password.", Message(err, ""))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.handler)

			_, err := NewAuth(env.deps).Login(context.Background(), "user@example.com", "Password1")
			require.Error(t, err)
			tt.check(t, err)

			assert.Empty(t, env.deps.State.Token())
			assert.Nil(t, env.deps.State.User())
			assert.Equal(t, route.Login, env.deps.Router.Current().Path)
		})
	}
}

func TestLoginDemoMode(t *testing.T) {
	t.Run("synthesizes a session when unreachable", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.deps.DemoMode = true

		user, err := NewAuth(env.deps).Login(context.Background(), "jane@example.com", "whatever")
		require.NoError(t, err)

		assert.Equal(t, "jane", user.Name)
		assert.True(t, strings.HasPrefix(user.Id, "mock-user-"))
		assert.True(t, strings.HasPrefix(env.deps.State.Token(), "mock-token-"))
		assert.Equal(t, route.Dashboard, env.deps.Router.Current().Path)
	})

	t.Run("still surfaces rejected credentials", func(t *testing.T) {
		env := newTestEnv(t, jsonHandler(http.StatusBadRequest, `{"detail":"LOGIN_BAD_CREDENTIALS"}`))
		env.deps.DemoMode = true

		_, err := NewAuth(env.deps).Login(context.Background(), "jane@example.com", "whatever")
		require.Error(t, err)
		assert.Empty(t, env.deps.State.Token())
	})
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `{}`))

	_, err := NewAuth(env.deps).Login(context.Background(), "  ", "Password1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, env.callCount())
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name     string
		form     SignupForm
		handler  http.HandlerFunc
		wantMsg  string
		wantCall bool
	}{
		{
			name:    "missing field",
			form:    SignupForm{Name: "Jane", Email: "jane@example.com", Password: "Password1"},
			wantMsg: "Please fill in all fields",
		},
		{
			name:    "mismatch",
			form:    SignupForm{Name: "Jane", Email: "jane@example.com", Password: "Password1", ConfirmPassword: "Password2"},
			wantMsg: "Passwords do not match",
		},
		{
			name:    "too short",
			form:    SignupForm{Name: "Jane", Email: "jane@example.com", Password: "short", ConfirmPassword: "short"},
			wantMsg: "Password must be at least 8 characters long",
		},
		{
			name:     "already exists",
			form:     SignupForm{Name: "Jane", Email: "jane@example.com", Password: "Password1", ConfirmPassword: "Password1"},
			handler:  jsonHandler(http.StatusBadRequest, `{"detail":"REGISTER_USER_ALREADY_EXISTS"}`),
			wantMsg:  "A user with this email already exists.",
			wantCall: true,
		},
		{
			name:     "password policy",
			form:     SignupForm{Name: "Jane", Email: "jane@example.com", Password: "password1", ConfirmPassword: "password1"},
			handler:  jsonHandler(http.StatusBadRequest, `{"detail":{"code":"REGISTER_INVALID_PASSWORD","reason":"Password must contain an uppercase letter"}}`),
			wantMsg:  "Password must contain an uppercase letter",
			wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.handler
			if h == nil {
				h = jsonHandler(http.StatusCreated, `{"id":"u-1"}`)
			}
			env := newTestEnv(t, h)

			_, err := NewAuth(env.deps).Signup(context.Background(), tt.form)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, Message(err, ""))
			assert.Equal(t, tt.wantCall, env.callCount() > 0)
		})
	}
}

func TestSignupSuccessReturnsToLogin(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		jsonHandler(http.StatusCreated, `{"id":"u-1","email":"jane@example.com","full_name":"Jane Doe"}`)(w, r)
	})
	require.NoError(t, env.deps.Router.Navigate(route.Signup))

	user, err := NewAuth(env.deps).Signup(context.Background(), SignupForm{
		Name: "Jane Doe", Email: "jane@example.com", Password: "Password1", ConfirmPassword: "Password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.DisplayName())
	assert.Equal(t, route.Login, env.deps.Router.Current().Path)
	assert.Empty(t, env.deps.State.Token())
}

func TestResetPassword(t *testing.T) {
	t.Run("token comes from the route", func(t *testing.T) {
		env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		})
		require.NoError(t, env.deps.Router.Navigate(route.ResetPasswordLink("t0k3n")))

		err := NewAuth(env.deps).ResetPassword(context.Background(), ResetForm{Password: "Password1", ConfirmPassword: "Password1"})
		require.NoError(t, err)
		assert.Equal(t, route.Login, env.deps.Router.Current().Path)
	})

	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv(t, jsonHandler(http.StatusOK, `{}`))
		require.NoError(t, env.deps.Router.Navigate(route.ResetPassword))

		err := NewAuth(env.deps).ResetPassword(context.Background(), ResetForm{Password: "Password1", ConfirmPassword: "Password1"})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Zero(t, env.callCount())
	})

	t.Run("bad token", func(t *testing.T) {
		env := newTestEnv(t, jsonHandler(http.StatusBadRequest, `{"detail":"RESET_PASSWORD_BAD_TOKEN"}`))
		require.NoError(t, env.deps.Router.Navigate(route.ResetPasswordLink("expired")))

		err := NewAuth(env.deps).ResetPassword(context.Background(), ResetForm{Password: "Password1", ConfirmPassword: "Password1"})
		require.Error(t, err)
		assert.Equal(t, "Invalid or expired reset token. Please request a new password reset.", Message(err, ""))
		assert.Equal(t, route.ResetPassword, env.deps.Router.Current().Path)
	})
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.deps.State.SetSession("abc", dto.User{Id: "u-1"}))
	require.NoError(t, env.deps.State.SetCurrentProject(dto.Project{Id: "p-1"}))
	require.NoError(t, env.deps.Router.Navigate(route.Dashboard))

	require.NoError(t, NewAuth(env.deps).Logout(context.Background()))

	assert.Empty(t, env.deps.State.Token())
	assert.Nil(t, env.deps.State.User())
	assert.Nil(t, env.deps.State.CurrentProject())
	assert.Equal(t, route.Login, env.deps.Router.Current().Path)
}

func TestForgotPasswordRequiresEmail(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusAccepted, `{}`))

	err := NewAuth(env.deps).ForgotPassword(context.Background(), "")
	assert.True(t, IsValidation(err))

	require.NoError(t, NewAuth(env.deps).ForgotPassword(context.Background(), "jane@example.com"))
	assert.Equal(t, int64(1), env.callCount())
}
