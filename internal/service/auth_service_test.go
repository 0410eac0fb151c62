package service

import (
	"context"
	"testing"

	"codebenders/internal/dto"
	"codebenders/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	s.register(t, "ada@example.com")

	tests := []struct {
		name   string
		req    dto.RegisterRequest
		err    error
		reason string
	}{
		{name: "duplicate", req: dto.RegisterRequest{Email: "ada@example.com", Password: "long-enough"}, err: ErrUserAlreadyExists},
		{name: "duplicate ignores case", req: dto.RegisterRequest{Email: "ADA@example.com", Password: "long-enough"}, err: ErrUserAlreadyExists},
		{name: "short password", req: dto.RegisterRequest{Email: "bob@example.com", Password: "short"}, reason: "Password should be at least 8 characters"},
		{name: "password contains email", req: dto.RegisterRequest{Email: "bob@example.com", Password: "xbob@example.comx"}, reason: "Password should not contain e-mail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.auth.Register(ctx, &tt.req)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			var pe *PasswordError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.reason, pe.Reason)
		})
	}

	user, err := s.auth.Register(ctx, &dto.RegisterRequest{Email: " bob@example.com ", Password: "long-enough", Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsSuperuser)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	id := s.register(t, "ada@example.com")

	res, err := s.auth.Login(ctx, &dto.LoginForm{Username: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, "Ada", res.User.Name)

	claims, err := s.jwt.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "user", claims.Role)

	for _, form := range []dto.LoginForm{
		{Username: "ada@example.com", Password: "wrong-horse"},
		{Username: "nobody@example.com", Password: "correct-horse"},
	} {
		_, err := s.auth.Login(ctx, &form)
		assert.ErrorIs(t, err, ErrBadCredentials)
	}

	_, err = s.users.BanUser(ctx, id.String())
	require.NoError(t, err)
	_, err = s.auth.Login(ctx, &dto.LoginForm{Username: "ada@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	s.register(t, "ada@example.com")

	res, err := s.auth.Login(ctx, &dto.LoginForm{Username: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	claims, err := s.jwt.Parse(res.AccessToken)
	require.NoError(t, err)

	require.NoError(t, s.auth.Logout(ctx, claims))
	assert.True(t, s.tokenRepo.IsRevoked(ctx, claims.TokenID))
	assert.NoError(t, s.auth.Logout(ctx, nil))
}

func TestForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	s.register(t, "ada@example.com")

	require.NoError(t, s.auth.ForgotPassword(ctx, "nobody@example.com"))
	assert.Empty(t, s.publisher.events)

	require.NoError(t, s.auth.ForgotPassword(ctx, "ada@example.com"))
	event := s.publisher.last(t)
	assert.Equal(t, events.TypePasswordResetRequested, event.Type)
	assert.Equal(t, "ada@example.com", event.String("email"))
	token := event.String("token")
	require.NotEmpty(t, token)

	err := s.auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, Password: "short"})
	var pe *PasswordError
	require.ErrorAs(t, err, &pe)

	// the token survives a policy failure
	require.NoError(t, s.auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, Password: "battery-staple"}))
	err = s.auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, Password: "battery-staple"})
	assert.ErrorIs(t, err, ErrBadToken)

	_, err = s.auth.Login(ctx, &dto.LoginForm{Username: "ada@example.com", Password: "battery-staple"})
	assert.NoError(t, err)
	_, err = s.auth.Login(ctx, &dto.LoginForm{Username: "ada@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	s.register(t, "ada@example.com")

	_, err := s.auth.Verify(ctx, "made-up")
	assert.ErrorIs(t, err, ErrBadToken)

	require.NoError(t, s.auth.RequestVerifyToken(ctx, "ada@example.com"))
	event := s.publisher.last(t)
	assert.Equal(t, events.TypeVerificationRequested, event.Type)

	user, err := s.auth.Verify(ctx, event.String("token"))
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// verified accounts get no new token
	before := len(s.publisher.events)
	require.NoError(t, s.auth.RequestVerifyToken(ctx, "ada@example.com"))
	assert.Len(t, s.publisher.events, before)
}

func TestVerifyAlreadyVerified(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	id := s.register(t, "ada@example.com")

	require.NoError(t, s.auth.RequestVerifyToken(ctx, "ada@example.com"))
	token := s.publisher.last(t).String("token")
	_, err := s.users.VerifyUser(ctx, id.String())
	require.NoError(t, err)

	_, err = s.auth.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestSeedUser(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	require.NoError(t, s.auth.SeedUser(ctx, "admin@codebenders.dev", "Password1", "Admin", true))
	require.NoError(t, s.auth.SeedUser(ctx, "admin@codebenders.dev", "other-password", "Admin", false))

	res, err := s.auth.Login(ctx, &dto.LoginForm{Username: "admin@codebenders.dev", Password: "Password1"})
	require.NoError(t, err)
	assert.True(t, res.User.IsSuperuser)
	assert.True(t, res.User.IsVerified)

	assert.NoError(t, s.auth.SeedUser(ctx, "", "", "", false))
}
