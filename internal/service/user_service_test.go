package service

import (
	"context"
	"testing"

	"codebenders/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMe(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	id := s.register(t, "ada@example.com")
	s.register(t, "bob@example.com")
	_, err := s.users.VerifyUser(ctx, id.String())
	require.NoError(t, err)

	_, err = s.users.UpdateMe(ctx, id, &dto.UserUpdate{Email: strPtr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// self updates cannot touch account flags
	user, err := s.users.UpdateMe(ctx, id, &dto.UserUpdate{FullName: strPtr("Ada L."), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", user.FullName)
	assert.True(t, user.IsActive)
	assert.True(t, user.IsVerified)

	user, err = s.users.UpdateMe(ctx, id, &dto.UserUpdate{Email: strPtr("lovelace@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "lovelace@example.com", user.Email)
	assert.False(t, user.IsVerified)

	_, err = s.users.UpdateMe(ctx, id, &dto.UserUpdate{Password: strPtr("tiny")})
	var pe *PasswordError
	assert.ErrorAs(t, err, &pe)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	id := s.register(t, "ada@example.com")

	err := s.users.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "battery-staple"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, s.users.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "battery-staple"}))
	_, err = s.auth.Login(ctx, &dto.LoginForm{Username: "ada@example.com", Password: "battery-staple"})
	assert.NoError(t, err)
}

func TestDeleteMeRemovesProjects(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	id := s.register(t, "ada@example.com")

	project, err := s.projects.Create(ctx, id, &dto.CreateProjectRequest{Name: "Bikes"})
	require.NoError(t, err)

	require.NoError(t, s.users.DeleteMe(ctx, id))
	_, err = s.users.Me(ctx, id)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.projects.Get(ctx, id, project.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		s.register(t, email)
	}
	_, err := s.users.BanUser(ctx, s.mustFind(t, "b@example.com").String())
	require.NoError(t, err)

	tests := []struct {
		name  string
		query dto.UserListQuery
		total int
		count int
		pages int
	}{
		{name: "defaults", query: dto.UserListQuery{}, total: 3, count: 3, pages: 1},
		{name: "paged", query: dto.UserListQuery{Page: 2, Size: 2}, total: 3, count: 1, pages: 2},
		{name: "active only", query: dto.UserListQuery{IsActive: boolPtr(true)}, total: 2, count: 2, pages: 1},
		{name: "search", query: dto.UserListQuery{Search: "c@"}, total: 1, count: 1, pages: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.users.ListUsers(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.total, res.Total)
			assert.Len(t, res.Users, tt.count)
			assert.Equal(t, tt.pages, res.Pages)
		})
	}

	_, err = s.users.ListUsers(ctx, dto.UserListQuery{Size: 101})
	assert.ErrorIs(t, err, ErrInvalidPagination)
}

func TestAdminUserActions(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	id := s.register(t, "ada@example.com").String()

	_, err := s.users.GetUser(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.users.GetUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, err := s.users.BanUser(ctx, id)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	user, err = s.users.UnbanUser(ctx, id)
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	user, err = s.users.UpdateUser(ctx, id, &dto.UserUpdate{IsVerified: boolPtr(true), Username: strPtr("ada")})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Equal(t, "ada", user.Username)

	require.NoError(t, s.users.DeleteUser(ctx, id))
	_, err = s.users.GetUser(ctx, id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func (s *services) mustFind(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := s.userRepo.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.Id
}
