package memory

import (
	"context"
	"testing"
	"time"

	"codebenders/internal/dto"
	"codebenders/internal/entity"
	"codebenders/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string, created time.Time) *entity.User {
	return &entity.User{Id: uuid.New(), Email: email, IsActive: true, CreatedAt: created}
}

func TestUserRepositoryEmailIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	ada := newUser("Ada@Example.com", time.Now())
	require.NoError(t, repo.Create(ctx, ada))
	assert.ErrorIs(t, repo.Create(ctx, newUser("ada@example.com", time.Now())), contract.ErrDuplicateEmail)

	found, err := repo.FindByEmail(ctx, " ADA@example.com ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ada.Id, found.Id)

	bob := newUser("bob@example.com", time.Now())
	require.NoError(t, repo.Create(ctx, bob))

	bob.Email = "ada@example.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), contract.ErrDuplicateEmail)

	bob.Email = "robert@example.com"
	require.NoError(t, repo.Update(ctx, bob))
	old, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, old)

	require.NoError(t, repo.Delete(ctx, bob.Id))
	gone, err := repo.FindByEmail(ctx, "robert@example.com")
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.ErrorIs(t, repo.Delete(ctx, bob.Id), contract.ErrNotFound)
}

func TestUserRepositoryFindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, email := range []string{"a@x.io", "b@x.io", "c@y.io"} {
		u := newUser(email, base.Add(time.Duration(i)*time.Minute))
		u.IsVerified = i != 1
		require.NoError(t, repo.Create(ctx, u))
	}

	verified := true
	tests := []struct {
		name   string
		filter contract.UserFilter
		want   []string
		total  int
	}{
		{name: "all", filter: contract.UserFilter{}, want: []string{"a@x.io", "b@x.io", "c@y.io"}, total: 3},
		{name: "search", filter: contract.UserFilter{Search: "X.IO"}, want: []string{"a@x.io", "b@x.io"}, total: 2},
		{name: "verified", filter: contract.UserFilter{IsVerified: &verified}, want: []string{"a@x.io", "c@y.io"}, total: 2},
		{name: "second page", filter: contract.UserFilter{Offset: 2, Limit: 2}, want: []string{"c@y.io"}, total: 3},
		{name: "past the end", filter: contract.UserFilter{Offset: 5, Limit: 2}, want: []string{}, total: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := repo.FindAll(ctx, tt.filter)
			require.NoError(t, err)
			emails := []string{}
			for _, u := range users {
				emails = append(emails, u.Email)
			}
			assert.Equal(t, tt.want, emails)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestProjectRepositoryScopesByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()
	owner, other := uuid.New(), uuid.New()
	base := time.Now()

	older := &entity.Project{Id: uuid.New(), OwnerId: owner, Name: "Bikes", CreatedAt: base}
	newer := &entity.Project{Id: uuid.New(), OwnerId: owner, Name: "Boats", CreatedAt: base.Add(time.Second)}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, &entity.Project{Id: uuid.New(), OwnerId: other, Name: "Bikes"}))

	projects, total, err := repo.FindAll(ctx, contract.ProjectFilter{OwnerId: owner})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, newer.Id, projects[0].Id)

	projects, _, err = repo.FindAll(ctx, contract.ProjectFilter{OwnerId: owner, Search: "bike"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, older.Id, projects[0].Id)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Project{Id: uuid.New()}), contract.ErrNotFound)

	require.NoError(t, repo.DeleteByOwner(ctx, owner))
	_, total, err = repo.FindAll(ctx, contract.ProjectFilter{OwnerId: owner})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository()
	userID := uuid.New()

	require.NoError(t, repo.Save(ctx, &entity.OneTimeToken{
		Token: "abc", UserId: userID, Purpose: entity.TokenPurposeResetPassword, ExpiresAt: time.Now().Add(time.Hour),
	}))

	wrong, err := repo.Consume(ctx, entity.TokenPurposeVerifyEmail, "abc")
	require.NoError(t, err)
	assert.Nil(t, wrong)

	tok, err := repo.Consume(ctx, entity.TokenPurposeResetPassword, "abc")
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, userID, tok.UserId)

	again, err := repo.Consume(ctx, entity.TokenPurposeResetPassword, "abc")
	require.NoError(t, err)
	assert.Nil(t, again, "tokens are single use")

	require.NoError(t, repo.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	assert.True(t, repo.IsRevoked(ctx, "jti-1"))
	assert.False(t, repo.IsRevoked(ctx, "jti-2"))
}

func TestWorkspaceRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkspaceRepository(time.Hour)

	ws, err := repo.Get(ctx, "project:p-1")
	require.NoError(t, err)
	assert.Equal(t, "project:p-1", ws.Key)
	assert.Nil(t, ws.PRD)

	ws.Personas = []dto.Persona{{Id: "persona-1"}}
	ws.Providers = map[string]string{"payment": "Stripe"}
	require.NoError(t, repo.Save(ctx, ws))

	ws.Providers["payment"] = "PayPal"
	stored, err := repo.Get(ctx, "project:p-1")
	require.NoError(t, err)
	assert.Equal(t, "Stripe", stored.Providers["payment"])
	assert.False(t, stored.UpdatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, "project:p-1"))
	empty, err := repo.Get(ctx, "project:p-1")
	require.NoError(t, err)
	assert.Empty(t, empty.Personas)
}
