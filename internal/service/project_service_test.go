package service

import (
	"context"
	"testing"

	"codebenders/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	owner := s.register(t, "ada@example.com")
	other := s.register(t, "bob@example.com")

	_, err := s.projects.Create(ctx, owner, &dto.CreateProjectRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidProjectName)

	project, err := s.projects.Create(ctx, owner, &dto.CreateProjectRequest{Name: " Bikes ", Description: "Rentals"})
	require.NoError(t, err)
	assert.Equal(t, "Bikes", project.Name)
	assert.Equal(t, "draft", project.Status)

	_, err = s.projects.Get(ctx, other, project.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound, "projects are private to their owner")
	_, err = s.projects.Get(ctx, owner, "nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	updated, err := s.projects.Update(ctx, owner, project.Id, &dto.UpdateProjectRequest{Status: strPtr("in_progress")})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, "Bikes", updated.Name)

	list, err := s.projects.List(ctx, owner, dto.ProjectListQuery{})
	require.NoError(t, err)
	assert.True(t, list.Success)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, defaultPageSize, list.Size)

	list, err = s.projects.List(ctx, other, dto.ProjectListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Projects)

	require.NoError(t, s.projects.Delete(ctx, owner, project.Id))
	assert.ErrorIs(t, s.projects.Delete(ctx, owner, project.Id), ErrProjectNotFound)
}

func TestProjectStats(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	owner := s.register(t, "ada@example.com")
	project, err := s.projects.Create(ctx, owner, &dto.CreateProjectRequest{Name: "Bikes"})
	require.NoError(t, err)
	scope := dto.Scope{ProjectId: &project.Id}

	stats, err := s.projects.Stats(ctx, owner, project.Id)
	require.NoError(t, err)
	assert.False(t, stats.HasPRD)

	_, err = s.workspace.UploadPRD(ctx, owner, &dto.PRDUploadRequest{Text: "one two three", Scope: scope})
	require.NoError(t, err)
	_, err = s.workspace.UploadPersonas(ctx, owner, &dto.PersonaUploadRequest{SelectedPersonas: []dto.Persona{{Id: "persona-1"}}, Scope: scope})
	require.NoError(t, err)
	_, err = s.workspace.GeneratePreview(ctx, owner, &dto.PreviewRequest{Description: "Login screen", Scope: scope})
	require.NoError(t, err)

	stats, err = s.projects.Stats(ctx, owner, project.Id)
	require.NoError(t, err)
	assert.True(t, stats.HasPRD)
	assert.Equal(t, 3, stats.PRDWordCount)
	assert.Equal(t, 1, stats.PersonasSelected)
	assert.Equal(t, 1, stats.PreviewsGenerated)
	assert.NotNil(t, stats.LastActivityAt)

	_, err = s.projects.Stats(ctx, uuid.New(), project.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
