package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/client/storage"
	"codebenders/internal/dto"
)

func TestScope(t *testing.T) {
	tests := []struct {
		name        string
		user        *dto.User
		project     *dto.Project
		wantUser    *string
		wantProject *string
	}{
		{name: "nothing stored"},
		{
			name:     "user only",
			user:     &dto.User{Id: "u-1", Email: "user@example.com"},
			wantUser: strPtr("u-1"),
		},
		{
			name:        "user and project",
			user:        &dto.User{Id: "u-1"},
			project:     &dto.Project{Id: "p-1", Name: "Demo"},
			wantUser:    strPtr("u-1"),
			wantProject: strPtr("p-1"),
		},
		{
			name:        "user without id",
			user:        &dto.User{Email: "user@example.com"},
			project:     &dto.Project{Id: "p-1"},
			wantProject: strPtr("p-1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New(storage.NewMemoryStore())
			if tt.user != nil {
				require.NoError(t, st.SetUser(*tt.user))
			}
			if tt.project != nil {
				require.NoError(t, st.SetCurrentProject(*tt.project))
			}

			scope := st.Scope()
			assert.Equal(t, tt.wantUser, scope.UserId)
			assert.Equal(t, tt.wantProject, scope.ProjectId)
		})
	}
}

func TestClearSession(t *testing.T) {
	st := New(storage.NewMemoryStore())
	require.NoError(t, st.SetSession("abc", dto.User{Id: "u-1", Email: "user@example.com"}))
	require.NoError(t, st.SetCurrentProject(dto.Project{Id: "p-1"}))
	require.NoError(t, st.SetSelectedPersonas([]dto.Persona{{Id: "1"}}))

	require.NoError(t, st.ClearSession())

	assert.Empty(t, st.Token())
	assert.Nil(t, st.User())
	assert.Nil(t, st.CurrentProject())
	// Wizard drafts outlive the session.
	assert.Len(t, st.SelectedPersonas(), 1)
}

func TestDefaultsWhenMalformed(t *testing.T) {
	store := storage.NewMemoryStore()
	for _, key := range []string{KeyUser, KeyCurrentProject, KeyProjects, KeyThirdPartyAPIKeys, KeyBusinessRules} {
		require.NoError(t, store.Save(key, []byte("{broken")))
	}
	st := New(store)

	assert.Nil(t, st.User())
	assert.Nil(t, st.CurrentProject())
	assert.Empty(t, st.Projects())
	assert.Empty(t, st.ThirdPartyAPIKeys())
	assert.Equal(t, Constraints{}, st.BusinessRules())
}

func strPtr(s string) *string { return &s }
