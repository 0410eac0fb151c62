package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/client/route"
	"codebenders/internal/dto"
)

func TestCreateProject(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			jsonHandler(http.StatusOK, `{"success":true,"projects":[{"id":"p-0","name":"Existing"}]}`)(w, r)
		case http.MethodPost:
			var req dto.CreateProjectRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Demo", req.Name)
			assert.Equal(t, "", req.Description)
			jsonHandler(http.StatusCreated, `{"id":"p-1","name":"Demo","description":""}`)(w, r)
		}
	})

	d := NewDashboard(env.deps)
	_, err := d.Load(context.Background())
	require.NoError(t, err)

	project, err := d.Create(context.Background(), "  Demo ", "")
	require.NoError(t, err)
	assert.Equal(t, "p-1", project.Id)

	projects := d.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "p-1", projects[1].Id)

	current := env.deps.State.CurrentProject()
	require.NotNil(t, current)
	assert.Equal(t, "p-1", current.Id)
	assert.Equal(t, route.Home, env.deps.Router.Current().Path)
}

func TestCreateProjectValidation(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusCreated, `{}`))

	_, err := NewDashboard(env.deps).Create(context.Background(), "   ", "desc")
	require.Error(t, err)
	assert.Equal(t, "Project name is required", Message(err, ""))
	assert.Zero(t, env.callCount())
}

func TestCreateProjectFailure(t *testing.T) {
	t.Run("surfaced by default", func(t *testing.T) {
		env := newTestEnv(t, nil)
		require.NoError(t, env.deps.Router.Navigate(route.Dashboard))

		d := NewDashboard(env.deps)
		_, err := d.Create(context.Background(), "Demo", "")
		require.Error(t, err)

		assert.Empty(t, d.Projects())
		assert.Nil(t, env.deps.State.CurrentProject())
		assert.Equal(t, route.Dashboard, env.deps.Router.Current().Path)
	})

	t.Run("demo mode keeps a local project", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.deps.DemoMode = true

		d := NewDashboard(env.deps)
		project, err := d.Create(context.Background(), "Demo", "")
		require.NoError(t, err)

		assert.Equal(t, "project-1714564800000", project.Id)
		assert.Len(t, env.deps.State.Projects(), 1)
		assert.Equal(t, project.Id, env.deps.State.CurrentProject().Id)
		assert.Equal(t, route.Home, env.deps.Router.Current().Path)

		reloaded, err := NewDashboard(env.deps).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, reloaded, 1)
	})
}

func TestLoadProjectsBareArray(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `[{"id":"p-9","name":"Bare"}]`))

	projects, err := NewDashboard(env.deps).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Bare", projects[0].Name)
}

func TestSelectProject(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `{"projects":[{"id":"p-1","name":"One"},{"id":"p-2","name":"Two"}]}`))

	d := NewDashboard(env.deps)
	_, err := d.Load(context.Background())
	require.NoError(t, err)

	project, err := d.Select("p-2")
	require.NoError(t, err)
	assert.Equal(t, "Two", project.Name)
	assert.Equal(t, "p-2", env.deps.State.CurrentProject().Id)
	assert.Equal(t, route.Home, env.deps.Router.Current().Path)

	_, err = d.Select("p-404")
	assert.True(t, IsValidation(err))
}
