package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

const personaList = `{"success":true,"message":"ok","personas":[
	{"id":"p1","name":"Founder"},
	{"id":"p2","name":"Developer"},
	{"id":"p3","name":"Designer"}
]}`

func personaHandler(t *testing.T, uploaded *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/get_userpersonas":
			jsonHandler(http.StatusOK, personaList)(w, r)
		case "/api/upload_userpersonas":
			var req dto.PersonaUploadRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			for _, p := range req.SelectedPersonas {
				*uploaded = append(*uploaded, p.Id)
			}
			jsonHandler(http.StatusOK, `{"success":true,"data":{"count":1}}`)(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

func TestPersonaSelectionLimit(t *testing.T) {
	var uploaded []string
	env := newTestEnv(t, personaHandler(t, &uploaded))
	nav := wizard.New(context.Background(), wizard.UserPersona)

	p := NewPersonas(env.deps)
	_, err := p.Load(nav.Current())
	require.NoError(t, err)

	require.NoError(t, p.Toggle("p1"))
	require.NoError(t, p.Toggle("p2"))

	err = p.Toggle("p3")
	assert.ErrorIs(t, err, ErrPersonaLimit)
	assert.False(t, p.IsSelected("p3"))
	assert.Len(t, p.Selected(), MaxPersonas)
	assert.NotEmpty(t, p.Warning())

	env.now = env.now.Add(3 * time.Second)
	assert.NotEmpty(t, p.Warning())
	env.now = env.now.Add(time.Second)
	assert.Empty(t, p.Warning())

	// Deselecting frees a slot.
	require.NoError(t, p.Toggle("p1"))
	require.NoError(t, p.Toggle("p3"))
	assert.Equal(t, []string{"p2", "p3"}, ids(p.Selected()))
}

func TestPersonaContinue(t *testing.T) {
	t.Run("requires a selection", func(t *testing.T) {
		var uploaded []string
		env := newTestEnv(t, personaHandler(t, &uploaded))
		nav := wizard.New(context.Background(), wizard.UserPersona)

		p := NewPersonas(env.deps)
		_, err := p.Load(nav.Current())
		require.NoError(t, err)

		_, err = p.Continue(nav.Current())
		assert.True(t, IsValidation(err))
		assert.Equal(t, wizard.UserPersona, nav.Active())
		assert.Empty(t, uploaded)
	})

	t.Run("uploads, persists and advances", func(t *testing.T) {
		var uploaded []string
		env := newTestEnv(t, personaHandler(t, &uploaded))
		nav := wizard.New(context.Background(), wizard.UserPersona)

		p := NewPersonas(env.deps)
		_, err := p.Load(nav.Current())
		require.NoError(t, err)
		require.NoError(t, p.Toggle("p2"))

		_, err = p.Continue(nav.Current())
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, uploaded)
		assert.Equal(t, []string{"p2"}, ids(env.deps.State.SelectedPersonas()))
		assert.Equal(t, wizard.BusinessLogic, nav.Active())
	})
}

func TestPersonaLoadRestoresSelection(t *testing.T) {
	var uploaded []string
	env := newTestEnv(t, personaHandler(t, &uploaded))
	require.NoError(t, env.deps.State.SetSelectedPersonas([]dto.Persona{{Id: "p3"}, {Id: "gone"}}))
	nav := wizard.New(context.Background(), wizard.UserPersona)

	p := NewPersonas(env.deps)
	_, err := p.Load(nav.Current())
	require.NoError(t, err)
	assert.True(t, p.IsSelected("p3"))
	assert.Len(t, p.Selected(), 1)
}

func ids(personas []dto.Persona) []string {
	out := make([]string, len(personas))
	for i, p := range personas {
		out[i] = p.Id
	}
	return out
}
