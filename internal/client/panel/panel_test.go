package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/client/apiclient"
	"codebenders/internal/client/appstate"
	"codebenders/internal/client/route"
	"codebenders/internal/client/service"
	"codebenders/internal/client/storage"
	"codebenders/internal/client/wizard"
)

type testEnv struct {
	deps  *Deps
	calls *int64
	now   time.Time
}

// newTestEnv wires every panel dependency against handler. A nil handler
// points the client at a closed server.
func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		if handler == nil {
			http.Error(w, "no handler", http.StatusInternalServerError)
			return
		}
		handler(w, r)
	}))
	baseURL := srv.URL
	if handler == nil {
		srv.Close()
	} else {
		t.Cleanup(srv.Close)
	}

	state := appstate.New(storage.NewMemoryStore())
	api := apiclient.New(baseURL, 2*time.Second, state)

	env := &testEnv{
		calls: &calls,
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	env.deps = &Deps{
		State:     state,
		Router:    route.NewRouter(),
		Auth:      service.NewAuthService(api),
		Projects:  service.NewProjectService(api),
		Brand:     service.NewBrandService(api),
		Workspace: service.NewWorkspaceService(api),
		Now:       func() time.Time { return env.now },
	}
	return env
}

func (e *testEnv) callCount() int64 {
	return atomic.LoadInt64(e.calls)
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: invalid("name", "Project name is required"), want: "Project name is required"},
		{
			name: "known detail code",
			err:  &apiclient.Error{Kind: apiclient.KindResponse, StatusCode: 400, Body: []byte(`{"detail":"REGISTER_USER_ALREADY_EXISTS"}`)},
			want: "A user with this email already exists.",
		},
		{
			name: "detail with reason",
			err:  &apiclient.Error{Kind: apiclient.KindResponse, StatusCode: 400, Body: []byte(`{"detail":{"code":"RESET_PASSWORD_INVALID_PASSWORD","reason":"Too weak"}}`)},
			want: "Too weak",
		},
		{
			name: "plain detail",
			err:  &apiclient.Error{Kind: apiclient.KindResponse, StatusCode: 400, Body: []byte(`{"detail":"PRD text cannot be empty"}`)},
			want: "PRD text cannot be empty",
		},
		{
			name: "network",
			err:  &apiclient.Error{Kind: apiclient.KindNetwork},
			want: "Cannot reach the server. Check your connection and try again.",
		},
		{name: "inactive", err: ErrInactive, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, "fallback"))
		})
	}
}

func TestLateResponseWritesNothing(t *testing.T) {
	nav := wizard.New(context.Background(), wizard.Requirements)
	act := nav.Current()

	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		// The user leaves the step while the upload is in flight.
		assert.NoError(t, nav.Jump(wizard.Deploy))
		jsonHandler(http.StatusOK, `{"success":true,"data":{"prd_id":"prd-1"}}`)(w, r)
	})

	_, err := NewRequirements(env.deps).Submit(act, PRDInput{Text: "A marketplace"})
	require.Error(t, err)
	assert.Equal(t, wizard.Deploy, nav.Active())
}
