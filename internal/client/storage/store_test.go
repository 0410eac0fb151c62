package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/dto"
)

func TestGetReturnsDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		set  bool
	}{
		{name: "never written"},
		{name: "invalid json", raw: []byte("{not json"), set: true},
		{name: "wrong shape", raw: []byte(`"a string"`), set: true},
		{name: "json null", raw: []byte("null"), set: true},
		{name: "empty value", raw: []byte("  "), set: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore()
			if tt.set {
				require.NoError(t, s.Save("user", tt.raw))
			}

			def := dto.User{Email: "fallback@example.com"}
			assert.NotPanics(t, func() {
				got := Get(s, "user", def)
				assert.Equal(t, def, got)
			})
		})
	}
}

func TestProjectRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	project := dto.Project{
		Id:          "project-1",
		Name:        "Demo",
		Description: "",
		CreatedAt:   &created,
		UpdatedAt:   &created,
	}

	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"file": func(t *testing.T) Store {
			fs, err := OpenFileStore(filepath.Join(t.TempDir(), "state.json"))
			require.NoError(t, err)
			return fs
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			require.NoError(t, Set(s, "currentProject", project))

			got := Get(s, "currentProject", dto.Project{})
			assert.Equal(t, project.Id, got.Id)
			assert.Equal(t, project.Name, got.Name)
			assert.Equal(t, project.Description, got.Description)
			require.NotNil(t, got.CreatedAt)
			assert.True(t, project.CreatedAt.Equal(*got.CreatedAt))

			require.NoError(t, Remove(s, "currentProject"))
			assert.Equal(t, dto.Project{}, Get(s, "currentProject", dto.Project{}))
		})
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	first, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, Set(first, "token", "abc"))

	second, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", Get(second, "token", ""))

	// Writes from one handle keep keys written by another.
	require.NoError(t, Set(second, "projects", []dto.Project{{Id: "p-1"}}))
	require.NoError(t, Set(first, "user", dto.User{Email: "a@b.c"}))

	third, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", Get(third, "token", ""))
	assert.Len(t, Get(third, "projects", []dto.Project(nil)), 1)
	assert.Equal(t, "a@b.c", Get(third, "user", dto.User{}).Email)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "none", Get(fs, "token", "none"))

	require.NoError(t, Set(fs, "token", "fresh"))
	assert.Equal(t, "fresh", Get(fs, "token", ""))
}

func TestFileStoreWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	watched, err := OpenFileStore(path)
	require.NoError(t, err)
	writer, err := OpenFileStore(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watched.Watch(ctx, func() { changed <- struct{}{} })
	}()

	require.Eventually(t, func() bool {
		if err := Set(writer, "token", "from-other-process"); err != nil {
			return false
		}
		select {
		case <-changed:
			return Get(watched, "token", "") == "from-other-process"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
