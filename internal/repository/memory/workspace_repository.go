package memory

import (
	"context"
	"time"

	"codebenders/internal/entity"
	"codebenders/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// WorkspaceRepository drops a workspace ttl after its last save.
type WorkspaceRepository struct {
	cache *cache.Cache
}

var _ contract.WorkspaceRepository = (*WorkspaceRepository)(nil)

func NewWorkspaceRepository(ttl time.Duration) *WorkspaceRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &WorkspaceRepository{cache: cache.New(ttl, time.Hour)}
}

func (r *WorkspaceRepository) Get(ctx context.Context, key string) (*entity.Workspace, error) {
	if x, found := r.cache.Get(key); found {
		return x.(*entity.Workspace).Clone(), nil
	}
	return &entity.Workspace{Key: key}, nil
}

func (r *WorkspaceRepository) Save(ctx context.Context, workspace *entity.Workspace) error {
	w := workspace.Clone()
	w.UpdatedAt = time.Now()
	r.cache.Set(w.Key, w, cache.DefaultExpiration)
	return nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}
