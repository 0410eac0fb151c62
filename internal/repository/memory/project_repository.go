package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"codebenders/internal/entity"
	"codebenders/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ProjectRepository struct {
	cache *cache.Cache
}

var _ contract.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.cache.Add(project.Id.String(), *project, cache.NoExpiration)
}

func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	project.UpdatedAt = time.Now()
	if err := r.cache.Replace(project.Id.String(), *project, cache.NoExpiration); err != nil {
		return contract.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, found := r.cache.Get(id.String()); !found {
		return contract.ErrNotFound
	}
	r.cache.Delete(id.String())
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	if x, found := r.cache.Get(id.String()); found {
		p := x.(entity.Project)
		return &p, nil
	}
	return nil, nil
}

func (r *ProjectRepository) FindAll(ctx context.Context, filter contract.ProjectFilter) ([]*entity.Project, int, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var matches []*entity.Project
	for _, item := range r.cache.Items() {
		p := item.Object.(entity.Project)
		if p.OwnerId != filter.OwnerId {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matches = append(matches, &p)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].Id.String() < matches[j].Id.String()
	})
	return paginate(matches, filter.Offset, filter.Limit), len(matches), nil
}

func (r *ProjectRepository) DeleteByOwner(ctx context.Context, ownerId uuid.UUID) error {
	for key, item := range r.cache.Items() {
		if item.Object.(entity.Project).OwnerId == ownerId {
			r.cache.Delete(key)
		}
	}
	return nil
}
