package contract

import (
	"context"

	"codebenders/internal/entity"

	"github.com/google/uuid"
)

type ProjectFilter struct {
	OwnerId uuid.UUID
	Search  string
	Offset  int
	Limit   int
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	// FindAll returns one page, newest first, and the total match count.
	FindAll(ctx context.Context, filter ProjectFilter) ([]*entity.Project, int, error)
	DeleteByOwner(ctx context.Context, ownerId uuid.UUID) error
}

type WorkspaceRepository interface {
	// Get returns an empty workspace for an unknown key.
	Get(ctx context.Context, key string) (*entity.Workspace, error)
	Save(ctx context.Context, workspace *entity.Workspace) error
	Delete(ctx context.Context, key string) error
}
