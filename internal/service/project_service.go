package service

import (
	"context"
	"strings"
	"time"

	"codebenders/internal/dto"
	"codebenders/internal/entity"
	"codebenders/internal/mapper"
	"codebenders/internal/pkg/logger"
	"codebenders/internal/repository/contract"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type IProjectService interface {
	List(ctx context.Context, ownerId uuid.UUID, query dto.ProjectListQuery) (*dto.ProjectListResponse, error)
	Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateProjectRequest) (*dto.Project, error)
	Get(ctx context.Context, ownerId uuid.UUID, projectId string) (*dto.Project, error)
	Update(ctx context.Context, ownerId uuid.UUID, projectId string, req *dto.UpdateProjectRequest) (*dto.Project, error)
	Delete(ctx context.Context, ownerId uuid.UUID, projectId string) error
	Stats(ctx context.Context, ownerId uuid.UUID, projectId string) (*dto.ProjectStats, error)
	DeleteAllForOwner(ctx context.Context, ownerId uuid.UUID) error
}

type projectService struct {
	projects   contract.ProjectRepository
	workspaces contract.WorkspaceRepository
	mapper     *mapper.ProjectMapper
	logger     logger.ILogger
}

func NewProjectService(projects contract.ProjectRepository, workspaces contract.WorkspaceRepository, log logger.ILogger) IProjectService {
	return &projectService{
		projects:   projects,
		workspaces: workspaces,
		mapper:     mapper.NewProjectMapper(),
		logger:     log,
	}
}

// ProjectWorkspaceKey names the workspace holding a project's documents.
func ProjectWorkspaceKey(projectId string) string {
	return "project:" + projectId
}

// UserWorkspaceKey names the workspace used when no project is given.
func UserWorkspaceKey(userId uuid.UUID) string {
	return "user:" + userId.String()
}

// pageBounds turns 1-based page/size into offset/limit.
func pageBounds(page, size int) (int, int, int, int, error) {
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = defaultPageSize
	}
	if page < 1 || size < 1 || size > maxPageSize {
		return 0, 0, 0, 0, ErrInvalidPagination
	}
	return page, size, (page - 1) * size, size, nil
}

func (s *projectService) List(ctx context.Context, ownerId uuid.UUID, query dto.ProjectListQuery) (*dto.ProjectListResponse, error) {
	page, size, offset, limit, err := pageBounds(query.Page, query.Size)
	if err != nil {
		return nil, err
	}
	projects, total, err := s.projects.FindAll(ctx, contract.ProjectFilter{
		OwnerId: ownerId,
		Search:  strings.TrimSpace(query.Search),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProjectListResponse{
		Success:  true,
		Projects: s.mapper.ToResponses(projects),
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

func (s *projectService) Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateProjectRequest) (*dto.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}
	now := time.Now()
	project := &entity.Project{
		Id:          uuid.New(),
		OwnerId:     ownerId,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      entity.ProjectStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("PROJECT", "Project created", map[string]interface{}{
		"project_id": project.Id.String(),
		"owner_id":   ownerId.String(),
	})
	return s.mapper.ToResponse(project), nil
}

// find hides other owners' projects behind ErrProjectNotFound.
func (s *projectService) find(ctx context.Context, ownerId uuid.UUID, projectId string) (*entity.Project, error) {
	id, err := uuid.Parse(projectId)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil || project.OwnerId != ownerId {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, ownerId uuid.UUID, projectId string) (*dto.Project, error) {
	project, err := s.find(ctx, ownerId, projectId)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, ownerId uuid.UUID, projectId string, req *dto.UpdateProjectRequest) (*dto.Project, error) {
	project, err := s.find(ctx, ownerId, projectId)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = name
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		project.Status = entity.ProjectStatus(*req.Status)
	}
	project.UpdatedAt = time.Now()
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(project), nil
}

func (s *projectService) Delete(ctx context.Context, ownerId uuid.UUID, projectId string) error {
	project, err := s.find(ctx, ownerId, projectId)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, project.Id); err != nil {
		return err
	}
	if err := s.workspaces.Delete(ctx, ProjectWorkspaceKey(project.Id.String())); err != nil {
		return err
	}
	s.logger.Info("PROJECT", "Project deleted", map[string]interface{}{"project_id": project.Id.String()})
	return nil
}

func (s *projectService) Stats(ctx context.Context, ownerId uuid.UUID, projectId string) (*dto.ProjectStats, error) {
	project, err := s.find(ctx, ownerId, projectId)
	if err != nil {
		return nil, err
	}
	ws, err := s.workspaces.Get(ctx, ProjectWorkspaceKey(project.Id.String()))
	if err != nil {
		return nil, err
	}

	stats := &dto.ProjectStats{
		ProjectId:         project.Id.String(),
		HasPRD:            ws.PRD != nil,
		PersonasSelected:  len(ws.Personas),
		HasBrandDesign:    ws.Brand != nil,
		APIsSelected:      len(ws.APIs),
		ProvidersSelected: len(ws.Providers),
		PreviewsGenerated: ws.PreviewsGenerated,
	}
	if ws.PRD != nil {
		stats.PRDWordCount = ws.PRD.WordCount
	}
	last := project.UpdatedAt
	if ws.UpdatedAt.After(last) {
		last = ws.UpdatedAt
	}
	stats.LastActivityAt = &last
	return stats, nil
}

func (s *projectService) DeleteAllForOwner(ctx context.Context, ownerId uuid.UUID) error {
	projects, _, err := s.projects.FindAll(ctx, contract.ProjectFilter{OwnerId: ownerId})
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := s.workspaces.Delete(ctx, ProjectWorkspaceKey(p.Id.String())); err != nil {
			return err
		}
	}
	if err := s.workspaces.Delete(ctx, UserWorkspaceKey(ownerId)); err != nil {
		return err
	}
	return s.projects.DeleteByOwner(ctx, ownerId)
}
