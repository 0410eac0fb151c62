package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"codebenders/internal/client/endpoint"
	"codebenders/internal/dto"
)

type IProjectService interface {
	List(ctx context.Context, query dto.ProjectListQuery) ([]dto.Project, error)
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.Project, error)
	Get(ctx context.Context, projectID string) (*dto.Project, error)
	Update(ctx context.Context, projectID string, req *dto.UpdateProjectRequest) (*dto.Project, error)
	Delete(ctx context.Context, projectID string) error
	Stats(ctx context.Context, projectID string) (*dto.ProjectStats, error)
}

type projectService struct {
	api Requester
}

func NewProjectService(api Requester) IProjectService {
	return &projectService{api: api}
}

// List accepts both a {projects: [...]} body and a bare array.
func (s *projectService) List(ctx context.Context, query dto.ProjectListQuery) ([]dto.Project, error) {
	q := url.Values{}
	setPaging(q, query.Page, query.Size, query.Search)

	var raw json.RawMessage
	if err := s.api.Get(ctx, endpoint.Projects, q, &raw); err != nil {
		return nil, err
	}
	return ParseProjectList(raw)
}

// ParseProjectList extracts the project array from a list response.
func ParseProjectList(raw []byte) ([]dto.Project, error) {
	if len(raw) == 0 {
		return []dto.Project{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("project list: invalid json")
	}

	result := gjson.ParseBytes(raw)
	if !result.IsArray() {
		result = result.Get("projects")
	}
	if !result.Exists() || result.Type == gjson.Null {
		return []dto.Project{}, nil
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("project list: unexpected %s", result.Type)
	}

	projects := []dto.Project{}
	if err := json.Unmarshal([]byte(result.Raw), &projects); err != nil {
		return nil, fmt.Errorf("project list: %w", err)
	}
	return projects, nil
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.Project, error) {
	var project dto.Project
	if err := s.api.Post(ctx, endpoint.Projects, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) Get(ctx context.Context, projectID string) (*dto.Project, error) {
	var project dto.Project
	if err := s.api.Get(ctx, endpoint.ProjectByID(projectID), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) Update(ctx context.Context, projectID string, req *dto.UpdateProjectRequest) (*dto.Project, error) {
	var project dto.Project
	if err := s.api.Patch(ctx, endpoint.ProjectByID(projectID), req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) Delete(ctx context.Context, projectID string) error {
	return s.api.Delete(ctx, endpoint.ProjectByID(projectID), nil)
}

func (s *projectService) Stats(ctx context.Context, projectID string) (*dto.ProjectStats, error) {
	var stats dto.ProjectStats
	if err := s.api.Get(ctx, endpoint.ProjectStats(projectID), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
