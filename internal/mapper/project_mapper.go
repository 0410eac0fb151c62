package mapper

import (
	"codebenders/internal/dto"
	"codebenders/internal/entity"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToResponse(p *entity.Project) *dto.Project {
	if p == nil {
		return nil
	}
	created, updated := p.CreatedAt, p.UpdatedAt
	return &dto.Project{
		Id:          p.Id.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   &created,
		UpdatedAt:   &updated,
	}
}

func (m *ProjectMapper) ToResponses(projects []*entity.Project) []dto.Project {
	out := make([]dto.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, *m.ToResponse(p))
	}
	return out
}
