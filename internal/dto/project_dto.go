package dto

import "time"

type Project struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=draft in_progress completed archived"`
}

type ProjectListQuery struct {
	Page   int    `query:"page"`
	Size   int    `query:"size"`
	Search string `query:"search"`
}

type ProjectListResponse struct {
	Success  bool      `json:"success"`
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Size     int       `json:"size"`
}

type ProjectStats struct {
	ProjectId         string     `json:"project_id"`
	HasPRD            bool       `json:"has_prd"`
	PRDWordCount      int        `json:"prd_word_count"`
	PersonasSelected  int        `json:"personas_selected"`
	HasBrandDesign    bool       `json:"has_brand_design"`
	APIsSelected      int        `json:"apis_selected"`
	ProvidersSelected int        `json:"providers_selected"`
	PreviewsGenerated int        `json:"previews_generated"`
	LastActivityAt    *time.Time `json:"last_activity_at,omitempty"`
}
