package panel

import (
	"context"
	"fmt"
	"strings"

	"codebenders/internal/client/apiclient"
	"codebenders/internal/client/route"
	"codebenders/internal/dto"
)

// Dashboard lists the user's projects and opens one in the wizard.
type Dashboard struct {
	deps     *Deps
	projects []dto.Project
}

func NewDashboard(deps *Deps) *Dashboard {
	return &Dashboard{deps: deps}
}

// Projects is the in-memory list as last loaded or extended.
func (d *Dashboard) Projects() []dto.Project {
	out := make([]dto.Project, len(d.projects))
	copy(out, d.projects)
	return out
}

func (d *Dashboard) Load(ctx context.Context) ([]dto.Project, error) {
	projects, err := d.deps.Projects.List(ctx, dto.ProjectListQuery{})
	if err != nil {
		if d.deps.DemoMode && apiclient.IsTransport(err) {
			if err := live(ctx); err != nil {
				return nil, err
			}
			d.projects = d.deps.State.Projects()
			return d.Projects(), nil
		}
		return nil, err
	}
	if err := live(ctx); err != nil {
		return nil, err
	}

	d.projects = projects
	return d.Projects(), nil
}

// Create adds a project, makes it current and opens the wizard.
func (d *Dashboard) Create(ctx context.Context, name, description string) (*dto.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Project name is required")
	}
	description = strings.TrimSpace(description)

	project, err := d.deps.Projects.Create(ctx, &dto.CreateProjectRequest{Name: name, Description: description})
	if err != nil {
		if d.deps.DemoMode && apiclient.IsTransport(err) {
			return d.createDemo(ctx, name, description)
		}
		return nil, err
	}
	if err := live(ctx); err != nil {
		return nil, err
	}

	d.projects = append(d.projects, *project)
	if err := d.deps.State.SetCurrentProject(*project); err != nil {
		return nil, fmt.Errorf("save current project: %w", err)
	}
	return project, d.deps.Router.Navigate(route.Home)
}

func (d *Dashboard) createDemo(ctx context.Context, name, description string) (*dto.Project, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	now := d.deps.now()
	project := dto.Project{
		Id:          fmt.Sprintf("project-%d", now.UnixMilli()),
		Name:        name,
		Description: description,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	d.deps.log().Warn(logModule, "Project backend unreachable, created demo project", map[string]interface{}{"project_id": project.Id})

	stored := append(d.deps.State.Projects(), project)
	if err := d.deps.State.SetProjects(stored); err != nil {
		return nil, fmt.Errorf("save demo projects: %w", err)
	}
	d.projects = append(d.projects, project)
	if err := d.deps.State.SetCurrentProject(project); err != nil {
		return nil, fmt.Errorf("save current project: %w", err)
	}
	return &project, d.deps.Router.Navigate(route.Home)
}

// Select opens an existing project by id from the loaded list.
func (d *Dashboard) Select(projectID string) (*dto.Project, error) {
	for _, p := range d.projects {
		if p.Id == projectID {
			if err := d.deps.State.SetCurrentProject(p); err != nil {
				return nil, fmt.Errorf("save current project: %w", err)
			}
			return &p, d.deps.Router.Navigate(route.Home)
		}
	}
	return nil, invalid("project", fmt.Sprintf("Project %q not found", projectID))
}

func (d *Dashboard) Logout(ctx context.Context) error {
	return NewAuth(d.deps).Logout(ctx)
}
