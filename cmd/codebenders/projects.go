package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"codebenders/internal/client/panel"
	"codebenders/internal/dto"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "List, create and select projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(a),
		newProjectsCreateCmd(a),
		newProjectsUseCmd(a),
		newProjectsShowCmd(a),
		newProjectsDeleteCmd(a),
	)
	return cmd
}

func newProjectsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			projects, err := panel.NewDashboard(a.deps).Load(cmd.Context())
			if err != nil {
				return err
			}
			return a.out.data(projects, func(w io.Writer) {
				if len(projects) == 0 {
					a.out.warn("No projects yet. Create one with `codebenders projects create <name>`.")
					return
				}
				current := ""
				if p := a.state.CurrentProject(); p != nil {
					current = p.Id
				}
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					mark := ""
					if p.Id == current {
						mark = "*"
					}
					rows = append(rows, []string{mark, p.Id, p.Name, p.Description})
				}
				a.out.table([]string{"", "ID", "NAME", "DESCRIPTION"}, rows)
			})
		},
	}
}

func newProjectsCreateCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			project, err := panel.NewDashboard(a.deps).Create(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			return a.out.data(project, func(w io.Writer) {
				a.out.success("Created project %s (%s). Run `codebenders wizard` to start.", project.Name, project.Id)
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	return cmd
}

func newProjectsUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use ID",
		Short: "Make a project current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			d := panel.NewDashboard(a.deps)
			if _, err := d.Load(cmd.Context()); err != nil {
				return err
			}
			project, err := d.Select(args[0])
			if err != nil {
				return err
			}
			a.out.success("Now working on %s", project.Name)
			return nil
		},
	}
}

type projectDetail struct {
	Project *dto.Project      `json:"project" yaml:"project"`
	Stats   *dto.ProjectStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

func newProjectsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a project and its wizard progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else if p := a.state.CurrentProject(); p != nil {
				id = p.Id
			} else {
				return errNoProject
			}

			project, err := a.deps.Projects.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			detail := projectDetail{Project: project}
			if stats, err := a.deps.Projects.Stats(cmd.Context(), id); err == nil {
				detail.Stats = stats
			} else {
				a.log.Warn("cli", "Project stats unavailable", map[string]interface{}{"project_id": id, "error": err.Error()})
			}

			return a.out.data(detail, func(w io.Writer) {
				fmt.Fprintf(w, "%s (%s)\n", project.Name, project.Id)
				if project.Description != "" {
					fmt.Fprintln(w, project.Description)
				}
				if s := detail.Stats; s != nil {
					a.out.table([]string{"PROGRESS", "VALUE"}, [][]string{
						{"Requirements", yesNo(s.HasPRD) + " (" + strconv.Itoa(s.PRDWordCount) + " words)"},
						{"Personas", strconv.Itoa(s.PersonasSelected)},
						{"Brand design", yesNo(s.HasBrandDesign)},
						{"APIs", strconv.Itoa(s.APIsSelected)},
						{"Providers", strconv.Itoa(s.ProvidersSelected)},
						{"Previews", strconv.Itoa(s.PreviewsGenerated)},
					})
				}
			})
		},
	}
}

func newProjectsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.deps.Projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			if p := a.state.CurrentProject(); p != nil && p.Id == args[0] {
				if err := a.state.ClearCurrentProject(); err != nil {
					return err
				}
			}
			a.out.success("Deleted project %s", args[0])
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
