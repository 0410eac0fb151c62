package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

// activate returns an activation of step that lives as long as ctx.
func activate(ctx context.Context, step wizard.Step) wizard.Activation {
	return wizard.New(ctx, step).Current()
}

func newStepsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the wizard steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := wizard.Steps()
			names := make([]string, len(steps))
			for i, s := range steps {
				names[i] = s.String()
			}
			return a.out.data(names, func(w io.Writer) {
				rows := make([][]string, len(steps))
				for i, s := range steps {
					rows[i] = []string{strconv.Itoa(i + 1), s.String(), s.Slug()}
				}
				a.out.table([]string{"#", "STEP", "SLUG"}, rows)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show STEP",
		Short: "Describe a step that has no interactive form yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := wizard.ParseStep(args[0])
			if err != nil {
				return err
			}
			info, ok := panel.InfoFor(step)
			if !ok {
				return fmt.Errorf("%s is an interactive step: open it with `codebenders wizard --step %s`", step, step.Slug())
			}
			return a.out.data(info, func(w io.Writer) {
				fmt.Fprintln(w, info.Title)
				fmt.Fprintln(w, info.Summary)
				for _, s := range info.Sections {
					fmt.Fprintf(w, "\n%s\n", s.Heading)
					for _, l := range s.Lines {
						fmt.Fprintf(w, "  - %s\n", l)
					}
				}
			})
		},
	})
	return cmd
}

func newPRDCmd(a *app) *cobra.Command {
	var in panel.PRDInput
	cmd := &cobra.Command{
		Use:   "prd",
		Short: "Upload the product requirements of the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			data, err := panel.NewRequirements(a.deps).Submit(activate(cmd.Context(), wizard.Requirements), in)
			if err != nil {
				return err
			}
			return a.out.data(data, func(w io.Writer) {
				a.out.success("Requirements uploaded (%s)", data.PRDId)
				fmt.Fprintf(w, "Words:      %d\n", data.WordCount)
				fmt.Fprintf(w, "Complexity: %s\n", data.Analysis.EstimatedComplexity)
				for _, s := range data.NextSteps {
					fmt.Fprintf(w, "  - %s\n", s)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&in.Text, "text", "t", "", "requirements text")
	cmd.Flags().StringVarP(&in.FilePath, "file", "f", "", "requirements file (.txt, .md)")
	return cmd
}

func newPersonasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personas",
		Short: "Show and choose the user personas of the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			p := panel.NewPersonas(a.deps)
			personas, err := p.Load(activate(cmd.Context(), wizard.UserPersona))
			if err != nil {
				return err
			}
			return a.out.data(personas, func(w io.Writer) {
				rows := make([][]string, len(personas))
				for i, persona := range personas {
					mark := ""
					if p.IsSelected(persona.Id) {
						mark = "*"
					}
					rows[i] = []string{mark, persona.Id, persona.Name, persona.Description}
				}
				a.out.table([]string{"", "ID", "NAME", "DESCRIPTION"}, rows)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "select ID [ID]",
		Short: fmt.Sprintf("Choose up to %d personas and save them", panel.MaxPersonas),
		Args:  cobra.RangeArgs(1, panel.MaxPersonas),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			act := activate(cmd.Context(), wizard.UserPersona)
			p := panel.NewPersonas(a.deps)
			if _, err := p.Load(act); err != nil {
				return err
			}
			for _, sel := range p.Selected() {
				if err := p.Toggle(sel.Id); err != nil {
					return err
				}
			}
			for _, id := range args {
				if err := p.Toggle(id); err != nil {
					return err
				}
			}
			data, err := p.Continue(act)
			if err != nil {
				return err
			}
			return a.out.data(data, func(w io.Writer) {
				a.out.success("Saved %d persona(s)", len(p.Selected()))
			})
		},
	})
	return cmd
}

func parseKind(data bool) panel.ConstraintKind {
	if data {
		return panel.DataConstraint
	}
	return panel.BusinessRule
}

func newRulesCmd(a *app) *cobra.Command {
	var data bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Edit the business rules and data constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := panel.NewBusinessLogic(a.deps).Constraints()
			return a.out.data(c, func(w io.Writer) {
				printList(w, "Business rules", c.BusinessRules)
				fmt.Fprintln(w)
				printList(w, "Data constraints", c.DataConstraints)
			})
		},
	}
	cmd.PersistentFlags().BoolVar(&data, "data", false, "edit data constraints instead of business rules")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add TEXT",
			Short: "Add a rule",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := panel.NewBusinessLogic(a.deps).Add(parseKind(data), args[0]); err != nil {
					return err
				}
				a.out.success("Added")
				return nil
			},
		},
		&cobra.Command{
			Use:   "update N TEXT",
			Short: "Replace rule N",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("rule number %q: %w", args[0], err)
				}
				if err := panel.NewBusinessLogic(a.deps).Update(parseKind(data), n-1, args[1]); err != nil {
					return err
				}
				a.out.success("Updated #%d", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove N",
			Short: "Remove rule N",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("rule number %q: %w", args[0], err)
				}
				if err := panel.NewBusinessLogic(a.deps).Remove(parseKind(data), n-1); err != nil {
					return err
				}
				a.out.success("Removed #%d", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "preview DESCRIPTION",
			Short: "Generate an HTML preview of a screen under the current rules",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireSession(); err != nil {
					return err
				}
				html, err := panel.NewBusinessLogic(a.deps).GeneratePreview(activate(cmd.Context(), wizard.BusinessLogic), args[0])
				if err != nil {
					return err
				}
				return a.out.data(map[string]string{"html": html}, func(w io.Writer) {
					fmt.Fprintln(w, html)
				})
			},
		},
	)
	return cmd
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(items))
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}

func newBrandCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Show the brand design of the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			design, err := panel.NewBrand(a.deps).Load(activate(cmd.Context(), wizard.BrandDesign))
			if err != nil {
				return err
			}
			return a.out.data(design, func(w io.Writer) {
				printBrand(w, design)
			})
		},
	}

	var flags dto.BrandDesign
	save := &cobra.Command{
		Use:   "save",
		Short: "Update the brand design; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			act := activate(cmd.Context(), wizard.BrandDesign)
			b := panel.NewBrand(a.deps)
			design, err := b.Load(act)
			if err != nil {
				return err
			}

			set := cmd.Flags().Changed
			override := func(name string, dst *string, v string) {
				if set(name) {
					*dst = v
				}
			}
			override("name", &design.BrandName, flags.BrandName)
			override("primary", &design.Colors.Primary, flags.Colors.Primary)
			override("secondary", &design.Colors.Secondary, flags.Colors.Secondary)
			override("accent", &design.Colors.Accent, flags.Colors.Accent)
			override("background", &design.Colors.Background, flags.Colors.Background)
			override("foreground", &design.Colors.Foreground, flags.Colors.Foreground)
			override("font", &design.FontFamily, flags.FontFamily)
			override("voice", &design.BrandVoice, flags.BrandVoice)
			override("tone", &design.Tone, flags.Tone)

			if _, err := b.Save(act, design); err != nil {
				return err
			}
			return a.out.data(design, func(w io.Writer) {
				a.out.success("Brand design saved")
				printBrand(w, design)
			})
		},
	}
	f := save.Flags()
	f.StringVar(&flags.BrandName, "name", "", "brand name")
	f.StringVar(&flags.Colors.Primary, "primary", "", "primary color (#rrggbb)")
	f.StringVar(&flags.Colors.Secondary, "secondary", "", "secondary color")
	f.StringVar(&flags.Colors.Accent, "accent", "", "accent color")
	f.StringVar(&flags.Colors.Background, "background", "", "background color")
	f.StringVar(&flags.Colors.Foreground, "foreground", "", "foreground color")
	f.StringVar(&flags.FontFamily, "font", "", "font family: "+strings.Join(panel.BrandFonts, ", "))
	f.StringVar(&flags.BrandVoice, "voice", "", "brand voice")
	f.StringVar(&flags.Tone, "tone", "", "tone: "+strings.Join(panel.BrandTones, ", "))
	cmd.AddCommand(save)
	return cmd
}

func printBrand(w io.Writer, d dto.BrandDesign) {
	fmt.Fprintf(w, "Name:       %s\n", d.BrandName)
	fmt.Fprintf(w, "Colors:     primary %s, secondary %s, accent %s\n", d.Colors.Primary, d.Colors.Secondary, d.Colors.Accent)
	fmt.Fprintf(w, "            background %s, foreground %s\n", d.Colors.Background, d.Colors.Foreground)
	fmt.Fprintf(w, "Font:       %s\n", d.FontFamily)
	fmt.Fprintf(w, "Voice:      %s\n", d.BrandVoice)
	fmt.Fprintf(w, "Tone:       %s\n", d.Tone)
}

func newThirdPartyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "thirdparty",
		Aliases: []string{"apis"},
		Short:   "List the third-party APIs the requirements call for",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			apis, err := panel.NewThirdParty(a.deps).LoadAPIs(activate(cmd.Context(), wizard.ThirdPartyAPI))
			if err != nil {
				return err
			}
			return a.out.data(apis, func(w io.Writer) {
				if len(apis) == 0 {
					a.out.success("No third-party APIs needed")
					return
				}
				rows := make([][]string, len(apis))
				for i, api := range apis {
					rows[i] = []string{api.Id, api.Name, api.Category, yesNo(api.Required)}
				}
				a.out.table([]string{"ID", "NAME", "CATEGORY", "REQUIRED"}, rows)
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "select ID...",
			Short: "Choose APIs and get provider recommendations",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireProject(); err != nil {
					return err
				}
				act := activate(cmd.Context(), wizard.ThirdPartyAPI)
				tp := panel.NewThirdParty(a.deps)
				if _, err := tp.LoadAPIs(act); err != nil {
					return err
				}
				for _, id := range args {
					if err := tp.ToggleAPI(id); err != nil {
						return err
					}
				}
				recs, err := tp.SubmitAPIs(act)
				if err != nil {
					return err
				}
				return a.out.data(recs, func(w io.Writer) {
					printRecommendations(w, recs, tp.SelectedProviders())
				})
			},
		},
		&cobra.Command{
			Use:   "providers [CATEGORY=PROVIDER...]",
			Short: "Confirm providers; unlisted categories keep the first recommendation",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireProject(); err != nil {
					return err
				}
				tp := panel.NewThirdParty(a.deps)
				tp.LoadProviders()
				for _, arg := range args {
					category, provider, ok := strings.Cut(arg, "=")
					if !ok {
						return fmt.Errorf("expected CATEGORY=PROVIDER, got %q", arg)
					}
					if err := tp.SelectProvider(category, provider); err != nil {
						return err
					}
				}
				reqs, err := tp.SubmitProviders(activate(cmd.Context(), wizard.ThirdPartyAPI))
				if err != nil {
					return err
				}
				return a.out.data(reqs, func(w io.Writer) {
					for _, r := range reqs {
						fmt.Fprintf(w, "%s (%s)\n", r.Provider, r.Category)
						for _, k := range r.KeysRequired {
							fmt.Fprintf(w, "  %s  %s\n", k.Field, k.Label)
						}
					}
				})
			},
		},
		&cobra.Command{
			Use:   "keys FIELD=VALUE...",
			Short: "Store the API keys on this machine",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tp := panel.NewThirdParty(a.deps)
				tp.LoadKeyRequirements()
				for _, arg := range args {
					field, value, ok := strings.Cut(arg, "=")
					if !ok {
						return fmt.Errorf("expected FIELD=VALUE, got %q", arg)
					}
					if err := tp.SetKey(field, value); err != nil {
						return err
					}
				}
				if err := tp.SubmitKeys(activate(cmd.Context(), wizard.ThirdPartyAPI)); err != nil {
					if missing := tp.MissingKeys(); len(missing) > 0 {
						return fmt.Errorf("%s: missing %s", panel.Message(err, err.Error()), strings.Join(missing, ", "))
					}
					return err
				}
				a.out.success("Stored %d key(s) locally", len(a.state.ThirdPartyAPIKeys()))
				return nil
			},
		},
	)
	return cmd
}

func printRecommendations(w io.Writer, recs []dto.ProviderRecommendation, selected map[string]string) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No third-party APIs needed")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(w, "%s [%s]\n", r.APICategory, r.Category)
		for _, p := range r.Providers {
			mark := " "
			if selected[r.Category] == p.Name {
				mark = "*"
			}
			line := fmt.Sprintf("  %s %s", mark, p.Name)
			if p.Pricing != "" {
				line += " (" + p.Pricing + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
}

func newReportCmd(a *app) *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the performance report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := panel.ParseExportFormat(format)
			if err != nil {
				return err
			}
			report := panel.SampleReport()
			if outPath == "" || outPath == "-" {
				return report.Export(cmd.OutOrStdout(), f)
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			if err := report.Export(file, f); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format: json, csv or yaml")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	return cmd
}
