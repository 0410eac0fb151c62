package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
)

type personasView struct {
	panel  *panel.Personas
	cursor int
}

func newPersonasView(deps *panel.Deps) *personasView {
	return &personasView{panel: panel.NewPersonas(deps)}
}

func (v *personasView) enter(act wizard.Activation) tea.Cmd {
	v.cursor = 0
	return result(act.Step, func() (string, func(), error) {
		_, err := v.panel.Load(act)
		return "", nil, err
	})
}

func (v *personasView) update(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	all := v.panel.All()
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(all)-1 {
			v.cursor++
		}
	case " ", "x":
		if len(all) == 0 {
			return nil
		}
		// The limit warning is rendered from the panel; nothing else to do.
		if err := v.panel.Toggle(all[v.cursor].Id); err != nil && !errors.Is(err, panel.ErrPersonaLimit) {
			return fail(act.Step, err)
		}
	case "enter":
		return result(act.Step, func() (string, func(), error) {
			data, err := v.panel.Continue(act)
			if err != nil {
				return "", nil, err
			}
			return fmt.Sprintf("Saved %d persona(s)", data.Count), nil, nil
		})
	}
	return nil
}

func (v *personasView) view(width int) string {
	all := v.panel.All()
	if len(all) == 0 {
		return labelStyle.Render("No personas yet. Upload your requirements first.")
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Choose up to %d personas (%d selected)", panel.MaxPersonas, len(v.panel.Selected()))))
	b.WriteString("\n\n")
	for i, p := range all {
		b.WriteString(line(i == v.cursor, checkbox(v.panel.IsSelected(p.Id))+" "+p.Name))
		b.WriteString("\n")
	}

	if w := v.panel.Warning(); w != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(w))
		b.WriteString("\n")
	}

	p := all[v.cursor]
	var detail []string
	if p.Description != "" {
		detail = append(detail, p.Description)
	}
	if len(p.Goals) > 0 {
		detail = append(detail, focusedLabelStyle.Render("Goals"), "• "+strings.Join(p.Goals, "\n• "))
	}
	if len(p.PainPoints) > 0 {
		detail = append(detail, focusedLabelStyle.Render("Pain points"), "• "+strings.Join(p.PainPoints, "\n• "))
	}
	if len(p.KeyFeatures) > 0 {
		detail = append(detail, focusedLabelStyle.Render("Key features"), "• "+strings.Join(p.KeyFeatures, "\n• "))
	}
	if len(detail) > 0 {
		b.WriteString("\n")
		b.WriteString(boxStyle.Width(width - 4).Render(strings.Join(detail, "\n")))
	}
	return b.String()
}

func (v *personasView) help() string {
	return "↑/↓ move • space select • enter continue"
}
