package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
)

type logicMode int

const (
	logicBrowse logicMode = iota
	logicAdd
	logicEdit
	logicDescribe
)

const previewLines = 12

type logicView struct {
	panel  *panel.BusinessLogic
	kind   panel.ConstraintKind
	cursor int
	mode   logicMode
	input  textinput.Model
}

func newLogicView(deps *panel.Deps) *logicView {
	in := textinput.New()
	in.CharLimit = 500
	return &logicView{
		panel: panel.NewBusinessLogic(deps),
		kind:  panel.BusinessRule,
		input: in,
	}
}

func (v *logicView) enter(wizard.Activation) tea.Cmd {
	v.mode = logicBrowse
	v.cursor = 0
	v.input.Blur()
	return nil
}

func (v *logicView) list() []string {
	c := v.panel.Constraints()
	if v.kind == panel.DataConstraint {
		return c.DataConstraints
	}
	return c.BusinessRules
}

func (v *logicView) update(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	if v.mode != logicBrowse {
		return v.updateInput(msg, act)
	}

	items := v.list()
	switch msg.String() {
	case "tab":
		if v.kind == panel.BusinessRule {
			v.kind = panel.DataConstraint
		} else {
			v.kind = panel.BusinessRule
		}
		v.cursor = 0
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(items)-1 {
			v.cursor++
		}
	case "a":
		v.startInput(logicAdd, "New "+v.kindLabel(), "")
	case "e":
		if len(items) > 0 {
			v.startInput(logicEdit, "Edit "+v.kindLabel(), items[v.cursor])
		}
	case "d", "delete":
		if len(items) == 0 {
			return nil
		}
		if err := v.panel.Remove(v.kind, v.cursor); err != nil {
			return fail(act.Step, err)
		}
		if v.cursor > 0 && v.cursor >= len(items)-1 {
			v.cursor--
		}
	case "p":
		v.startInput(logicDescribe, "Describe the screen to preview", "")
	case "enter":
		v.panel.Continue(act)
	}
	return nil
}

func (v *logicView) startInput(mode logicMode, placeholder, value string) {
	v.mode = mode
	v.input.Placeholder = placeholder
	v.input.SetValue(value)
	v.input.CursorEnd()
	v.input.Focus()
}

func (v *logicView) updateInput(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	switch msg.String() {
	case "ctrl+g":
		v.mode = logicBrowse
		v.input.Blur()
		return nil
	case "enter":
		mode, text := v.mode, v.input.Value()
		v.mode = logicBrowse
		v.input.Blur()
		switch mode {
		case logicAdd:
			if err := v.panel.Add(v.kind, text); err != nil {
				return fail(act.Step, err)
			}
			v.cursor = len(v.list()) - 1
		case logicEdit:
			if err := v.panel.Update(v.kind, v.cursor, text); err != nil {
				return fail(act.Step, err)
			}
		case logicDescribe:
			return result(act.Step, func() (string, func(), error) {
				_, err := v.panel.GeneratePreview(act, text)
				if err != nil {
					return "", nil, err
				}
				return "Preview generated", nil, nil
			})
		}
		return nil
	}

	v.input, _ = v.input.Update(msg)
	return nil
}

func (v *logicView) kindLabel() string {
	if v.kind == panel.DataConstraint {
		return "data constraint"
	}
	return "business rule"
}

func (v *logicView) view(width int) string {
	c := v.panel.Constraints()

	var b strings.Builder
	b.WriteString(v.renderList("Business rules", panel.BusinessRule, c.BusinessRules))
	b.WriteString("\n")
	b.WriteString(v.renderList("Data constraints", panel.DataConstraint, c.DataConstraints))

	if v.mode != logicBrowse {
		v.input.Width = width - 6
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}

	if preview := v.panel.Preview(); preview != "" {
		lines := strings.Split(preview, "\n")
		if len(lines) > previewLines {
			lines = append(lines[:previewLines], fmt.Sprintf("… %d more lines", len(lines)-previewLines))
		}
		b.WriteString("\n")
		b.WriteString(focusedLabelStyle.Render("Preview"))
		b.WriteString("\n")
		b.WriteString(boxStyle.Width(width - 4).Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

func (v *logicView) renderList(title string, kind panel.ConstraintKind, items []string) string {
	label := labelStyle
	if kind == v.kind {
		label = focusedLabelStyle
	}

	var b strings.Builder
	b.WriteString(label.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(labelStyle.Render("  none yet"))
		b.WriteString("\n")
	}
	for i, item := range items {
		b.WriteString(line(kind == v.kind && i == v.cursor, fmt.Sprintf("%d. %s", i+1, item)))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *logicView) help() string {
	if v.mode != logicBrowse {
		return "enter save • ctrl+g cancel"
	}
	return "tab switch list • a add • e edit • d delete • p preview • enter continue"
}
