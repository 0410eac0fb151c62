package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
)

type requirementsView struct {
	panel  *panel.Requirements
	text   textarea.Model
	file   textinput.Model
	onFile bool
}

func newRequirementsView(deps *panel.Deps) *requirementsView {
	ta := textarea.New()
	ta.Placeholder = "Describe your product: who it is for, the key features, and any technical requirements..."
	ta.ShowLineNumbers = false
	ta.SetHeight(10)
	ta.CharLimit = 0

	fi := textinput.New()
	fi.Placeholder = "path/to/requirements.md (optional)"
	fi.CharLimit = 500

	return &requirementsView{
		panel: panel.NewRequirements(deps),
		text:  ta,
		file:  fi,
	}
}

func (v *requirementsView) enter(wizard.Activation) tea.Cmd {
	v.onFile = false
	v.file.Blur()
	v.text.Focus()
	return nil
}

func (v *requirementsView) update(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab":
		v.onFile = !v.onFile
		if v.onFile {
			v.text.Blur()
			v.file.Focus()
		} else {
			v.file.Blur()
			v.text.Focus()
		}
		return nil

	case "ctrl+s":
		in := panel.PRDInput{Text: v.text.Value(), FilePath: v.file.Value()}
		return result(act.Step, func() (string, func(), error) {
			data, err := v.panel.Submit(act, in)
			if err != nil {
				return "", nil, err
			}
			return fmt.Sprintf("Requirements uploaded: %d words, %s complexity", data.WordCount, data.Analysis.EstimatedComplexity), nil, nil
		})
	}

	if v.onFile {
		v.file, _ = v.file.Update(msg)
	} else {
		v.text, _ = v.text.Update(msg)
	}
	return nil
}

func (v *requirementsView) view(width int) string {
	v.text.SetWidth(width - 2)
	v.file.Width = width - 12

	textLabel, fileLabel := labelStyle, labelStyle
	if v.onFile {
		fileLabel = focusedLabelStyle
	} else {
		textLabel = focusedLabelStyle
	}

	return textLabel.Render("Product requirements") + "\n" +
		v.text.View() + "\n\n" +
		fileLabel.Render("Attach file (.txt, .md)") + "\n" +
		v.file.View()
}

func (v *requirementsView) help() string {
	return "tab switch field • ctrl+s submit"
}
