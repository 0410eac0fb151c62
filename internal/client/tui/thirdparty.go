package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
)

type keyInput struct {
	field string
	label string
	input textinput.Model
}

type thirdPartyView struct {
	panel  *panel.ThirdParty
	cursor int
	keys   []keyInput
}

func newThirdPartyView(deps *panel.Deps) *thirdPartyView {
	return &thirdPartyView{panel: panel.NewThirdParty(deps)}
}

func (v *thirdPartyView) enter(act wizard.Activation) tea.Cmd {
	v.cursor = 0
	v.keys = nil
	return result(act.Step, func() (string, func(), error) {
		_, err := v.panel.LoadAPIs(act)
		return "", nil, err
	})
}

func (v *thirdPartyView) update(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	switch v.panel.Stage() {
	case panel.StageAPIs:
		return v.updateAPIs(msg, act)
	case panel.StageProviders:
		return v.updateProviders(msg, act)
	case panel.StageKeys:
		return v.updateKeys(msg, act)
	}
	return nil
}

func (v *thirdPartyView) updateAPIs(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	apis := v.panel.APIs()
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(apis)-1 {
			v.cursor++
		}
	case " ", "x":
		if len(apis) > 0 {
			if err := v.panel.ToggleAPI(apis[v.cursor].Id); err != nil {
				return fail(act.Step, err)
			}
		}
	case "enter":
		return result(act.Step, func() (string, func(), error) {
			recs, err := v.panel.SubmitAPIs(act)
			if err != nil {
				return "", nil, err
			}
			if recs == nil {
				return "No third-party APIs needed", nil, nil
			}
			return fmt.Sprintf("%d provider recommendation(s)", len(recs)), func() { v.cursor = 0 }, nil
		})
	}
	return nil
}

func (v *thirdPartyView) updateProviders(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	recs := v.panel.Recommendations()
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(recs)-1 {
			v.cursor++
		}
	case "left", "right":
		if len(recs) == 0 || len(recs[v.cursor].Providers) == 0 {
			return nil
		}
		rec := recs[v.cursor]
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		current := 0
		for i, p := range rec.Providers {
			if p.Name == v.panel.SelectedProviders()[rec.Category] {
				current = i
			}
		}
		next := rec.Providers[cycle(current, delta, len(rec.Providers))]
		if err := v.panel.SelectProvider(rec.Category, next.Name); err != nil {
			return fail(act.Step, err)
		}
	case "enter":
		return result(act.Step, func() (string, func(), error) {
			reqs, err := v.panel.SubmitProviders(act)
			if err != nil {
				return "", nil, err
			}
			return fmt.Sprintf("%d provider(s) need API keys", len(reqs)), v.buildKeyInputs, nil
		})
	}
	return nil
}

func (v *thirdPartyView) buildKeyInputs() {
	v.keys = nil
	v.cursor = 0
	for _, req := range v.panel.Requirements() {
		for _, k := range req.KeysRequired {
			in := textinput.New()
			in.Placeholder = k.Placeholder
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
			in.CharLimit = 300
			label := k.Label
			if label == "" {
				label = k.Field
			}
			v.keys = append(v.keys, keyInput{field: k.Field, label: req.Provider + " " + label, input: in})
		}
	}
	sort.SliceStable(v.keys, func(i, j int) bool { return v.keys[i].field < v.keys[j].field })
	if len(v.keys) > 0 {
		v.keys[0].input.Focus()
	}
}

func (v *thirdPartyView) updateKeys(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	if len(v.keys) == 0 && len(v.panel.Requirements()) > 0 {
		v.buildKeyInputs()
	}
	switch msg.String() {
	case "tab", "down":
		v.focusKey(v.cursor + 1)
		return nil
	case "shift+tab", "up":
		v.focusKey(v.cursor - 1)
		return nil
	case "ctrl+s", "enter":
		for _, k := range v.keys {
			if err := v.panel.SetKey(k.field, k.input.Value()); err != nil {
				return fail(act.Step, err)
			}
		}
		if err := v.panel.SubmitKeys(act); err != nil {
			return fail(act.Step, err)
		}
		return nil
	}

	if len(v.keys) > 0 {
		v.keys[v.cursor].input, _ = v.keys[v.cursor].input.Update(msg)
	}
	return nil
}

func (v *thirdPartyView) focusKey(i int) {
	if len(v.keys) == 0 {
		return
	}
	v.keys[v.cursor].input.Blur()
	v.cursor = cycle(i, 0, len(v.keys))
	v.keys[v.cursor].input.Focus()
}

func (v *thirdPartyView) view(width int) string {
	var b strings.Builder
	switch v.panel.Stage() {
	case panel.StageAPIs:
		apis := v.panel.APIs()
		if len(apis) == 0 {
			return labelStyle.Render("Your requirements do not call for any third-party APIs. Press enter to continue.")
		}
		b.WriteString(labelStyle.Render("Select the APIs to integrate"))
		b.WriteString("\n\n")
		for i, api := range apis {
			name := api.Name
			if api.Required {
				name += " (required)"
			}
			b.WriteString(line(i == v.cursor, checkbox(v.panel.IsAPISelected(api.Id))+" "+name))
			b.WriteString("\n")
		}
		if api := apis[v.cursor]; api.Description != "" || api.Purpose != "" {
			b.WriteString("\n")
			b.WriteString(boxStyle.Width(width - 4).Render(strings.TrimSpace(api.Description + "\n" + api.Purpose)))
		}

	case panel.StageProviders:
		selected := v.panel.SelectedProviders()
		b.WriteString(labelStyle.Render("Choose a provider for each API"))
		b.WriteString("\n\n")
		for i, rec := range v.panel.Recommendations() {
			title := rec.APICategory
			if title == "" {
				title = rec.Category
			}
			b.WriteString(line(i == v.cursor, fmt.Sprintf("%-24s ‹ %s ›", title, selected[rec.Category])))
			b.WriteString("\n")
		}

	case panel.StageKeys:
		if len(v.keys) == 0 && len(v.panel.Requirements()) > 0 {
			v.buildKeyInputs()
		}
		b.WriteString(labelStyle.Render("Enter the API keys. They are stored on this machine only."))
		b.WriteString("\n\n")
		for i, k := range v.keys {
			label := labelStyle
			if i == v.cursor {
				label = focusedLabelStyle
			}
			k.input.Width = width - 34
			b.WriteString(label.Width(30).Render(k.label) + " " + k.input.View())
			b.WriteString("\n")
		}
		blank := 0
		for _, k := range v.keys {
			if strings.TrimSpace(k.input.Value()) == "" {
				blank++
			}
		}
		if blank > 0 {
			b.WriteString("\n")
			b.WriteString(labelStyle.Render(fmt.Sprintf("%d key(s) missing", blank)))
		}

	default:
		b.WriteString(statusStyle.Render("Third-party setup complete."))
	}
	return b.String()
}

func (v *thirdPartyView) help() string {
	switch v.panel.Stage() {
	case panel.StageAPIs:
		return "↑/↓ move • space select • enter continue"
	case panel.StageProviders:
		return "↑/↓ move • ←/→ provider • enter continue"
	case panel.StageKeys:
		return "tab next key • enter save keys"
	}
	return ""
}
