package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

// brand form fields, in focus order
const (
	brandName = iota
	brandPrimary
	brandSecondary
	brandAccent
	brandBackground
	brandForeground
	brandFont
	brandVoice
	brandTone
	brandFieldCount
)

var brandLabels = [brandFieldCount]string{
	"Brand name", "Primary", "Secondary", "Accent", "Background", "Foreground", "Font", "Brand voice", "Tone",
}

type brandView struct {
	panel  *panel.Brand
	design dto.BrandDesign
	inputs map[int]*textinput.Model
	font   int
	tone   int
	focus  int
}

func newBrandView(deps *panel.Deps) *brandView {
	v := &brandView{
		panel:  panel.NewBrand(deps),
		inputs: make(map[int]*textinput.Model),
	}
	for _, f := range []int{brandName, brandPrimary, brandSecondary, brandAccent, brandBackground, brandForeground, brandVoice} {
		in := textinput.New()
		in.CharLimit = 120
		v.inputs[f] = &in
	}
	v.fill(panel.DefaultBrandDesign())
	return v
}

func (v *brandView) enter(act wizard.Activation) tea.Cmd {
	return result(act.Step, func() (string, func(), error) {
		design, err := v.panel.Load(act)
		if err != nil {
			return "", nil, err
		}
		return "", func() { v.fill(design) }, nil
	})
}

func (v *brandView) fill(d dto.BrandDesign) {
	v.design = d
	v.inputs[brandName].SetValue(d.BrandName)
	v.inputs[brandPrimary].SetValue(d.Colors.Primary)
	v.inputs[brandSecondary].SetValue(d.Colors.Secondary)
	v.inputs[brandAccent].SetValue(d.Colors.Accent)
	v.inputs[brandBackground].SetValue(d.Colors.Background)
	v.inputs[brandForeground].SetValue(d.Colors.Foreground)
	v.inputs[brandVoice].SetValue(d.BrandVoice)
	v.font = indexOf(panel.BrandFonts, d.FontFamily)
	v.tone = indexOf(panel.BrandTones, d.Tone)
	v.setFocus(brandName)
}

func (v *brandView) collect() dto.BrandDesign {
	d := v.design
	d.BrandName = v.inputs[brandName].Value()
	d.Colors = dto.BrandColors{
		Primary:    strings.TrimSpace(v.inputs[brandPrimary].Value()),
		Secondary:  strings.TrimSpace(v.inputs[brandSecondary].Value()),
		Accent:     strings.TrimSpace(v.inputs[brandAccent].Value()),
		Background: strings.TrimSpace(v.inputs[brandBackground].Value()),
		Foreground: strings.TrimSpace(v.inputs[brandForeground].Value()),
	}
	d.BrandVoice = v.inputs[brandVoice].Value()
	d.FontFamily = panel.BrandFonts[v.font]
	d.Tone = panel.BrandTones[v.tone]
	return d
}

func (v *brandView) setFocus(f int) {
	for _, in := range v.inputs {
		in.Blur()
	}
	v.focus = f
	if in, ok := v.inputs[f]; ok {
		in.Focus()
		in.CursorEnd()
	}
}

func (v *brandView) update(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		v.setFocus((v.focus + 1) % brandFieldCount)
		return nil
	case "shift+tab", "up":
		v.setFocus((v.focus - 1 + brandFieldCount) % brandFieldCount)
		return nil
	case "ctrl+s":
		design := v.collect()
		return result(act.Step, func() (string, func(), error) {
			if _, err := v.panel.Save(act, design); err != nil {
				return "", nil, err
			}
			return "Brand design saved", nil, nil
		})
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch v.focus {
		case brandFont:
			v.font = cycle(v.font, delta, len(panel.BrandFonts))
			return nil
		case brandTone:
			v.tone = cycle(v.tone, delta, len(panel.BrandTones))
			return nil
		}
	}

	if in, ok := v.inputs[v.focus]; ok {
		*in, _ = in.Update(msg)
	}
	return nil
}

func (v *brandView) view(width int) string {
	var rows []string
	for f := 0; f < brandFieldCount; f++ {
		label := labelStyle
		if f == v.focus {
			label = focusedLabelStyle
		}
		var value string
		switch f {
		case brandFont:
			value = "‹ " + panel.BrandFonts[v.font] + " ›"
		case brandTone:
			value = "‹ " + panel.BrandTones[v.tone] + " ›"
		default:
			in := v.inputs[f]
			in.Width = width - 20
			value = in.View()
			if f >= brandPrimary && f <= brandForeground {
				value = swatch(in.Value()) + " " + value
			}
		}
		rows = append(rows, label.Width(14).Render(brandLabels[f])+" "+value)
	}
	return strings.Join(rows, "\n")
}

func (v *brandView) help() string {
	return "tab/↑/↓ field • ←/→ change font or tone • ctrl+s save"
}

// swatch renders a block in color, or a blank when color is not usable.
func swatch(color string) string {
	if len(color) != 4 && len(color) != 7 {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

func cycle(i, delta, n int) int {
	return (i + delta + n) % n
}
