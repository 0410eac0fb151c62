// Package tui is the terminal front end of the project wizard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
)

type focus int

const (
	focusContent focus = iota
	focusSidebar
)

// resultMsg carries the outcome of a backend call made for step. apply runs
// on the update loop and may touch view state.
type resultMsg struct {
	step  wizard.Step
	err   error
	note  string
	apply func()
}

// stepView renders one wizard step and handles its keys.
type stepView interface {
	enter(act wizard.Activation) tea.Cmd
	update(msg tea.KeyMsg, act wizard.Activation) tea.Cmd
	view(width int) string
	help() string
}

type Options struct {
	// ExportDir receives performance report exports. Defaults to ".".
	ExportDir string
}

type Model struct {
	deps *panel.Deps
	nav  *wizard.Navigator
	opts Options

	step    wizard.Step
	views   map[wizard.Step]stepView
	cursor  int
	focus   focus
	loading bool
	status  string
	errMsg  string

	spinner  spinner.Model
	width    int
	height   int
	quitting bool
}

func New(deps *panel.Deps, nav *wizard.Navigator, opts Options) Model {
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	m := Model{
		deps:    deps,
		nav:     nav,
		opts:    opts,
		step:    nav.Active(),
		spinner: sp,
		width:   100,
		height:  30,
	}
	m.views = map[wizard.Step]stepView{
		wizard.Requirements:      newRequirementsView(deps),
		wizard.UserPersona:       newPersonasView(deps),
		wizard.BusinessLogic:     newLogicView(deps),
		wizard.BrandDesign:       newBrandView(deps),
		wizard.ThirdPartyAPI:     newThirdPartyView(deps),
		wizard.PerformanceReport: newReportView(opts.ExportDir),
	}
	for _, step := range wizard.Steps() {
		if info, ok := panel.InfoFor(step); ok {
			m.views[step] = infoView{info: info}
		}
	}
	return m
}

// Run shows the wizard until the user quits or ctx is cancelled.
func Run(ctx context.Context, deps *panel.Deps, start wizard.Step, opts Options) error {
	nav := wizard.New(ctx, start)
	defer nav.Close()

	p := tea.NewProgram(New(deps, nav, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type enterMsg struct{}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return enterMsg{} })
}

// Step is the step currently on screen.
func (m Model) Step() wizard.Step {
	return m.step
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case enterMsg:
		return m.enter()

	case resultMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.String() == "esc" {
			m.toggleFocus()
			return m, nil
		}
		if m.focus == focusSidebar {
			return m.updateSidebar(msg)
		}
		if m.loading {
			return m, nil
		}
		return m.updateContent(msg)
	}
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusSidebar {
		m.focus = focusContent
		return
	}
	m.focus = focusSidebar
	m.cursor = m.step.Index()
}

func (m Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	steps := wizard.Steps()
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(steps)-1 {
			m.cursor++
		}
	case "enter":
		if err := m.nav.Jump(steps[m.cursor]); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.focus = focusContent
		return m.enter()
	}
	return m, nil
}

func (m Model) updateContent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.views[m.step]
	if v == nil {
		return m, nil
	}
	m.errMsg = ""
	cmd := v.update(msg, m.nav.Current())
	if m.nav.Active() != m.step {
		return m.enter()
	}
	if cmd != nil {
		m.loading = true
	}
	return m, cmd
}

// enter shows the navigator's active step and starts its load.
func (m Model) enter() (Model, tea.Cmd) {
	m.step = m.nav.Active()
	m.cursor = m.step.Index()
	m.loading = false
	v := m.views[m.step]
	if v == nil {
		return m, nil
	}
	cmd := v.enter(m.nav.Current())
	m.loading = cmd != nil
	return m, cmd
}

func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if msg.step != m.step {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, panel.ErrInactive) {
			return m, nil
		}
		m.errMsg = panel.Message(msg.err, "Something went wrong. Please try again.")
		if m.deps.Logger != nil && !panel.IsValidation(msg.err) {
			m.deps.Logger.Warn("tui", "Step action failed", map[string]interface{}{
				"step":  msg.step.String(),
				"error": msg.err.Error(),
			})
		}
		return m, nil
	}
	if msg.apply != nil {
		msg.apply()
	}
	m.status = msg.note
	if m.nav.Active() != m.step {
		return m.enter()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render("Codebenders")
	if p := m.deps.State.CurrentProject(); p != nil {
		header += " " + titleStyle.Render(p.Name)
	}
	if u := m.deps.State.User(); u != nil {
		header += labelStyle.Render("  " + u.DisplayName())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), m.viewContent())

	var footer []string
	if m.errMsg != "" {
		footer = append(footer, errorStyle.Render(m.errMsg))
	} else if m.status != "" {
		footer = append(footer, statusStyle.Render(m.status))
	}
	footer = append(footer, helpStyle.Render(m.help()))

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", strings.Join(footer, "\n"))
}

func (m Model) viewSidebar() string {
	var b strings.Builder
	for i, step := range wizard.Steps() {
		label := fmt.Sprintf("%2d %s", i+1, step)
		switch {
		case m.focus == focusSidebar && i == m.cursor:
			b.WriteString(cursorStyle.Render(label))
		case step == m.step:
			b.WriteString(activeStepStyle.Render(label))
		default:
			b.WriteString(label)
		}
		b.WriteString("\n")
	}
	style := sidebarStyle
	if m.focus == focusSidebar {
		style = sidebarFocusedStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewContent() string {
	width := m.width - sidebarStyle.GetWidth() - 6
	if width < 40 {
		width = 40
	}
	title := titleStyle.Render(m.step.String())
	if m.loading {
		return contentStyle.Render(title + "\n\n" + m.spinner.View() + " Loading...")
	}
	v := m.views[m.step]
	if v == nil {
		return contentStyle.Render(title)
	}
	return contentStyle.Width(width).Render(title + "\n\n" + v.view(width))
}

func (m Model) help() string {
	if m.focus == focusSidebar {
		return "↑/↓ choose step • enter open • esc back • q quit"
	}
	if v := m.views[m.step]; v != nil {
		return v.help() + " • esc steps • ctrl+c quit"
	}
	return "esc steps • ctrl+c quit"
}

func result(step wizard.Step, fn func() (string, func(), error)) tea.Cmd {
	return func() tea.Msg {
		note, apply, err := fn()
		return resultMsg{step: step, err: err, note: note, apply: apply}
	}
}

// fail reports err for step without a backend call.
func fail(step wizard.Step, err error) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{step: step, err: err}
	}
}
