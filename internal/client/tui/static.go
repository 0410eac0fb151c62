package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codebenders/internal/client/panel"
	"codebenders/internal/client/wizard"
)

type infoView struct {
	info panel.Info
}

func (v infoView) enter(wizard.Activation) tea.Cmd { return nil }

func (v infoView) update(tea.KeyMsg, wizard.Activation) tea.Cmd { return nil }

func (v infoView) view(width int) string {
	var b strings.Builder
	b.WriteString(v.info.Summary)
	for _, s := range v.info.Sections {
		b.WriteString("\n\n")
		b.WriteString(focusedLabelStyle.Render(s.Heading))
		for _, l := range s.Lines {
			b.WriteString("\n  • " + l)
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (v infoView) help() string {
	return "esc choose another step"
}

type reportView struct {
	report panel.PerformanceReport
	dir    string
}

func newReportView(dir string) *reportView {
	return &reportView{report: panel.SampleReport(), dir: dir}
}

func (v *reportView) enter(wizard.Activation) tea.Cmd { return nil }

func (v *reportView) update(msg tea.KeyMsg, act wizard.Activation) tea.Cmd {
	var format panel.ExportFormat
	switch msg.String() {
	case "j":
		format = panel.FormatJSON
	case "c":
		format = panel.FormatCSV
	case "y":
		format = panel.FormatYAML
	default:
		return nil
	}
	return result(act.Step, func() (string, func(), error) {
		path, err := v.export(format)
		if err != nil {
			return "", nil, err
		}
		return "Report exported to " + path, nil, nil
	})
}

func (v *reportView) export(format panel.ExportFormat) (string, error) {
	path := filepath.Join(v.dir, "performance-report"+format.Extension())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := v.report.Export(f, format); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s export: %w", format, err)
	}
	return path, f.Close()
}

func (v *reportView) view(width int) string {
	r := v.report
	stats := []string{
		fmt.Sprintf("Total requests  %d", r.TotalRequests),
		"Avg response    " + r.AvgResponseTime,
		"Pass rate       " + r.PassRate,
		"Max users       " + r.MaxUsers,
	}
	info := []string{
		"Test type       " + r.TestInformation.TestType,
		"Timestamp       " + r.TestInformation.Timestamp,
		"API tested      " + r.TestInformation.APITested,
		"Auth time       " + r.TestInformation.AuthTime,
	}

	var rows []string
	rows = append(rows, focusedLabelStyle.Render(fmt.Sprintf("%-20s %-24s %-12s %s", "API", "Endpoint", "Avg time", "Status")))
	for _, p := range r.APIPerformance {
		status := statusStyle.Render(p.Status)
		if p.Status != "Pass" {
			status = errorStyle.Render(p.Status)
		}
		rows = append(rows, fmt.Sprintf("%-20s %-24s %-12s %s", p.APIName, p.Endpoint, p.AvgResponseTime, status))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(strings.Join(stats, "\n")), " ",
		boxStyle.Render(strings.Join(info, "\n")),
	) + "\n\n" + strings.Join(rows, "\n")
}

func (v *reportView) help() string {
	return "j export JSON • c export CSV • y export YAML"
}
