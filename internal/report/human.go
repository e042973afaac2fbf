package report

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

type humanRenderer struct{}

func (r *humanRenderer) Render(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, headerStyle.Render(fmt.Sprintf("Protected-content validation (%s files)", report.Mode)))
	fmt.Fprintln(&buf)

	if report.Summary.FilesChecked == 0 {
		fmt.Fprintln(&buf, mutedStyle.Render("  no candidate files"))
	}

	for _, f := range report.Files {
		if f.Valid {
			fmt.Fprintf(&buf, "  %s %s\n", okStyle.Render("✓"), f.Path)
			continue
		}
		fmt.Fprintf(&buf, "  %s %s\n", badStyle.Render("✗"), f.Path)
		for _, v := range f.Violations {
			fmt.Fprintf(&buf, "      %s %s\n", sourceStyle.Render("["+v.Source+"]"), v.Message)
		}
	}

	fmt.Fprintln(&buf)
	summary := fmt.Sprintf("%d file(s) checked, %d violation(s)",
		report.Summary.FilesChecked, report.Summary.ViolationCount)
	if report.HasViolations() {
		fmt.Fprintln(&buf, badStyle.Render(summary))
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, mutedStyle.Render("Common fixes: move secrets into environment variables, replace"))
		fmt.Fprintln(&buf, mutedStyle.Render("personal emails and names with ${VAR} placeholders, or add an"))
		fmt.Fprintln(&buf, mutedStyle.Render("exception glob to .pai/protected-patterns.json for sample files."))
	} else {
		fmt.Fprintln(&buf, okStyle.Render(summary))
	}

	return buf.Bytes(), nil
}
