package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/commitcraft/commitcraft/internal/application"
	"github.com/commitcraft/commitcraft/internal/domain"
)

// ── Warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Width(68)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	okStyle       = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	breakingStyle = lipgloss.NewStyle().Foreground(warning).Bold(true)
	ruleTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	headingStyle  = lipgloss.NewStyle().Foreground(accent)
	subjectStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderDraft shows a generated draft: classification header plus the
// message preview.
func RenderDraft(draft *application.Draft) string {
	var b strings.Builder

	res := draft.Classification
	head := headerStyle.Render("commitcraft") + "\n" +
		dimStyle.Render("Suggested commit message")
	b.WriteString(boxStyle.Render(head))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("verb"), titleStyle.Render(res.Verb))
	if len(res.Scopes) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("scopes"), titleStyle.Render(strings.Join(res.Scopes, ", ")))
	}
	if res.Breaking {
		fmt.Fprintf(&b, "  %s\n", breakingStyle.Render("breaking change detected"))
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	b.WriteString(RenderMessage(draft.Message))
	return b.String()
}

// RenderMessage pretty-prints a commit message, highlighting the subject
// and section headings.
func RenderMessage(msg domain.CommitMessage) string {
	var b strings.Builder
	b.WriteString("  " + subjectStyle.Render(msg.Subject) + "\n")

	for _, s := range msg.Sections {
		b.WriteString("\n")
		if s.Heading != "" {
			b.WriteString("  " + headingStyle.Render(s.Heading) + "\n")
		}
		for _, line := range strings.Split(s.Body, "\n") {
			b.WriteString("  " + dimStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

// RenderReport shows a verification outcome: a pass line, or the violation
// list with rule tags and line numbers.
func RenderReport(report *application.Report) string {
	if report.Valid {
		return "  " + okStyle.Render("Commit message is valid.") + "\n"
	}

	var b strings.Builder
	b.WriteString("  " + failStyle.Render(fmt.Sprintf("%d violation(s) found", len(report.Violations))))
	b.WriteString("\n\n")

	for _, v := range report.Violations {
		tag := ruleTagStyle.Render(v.Rule)
		if v.Line > 0 {
			fmt.Fprintf(&b, "    %s %s %s\n", tag, dimStyle.Render(v.Message), faintStyle.Render(fmt.Sprintf("(line %d)", v.Line)))
		} else {
			fmt.Fprintf(&b, "    %s %s\n", tag, dimStyle.Render(v.Message))
		}
	}
	return b.String()
}

// RenderInstructions is printed after a draft is written to disk.
func RenderInstructions(path string) string {
	steps := []string{
		"Review the generated " + path,
		"Complete any sections marked with [Required]",
		"Update any sections marked with [Optional]",
		"Commit with: git commit -F " + path,
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("To use this commit message") + "\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), dimStyle.Render(step))
	}
	return b.String()
}
