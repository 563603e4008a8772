package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	infoStyle     = lipgloss.NewStyle().Foreground(info)
	skipStyle     = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a finished validation report for a terminal.
func RenderReport(r *domain.ValidationReport) string {
	var b strings.Builder

	// ── Header ──
	verdict := failStyle.Bold(true).Render("NOT CONFORMANT")
	if r.Conformant() {
		verdict = passStyle.Bold(true).Render("CONFORMANT")
	}
	title := headerStyle.Render("ipcheck")
	subtitle := dimStyle.Render(r.Package.Name)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	renderStructure(&b, r)
	renderSchema(&b, r)
	renderProfile(&b, r)

	if len(r.StageErrors) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		for stage, msg := range r.StageErrors {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n",
				failStyle.Render("✗"), titleStyle.Render(stage+" stage could not run"), dimStyle.Render(msg)))
		}
	}

	return b.String()
}

func renderStructure(b *strings.Builder, r *domain.ValidationReport) {
	b.WriteString("  " + titleStyle.Render("Structure") + "  " + statusBadge(r.Structure.Status) + "\n")
	for _, f := range r.Structure.Findings {
		b.WriteString(fmt.Sprintf("    %s %s %s\n",
			severityTag(f.Severity),
			humanizeCondition(f.Condition),
			dimStyle.Render(f.Path)))
	}
	b.WriteString("\n")
}

func renderSchema(b *strings.Builder, r *domain.ValidationReport) {
	b.WriteString("  " + titleStyle.Render("Schema") + "  ")
	switch {
	case r.Schema == nil:
		b.WriteString(skipStyle.Render("skipped") + "\n")
	case r.Schema.Valid:
		b.WriteString(passStyle.Render("valid") + "\n")
	default:
		b.WriteString(failStyle.Render("invalid") + "\n")
		for _, e := range r.Schema.Errors {
			loc := e.Element
			if e.Line > 0 {
				loc = fmt.Sprintf("%s (line %d)", loc, e.Line)
			}
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				severityTag(e.Severity), e.Message, dimStyle.Render(loc)))
		}
	}
	b.WriteString("\n")
}

func renderProfile(b *strings.Builder, r *domain.ValidationReport) {
	b.WriteString("  " + titleStyle.Render("Profile") + "  ")
	if r.Profile == nil {
		b.WriteString(skipStyle.Render("skipped") + "\n")
		return
	}
	if r.Profile.Valid {
		b.WriteString(passStyle.Render("valid") + "  " + dimStyle.Render(r.Profile.Profile) + "\n")
	} else {
		b.WriteString(failStyle.Render("invalid") + "  " + dimStyle.Render(r.Profile.Profile) + "\n")
	}
	for _, o := range r.Profile.Outcomes {
		switch o.Outcome {
		case domain.OutcomePass:
			b.WriteString(fmt.Sprintf("    %s %s\n", passStyle.Render("✓"), o.RuleID))
		case domain.OutcomeNotApplicable:
			b.WriteString(fmt.Sprintf("    %s %s %s\n", skipStyle.Render("-"), o.RuleID, skipStyle.Render("not applicable")))
		default:
			b.WriteString(fmt.Sprintf("    %s %s %s\n", failStyle.Render("✗"), o.RuleID, dimStyle.Render(o.Message)))
		}
	}
}

func statusBadge(s domain.StructureStatus) string {
	switch s {
	case domain.StructureWellFormed:
		return passStyle.Render("well-formed")
	case domain.StructureNotWellFormed:
		return failStyle.Render("not well-formed")
	default:
		return warnStyle.Render("unknown")
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return failStyle.Bold(true).Render("ERROR")
	case domain.SeverityWarning:
		return warnStyle.Bold(true).Render("WARN")
	default:
		return infoStyle.Render("INFO")
	}
}

// humanizeCondition turns a condition code like MissingMetadataFile into
// "missing metadata file".
func humanizeCondition(code string) string {
	words := camelcase.Split(code)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}
