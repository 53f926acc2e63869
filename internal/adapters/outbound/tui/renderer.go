package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/xeenaa/implaudit/internal/domain"
	"github.com/xeenaa/implaudit/internal/domain/registry"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
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
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderBanner is printed before an audit starts.
func RenderBanner() string {
	title := headerStyle.Render("implaudit")
	subtitle := dimStyle.Render("Implementation Validation")
	return boxStyle.Render(title+"\n"+subtitle) + "\n"
}

// RenderAudit formats a finished audit for the terminal.
func RenderAudit(audit *domain.Audit) string {
	var b strings.Builder
	sum := audit.Summary()

	// ── Header ──
	color := rateColor(sum.SuccessRate)
	rate := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%.1f%%", sum.SuccessRate))
	counts := dimStyle.Render(fmt.Sprintf("%d passed · %d failed · %d total", sum.Passed, sum.Failed, sum.Total))
	head := headerStyle.Render("Validation Results") + "\n" + counts + "\n\n" + rate
	if audit.CommitHash != "" {
		head += "\n" + faintStyle.Render(shortHash(audit.CommitHash))
	}
	b.WriteString(boxStyle.Render(head))
	b.WriteString("\n\n")

	// ── Categories ──
	groups := audit.Groups()
	for i, g := range groups {
		fmt.Fprintf(&b, "  %s\n", catNameStyle.Render(g.Category.Label()))
		for _, r := range g.Results {
			renderResult(&b, r)
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	if sum.Failed > 0 {
		b.WriteString("  " + failStyle.Render(fmt.Sprintf("%d checks failed.", sum.Failed)) + "\n")
	} else {
		b.WriteString("  " + passStyle.Render("All validations passed.") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderResult(b *strings.Builder, r domain.Result) {
	var icon string
	switch {
	case r.Informational:
		icon = warnStyle.Render("○")
	case r.Passed:
		icon = passStyle.Render("●")
	default:
		icon = failStyle.Render("●")
	}

	fmt.Fprintf(b, "    %s %s %s\n", icon, padRight(r.TestName, 30), r.Message)
	if r.Passed && !r.Informational {
		return
	}
	for _, l := range r.Logs {
		fmt.Fprintf(b, "        %s\n", dimStyle.Render(l))
	}
}

// RenderPatterns lists everything the registry evaluates.
func RenderPatterns(reg *registry.Registry) string {
	var b strings.Builder
	b.WriteString("\n")

	section := func(title string) {
		b.WriteString("  " + titleStyle.Render(title) + "\n")
		b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")
	}

	section("Source Checks")
	artifacts := append(append([]registry.SourceArtifact{}, reg.CodeStructure...), reg.LogicFlows...)
	for _, a := range artifacts {
		fmt.Fprintf(&b, "  %s  %s\n", catNameStyle.Render(ArtifactLabel(a.Name)), faintStyle.Render(a.Path))
		for _, c := range a.Checks {
			fmt.Fprintf(&b, "    %s %s %s\n", infoTagStyle.Render("·"), padRight(c.Name, 28), dimStyle.Render(c.Rule.String()))
		}
	}
	fmt.Fprintf(&b, "  %s  %s\n", catNameStyle.Render("Language File"), faintStyle.Render(reg.Translation.Path))
	for _, k := range reg.Translation.Keys {
		fmt.Fprintf(&b, "    %s %s\n", infoTagStyle.Render("·"), dimStyle.Render(k))
	}
	b.WriteString("\n")

	section(fmt.Sprintf("Log Patterns (%d)", len(reg.LogPatterns)))
	concern := ""
	for _, p := range reg.LogPatterns {
		if p.Concern != concern {
			concern = p.Concern
			fmt.Fprintf(&b, "  %s\n", catNameStyle.Render(concern))
		}
		fmt.Fprintf(&b, "    %s %s %s\n", infoTagStyle.Render("·"), padRight(p.Name, 34), dimStyle.Render(p.Rule.String()))
	}
	b.WriteString("\n")

	section("Behavior Flows")
	for _, f := range reg.Flows {
		fmt.Fprintf(&b, "  %s\n", catNameStyle.Render(f.Name))
		for i, frag := range f.Fragments {
			fmt.Fprintf(&b, "    %s %s\n", skipStyle.Render(fmt.Sprintf("%d.", i+1)), dimStyle.Render(frag))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// ArtifactLabel turns a source file name into words,
// e.g. "TabbedManagementScreen.java" into "Tabbed Management Screen".
func ArtifactLabel(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	var words []string
	for _, w := range camelcase.Split(base) {
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}

		rateStyled := lipgloss.NewStyle().
			Foreground(rateColor(e.SuccessRate)).
			Render(fmt.Sprintf("%5.1f%%", e.SuccessRate))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(datePart(e.Timestamp)),
			faintStyle.Render(hash),
			rateStyled,
			dimStyle.Render(fmt.Sprintf("%d/%d", e.Passed, e.Total)),
		)

		if i > 0 {
			diff := e.Failed - entries[i-1].Failed
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d failing", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d failing", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func rateColor(rate float64) lipgloss.Color {
	switch {
	case rate >= 100:
		return success
	case rate >= 70:
		return lipgloss.Color("#A3E635") // lime
	case rate >= 40:
		return warning
	default:
		return danger
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func datePart(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
