package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pkgdrop/internal/state"
)

// activityHeight is the box height including borders.
func (m Model) activityHeight() int {
	rows := min(len(m.snapshot.Attempts), ActivityRows)
	return max(rows, 1) + 2
}

// renderActivity lists the most recent install attempts, newest first.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)
	inner := max(m.width-2, 10)

	attempts := m.snapshot.Attempts
	if len(attempts) == 0 {
		return m.renderTitledBox("Activity", bg.Render("No installs yet", styles.MutedText), m.width, m.activityHeight(), false)
	}

	lines := make([]string, 0, ActivityRows)
	for _, a := range attempts[:min(len(attempts), ActivityRows)] {
		lines = append(lines, m.formatAttempt(a, inner, bg))
	}
	return m.renderTitledBox(m.activityTitle(), strings.Join(lines, "\n"), m.width, m.activityHeight(), false)
}

func (m Model) activityTitle() string {
	if len(m.snapshot.Attempts) > ActivityRows {
		return fmt.Sprintf("Activity (%d of %d)", ActivityRows, len(m.snapshot.Attempts))
	}
	return "Activity"
}

// formatAttempt renders "15:04:05 STARTED Title → host (120ms)".
func (m Model) formatAttempt(a state.Attempt, width int, bg BgStyle) string {
	styles := m.theme.Styles()
	outcomeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.OutcomeColor(a.Outcome))).Bold(true)

	host := a.Host
	if host == "" {
		host = "no address"
	}

	parts := []string{
		bg.Render(a.StartedAt.Format("15:04:05"), styles.FaintText),
		bg.Render(fmt.Sprintf("%-8s", strings.ToUpper(string(a.Outcome))), outcomeStyle),
		bg.Render(truncate(a.Title, max(width/3, 8)), styles.Text),
		bg.Render("→ "+host, styles.MutedText),
	}
	if a.Done() && !a.FinishedAt.IsZero() && a.Outcome != state.OutcomeRejected {
		elapsed := a.FinishedAt.Sub(a.StartedAt).Round(time.Millisecond)
		parts = append(parts, bg.Render(fmt.Sprintf("(%s)", elapsed), styles.FaintText))
	}
	return bg.Join(parts, " ")
}
