package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("pkgdrop", styles.Logo)}

	targetStyle := styles.Text
	if strings.TrimSpace(m.hostInput.Value()) == "" {
		targetStyle = styles.WarningText
	}
	parts = append(parts,
		bg.Render("Target:", styles.MutedText)+bg.Space()+bg.Render(m.targetLabel(), targetStyle))

	visible, total := len(m.visiblePackages()), len(m.packages)
	label := "Packages:"
	if compact {
		label = "Pkgs:"
	}
	count := fmt.Sprintf("%d", total)
	if visible != total {
		count = fmt.Sprintf("%d/%d", visible, total)
	}
	parts = append(parts, bg.Render(label, styles.MutedText)+bg.Space()+bg.Render(count, styles.Text))

	if inFlight := m.snapshot.InFlight(); inFlight > 0 {
		parts = append(parts,
			bg.Render("Sending:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", inFlight), styles.InfoText))
	}
	if m.snapshot.Scanning {
		parts = append(parts, bg.Render("Scanning...", styles.WarningText.Bold(true)))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// targetLabel is the device address as typed, or a hint when empty.
func (m Model) targetLabel() string {
	host := strings.TrimSpace(m.hostInput.Value())
	if host == "" {
		return "not set"
	}
	return host
}

// renderCommandBar renders the key hints for the focused widget.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.focus {
	case FocusHost, FocusSearch:
		commands = []cmd{
			{"enter", "Done"},
			{"esc", "Back"},
			{"tab", "Next field"},
		}
	default:
		commands = []cmd{
			{"enter", "Install"},
			{"s", "Scan"},
			{"/", "Search"},
			{"H", "Address"},
			{"j/k", "Navigate"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderInputs renders the device address and search fields side by side.
func (m Model) renderInputs() string {
	hostWidth := m.width / 2
	searchWidth := m.width - hostWidth

	host := m.renderTitledBox("Device", m.hostInput.View(), hostWidth, inputBoxHeight, m.focus == FocusHost)
	search := m.renderTitledBox("Search", m.searchInput.View(), searchWidth, inputBoxHeight, m.focus == FocusSearch)
	return lipgloss.JoinHorizontal(lipgloss.Top, host, search)
}

// renderMessages renders the status line and the error line. Each is shown
// as the store holds it; neither is cleared by the other.
func (m Model) renderMessages() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	status := bg.Render("Status", styles.MutedText) + bg.Spaces(2)
	if m.snapshot.Status != "" {
		status += bg.Render(truncate(m.snapshot.Status, max(m.width-10, 10)), styles.InfoText)
	} else {
		status += bg.Render("Ready", styles.FaintText)
	}

	errLine := bg.Render("Error ", styles.MutedText) + bg.Spaces(2)
	if m.snapshot.Error != "" {
		errLine += bg.Render(truncate(m.snapshot.Error, max(m.width-10, 10)), styles.DangerText)
	}

	return bg.FillLine(status, m.width) + "\n" + bg.FillLine(errLine, m.width)
}

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps both ends of a string, which suits URLs whose file
// name matters more than the path.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 5 {
		return string(runes[:limit])
	}
	endLen := (limit - 3) * 2 / 3
	startLen := limit - 3 - endLen
	return string(runes[:startLen]) + "..." + string(runes[len(runes)-endLen:])
}
