package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/pkgdrop/internal/prefs"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.focus != FocusList {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save prefs failed", zap.Error(err))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.setFocus(FocusHost)

	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.setFocus(FocusSearch)

	case key.Matches(msg, m.keys.FocusSearch):
		return m, m.setFocus(FocusSearch)

	case key.Matches(msg, m.keys.FocusHost):
		return m, m.setFocus(FocusHost)

	case key.Matches(msg, m.keys.Escape):
		if m.searchInput.Value() != "" {
			selected := m.selectedID()
			m.searchInput.SetValue("")
			m.clampSelection(selected)
		}
		return m, nil

	case key.Matches(msg, m.keys.Install):
		return m, m.installSelected()

	case key.Matches(msg, m.keys.Scan):
		return m, m.startScan()
	}

	return m.handleListKey(msg)
}

// handleListKey moves the package selection.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.visiblePackages())
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	}
	return m, nil
}

// handleInputKey routes keys to the focused text input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Confirm):
		return m, m.setFocus(FocusList)
	case key.Matches(msg, m.keys.Tab):
		return m, m.setFocus(m.nextFocus(1))
	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.setFocus(m.nextFocus(-1))
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusHost:
		m.hostInput, cmd = m.hostInput.Update(msg)
	case FocusSearch:
		selected := m.selectedID()
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.clampSelection(selected)
	}
	return m, cmd
}

// nextFocus cycles List -> Host -> Search in the given direction.
func (m Model) nextFocus(step int) Focus {
	order := []Focus{FocusList, FocusHost, FocusSearch}
	for i, f := range order {
		if f == m.focus {
			return order[(i+step+len(order))%len(order)]
		}
	}
	return FocusList
}

// setFocus moves keyboard focus, blurring whichever input had it.
func (m *Model) setFocus(f Focus) tea.Cmd {
	if m.focus == FocusHost && f != FocusHost {
		m.store.SetHost(m.hostInput.Value())
	}
	m.focus = f
	m.hostInput.Blur()
	m.searchInput.Blur()
	switch f {
	case FocusHost:
		return m.hostInput.Focus()
	case FocusSearch:
		return m.searchInput.Focus()
	}
	return nil
}

// installSelected starts an install of the highlighted package. The request
// runs in its own command so several installs may be in flight.
func (m *Model) installSelected() tea.Cmd {
	pkg, ok := m.selectedPackage()
	if !ok || m.session == nil {
		return nil
	}
	return installCmd(m.ctx, m.session, m.hostInput.Value(), pkg)
}

// startScan kicks off the simulated device scan unless one is running.
func (m *Model) startScan() tea.Cmd {
	if m.session == nil || m.snapshot.Scanning {
		return nil
	}
	m.snapshot.Scanning = true
	return scanCmd(m.ctx, m.session)
}

// resizeInputs fits both inputs into half the width each.
func (m *Model) resizeInputs() {
	inner := max(m.width/2-4, 10)
	m.hostInput.Width = inner
	m.searchInput.Width = inner
}
