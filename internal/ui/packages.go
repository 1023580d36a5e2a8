package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pkgdrop/internal/catalog"
)

// visiblePackages returns the catalog filtered by the search input.
func (m Model) visiblePackages() []catalog.Package {
	return catalog.Filter(m.packages, m.searchInput.Value())
}

// selectedPackage returns the highlighted package, if any.
func (m Model) selectedPackage() (catalog.Package, bool) {
	pkgs := m.visiblePackages()
	if m.selectedRow < 0 || m.selectedRow >= len(pkgs) {
		return catalog.Package{}, false
	}
	return pkgs[m.selectedRow], true
}

func (m Model) selectedID() int {
	if pkg, ok := m.selectedPackage(); ok {
		return pkg.ID
	}
	return 0
}

// clampSelection keeps the package with id selected when it is still
// visible, and otherwise keeps the row in range.
func (m *Model) clampSelection(id int) {
	pkgs := m.visiblePackages()
	if len(pkgs) == 0 {
		m.selectedRow = 0
		return
	}
	if id > 0 {
		for i, pkg := range pkgs {
			if pkg.ID == id {
				m.selectedRow = i
				return
			}
		}
	}
	if m.selectedRow >= len(pkgs) {
		m.selectedRow = len(pkgs) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// renderPackages renders the list and detail panes side by side.
func (m Model) renderPackages(height int) string {
	listWidth := m.width * 45 / 100
	if m.width >= LayoutExtraWideWidth {
		listWidth = m.width * 35 / 100
	}
	detailWidth := m.width - listWidth

	listFocused := m.focus == FocusList
	listBg := m.theme.SurfaceAlt
	if listFocused {
		listBg = m.theme.FocusBg
	}
	list := m.renderPackageList(listWidth-2, listBg)
	listPane := m.renderTitledBox(m.listTitle(), list, listWidth, height, listFocused)

	var detail string
	if pkg, ok := m.selectedPackage(); ok {
		detail = m.renderPackageDetail(pkg, detailWidth-2)
	} else {
		detail = NewBgStyle(m.theme.SurfaceAlt).Render("No package selected", m.theme.Styles().MutedText)
	}
	detailPane := m.renderTitledBox("Details", detail, detailWidth, height, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// listTitle shows "Packages (n)" or "Packages (visible/total)" when filtered.
func (m Model) listTitle() string {
	total := len(m.packages)
	visible := len(m.visiblePackages())
	if strings.TrimSpace(m.searchInput.Value()) == "" {
		return fmt.Sprintf("Packages (%d)", total)
	}
	return fmt.Sprintf("Packages (%d/%d)", visible, total)
}

// renderPackageList renders one row per visible package.
func (m Model) renderPackageList(width int, bgColor string) string {
	pkgs := m.visiblePackages()
	if len(pkgs) == 0 {
		return NewBgStyle(bgColor).Render("No packages match", m.theme.Styles().MutedText)
	}

	lines := make([]string, 0, len(pkgs))
	for i, pkg := range pkgs {
		rowBg := bgColor
		if i == m.selectedRow {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatPackageRow(pkg, width, rowBg, i == m.selectedRow)
		lines = append(lines, NewBgStyle(rowBg).FillLine(content, width))
	}
	return strings.Join(lines, "\n")
}

// formatPackageRow formats "#ID Title · vVersion".
func (m Model) formatPackageRow(pkg catalog.Package, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	idStr := fmt.Sprintf("#%d", pkg.ID)
	version := ""
	if v := strings.TrimSpace(pkg.Version); v != "" {
		version = "v" + v
	}
	titleWidth := max(width-len(idStr)-len(version)-5, 8)

	styles := m.theme.Styles()
	idStyle, titleStyle, versionStyle := styles.MutedText, styles.Text, styles.FaintText
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, titleStyle, versionStyle = selText, selText.Bold(true), selText
	}

	row := bg.Render(idStr, idStyle) + bg.Space() + bg.Render(truncate(pkg.Title, titleWidth), titleStyle)
	if version != "" {
		row += bg.Render(" · ", styles.FaintText) + bg.Render(version, versionStyle)
	}
	return row
}

// renderPackageDetail lists every field of pkg.
func (m Model) renderPackageDetail(pkg catalog.Package, width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)
	valueWidth := max(width-12, 10)

	field := func(label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		return bg.Render(fmt.Sprintf("%-11s", label), styles.MutedText) +
			bg.Render(truncateMiddle(value, valueWidth), styles.Text)
	}

	lines := []string{
		bg.Render(truncate(pkg.Title, width), styles.AccentText.Bold(true)),
		"",
		field("Version", pkg.Version),
		field("Size", pkg.Size),
		field("Content ID", pkg.ContentID),
		field("URL", pkg.PkgURL),
	}
	if pkg.ImageURL != "" {
		lines = append(lines, field("Image", pkg.ImageURL))
	}
	lines = append(lines, "", bg.Render("enter", styles.AccentText)+bg.Render(" install on ", styles.FaintText)+
		bg.Render(m.targetLabel(), styles.WarningText))
	return strings.Join(lines, "\n")
}

// renderTitledBox renders content in a box with the title embedded in the top border:
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	leftPad := max((innerWidth-len(title)-2)/2, 0)
	rightPad := max(innerWidth-len(title)-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColor))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	rows := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		rows = append(rows, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	if len(rows) == 0 {
		return top + "\n" + bottom
	}
	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}
