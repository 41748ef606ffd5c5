package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roostlabs/roost/internal/store"
)

// renderHeader renders the top status line: logo, page, session and any
// transient status or store error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var parts []string
	parts = append(parts, styles.Logo.Render("⌂ roost"))

	page := "Discover"
	if m.snap.view.View == store.ViewProfile {
		page = "Profile"
	}
	parts = append(parts, styles.AccentText.Render(page))

	parts = append(parts, styles.MutedText.Render("sort: "+sortLabel(m.snap.view.SortBy)))

	if m.snap.view.FilterStartDate != "" && m.snap.view.FilterEndDate != "" {
		parts = append(parts, styles.WarningText.Render(
			fmt.Sprintf("dates: %s → %s", m.snap.view.FilterStartDate, m.snap.view.FilterEndDate)))
	}

	if m.snap.loading {
		parts = append(parts, styles.MutedText.Render("refreshing..."))
	}
	if m.snap.storeErr != "" {
		parts = append(parts, styles.DangerText.Render(m.snap.storeErr))
	} else if m.statusMsg != "" {
		parts = append(parts, styles.SuccessText.Render(m.statusMsg))
	}

	left := strings.Join(parts, styles.MutedText.Render("  │  "))

	session := "not signed in"
	if m.snap.user != nil {
		session = m.snap.user.DisplayName()
	}
	right := styles.MutedText.Render(session)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderCommandBar renders the second line of always-visible key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	hints := []string{
		"d Discover", "p Profile", "enter Open", "f Fav",
		"s Sort", "/ Dates", "n New",
	}
	if m.snap.user == nil {
		hints = append(hints, "l Sign in")
	} else {
		hints = append(hints, "L Sign out")
	}
	hints = append(hints, "? Help", "q Quit")

	return styles.Footer.Width(m.width).Render(strings.Join(hints, "   "))
}

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	rows := [][2]string{
		{"d", "Discover page"},
		{"p", "Profile page"},
		{"tab", "Switch profile tab (favorites / my posts)"},
		{"j/k, ↓/↑", "Move selection"},
		{"g / G", "Jump to top / bottom"},
		{"enter", "Open listing detail"},
		{"esc", "Close detail, or return to discover"},
		{"f / space", "Toggle favorite"},
		{"s", "Cycle sort (newest, price ↑, price ↓)"},
		{"/", "Set availability date filter"},
		{"c", "Clear date filter"},
		{"n", "New listing"},
		{"e", "Edit selected listing (own posts only)"},
		{"x", "Delete selected listing (own posts only)"},
		{"r", "Refresh from server"},
		{"l / L", "Sign in / sign out"},
		{"T", "Cycle theme"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Reference"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.AccentText.Render(fmt.Sprintf("%-10s", r[0])),
			styles.Text.Render(r[1])))
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))

	box := styles.Modal.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
