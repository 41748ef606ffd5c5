package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/roostlabs/roost/internal/listing"
)

// renderDiscover renders the discover page: the listing table, with a
// detail pane alongside when a listing is selected.
func (m Model) renderDiscover() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2

	items := m.visible()
	if len(items) == 0 {
		msg := "No listings match the current filters"
		if !m.snap.hasFetched && m.snap.loading {
			msg = "Loading listings..."
		}
		empty := styles.MutedText.Render(msg)
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	if m.snap.view.Selected == nil {
		table := m.renderListingTable(items, m.width-4, contentHeight-2)
		return styles.PaneFocus.Width(m.width - 2).Height(contentHeight - 2).Render(table)
	}

	// Split layout: table left, detail right.
	tableWidth := m.width * 45 / 100
	detailWidth := m.width - tableWidth

	table := m.renderListingTable(items, tableWidth-4, contentHeight-2)
	detail := m.renderListingDetail(*m.snap.view.Selected, detailWidth-4, contentHeight-2)

	left := styles.Pane.Width(tableWidth - 2).Height(contentHeight - 2).Render(table)
	right := styles.PaneFocus.Width(detailWidth - 2).Height(contentHeight - 2).Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderListingTable renders listing rows with the selection highlighted.
func (m Model) renderListingTable(items []listing.Listing, width, height int) string {
	styles := m.theme.Styles()
	now := time.Now()

	var b strings.Builder
	header := fmt.Sprintf("  %-*s %10s  %-9s  %s",
		width-40, "LISTING", "PRICE", "TYPE", "POSTED")
	b.WriteString(styles.MutedText.Render(listing.Truncate(header, width)))
	b.WriteString("\n")

	// Keep the selection on screen.
	visibleRows := height - 1
	if visibleRows < 1 {
		visibleRows = 1
	}
	start := 0
	if m.selectedRow >= visibleRows {
		start = m.selectedRow - visibleRows + 1
	}

	for i := start; i < len(items) && i-start < visibleRows; i++ {
		l := items[i]

		star := " "
		if m.isFavorite(l.ID) {
			star = "★"
		}
		title := l.Title
		if l.Neighborhood != "" {
			title += "  · " + l.Neighborhood
		}
		row := fmt.Sprintf("%s %-*s %10s  %-9s  %s",
			star,
			width-40, listing.Truncate(title, width-40),
			listing.FormatPrice(l.Price),
			string(l.Type),
			listing.FormatRelativeTime(l.CreatedAt, now),
		)
		row = listing.Truncate(row, width)

		if i == m.selectedRow {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderListingDetail renders the full detail pane for one listing.
func (m Model) renderListingDetail(l listing.Listing, width, height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render(listing.Truncate(l.Title, width)))
	b.WriteString("\n")
	b.WriteString(styles.Price.Render(listing.FormatPrice(l.Price) + "/mo"))
	b.WriteString("  ")
	b.WriteString(styles.TypeStyle(l.Type).Render(string(l.Type)))
	if m.isFavorite(l.ID) {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render("★ Favorited"))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Available  "))
	b.WriteString(styles.Text.Render(
		listing.FormatDate(l.AvailableFrom) + " – " + listing.FormatDate(l.AvailableTo)))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("Rooms      "))
	b.WriteString(styles.Text.Render(fmt.Sprintf("%d bed · %d bath", l.Bedrooms, l.Bathrooms)))
	b.WriteString("\n")

	if l.Neighborhood != "" {
		b.WriteString(styles.MutedText.Render("Area       "))
		b.WriteString(styles.Text.Render(l.Neighborhood))
		b.WriteString("\n")
	}
	if l.Location != "" {
		b.WriteString(styles.MutedText.Render("Address    "))
		b.WriteString(styles.Text.Render(listing.Truncate(l.Location, width-11)))
		b.WriteString("\n")
	}

	center := listing.DefaultMapCenter
	if m.snap.view.MapCenter != nil {
		center = *m.snap.view.MapCenter
	}
	b.WriteString(styles.MutedText.Render("Map        "))
	b.WriteString(styles.Text.Render(fmt.Sprintf("%.4f, %.4f (±%dm)", center.Lat, center.Lng, l.Radius)))
	b.WriteString("\n")

	if l.Author.Name != "" {
		b.WriteString(styles.MutedText.Render("Posted by  "))
		b.WriteString(styles.Text.Render(l.Author.Name))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("Posted     "))
	b.WriteString(styles.Text.Render(listing.FormatRelativeTime(l.CreatedAt, time.Now())))
	b.WriteString("\n")

	if l.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(wrap(l.Description, width)))
		b.WriteString("\n")
	}

	if n := len(l.AdditionalImages); n > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d additional photos", n)))
	}

	return clampLines(b.String(), height)
}

// wrap breaks text into lines no wider than width, on word boundaries.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

// clampLines truncates text to at most n lines.
func clampLines(text string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n")
}
