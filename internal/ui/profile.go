package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roostlabs/roost/internal/store"
)

// renderProfile renders the profile page: identity card, the
// favorites/posts tab bar and the active tab's listing table.
func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2

	if m.snap.user == nil {
		msg := styles.MutedText.Render("Sign in to see your favorites and posts  (press l)")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}
	user := *m.snap.user

	var b strings.Builder

	avatar := styles.TypeStyle("").Render(user.Initials())
	b.WriteString(avatar)
	b.WriteString(" ")
	b.WriteString(styles.Title.Render(user.DisplayName()))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(user.Email))
	b.WriteString("\n\n")

	favTab := fmt.Sprintf("Favorites (%d)", len(m.snap.favorites))
	postTab := "My Posts"
	if m.snap.view.ProfileTab == store.TabFavorites {
		b.WriteString(styles.TabActive.Render(favTab))
		b.WriteString("   ")
		b.WriteString(styles.TabInactive.Render(postTab))
	} else {
		b.WriteString(styles.TabInactive.Render(favTab))
		b.WriteString("   ")
		b.WriteString(styles.TabActive.Render(postTab))
	}
	b.WriteString("\n\n")

	items := m.visible()
	if len(items) == 0 {
		if m.snap.view.ProfileTab == store.TabFavorites {
			b.WriteString(styles.MutedText.Render("No favorites yet. Press f on a listing to save it."))
		} else {
			b.WriteString(styles.MutedText.Render("No posts yet. Press n to create a listing."))
		}
	} else {
		b.WriteString(m.renderListingTable(items, m.width-4, contentHeight-6))
	}

	if m.snap.view.Selected != nil {
		detail := m.renderListingDetail(*m.snap.view.Selected, m.width-8, contentHeight-4)
		return styles.PaneFocus.Width(m.width - 4).Render(detail)
	}

	return styles.Pane.Width(m.width - 2).Height(contentHeight - 2).Render(
		clampLines(b.String(), contentHeight-2))
}
