package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roostlabs/roost/internal/listing"
	"github.com/roostlabs/roost/internal/store"
)

// Input indices into formModel.inputs.
const (
	formTitle = iota
	formPrice
	formLocation
	formBedrooms
	formBathrooms
	formFrom
	formTo
	formImageURL
	formDescription
	formInputCount
)

// Pseudo-rows for the cycled choices.
const (
	rowType = -1
	rowHood = -2
)

// formModel backs the create/edit listing dialog.
type formModel struct {
	editing  *listing.Listing
	author   listing.Author
	inputs   [formInputCount]textinput.Model
	typeIdx  int
	hoodIdx  int
	focus    int
	localErr string
}

// rows is the form's focus order: text inputs interleaved with the two
// cycled choices.
var formRows = []int{
	formTitle, formPrice, rowType, rowHood, formLocation,
	formBedrooms, formBathrooms, formFrom, formTo, formImageURL, formDescription,
}

func newFormModel(edit *listing.Listing, user listing.User) formModel {
	f := formModel{
		author: listing.Author{Name: user.DisplayName(), Avatar: user.Avatar},
	}

	mk := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.Width = width
		return ti
	}
	f.inputs[formTitle] = mk("Cozy 2br near campus", 40)
	f.inputs[formPrice] = mk("1500", 10)
	f.inputs[formLocation] = mk("Street address (optional)", 40)
	f.inputs[formBedrooms] = mk("2", 4)
	f.inputs[formBathrooms] = mk("1", 4)
	f.inputs[formFrom] = mk("2026-09-01", 12)
	f.inputs[formTo] = mk("2027-08-31", 12)
	f.inputs[formImageURL] = mk("https://...", 40)
	f.inputs[formDescription] = mk("Describe the place", 40)

	if edit != nil {
		clone := *edit
		f.editing = &clone
		f.author = edit.Author
		f.inputs[formTitle].SetValue(edit.Title)
		f.inputs[formPrice].SetValue(strconv.Itoa(edit.Price))
		f.inputs[formLocation].SetValue(edit.Location)
		f.inputs[formBedrooms].SetValue(strconv.Itoa(edit.Bedrooms))
		f.inputs[formBathrooms].SetValue(strconv.Itoa(edit.Bathrooms))
		f.inputs[formFrom].SetValue(filterDateValue(edit.AvailableFrom))
		f.inputs[formTo].SetValue(filterDateValue(edit.AvailableTo))
		f.inputs[formImageURL].SetValue(edit.ImageURL)
		f.inputs[formDescription].SetValue(edit.Description)
		for i, t := range listing.PropertyTypes {
			if t == edit.Type {
				f.typeIdx = i
			}
		}
		for i, n := range listing.Neighborhoods {
			if n == edit.Neighborhood {
				f.hoodIdx = i
			}
		}
	}

	f.applyFocus()
	return f
}

func (f *formModel) applyFocus() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if row := formRows[f.focus]; row >= 0 {
		f.inputs[row].Focus()
	}
}

func (f *formModel) moveFocus(delta int) {
	f.focus = (f.focus + delta + len(formRows)) % len(formRows)
	f.applyFocus()
}

// handleFormKey processes keys while the listing form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.views.CloseCreateModal()
		return m, snapshotCmd(m.collect)

	case "tab", "down":
		m.form.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.form.moveFocus(-1)
		return m, nil

	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch formRows[m.form.focus] {
		case rowType:
			n := len(listing.PropertyTypes)
			m.form.typeIdx = (m.form.typeIdx + delta + n) % n
			return m, nil
		case rowHood:
			n := len(listing.Neighborhoods)
			m.form.hoodIdx = (m.form.hoodIdx + delta + n) % n
			return m, nil
		}

	case "enter":
		if m.form.focus < len(formRows)-1 {
			m.form.moveFocus(1)
			return m, nil
		}
		return m.submitForm()

	case "ctrl+s":
		return m.submitForm()
	}

	if row := formRows[m.form.focus]; row >= 0 {
		var cmd tea.Cmd
		m.form.inputs[row], cmd = m.form.inputs[row].Update(msg)
		return m, cmd
	}
	return m, nil
}

// submitForm validates the entered listing and dispatches the mutation.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := &m.form
	f.localErr = ""

	price, err := strconv.Atoi(strings.TrimSpace(f.inputs[formPrice].Value()))
	if err != nil || price < 0 {
		f.localErr = "Price must be a non-negative number"
		return m, nil
	}
	bedrooms := atoiOrZero(f.inputs[formBedrooms].Value())
	bathrooms := atoiOrZero(f.inputs[formBathrooms].Value())

	from, okFrom := store.ParseFilterDate(strings.TrimSpace(f.inputs[formFrom].Value()))
	to, okTo := store.ParseFilterDate(strings.TrimSpace(f.inputs[formTo].Value()))
	if !okFrom || !okTo {
		f.localErr = "Dates must be yyyy-mm-dd"
		return m, nil
	}

	l := listing.Listing{
		Title:         strings.TrimSpace(f.inputs[formTitle].Value()),
		Price:         price,
		Location:      strings.TrimSpace(f.inputs[formLocation].Value()),
		Neighborhood:  listing.Neighborhoods[f.hoodIdx],
		Coordinates:   listing.DefaultMapCenter,
		Radius:        500,
		Type:          listing.PropertyTypes[f.typeIdx],
		ImageURL:      strings.TrimSpace(f.inputs[formImageURL].Value()),
		Description:   strings.TrimSpace(f.inputs[formDescription].Value()),
		Bedrooms:      bedrooms,
		Bathrooms:     bathrooms,
		AvailableFrom: from,
		AvailableTo:   to,
		Author:        f.author,
	}

	editing := f.editing != nil
	if editing {
		l.ID = f.editing.ID
		l.CreatedAt = f.editing.CreatedAt
		l.Coordinates = f.editing.Coordinates
		l.Radius = f.editing.Radius
		l.AdditionalImages = f.editing.AdditionalImages
	}

	if err := l.Validate(); err != nil {
		f.localErr = err.Error()
		return m, nil
	}

	m.views.CloseCreateModal()
	return m, saveListingCmd(m.ctx, m.listings, l, m.session.UserID(), editing)
}

func saveListingCmd(ctx context.Context, s *store.Listings, l listing.Listing, authorID int64, editing bool) tea.Cmd {
	return func() tea.Msg {
		if editing {
			s.Update(ctx, l, authorID)
			return opDoneMsg{status: "Listing updated"}
		}
		s.Add(ctx, l, authorID)
		return opDoneMsg{status: "Listing posted"}
	}
}

// renderForm renders the centered create/edit dialog.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form

	title := "New Listing"
	if f.editing != nil {
		title = "Edit Listing"
	}

	labels := map[int]string{
		formTitle:       "Title",
		formPrice:       "Price $/mo",
		formLocation:    "Address",
		formBedrooms:    "Bedrooms",
		formBathrooms:   "Bathrooms",
		formFrom:        "From",
		formTo:          "To",
		formImageURL:    "Image URL",
		formDescription: "Description",
		rowType:         "Type",
		rowHood:         "Area",
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, row := range formRows {
		label := fmt.Sprintf("%-12s", labels[row])
		if i == f.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}

		switch row {
		case rowType:
			b.WriteString(renderCycle(styles, string(listing.PropertyTypes[f.typeIdx]), i == f.focus))
		case rowHood:
			b.WriteString(renderCycle(styles, listing.Neighborhoods[f.hoodIdx], i == f.focus))
		default:
			b.WriteString(f.inputs[row].View())
		}
		b.WriteString("\n")
	}

	if f.localErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(wrap(f.localErr, 50)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("tab next · ←/→ change choice · ctrl+s save · esc cancel"))

	box := styles.Modal.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func renderCycle(styles Styles, value string, focused bool) string {
	if focused {
		return styles.AccentText.Render("‹ " + value + " ›")
	}
	return styles.Text.Render(value)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// filterDateValue renders a millisecond timestamp in the yyyy-mm-dd form
// the date inputs parse back on submit.
func filterDateValue(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02")
}

// dateFilterModel backs the availability date range dialog on discover.
type dateFilterModel struct {
	open     bool
	inputs   [2]textinput.Model
	focus    int
	localErr string
}

func newDateFilterModel() dateFilterModel {
	var d dateFilterModel
	for i, ph := range []string{"2026-09-01", "2027-06-30"} {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.CharLimit = 10
		ti.Width = 12
		d.inputs[i] = ti
	}
	return d
}

func (d *dateFilterModel) show(start, end string) {
	d.open = true
	d.focus = 0
	d.localErr = ""
	d.inputs[0].SetValue(start)
	d.inputs[1].SetValue(end)
	d.inputs[0].Focus()
	d.inputs[1].Blur()
}

// handleDateFilterKey processes keys while the date dialog is open.
func (m Model) handleDateFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dateFilter.open = false
		return m, nil

	case "tab", "shift+tab", "down", "up":
		m.dateFilter.focus = 1 - m.dateFilter.focus
		m.dateFilter.inputs[0].Blur()
		m.dateFilter.inputs[1].Blur()
		m.dateFilter.inputs[m.dateFilter.focus].Focus()
		return m, nil

	case "enter":
		start := strings.TrimSpace(m.dateFilter.inputs[0].Value())
		end := strings.TrimSpace(m.dateFilter.inputs[1].Value())
		if start != "" {
			if _, ok := store.ParseFilterDate(start); !ok {
				m.dateFilter.localErr = "Dates must be yyyy-mm-dd"
				return m, nil
			}
		}
		if end != "" {
			if _, ok := store.ParseFilterDate(end); !ok {
				m.dateFilter.localErr = "Dates must be yyyy-mm-dd"
				return m, nil
			}
		}
		// The end of the window can never precede its start. ISO dates
		// compare lexicographically once validated.
		if start != "" && end != "" && end < start {
			m.dateFilter.localErr = "End date must not be before start date"
			return m, nil
		}
		m.views.SetFilterStartDate(start)
		m.views.SetFilterEndDate(end)
		m.dateFilter.open = false
		return m, snapshotCmd(m.collect)
	}

	var cmd tea.Cmd
	i := m.dateFilter.focus
	m.dateFilter.inputs[i], cmd = m.dateFilter.inputs[i].Update(msg)
	return m, cmd
}

// renderDateFilter renders the availability window dialog.
func (m Model) renderDateFilter() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Availability Window"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Show listings available for the whole range."))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("From  "))
	b.WriteString(m.dateFilter.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("To    "))
	b.WriteString(m.dateFilter.inputs[1].View())
	b.WriteString("\n")

	if m.dateFilter.localErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.dateFilter.localErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("tab switch · enter apply · esc cancel"))

	box := styles.Modal.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
