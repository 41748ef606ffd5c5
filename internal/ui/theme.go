package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/roostlabs/roost/internal/listing"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Per-property-type badge colors.
	TypeColors map[listing.PropertyType]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Underline(true),

		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		PaneFocus: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		OTPSlot: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		OTPSlotFocus: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 1),

		typeColors: t.TypeColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Title lipgloss.Style
	Price lipgloss.Style

	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	Selected    lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Modal       lipgloss.Style
	Pane        lipgloss.Style
	PaneFocus   lipgloss.Style

	OTPSlot      lipgloss.Style
	OTPSlotFocus lipgloss.Style

	typeColors map[listing.PropertyType]string
	background string
	muted      string
}

// TypeStyle returns a badge style for the given property type.
func (s Styles) TypeStyle(t listing.PropertyType) lipgloss.Style {
	color := s.typeColors[t]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Harvest": harvestTheme(),
	"Meadow":  meadowTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Harvest", "Meadow", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return harvestTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func harvestTheme() Theme {
	return Theme{
		Name: "Harvest",

		Background: "#1c1917",
		Surface:    "#292524",
		SurfaceAlt: "#44403c",

		SelectionBg:   "#57534e",
		SelectionText: "#fafaf9",

		Border:      "#44403c",
		BorderFocus: "#f59e0b",

		Text:    "#e7e5e4",
		Muted:   "#a8a29e",
		Accent:  "#f59e0b",
		Success: "#84cc16",
		Warning: "#fbbf24",
		Danger:  "#ef4444",

		TypeColors: map[listing.PropertyType]string{
			listing.TypeApartment: "#f59e0b",
			listing.TypeHouse:     "#84cc16",
			listing.TypeStudio:    "#38bdf8",
			listing.TypeLoft:      "#c084fc",
		},
	}
}

func meadowTheme() Theme {
	return Theme{
		Name: "Meadow",

		Background: "#14201a",
		Surface:    "#1d2d24",
		SurfaceAlt: "#2a4033",

		SelectionBg:   "#355542",
		SelectionText: "#f0fdf4",

		Border:      "#2a4033",
		BorderFocus: "#4ade80",

		Text:    "#dcfce7",
		Muted:   "#86a392",
		Accent:  "#4ade80",
		Success: "#a3e635",
		Warning: "#facc15",
		Danger:  "#f87171",

		TypeColors: map[listing.PropertyType]string{
			listing.TypeApartment: "#4ade80",
			listing.TypeHouse:     "#a3e635",
			listing.TypeStudio:    "#22d3ee",
			listing.TypeLoft:      "#e879f9",
		},
	}
}

func slateTheme() Theme {
	return Theme{
		Name: "Slate",

		Background: "#0f172a",
		Surface:    "#1e293b",
		SurfaceAlt: "#334155",

		SelectionBg:   "#475569",
		SelectionText: "#f8fafc",

		Border:      "#334155",
		BorderFocus: "#38bdf8",

		Text:    "#e2e8f0",
		Muted:   "#94a3b8",
		Accent:  "#38bdf8",
		Success: "#34d399",
		Warning: "#fbbf24",
		Danger:  "#f87171",

		TypeColors: map[listing.PropertyType]string{
			listing.TypeApartment: "#38bdf8",
			listing.TypeHouse:     "#34d399",
			listing.TypeStudio:    "#818cf8",
			listing.TypeLoft:      "#f472b6",
		},
	}
}
