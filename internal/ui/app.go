// Package ui provides the Bubble Tea terminal interface for Roost.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roostlabs/roost/internal/authflow"
	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/config"
	"github.com/roostlabs/roost/internal/listing"
	"github.com/roostlabs/roost/internal/prefs"
	"github.com/roostlabs/roost/internal/store"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       broker.API
	Listings  *store.Listings
	Favorites *store.Favorites
	Session   *store.Session
	Views     *store.ViewState
	Flow      *authflow.Flow
	Config    *config.Config
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// snapshot is the point-in-time store state the view renders from.
type snapshot struct {
	items      []listing.Listing
	loading    bool
	hasFetched bool
	storeErr   string
	favorites  []string
	user       *listing.User
	view       store.ViewSnapshot
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	api       broker.API
	listings  *store.Listings
	favorites *store.Favorites
	session   *store.Session
	views     *store.ViewState
	flow      *authflow.Flow
	config    *config.Config
	prefsPath string
	pollTick  time.Duration

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	snap        snapshot
	lastUpdated time.Time

	selectedRow int
	showHelp    bool
	statusMsg   string

	auth       authModel
	form       formModel
	dateFilter dateFilterModel
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Harvest"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		api:       opts.API,
		listings:  opts.Listings,
		favorites: opts.Favorites,
		session:   opts.Session,
		views:     opts.Views,
		flow:      opts.Flow,
		config:    opts.Config,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
	}
	m.auth = newAuthModel()
	m.dateFilter = newDateFilterModel()
	m.snap = m.collect()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		snapshotCmd(m.collect),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(m.pollTick), snapshotCmd(m.collect))

	case snapshotMsg:
		m.snap = snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case opDoneMsg:
		if msg.status != "" {
			m.statusMsg = msg.status
		}
		return m, snapshotCmd(m.collect)

	case authDoneMsg:
		// The flow and view stores already hold the outcome; completed
		// sign-in closes the modal via the flow's callback. Favorites
		// hydrate once a user is present.
		m.auth.setStep(m.flow.Step())
		var cmds []tea.Cmd
		cmds = append(cmds, snapshotCmd(m.collect))
		if msg.completed {
			cmds = append(cmds, hydrateFavoritesCmd(m.ctx, m.favorites, m.session))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	if m.snap.view.ShowAuthModal {
		return m.renderAuthModal()
	}
	if m.snap.view.ShowCreateModal {
		return m.renderForm()
	}
	if m.dateFilter.open {
		return m.renderDateFilter()
	}
	return b.String()
}

func (m Model) renderContent() string {
	switch m.snap.view.View {
	case store.ViewProfile:
		return m.renderProfile()
	default:
		return m.renderDiscover()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Modals capture input while open.
	if m.snap.view.ShowAuthModal {
		return m.handleAuthKey(msg)
	}
	if m.snap.view.ShowCreateModal {
		return m.handleFormKey(msg)
	}
	if m.dateFilter.open {
		return m.handleDateFilterKey(msg)
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
			_ = prefs.Save(m.prefsPath, prefs.Prefs{
				Theme:       m.theme.Name,
				DefaultSort: string(m.snap.view.SortBy),
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.snap.view.Selected != nil {
			m.views.ClearSelectedListing()
		} else {
			m.views.ResetToHome()
			m.selectedRow = 0
		}
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.Discover):
		m.views.Navigate(store.ViewDiscover)
		m.selectedRow = 0
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.Profile):
		m.views.Navigate(store.ViewProfile)
		m.selectedRow = 0
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.Tab):
		if m.snap.view.View == store.ViewProfile {
			if m.snap.view.ProfileTab == store.TabFavorites {
				m.views.SetProfileTab(store.TabPosts)
			} else {
				m.views.SetProfileTab(store.TabFavorites)
			}
			m.selectedRow = 0
			return m, snapshotCmd(m.collect)
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.views.SetSortBy(nextSort(m.snap.view.SortBy))
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.FilterDates):
		if m.snap.view.View == store.ViewDiscover {
			m.dateFilter.show(m.snap.view.FilterStartDate, m.snap.view.FilterEndDate)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.views.ClearFilters()
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshListingsCmd(m.ctx, m.listings)

	case key.Matches(msg, m.keys.SignIn):
		if m.snap.user == nil {
			m.flow.Reset()
			m.auth = newAuthModel()
			m.views.OpenAuthModal()
			return m, snapshotCmd(m.collect)
		}
		return m, nil

	case key.Matches(msg, m.keys.SignOut):
		if m.snap.user != nil {
			return m, signOutCmd(m.ctx, m.session, m.favorites)
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if l, ok := m.currentListing(); ok {
			return m, toggleFavoriteCmd(m.ctx, m.favorites, l.ID, m.session.UserID())
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if l, ok := m.currentListing(); ok {
			m.views.SelectListing(l)
		}
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.New):
		if m.snap.user == nil {
			m.statusMsg = "Sign in to post a listing"
			return m, nil
		}
		m.form = newFormModel(nil, *m.snap.user)
		m.views.OpenCreateModal()
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.Edit):
		l, ok := m.currentListing()
		if !ok || m.snap.user == nil || !l.OwnedBy(m.snap.user.DisplayName()) {
			return m, nil
		}
		m.form = newFormModel(&l, *m.snap.user)
		m.views.OpenEditModal(l)
		return m, snapshotCmd(m.collect)

	case key.Matches(msg, m.keys.Delete):
		l, ok := m.currentListing()
		if !ok || m.snap.user == nil || !l.OwnedBy(m.snap.user.DisplayName()) {
			return m, nil
		}
		return m, deleteListingCmd(m.ctx, m.listings, l.ID, m.session.UserID())

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(m.visible())-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if n := len(m.visible()); n > 0 {
			m.selectedRow = n - 1
		}
		return m, nil
	}

	return m, nil
}

// collect gathers a fresh snapshot from every store.
func (m Model) collect() snapshot {
	return snapshot{
		items:      m.listings.Items(),
		loading:    m.listings.Loading(),
		hasFetched: m.listings.HasFetched(),
		storeErr:   m.listings.Err(),
		favorites:  m.favorites.All(),
		user:       m.session.Current(),
		view:       m.views.Snapshot(),
	}
}

// visible computes the listing rows the current page shows.
func (m Model) visible() []listing.Listing {
	q := store.Query{
		View:            m.snap.view.View,
		ProfileTab:      m.snap.view.ProfileTab,
		SortBy:          m.snap.view.SortBy,
		FilterStartDate: m.snap.view.FilterStartDate,
		FilterEndDate:   m.snap.view.FilterEndDate,
	}
	favs := m.snap.favorites
	q.IsFavorite = func(id string) bool {
		for _, f := range favs {
			if f == id {
				return true
			}
		}
		return false
	}
	if m.snap.user != nil {
		q.OwnerName = m.snap.user.DisplayName()
	}
	return store.Visible(m.snap.items, q)
}

func (m Model) currentListing() (listing.Listing, bool) {
	items := m.visible()
	if m.selectedRow < 0 || m.selectedRow >= len(items) {
		return listing.Listing{}, false
	}
	return items[m.selectedRow], true
}

func (m *Model) clampSelection() {
	n := len(m.visible())
	if n == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
}

func (m Model) isFavorite(id string) bool {
	for _, f := range m.snap.favorites {
		if f == id {
			return true
		}
	}
	return false
}

func nextSort(s store.SortOption) store.SortOption {
	switch s {
	case store.SortNewest:
		return store.SortPriceLow
	case store.SortPriceLow:
		return store.SortPriceHigh
	default:
		return store.SortNewest
	}
}

func sortLabel(s store.SortOption) string {
	switch s {
	case store.SortPriceLow:
		return "Price ↑"
	case store.SortPriceHigh:
		return "Price ↓"
	default:
		return "Newest"
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg snapshot

// opDoneMsg signals a completed store mutation; status is surfaced in the
// header when non-empty.
type opDoneMsg struct {
	status string
}

// authDoneMsg signals a completed auth flow submission. completed is true
// only when the user ended up signed in.
type authDoneMsg struct {
	completed bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(collect func() snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(collect())
	}
}

func refreshListingsCmd(ctx context.Context, s *store.Listings) tea.Cmd {
	return func() tea.Msg {
		s.Fetch(ctx, true)
		return opDoneMsg{}
	}
}

func toggleFavoriteCmd(ctx context.Context, s *store.Favorites, id string, userID int64) tea.Cmd {
	return func() tea.Msg {
		s.Toggle(ctx, id, userID)
		return opDoneMsg{}
	}
}

func deleteListingCmd(ctx context.Context, s *store.Listings, id string, authorID int64) tea.Cmd {
	return func() tea.Msg {
		s.Delete(ctx, id, authorID)
		return opDoneMsg{status: "Listing deleted"}
	}
}

func signOutCmd(ctx context.Context, session *store.Session, favorites *store.Favorites) tea.Cmd {
	return func() tea.Msg {
		session.Logout(ctx)
		favorites.Clear()
		return opDoneMsg{status: "Signed out"}
	}
}

func hydrateFavoritesCmd(ctx context.Context, favorites *store.Favorites, session *store.Session) tea.Cmd {
	return func() tea.Msg {
		favorites.Hydrate(ctx, session.UserID())
		return opDoneMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
