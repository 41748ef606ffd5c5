package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/roostlabs/roost/internal/authflow"
	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/config"
	"github.com/roostlabs/roost/internal/listing"
	"github.com/roostlabs/roost/internal/localdata"
	"github.com/roostlabs/roost/internal/logging"
	"github.com/roostlabs/roost/internal/prefs"
	"github.com/roostlabs/roost/internal/store"
	"github.com/roostlabs/roost/internal/ui"
)

// Options configure the Roost application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roost/prefs.toml
	BrokerURL  string // overrides the configured broker URL
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the Roost TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.BrokerURL != "" {
		cfg.BrokerURL = opts.BrokerURL
	}

	// The TUI owns the terminal, so logs go to a file.
	logWriter, err := logging.Setup(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logWriter.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	data, err := localdata.Open(cfg.CachePath())
	if err != nil {
		return fmt.Errorf("open local cache: %w", err)
	}
	defer data.Close()

	client, err := broker.NewClient(cfg.BrokerURL)
	if err != nil {
		return fmt.Errorf("init broker client: %w", err)
	}
	if cookies := data.LoadCookies(); len(cookies) > 0 {
		client.RestoreSessionCookies(cookies)
	}

	listings := store.NewListings(client, listing.Seed(time.Now()))
	favorites := store.NewFavorites(client, data)
	session := store.NewSession(client, data)
	views := store.NewViewState()
	if sort := store.SortOption(userPrefs.DefaultSort); sort != "" {
		views.SetSortBy(sort)
	}

	flow := authflow.New(client, session, cfg.StrictReset, func() {
		views.CloseAuthModal()
		// Keep the fresh session cookies across restarts.
		if err := data.SaveCookies(client.SessionCookies()); err != nil {
			log.Printf("persist session cookies: %v", err)
		}
	})

	// Hydrate before the UI starts: cached session first so favorites can
	// merge against the right account, then the listings themselves.
	session.Hydrate(ctx)
	favorites.Hydrate(ctx, session.UserID())
	listings.Fetch(ctx, false)

	interval := cfg.RefreshEvery
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	StartPoller(ctx, listings, interval)

	uiOpts := ui.Options{
		Context:   ctx,
		API:       client,
		Listings:  listings,
		Favorites: favorites,
		Session:   session,
		Views:     views,
		Flow:      flow,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
