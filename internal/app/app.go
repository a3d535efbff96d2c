// Package app wires configuration, logging, the API client, and the two
// stores together, then hands control to the UI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tansen/vitrine/internal/api"
	"github.com/tansen/vitrine/internal/cart"
	"github.com/tansen/vitrine/internal/config"
	"github.com/tansen/vitrine/internal/logging"
	"github.com/tansen/vitrine/internal/prefs"
	"github.com/tansen/vitrine/internal/session"
	"github.com/tansen/vitrine/internal/ui"
)

// Options configure the Vitrine application.
type Options struct {
	ConfigPath string
	APIURL     string // overrides the configured backend URL
	PrefsPath  string // empty uses default ~/.config/vitrine/prefs.toml
	TokenPath  string // empty uses default ~/.config/vitrine/session.toml
}

// Run boots the Vitrine TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}

	closeLog, err := logging.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogPath())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := api.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	sessionStore := session.New(client, opts.TokenPath)
	cartStore := cart.New(client)
	sessionStore.Subscribe(func(tok string) {
		cartStore.HandleTokenChange(ctx, tok)
	})

	slog.Info("starting vitrine", slog.String("api_url", cfg.APIURL))

	// Reconcile any persisted token before the first frame so the UI opens
	// either signed in with a populated cart or at the auth form.
	sessionStore.Bootstrap(ctx)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sessionStore,
		Cart:      cartStore,
		ThemeName: userPrefs.Theme,
		PageSize:  userPrefs.PageSize,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
