// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package server wires configuration, translation sources and the HTTP
routes of the preview server together.
*/
package server

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/tolgeefe/config"
	"codeberg.org/pixivfe/tolgeefe/core/dict"
	"codeberg.org/pixivfe/tolgeefe/core/lrucache"
	"codeberg.org/pixivfe/tolgeefe/core/source"
	"codeberg.org/pixivfe/tolgeefe/core/tolgee"
	"codeberg.org/pixivfe/tolgeefe/i18n"
	"codeberg.org/pixivfe/tolgeefe/i18n/legacy"
	"codeberg.org/pixivfe/tolgeefe/server/assets"
	"codeberg.org/pixivfe/tolgeefe/server/middleware"
	"codeberg.org/pixivfe/tolgeefe/server/router"
	"codeberg.org/pixivfe/tolgeefe/server/routes"
)

// App is a fully wired preview server.
type App struct {
	Router       *router.Router
	Orchestrator *i18n.Orchestrator
	Source       *source.Source
	StaticData   dict.StaticData
	Locales      []string
}

type appOptions struct {
	fetcher  source.Fetcher
	staticFS fs.FS
	staticAt string
}

// Option customises NewApp.
type Option func(*appOptions)

// WithFetcher replaces the Tolgee client built from the configuration.
func WithFetcher(f source.Fetcher) Option {
	return func(o *appOptions) { o.fetcher = f }
}

// WithStaticFS serves production dictionaries from dir in fsys instead of
// the configured directory or the embedded demo data.
func WithStaticFS(fsys fs.FS, dir string) Option {
	return func(o *appOptions) {
		o.staticFS = fsys
		o.staticAt = dir
	}
}

// NewApp builds the preview server described by cfg.
func NewApp(cfg *config.ServerConfig, opts ...Option) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	static, err := loadStaticData(cfg, o)
	if err != nil {
		return nil, err
	}

	fetcher := o.fetcher
	if fetcher == nil && cfg.TolgeeConfigured() {
		fetcher = tolgee.NewClient(cfg.TolgeeClientConfig())
	}

	if fetcher == nil {
		log.Warn().Msg("Tolgee is not configured; development mode will render keys")
	}

	src := source.New(fetcher)

	intl := cfg.Internationalization
	orchestratorOpts := []i18n.OrchestratorOption{
		i18n.WithDefaultLocale(intl.DefaultLocale),
		i18n.WithStrictMissingKeys(intl.StrictMissingKeys),
		i18n.WithRenderer(&i18n.MessageRenderer{KeepUnknown: intl.KeepUnknownPlaceholders}),
	}

	if cfg.Cache.Enabled {
		markers, err := lrucache.NewLRUCache(cfg.Cache.Size, cfg.Cache.Compress)
		if err != nil {
			return nil, fmt.Errorf("create marker cache: %w", err)
		}

		orchestratorOpts = append(orchestratorOpts, i18n.WithMarkerCache(markers))
	}

	orchestrator := i18n.NewOrchestrator(src, orchestratorOpts...)

	legacyLookup, legacyLocales, err := loadLegacy(cfg)
	if err != nil {
		return nil, err
	}

	filter := &i18n.Filter{Orchestrator: orchestrator, Legacy: legacyLookup}
	locales := collectLocales(intl.DefaultLocale, static, legacyLocales)

	r := router.NewRouter()
	r.DefineRoutes(&routes.Handler{
		Filter:  filter,
		Keys:    collectKeys(static),
		Locales: locales,
	}, cfg.Development.InDevelopment)
	r.RegisterMiddleware(
		middleware.RenderSettings{
			Locales:           locales,
			Fallback:          intl.DefaultLocale,
			Mode:              intl.Mode,
			AllowModeOverride: true,
			StaticData:        static,
		},
		middleware.ResponseHeaderSettings{
			Version:       config.BuildVersion,
			Revision:      cfg.Build.Revision(),
			InDevelopment: cfg.Development.InDevelopment,
		},
	)

	log.Info().
		Strs("locales", locales).
		Stringer("mode", intl.Mode).
		Str("legacy", intl.LegacyBackend).
		Msg("Initialized translation preview")

	return &App{
		Router:       r,
		Orchestrator: orchestrator,
		Source:       src,
		StaticData:   static,
		Locales:      locales,
	}, nil
}

func loadStaticData(cfg *config.ServerConfig, o appOptions) (dict.StaticData, error) {
	var (
		data dict.StaticData
		err  error
	)

	switch {
	case o.staticFS != nil:
		data, err = dict.LoadStaticDir(o.staticFS, o.staticAt)
	case cfg.Internationalization.StaticDataDir != "":
		data, err = dict.LoadStaticDir(os.DirFS(cfg.Internationalization.StaticDataDir), ".")
	default:
		data, err = assets.StaticData()
	}

	if err != nil {
		return nil, fmt.Errorf("load static dictionaries: %w", err)
	}

	return data, nil
}

func loadLegacy(cfg *config.ServerConfig) (i18n.LookupFunc, []string, error) {
	intl := cfg.Internationalization
	if intl.LegacyBackend == config.LegacyNone || intl.LegacyBackend == "" {
		return nil, nil, nil
	}

	fsys := os.DirFS(intl.LegacyDir)

	switch intl.LegacyBackend {
	case config.LegacyGettext:
		g, err := legacy.LoadGettext(fsys, ".", intl.DefaultLocale)
		if err != nil {
			return nil, nil, fmt.Errorf("load gettext catalogues: %w", err)
		}

		return g.Lookup, g.Locales(), nil

	case config.LegacyGoI18n:
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return nil, nil, fmt.Errorf("read message directory: %w", err)
		}

		var files []string

		for _, e := range entries {
			switch path.Ext(e.Name()) {
			case ".toml", ".yaml", ".yml", ".json":
				if !e.IsDir() {
					files = append(files, e.Name())
				}
			}
		}

		b := legacy.NewBundle(intl.DefaultLocale)
		if err := b.Load(fsys, files...); err != nil {
			return nil, nil, fmt.Errorf("load message files: %w", err)
		}

		tags := b.Locales()
		locales := make([]string, len(tags))

		for i, t := range tags {
			locales[i] = t.String()
		}

		return b.Lookup, locales, nil

	default:
		return nil, nil, fmt.Errorf("unknown legacy backend %q", intl.LegacyBackend)
	}
}

// collectLocales returns the default locale followed by every other known
// locale, sorted.
func collectLocales(defaultLocale string, static dict.StaticData, extra []string) []string {
	var others []string

	for locale := range static {
		others = append(others, locale)
	}

	others = append(others, extra...)

	slices.Sort(others)
	others = slices.Compact(others)
	others = slices.DeleteFunc(others, func(l string) bool { return l == defaultLocale })

	return append([]string{defaultLocale}, others...)
}

// collectKeys returns the union of every dictionary's keys, sorted.
func collectKeys(static dict.StaticData) []string {
	var keys []string
	for _, ns := range static {
		keys = append(keys, ns.Keys()...)
	}

	slices.Sort(keys)

	return slices.Compact(keys)
}
