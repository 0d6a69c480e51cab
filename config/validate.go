// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/pixivfe/tolgeefe/core/tolgee"
	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// validation errors.
var (
	errInvalidPort          = errors.New("invalid Basic.Port value")
	errInvalidMode          = errors.New("invalid Internationalization.Mode, expected production or development")
	errInvalidDefaultLocale = errors.New("invalid Internationalization.DefaultLocale")
	errInvalidAPIURL        = errors.New("Tolgee.APIURL must be an absolute http(s) URL")
	errTolgeeIncomplete     = errors.New("development mode requires Tolgee.APIURL, Tolgee.APIKey and Tolgee.ProjectID")
	errInvalidTimeout       = errors.New("Tolgee.Timeout cannot be negative")
	errStaticDataDir        = errors.New("Internationalization.StaticDataDir is not a directory")
	errInvalidLegacyBackend = errors.New("invalid Internationalization.LegacyBackend")
	errLegacyDirRequired    = errors.New("Internationalization.LegacyDir is required when a legacy backend is set")
	errInvalidCacheSize     = errors.New("Cache.Size must be positive when the cache is enabled")
	errInvalidLogLevel      = errors.New("invalid Log.Level")
	errInvalidLogFormat     = errors.New("invalid Log.Format, expected console or json")
)

var digitsRegexp = regexp.MustCompile(`^[0-9]{1,5}$`)

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if !digitsRegexp.MatchString(cfg.Basic.Port) {
		return fmt.Errorf("%w: %q", errInvalidPort, cfg.Basic.Port)
	}

	intl := &cfg.Internationalization

	switch strings.ToLower(strings.TrimSpace(intl.RawMode)) {
	case "", string(i18n.Production), string(i18n.Development):
		intl.Mode = i18n.ParseMode(intl.RawMode)
	default:
		return fmt.Errorf("%w: %q", errInvalidMode, intl.RawMode)
	}

	if _, err := i18n.ParseLocale(intl.DefaultLocale); err != nil {
		return fmt.Errorf("%w: %q: %w", errInvalidDefaultLocale, intl.DefaultLocale, err)
	}

	if err := cfg.validateTolgee(); err != nil {
		return err
	}

	if intl.StaticDataDir != "" {
		if info, err := os.Stat(intl.StaticDataDir); err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", errStaticDataDir, intl.StaticDataDir)
		}
	}

	switch intl.LegacyBackend {
	case "", LegacyNone:
		intl.LegacyBackend = LegacyNone
	case LegacyGoI18n, LegacyGettext:
		if intl.LegacyDir == "" {
			return errLegacyDirRequired
		}
	default:
		return fmt.Errorf("%w: %q", errInvalidLegacyBackend, intl.LegacyBackend)
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}

func (cfg *ServerConfig) validateTolgee() error {
	t := &cfg.Tolgee

	t.APIURL = strings.TrimRight(strings.TrimSpace(t.APIURL), "/")

	if t.APIURL != "" {
		u, err := url.Parse(t.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", errInvalidAPIURL, t.APIURL)
		}
	}

	switch {
	case t.Timeout < 0:
		return errInvalidTimeout
	case t.Timeout == 0:
		t.Timeout = tolgee.DefaultTimeout
	}

	if cfg.Internationalization.Mode.IsDevelopment() && !cfg.TolgeeConfigured() {
		return errTolgeeIncomplete
	}

	return nil
}

// TolgeeConfigured reports whether every setting needed to reach Tolgee is present.
func (cfg *ServerConfig) TolgeeConfigured() bool {
	return cfg.Tolgee.APIURL != "" && cfg.Tolgee.APIKey != "" && cfg.Tolgee.ProjectID != ""
}

// TolgeeClientConfig returns the client settings for package tolgee.
func (cfg *ServerConfig) TolgeeClientConfig() tolgee.Config {
	return tolgee.Config{
		APIURL:    cfg.Tolgee.APIURL,
		APIKey:    cfg.Tolgee.APIKey,
		ProjectID: cfg.Tolgee.ProjectID,
		Timeout:   cfg.Tolgee.Timeout,
	}
}
