// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package source supplies the translation dictionary for a locale.

In production mode the dictionary is taken verbatim from caller-supplied
static data. In development mode it is fetched once per locale from a remote
[Fetcher] and kept for the lifetime of the [Source]; failed fetches are
remembered as empty dictionaries so that rendering never retries or fails.
*/
package source

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"codeberg.org/pixivfe/tolgeefe/core/dict"
)

// Fetcher retrieves the remote dictionary for a locale.
type Fetcher interface {
	FetchTranslations(ctx context.Context, locale string) (dict.Namespace, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, locale string) (dict.Namespace, error)

// FetchTranslations calls f.
func (f FetcherFunc) FetchTranslations(ctx context.Context, locale string) (dict.Namespace, error) {
	return f(ctx, locale)
}

// Source resolves dictionaries and owns the per-locale remote cache.
//
// A Source is safe for concurrent use; concurrent misses on the same locale
// share a single fetch.
type Source struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu    sync.RWMutex
	cache map[string]dict.Namespace
	group singleflight.Group

	fetches atomic.Int64
}

// New returns a Source that fetches development dictionaries with f.
// A nil f makes every development lookup resolve to an empty dictionary.
func New(f Fetcher) *Source {
	return &Source{
		fetcher: f,
		logger:  log.With().Str("sys", "source").Logger(),
		cache:   make(map[string]dict.Namespace),
	}
}

// Resolve returns the dictionary for locale under mode.
//
// It never fails: a missing static locale or a failed remote fetch yields an
// empty namespace.
func (s *Source) Resolve(ctx context.Context, locale string, mode Mode, static dict.StaticData) dict.Namespace {
	if !mode.IsDevelopment() {
		if ns, ok := static[locale]; ok && ns != nil {
			return ns
		}

		return dict.Empty()
	}

	return s.remote(ctx, locale)
}

// Cached reports whether a development dictionary for locale is cached.
func (s *Source) Cached(locale string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.cache[locale]

	return ok
}

// Fetches returns how many remote fetches this Source has issued.
func (s *Source) Fetches() int64 {
	return s.fetches.Load()
}

func (s *Source) remote(ctx context.Context, locale string) dict.Namespace {
	s.mu.RLock()
	ns, ok := s.cache[locale]
	s.mu.RUnlock()

	if ok {
		return ns
	}

	v, _, _ := s.group.Do(locale, func() (any, error) {
		// Another caller may have filled the cache while we waited for the group.
		s.mu.RLock()
		cached, ok := s.cache[locale]
		s.mu.RUnlock()

		if ok {
			return cached, nil
		}

		fetched := s.fetch(ctx, locale)

		s.mu.Lock()
		s.cache[locale] = fetched
		s.mu.Unlock()

		return fetched, nil
	})

	ns, _ = v.(dict.Namespace)
	if ns == nil {
		return dict.Empty()
	}

	return ns
}

func (s *Source) fetch(ctx context.Context, locale string) dict.Namespace {
	if s.fetcher == nil {
		return dict.Empty()
	}

	s.fetches.Add(1)

	// The fetch result is shared with every waiter, so it must not be cut
	// short by whichever caller happened to start it.
	ns, err := s.fetcher.FetchTranslations(context.WithoutCancel(ctx), locale)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("locale", locale).
			Msg("Failed to fetch remote translations, using an empty dictionary")

		return dict.Empty()
	}

	if ns == nil {
		return dict.Empty()
	}

	s.logger.Info().
		Str("locale", locale).
		Int("keys", ns.Len()).
		Msg("Loaded remote translations")

	return ns
}
