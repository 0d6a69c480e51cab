// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package source_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/tolgeefe/core/dict"
	"codeberg.org/pixivfe/tolgeefe/core/source"
)

var static = dict.StaticData{
	"en": {"hello": dict.Leaf("Hello")},
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	cases := map[string]source.Mode{
		"development":   source.Development,
		" Development ": source.Development,
		"production":    source.Production,
		"":              source.Production,
		"staging":       source.Production,
	}

	for in, want := range cases {
		assert.Equal(t, want, source.ParseMode(in), in)
	}

	assert.Equal(t, "production", source.Mode("").String())
}

func TestResolve_Production(t *testing.T) {
	t.Parallel()

	calls := atomic.Int64{}
	src := source.New(source.FetcherFunc(func(context.Context, string) (dict.Namespace, error) {
		calls.Add(1)

		return nil, nil
	}))

	ns := src.Resolve(context.Background(), "en", source.Production, static)
	v, ok := dict.Lookup(ns, "hello")
	assert.True(t, ok)
	assert.Equal(t, "Hello", v)

	missing := src.Resolve(context.Background(), "fr", source.Production, static)
	require.NotNil(t, missing)
	assert.Zero(t, missing.Len())

	assert.NotNil(t, src.Resolve(context.Background(), "en", source.Production, nil))
	assert.Zero(t, calls.Load(), "production mode must not fetch")
}

func TestResolve_DevelopmentCachesPerLocale(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	src := source.New(source.FetcherFunc(func(_ context.Context, locale string) (dict.Namespace, error) {
		calls.Add(1)

		return dict.Namespace{"hello": dict.Leaf("Hello " + locale)}, nil
	}))

	for range 3 {
		ns := src.Resolve(context.Background(), "en", source.Development, nil)
		v, _ := dict.Lookup(ns, "hello")
		assert.Equal(t, "Hello en", v)
	}

	assert.Equal(t, int64(1), calls.Load())
	assert.True(t, src.Cached("en"))
	assert.False(t, src.Cached("fr"))

	_ = src.Resolve(context.Background(), "fr", source.Development, nil)
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, int64(2), src.Fetches())
}

func TestResolve_DevelopmentFailureIsCachedEmpty(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	src := source.New(source.FetcherFunc(func(context.Context, string) (dict.Namespace, error) {
		calls.Add(1)

		return nil, errors.New("connection refused")
	}))

	for range 5 {
		ns := src.Resolve(context.Background(), "en", source.Development, static)
		require.NotNil(t, ns)
		assert.Zero(t, ns.Len())
	}

	assert.Equal(t, int64(1), calls.Load(), "failed fetch must not be retried")
	assert.True(t, src.Cached("en"))
}

func TestResolve_DevelopmentIgnoresStaticData(t *testing.T) {
	t.Parallel()

	src := source.New(nil)

	ns := src.Resolve(context.Background(), "en", source.Development, static)
	require.NotNil(t, ns)
	assert.Zero(t, ns.Len())
}

func TestResolve_ConcurrentMissesShareOneFetch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	release := make(chan struct{})

	src := source.New(source.FetcherFunc(func(context.Context, string) (dict.Namespace, error) {
		calls.Add(1)
		<-release

		return dict.Namespace{"hello": dict.Leaf("Hello")}, nil
	}))

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ns := src.Resolve(context.Background(), "en", source.Development, nil)
			v, _ := dict.Lookup(ns, "hello")
			assert.Equal(t, "Hello", v)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestResolve_CanceledCallerDoesNotPoisonFetch(t *testing.T) {
	t.Parallel()

	src := source.New(source.FetcherFunc(func(ctx context.Context, _ string) (dict.Namespace, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return dict.Namespace{"hello": dict.Leaf("Hello")}, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ns := src.Resolve(ctx, "en", source.Development, nil)
	v, ok := dict.Lookup(ns, "hello")
	assert.True(t, ok)
	assert.Equal(t, "Hello", v)
}
