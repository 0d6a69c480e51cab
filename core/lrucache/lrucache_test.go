// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lrucache

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("ValidSize", func(t *testing.T) {
		t.Parallel()

		for _, compress := range []bool{false, true} {
			cache, err := NewLRUCache(3, compress)
			require.NoError(t, err)
			assert.Zero(t, cache.Len())
		}
	})

	t.Run("InvalidSize", func(t *testing.T) {
		t.Parallel()

		cache, err := NewLRUCache(0, false)
		require.ErrorIs(t, err, ErrInvalidSize)
		assert.Nil(t, cache)
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(2, false)
	require.NoError(t, err)

	assert.False(t, cache.Add("foo", "bar"))
	assert.False(t, cache.Add("hello", "world"))

	// Touch "foo" so that "hello" becomes the oldest entry.
	v, ok := cache.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", v)

	assert.True(t, cache.Add("key3", "value3"))

	_, ok = cache.Get("hello")
	assert.False(t, ok, "expected 'hello' to be evicted")

	_, ok = cache.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(2, false)
	require.NoError(t, err)

	cache.Add("k", "v1")
	assert.False(t, cache.Add("k", "v2"))

	v, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, cache.Len())
}

func TestLRUCache_Compression(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(4, true)
	require.NoError(t, err)

	long := strings.Repeat("\u200c\u200d", 500)
	cache.Add("long", long)
	cache.Add("short", "x")
	cache.Add("empty", "")

	el := cache.items["long"]
	assert.True(t, el.Value.(*entry).compressed, "repetitive value should be stored compressed")

	for key, want := range map[string]string{"long": long, "short": "x", "empty": ""} {
		got, ok := cache.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func TestLRUCache_GetOrAddAndStats(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(8, true)
	require.NoError(t, err)

	calls := 0
	fn := func() string {
		calls++

		return "computed"
	}

	assert.Equal(t, "computed", cache.GetOrAdd("a", fn))
	assert.Equal(t, "computed", cache.GetOrAdd("a", fn))
	assert.Equal(t, 1, calls)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Len)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)

	cache.Purge()
	assert.Zero(t, cache.Len())
}

func TestLRUCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(16, true)
	require.NoError(t, err)

	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 200 {
				key := strconv.Itoa((g * i) % 32)
				cache.Add(key, strings.Repeat(key, 40))

				if v, ok := cache.Get(key); ok {
					assert.Equal(t, strings.Repeat(key, 40), v)
				}
			}
		}()
	}

	wg.Wait()
	assert.LessOrEqual(t, cache.Len(), 16)
}
