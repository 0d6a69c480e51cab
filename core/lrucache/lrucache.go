// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU)
cache of strings keyed by strings.

Zero-width markers are long (27 bytes of UTF-8 per payload byte) but highly
repetitive, so a cache created with compression enabled stores values zstd
compressed whenever that is smaller and decompresses them on [LRUCache.Get].
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// LRUCache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [NewLRUCache]; the zero value is not ready for use.
type LRUCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	lock      sync.Mutex

	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder

	hits, misses uint64
}

type entry struct {
	key        string
	value      []byte
	compressed bool
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// NewLRUCache creates a new cache holding at most size entries.
//
// If compress is true, values are stored zstd-compressed when this reduces space.
// It returns an error if size is not a positive integer.
func NewLRUCache(size int, compress bool) (*LRUCache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &LRUCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element, size),
		compress:  compress,
	}

	if compress {
		// A nil writer/reader lets us use EncodeAll/DecodeAll without streams.
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.enc = enc
		c.dec = dec
	}

	return c, nil
}

// Add stores value under key, making it the most recently used entry.
// Add reports whether an older entry was evicted to make room.
func (c *LRUCache) Add(key, value string) bool {
	stored, compressed := c.pack(value)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.value = stored
		ent.compressed = compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: stored, compressed: compressed})

	if c.evictList.Len() <= c.size {
		return false
	}

	if oldest := c.evictList.Back(); oldest != nil {
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}

	return true
}

// Get returns the value stored under key and marks it as most recently used.
func (c *LRUCache) Get(key string) (string, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		c.lock.Unlock()

		return "", false
	}

	c.hits++
	c.evictList.MoveToFront(el)

	ent := el.Value.(*entry)
	stored, compressed := ent.value, ent.compressed

	c.lock.Unlock()

	return c.unpack(stored, compressed)
}

// GetOrAdd returns the cached value for key, computing and storing it with
// fn on a miss.
func (c *LRUCache) GetOrAdd(key string, fn func() string) string {
	if v, ok := c.Get(key); ok {
		return v
	}

	v := fn()
	c.Add(key, v)

	return v
}

// Len returns the current number of entries.
func (c *LRUCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

// Stats returns the entry count and hit/miss counters.
func (c *LRUCache) Stats() Stats {
	c.lock.Lock()
	defer c.lock.Unlock()

	return Stats{Len: c.evictList.Len(), Hits: c.hits, Misses: c.misses}
}

// Purge removes every entry. Counters are kept.
func (c *LRUCache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.evictList.Init()
	c.items = make(map[string]*list.Element, c.size)
}

// pack runs without the lock; zstd.Encoder supports concurrent EncodeAll calls.
func (c *LRUCache) pack(value string) ([]byte, bool) {
	raw := []byte(value)

	if c.compress && len(raw) > 0 {
		if packed := c.enc.EncodeAll(raw, nil); len(packed) < len(raw) {
			return packed, true
		}
	}

	return raw, false
}

// unpack treats a failed decompression as a miss.
func (c *LRUCache) unpack(stored []byte, compressed bool) (string, bool) {
	if !compressed {
		return string(stored), true
	}

	decoded, err := c.dec.DecodeAll(stored, nil)
	if err != nil {
		return "", false
	}

	return string(decoded), true
}
